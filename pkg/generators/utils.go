// Copyright 2025 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package generators

import (
	"encoding/binary"
)

func BuildBytesFromInt64(value int64) []byte {
	res := make([]byte, 8)
	binary.LittleEndian.PutUint64(res, uint64(value))
	return res
}

// BuildInt64FromBytes - decode bytes array to int64 representation. In case there is less than 8 bytes
// the missing high bytes are zero.
func BuildInt64FromBytes(data []byte) (res int64) {
	return int64(BuildUint64FromBytes(data))
}

func BuildBytesFromUint64(value uint64) []byte {
	res := make([]byte, 8)
	binary.LittleEndian.PutUint64(res, value)
	return res
}

func BuildUint64FromBytes(data []byte) (res uint64) {
	intBytes := data
	if len(data) != 8 {
		intBytes = make([]byte, 8)
		copy(intBytes, data)
	}

	return binary.LittleEndian.Uint64(intBytes)
}
