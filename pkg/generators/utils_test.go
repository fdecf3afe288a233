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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildBytesFromInt(t *testing.T) {
	value := int64(123)
	intBytes := BuildBytesFromInt64(value)[:3]
	res := BuildInt64FromBytes(intBytes)
	require.Equal(t, value, res)
}

func TestBuildUint64FromBytes(t *testing.T) {
	value := uint64(1<<40 + 7)
	res := BuildUint64FromBytes(BuildBytesFromUint64(value))
	require.Equal(t, value, res)
}
