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
	"fmt"
	"hash"

	"github.com/dchest/siphash"
	"golang.org/x/crypto/sha3"
)

const sipHashSize = 8

// SipHash is a keyed hash Generator. The 16 byte key is the head of the SHA3-224 digest of the salt.
type SipHash struct {
	hash.Hash
	buf []byte
}

func NewSipHash(salt []byte) *SipHash {
	key := sha3.Sum224(salt)
	return &SipHash{
		Hash: siphash.New(key[:16]),
		buf:  make([]byte, 0, sipHashSize),
	}
}

func (s *SipHash) Generate(data []byte) ([]byte, error) {
	defer s.Reset()

	if _, err := s.Write(data); err != nil {
		return nil, fmt.Errorf("unable to write data into writer: %w", err)
	}

	s.buf = s.buf[:0]
	return s.Sum(s.buf), nil
}

func (s *SipHash) Size() int {
	return sipHashSize
}
