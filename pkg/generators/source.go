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
	"math"
	"math/big"
	"math/rand/v2"
)

// pcgStream is the fixed PCG increment. Changing it changes every generated value.
const pcgStream = 0x9e3779b97f4a7c15

// Source is a deterministic pseudo-random stream keyed by a 64-bit seed.
// It is not safe for concurrent use: every randomizer owns its own Source.
type Source struct {
	r    *rand.Rand
	seed int64
}

func NewSource(seed int64) *Source {
	return &Source{
		r:    rand.New(rand.NewPCG(uint64(seed), pcgStream)),
		seed: seed,
	}
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Child derives an independent source from the next value of this one.
func (s *Source) Child() *Source {
	return NewSource(int64(s.r.Uint64()))
}

func (s *Source) Uint64() uint64 {
	return s.r.Uint64()
}

func (s *Source) Int64() int64 {
	return int64(s.r.Uint64())
}

// Uint64N returns a value in [0, n). n must be greater than zero.
func (s *Source) Uint64N(n uint64) uint64 {
	return s.r.Uint64N(n)
}

// IntN returns a value in [0, n). It returns 0 when n <= 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}

// IntBetween returns a value in [minValue, maxValue] inclusively.
func (s *Source) IntBetween(minValue, maxValue int) int {
	if maxValue <= minValue {
		return minValue
	}
	return minValue + s.r.IntN(maxValue-minValue+1)
}

// Int64Between returns a value in [minValue, maxValue] inclusively. The whole int64 range is supported.
func (s *Source) Int64Between(minValue, maxValue int64) int64 {
	if maxValue <= minValue {
		return minValue
	}
	distance := uint64(maxValue) - uint64(minValue)
	if distance == math.MaxUint64 {
		return int64(s.r.Uint64())
	}
	return int64(uint64(minValue) + s.r.Uint64N(distance+1))
}

// Uint64Between returns a value in [minValue, maxValue] inclusively.
func (s *Source) Uint64Between(minValue, maxValue uint64) uint64 {
	if maxValue <= minValue {
		return minValue
	}
	distance := maxValue - minValue
	if distance == math.MaxUint64 {
		return s.r.Uint64()
	}
	return minValue + s.r.Uint64N(distance+1)
}

func (s *Source) Float64() float64 {
	return s.r.Float64()
}

func (s *Source) Bool() bool {
	return s.r.Uint64()&1 == 1
}

// BigIntN returns a uniformly distributed value in [0, n). It uses rejection sampling over the minimal
// number of random bits, so the result is free of modulo bias.
func (s *Source) BigIntN(n *big.Int) *big.Int {
	if n.Sign() <= 0 {
		return new(big.Int)
	}
	if n.IsUint64() {
		return new(big.Int).SetUint64(s.r.Uint64N(n.Uint64()))
	}
	bitLen := n.BitLen()
	byteLen := (bitLen + 7) / 8
	extraBits := uint(byteLen*8 - bitLen)
	buf := make([]byte, byteLen)
	res := new(big.Int)
	for {
		s.fill(buf)
		buf[0] &= byte(0xFF >> extraBits)
		res.SetBytes(buf)
		if res.Cmp(n) < 0 {
			return res
		}
	}
}

// BigIntBetween returns a uniformly distributed value in [minValue, maxValue] inclusively.
func (s *Source) BigIntBetween(minValue, maxValue *big.Int) *big.Int {
	if maxValue.Cmp(minValue) <= 0 {
		return new(big.Int).Set(minValue)
	}
	distance := new(big.Int).Sub(maxValue, minValue)
	distance.Add(distance, big.NewInt(1))
	res := s.BigIntN(distance)
	return res.Add(res, minValue)
}

// Read fills p with random bytes. It never fails and lets the source act as an io.Reader.
func (s *Source) Read(p []byte) (int, error) {
	s.fill(p)
	return len(p), nil
}

func (s *Source) fill(p []byte) {
	buf := make([]byte, 8)
	for len(p) > 0 {
		binary.LittleEndian.PutUint64(buf, s.r.Uint64())
		n := copy(p, buf)
		p = p[n:]
	}
}
