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

package randomizers

import (
	"github.com/shopspring/decimal"

	"github.com/greenmaskio/greenrand/pkg/generators"
)

type Int64Randomizer struct {
	src     *generators.Source
	limiter *Int64Limiter
}

func NewInt64Randomizer(src *generators.Source, limiter *Int64Limiter) *Int64Randomizer {
	return &Int64Randomizer{
		src:     src,
		limiter: limiter,
	}
}

func (r *Int64Randomizer) Next() int64 {
	return r.limiter.Limit(r.src)
}

type Uint64Randomizer struct {
	src     *generators.Source
	limiter *Uint64Limiter
}

func NewUint64Randomizer(src *generators.Source, limiter *Uint64Limiter) *Uint64Randomizer {
	return &Uint64Randomizer{
		src:     src,
		limiter: limiter,
	}
}

func (r *Uint64Randomizer) Next() uint64 {
	return r.limiter.Limit(r.src)
}

type NumericRandomizer struct {
	src     *generators.Source
	limiter *NumericLimiter
}

func NewNumericRandomizer(src *generators.Source, limiter *NumericLimiter) *NumericRandomizer {
	return &NumericRandomizer{
		src:     src,
		limiter: limiter,
	}
}

func (r *NumericRandomizer) Next() decimal.Decimal {
	return r.limiter.Limit(r.src)
}
