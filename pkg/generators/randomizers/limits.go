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
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/greenmaskio/greenrand/pkg/generators"
)

var (
	ErrWrongLimits = errors.New("wrong limits")
)

// Int64Limiter keeps values in [MinValue, MaxValue] inclusively.
type Int64Limiter struct {
	MinValue int64
	MaxValue int64
}

func NewInt64Limiter(minValue, maxValue int64) (*Int64Limiter, error) {
	if minValue > maxValue {
		return nil, fmt.Errorf("min value %d is greater than max value %d: %w", minValue, maxValue, ErrWrongLimits)
	}
	return &Int64Limiter{
		MinValue: minValue,
		MaxValue: maxValue,
	}, nil
}

func (l *Int64Limiter) Limit(src *generators.Source) int64 {
	return src.Int64Between(l.MinValue, l.MaxValue)
}

// Uint64Limiter keeps values in [MinValue, MaxValue] inclusively.
type Uint64Limiter struct {
	MinValue uint64
	MaxValue uint64
}

func NewUint64Limiter(minValue, maxValue uint64) (*Uint64Limiter, error) {
	if minValue > maxValue {
		return nil, fmt.Errorf("min value %d is greater than max value %d: %w", minValue, maxValue, ErrWrongLimits)
	}
	return &Uint64Limiter{
		MinValue: minValue,
		MaxValue: maxValue,
	}, nil
}

func (l *Uint64Limiter) Limit(src *generators.Source) uint64 {
	return src.Uint64Between(l.MinValue, l.MaxValue)
}

// NumericLimiter keeps decimal values on the grid of 10^-Scale steps between the bounds. Exclusive bounds
// are honored by moving one grid step inside the interval.
type NumericLimiter struct {
	MinValue decimal.Decimal
	MaxValue decimal.Decimal
	Scale    int32
	lo       *big.Int
	hi       *big.Int
}

func NewNumericLimiter(
	minValue, maxValue decimal.Decimal, minInclusive, maxInclusive bool, scale int32,
) (*NumericLimiter, error) {
	if scale < 0 {
		scale = 0
	}
	lo := minValue.Shift(scale)
	if !lo.IsInteger() {
		lo = lo.Ceil()
	} else if !minInclusive {
		lo = lo.Add(decimal.NewFromInt(1))
	}
	hi := maxValue.Shift(scale)
	if !hi.IsInteger() {
		hi = hi.Floor()
	} else if !maxInclusive {
		hi = hi.Sub(decimal.NewFromInt(1))
	}
	if lo.GreaterThan(hi) {
		return nil, fmt.Errorf(
			"interval %s%s, %s%s has no values with scale %d: %w",
			openBracket(minInclusive), minValue, maxValue, closeBracket(maxInclusive), scale, ErrWrongLimits,
		)
	}
	return &NumericLimiter{
		MinValue: minValue,
		MaxValue: maxValue,
		Scale:    scale,
		lo:       lo.BigInt(),
		hi:       hi.BigInt(),
	}, nil
}

// Units returns the interval bounds expressed in grid steps.
func (l *NumericLimiter) Units() (*big.Int, *big.Int) {
	return new(big.Int).Set(l.lo), new(big.Int).Set(l.hi)
}

// Int64Units returns the grid bounds when both fit into int64.
func (l *NumericLimiter) Int64Units() (int64, int64, bool) {
	if !l.lo.IsInt64() || !l.hi.IsInt64() {
		return 0, 0, false
	}
	return l.lo.Int64(), l.hi.Int64(), true
}

func (l *NumericLimiter) Limit(src *generators.Source) decimal.Decimal {
	if lo, hi, ok := l.Int64Units(); ok {
		return decimal.New(src.Int64Between(lo, hi), -l.Scale)
	}
	return decimal.NewFromBigInt(src.BigIntBetween(l.lo, l.hi), -l.Scale)
}

// ScaleOf returns the count of digits after the decimal point of the value.
func ScaleOf(v decimal.Decimal) int32 {
	if exp := v.Exponent(); exp < 0 {
		return -exp
	}
	return 0
}

func openBracket(inclusive bool) string {
	if inclusive {
		return "["
	}
	return "("
}

func closeBracket(inclusive bool) string {
	if inclusive {
		return "]"
	}
	return ")"
}
