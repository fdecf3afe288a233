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

package engine

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/shopspring/decimal"

	"github.com/greenmaskio/greenrand/pkg/constraints"
	"github.com/greenmaskio/greenrand/pkg/generators"
	"github.com/greenmaskio/greenrand/pkg/generators/randomizers"
)

var (
	decimalType = reflect.TypeFor[decimal.Decimal]()
	bigIntType  = reflect.TypeFor[big.Int]()

	// defaultSpan is the width of the interval used when a bound of an unbounded type is missing.
	defaultSpan = decimal.New(1, 18)
)

type numericBounds struct {
	min          decimal.Decimal
	max          decimal.Decimal
	hasMin       bool
	hasMax       bool
	minInclusive bool
	maxInclusive bool
}

// NumericHandler generates numbers for Range, Min, Max, DecimalMin, DecimalMax and the sign constraints.
// Min and Max, as well as DecimalMin and DecimalMax of the same namespace, are read together as one
// interval.
type NumericHandler struct {
	cfg *Config
}

func NewNumericHandler(cfg *Config) Handler {
	return &NumericHandler{
		cfg: cfg,
	}
}

func (h *NumericHandler) Randomizer(scope *Scope, slot Slot, c constraints.Constraint) (Randomizer, error) {
	base := derefType(slot.Type)
	if !isNumericTarget(base) {
		return nil, nil
	}
	b, err := numericBoundsOf(slot, c)
	if err != nil {
		return nil, err
	}

	var fn valueFunc
	switch {
	case base == decimalType:
		fn, err = h.decimalValue(scope.Source(), b)
	case base == bigIntType:
		fn, err = h.bigIntValue(scope.Source(), b)
	case base.Kind() == reflect.String:
		fn, err = h.numericText(scope.Source(), base, b)
	case base.Kind() == reflect.Float32 || base.Kind() == reflect.Float64:
		fn, err = h.floatValue(scope.Source(), base, b)
	case isUnsigned(base.Kind()):
		fn, err = h.unsignedValue(scope.Source(), base, b)
	default:
		fn, err = h.integerValue(scope.Source(), base, b)
	}
	if err != nil {
		return nil, err
	}
	return valueRandomizer(slot.Type, fn), nil
}

func isNumericTarget(t reflect.Type) bool {
	if t == decimalType || t == bigIntType {
		return true
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.String:
		return true
	}
	return false
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func numericBoundsOf(slot Slot, c constraints.Constraint) (numericBounds, error) {
	b := numericBounds{
		minInclusive: true,
		maxInclusive: true,
	}
	var err error
	switch c.Kind {
	case constraints.Range:
		if b.min, b.hasMin, err = c.ParamDecimal(constraints.ParamMin); err != nil {
			return b, err
		}
		if b.max, b.hasMax, err = c.ParamDecimal(constraints.ParamMax); err != nil {
			return b, err
		}
		if b.minInclusive, err = c.ParamBool(constraints.ParamMinInclusive, true); err != nil {
			return b, err
		}
		if b.maxInclusive, err = c.ParamBool(constraints.ParamMaxInclusive, true); err != nil {
			return b, err
		}
	case constraints.Min, constraints.Max:
		err = b.fromSiblings(slot, constraints.Min, constraints.Max, false)
	case constraints.DecimalMin, constraints.DecimalMax:
		err = b.fromSiblings(slot, constraints.DecimalMin, constraints.DecimalMax, true)
	case constraints.CurrentDecimalMin, constraints.CurrentDecimalMax:
		err = b.fromSiblings(slot, constraints.CurrentDecimalMin, constraints.CurrentDecimalMax, true)
	case constraints.Positive:
		b.min, b.hasMin, b.minInclusive = decimal.Zero, true, false
	case constraints.PositiveOrZero:
		b.min, b.hasMin = decimal.Zero, true
	case constraints.Negative:
		b.max, b.hasMax, b.maxInclusive = decimal.Zero, true, false
	case constraints.NegativeOrZero:
		b.max, b.hasMax = decimal.Zero, true
	default:
		return b, fmt.Errorf("kind %s is not numeric: %w", c.Kind, ErrInvalidParameter)
	}
	return b, err
}

func (b *numericBounds) fromSiblings(slot Slot, minKind, maxKind constraints.Kind, withInclusive bool) error {
	var err error
	if c, ok := slot.Constraint(minKind); ok {
		if b.min, b.hasMin, err = c.ParamDecimal(constraints.ParamValue); err != nil {
			return err
		}
		if !b.hasMin {
			return fmt.Errorf("%s: parameter %q is required: %w", minKind, constraints.ParamValue, ErrInvalidParameter)
		}
		if withInclusive {
			if b.minInclusive, err = c.ParamBool(constraints.ParamInclusive, true); err != nil {
				return err
			}
		}
	}
	if c, ok := slot.Constraint(maxKind); ok {
		if b.max, b.hasMax, err = c.ParamDecimal(constraints.ParamValue); err != nil {
			return err
		}
		if !b.hasMax {
			return fmt.Errorf("%s: parameter %q is required: %w", maxKind, constraints.ParamValue, ErrInvalidParameter)
		}
		if withInclusive {
			if b.maxInclusive, err = c.ParamBool(constraints.ParamInclusive, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// clamp intersects the bounds with the limits of the target type.
func (b numericBounds) clamp(typeMin, typeMax decimal.Decimal) numericBounds {
	if !b.hasMin || b.min.LessThan(typeMin) {
		b.min, b.hasMin, b.minInclusive = typeMin, true, true
	}
	if !b.hasMax || b.max.GreaterThan(typeMax) {
		b.max, b.hasMax, b.maxInclusive = typeMax, true, true
	}
	return b
}

// withDefaults fills missing bounds of unbounded types with an interval of defaultSpan width.
func (b numericBounds) withDefaults() numericBounds {
	if !b.hasMin {
		from := decimal.Zero
		if b.hasMax && b.max.LessThan(from) {
			from = b.max
		}
		b.min, b.hasMin, b.minInclusive = from.Sub(defaultSpan), true, true
	}
	if !b.hasMax {
		from := decimal.Zero
		if b.min.GreaterThan(from) {
			from = b.min
		}
		b.max, b.hasMax, b.maxInclusive = from.Add(defaultSpan), true, true
	}
	return b
}

func (b numericBounds) limiter(scale int32) (*randomizers.NumericLimiter, error) {
	l, err := randomizers.NewNumericLimiter(b.min, b.max, b.minInclusive, b.maxInclusive, scale)
	if err != nil {
		if errors.Is(err, randomizers.ErrWrongLimits) {
			return nil, fmt.Errorf("%w: %w", ErrUnsatisfiableBounds, err)
		}
		return nil, err
	}
	return l, nil
}

func (b numericBounds) scale() int32 {
	return max(randomizers.ScaleOf(b.min), randomizers.ScaleOf(b.max))
}

func (h *NumericHandler) integerValue(src *generators.Source, t reflect.Type, b numericBounds) (valueFunc, error) {
	bits := t.Bits()
	typeMin := int64(-1) << (bits - 1)
	typeMax := -(typeMin + 1)
	l, err := b.clamp(decimal.NewFromInt(typeMin), decimal.NewFromInt(typeMax)).limiter(0)
	if err != nil {
		return nil, err
	}
	lo, hi, _ := l.Int64Units()
	limiter, err := randomizers.NewInt64Limiter(lo, hi)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsatisfiableBounds, err)
	}
	r := randomizers.NewInt64Randomizer(src, limiter)
	return func() (reflect.Value, error) {
		v := reflect.New(t).Elem()
		v.SetInt(r.Next())
		return v, nil
	}, nil
}

func (h *NumericHandler) unsignedValue(src *generators.Source, t reflect.Type, b numericBounds) (valueFunc, error) {
	typeMax := new(big.Int).SetUint64(math.MaxUint64 >> (64 - t.Bits()))
	l, err := b.clamp(decimal.Zero, decimal.NewFromBigInt(typeMax, 0)).limiter(0)
	if err != nil {
		return nil, err
	}
	lo, hi := l.Units()
	limiter, err := randomizers.NewUint64Limiter(lo.Uint64(), hi.Uint64())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsatisfiableBounds, err)
	}
	r := randomizers.NewUint64Randomizer(src, limiter)
	return func() (reflect.Value, error) {
		v := reflect.New(t).Elem()
		v.SetUint(r.Next())
		return v, nil
	}, nil
}

func (h *NumericHandler) decimalValue(src *generators.Source, b numericBounds) (valueFunc, error) {
	b = b.withDefaults()
	l, err := b.limiter(max(h.cfg.DecimalScale, b.scale()))
	if err != nil {
		return nil, err
	}
	r := randomizers.NewNumericRandomizer(src, l)
	return func() (reflect.Value, error) {
		return reflect.ValueOf(r.Next()), nil
	}, nil
}

func (h *NumericHandler) bigIntValue(src *generators.Source, b numericBounds) (valueFunc, error) {
	l, err := b.withDefaults().limiter(0)
	if err != nil {
		return nil, err
	}
	r := randomizers.NewNumericRandomizer(src, l)
	return func() (reflect.Value, error) {
		return reflect.ValueOf(*r.Next().BigInt()), nil
	}, nil
}

func (h *NumericHandler) numericText(src *generators.Source, t reflect.Type, b numericBounds) (valueFunc, error) {
	b = b.withDefaults()
	l, err := b.limiter(b.scale())
	if err != nil {
		return nil, err
	}
	r := randomizers.NewNumericRandomizer(src, l)
	return func() (reflect.Value, error) {
		v := reflect.New(t).Elem()
		v.SetString(r.Next().String())
		return v, nil
	}, nil
}

func (h *NumericHandler) floatValue(src *generators.Source, t reflect.Type, b numericBounds) (valueFunc, error) {
	// Missing bounds are the limits of the type. float32 limits are applied by float32Bounds.
	lo, hi := -math.MaxFloat64, math.MaxFloat64
	if b.hasMin {
		lo = b.min.InexactFloat64()
	}
	if b.hasMax {
		hi = b.max.InexactFloat64()
	}
	if !b.minInclusive {
		lo = math.Nextafter(lo, math.Inf(1))
	}
	if !b.maxInclusive {
		hi = math.Nextafter(hi, math.Inf(-1))
	}
	if t.Kind() == reflect.Float32 {
		lo, hi = float32Bounds(lo, hi)
	}
	if lo > hi {
		return nil, fmt.Errorf(
			"no %s values between %s and %s: %w", t, b.min, b.max, ErrUnsatisfiableBounds,
		)
	}
	return func() (reflect.Value, error) {
		u := src.Float64()
		f := min(max(lo*(1-u)+hi*u, lo), hi)
		if t.Kind() == reflect.Float32 {
			f32 := float32(f)
			if float64(f32) < lo {
				f32 = math.Nextafter32(f32, float32(math.Inf(1)))
			} else if float64(f32) > hi {
				f32 = math.Nextafter32(f32, float32(math.Inf(-1)))
			}
			f = float64(f32)
		}
		v := reflect.New(t).Elem()
		v.SetFloat(f)
		return v, nil
	}, nil
}

// float32Bounds narrows the interval to the float32 values it contains.
func float32Bounds(lo, hi float64) (float64, float64) {
	lo = max(lo, -math.MaxFloat32)
	hi = min(hi, math.MaxFloat32)
	lo32 := float32(lo)
	if float64(lo32) < lo {
		lo32 = math.Nextafter32(lo32, float32(math.Inf(1)))
	}
	hi32 := float32(hi)
	if float64(hi32) > hi {
		hi32 = math.Nextafter32(hi32, float32(math.Inf(-1)))
	}
	return float64(lo32), float64(hi32)
}
