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
	"math"
	"math/big"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/greenrand/pkg/constraints"
)

func TestNumericHandler_decimalRange(t *testing.T) {
	e := newTestEngine(t)
	r := mustResolve(t, e, SlotOf[decimal.Decimal]("price", c(constraints.Range, "min", "1.5", "max", "9.5")))

	lo, hi := decimal.RequireFromString("1.5"), decimal.RequireFromString("9.5")
	for i := 0; i < 10000; i++ {
		v, err := r.Generate()
		require.NoError(t, err)
		d, ok := v.(decimal.Decimal)
		require.True(t, ok)
		assert.True(t, d.GreaterThanOrEqual(lo) && d.LessThanOrEqual(hi), d.String())
		assert.LessOrEqual(t, -d.Exponent(), int32(DefaultDecimalScale))
	}
}

func TestNumericHandler_integers(t *testing.T) {
	type test struct {
		name     string
		slot     Slot
		min, max int64
	}
	tests := []test{
		{
			name: "range",
			slot: SlotOf[int]("v", c(constraints.Range, "min", 10, "max", 20)),
			min:  10,
			max:  20,
		},
		{
			name: "range exclusive",
			slot: SlotOf[int32]("v", c(constraints.Range, "min", 10, "max", 12, "min_inclusive", false, "max_inclusive", "false")),
			min:  11,
			max:  11,
		},
		{
			name: "min and max siblings",
			slot: SlotOf[int64]("v", c(constraints.Min, "value", -5), c(constraints.Max, "value", 5)),
			min:  -5,
			max:  5,
		},
		{
			name: "max sibling first",
			slot: SlotOf[int16]("v", c(constraints.Max, "value", 100), c(constraints.Min, "value", 99)),
			min:  99,
			max:  100,
		},
		{
			name: "clamped to type",
			slot: SlotOf[int8]("v", c(constraints.Range, "min", 100, "max", 1000)),
			min:  100,
			max:  127,
		},
		{
			name: "negative",
			slot: SlotOf[int8]("v", c(constraints.Negative)),
			min:  -128,
			max:  -1,
		},
		{
			name: "positive or zero",
			slot: SlotOf[*int16]("v", c(constraints.PositiveOrZero)),
			min:  0,
			max:  32767,
		},
		{
			name: "decimal bounds with fraction",
			slot: SlotOf[int]("v", c(constraints.DecimalMin, "value", "0.5"), c(constraints.DecimalMax, "value", "2.5")),
			min:  1,
			max:  2,
		},
		{
			name: "current decimal bounds exclusive",
			slot: SlotOf[int]("v",
				c(constraints.CurrentDecimalMin, "value", 0, "inclusive", false),
				c(constraints.CurrentDecimalMax, "value", 3, "inclusive", false),
			),
			min: 1,
			max: 2,
		},
	}
	e := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustResolve(t, e, tt.slot)
			for i := 0; i < 10000; i++ {
				v, err := r.Generate()
				require.NoError(t, err)
				rv := reflect.ValueOf(v)
				if rv.Kind() == reflect.Pointer {
					require.False(t, rv.IsNil())
					rv = rv.Elem()
				}
				assert.Equal(t, tt.slot.Type, reflect.TypeOf(v))
				assert.GreaterOrEqual(t, rv.Int(), tt.min)
				assert.LessOrEqual(t, rv.Int(), tt.max)
			}
		})
	}
}

func TestNumericHandler_unsigned(t *testing.T) {
	e := newTestEngine(t)
	r := mustResolve(t, e, SlotOf[uint8]("v", c(constraints.Positive)))
	for i := 0; i < 500; i++ {
		v, err := r.Generate()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v.(uint8), uint8(1))
	}

	r = mustResolve(t, e, SlotOf[uint64]("v", c(constraints.Range, "min", "18446744073709551600")))
	for i := 0; i < 100; i++ {
		v, err := r.Generate()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v.(uint64), uint64(18446744073709551600))
	}
}

func TestNumericHandler_floats(t *testing.T) {
	e := newTestEngine(t)
	r := mustResolve(t, e, SlotOf[float64]("v", c(constraints.Range, "min", 0, "max", 1, "min_inclusive", false)))
	for i := 0; i < 10000; i++ {
		v, err := r.Generate()
		require.NoError(t, err)
		assert.Greater(t, v.(float64), 0.0)
		assert.LessOrEqual(t, v.(float64), 1.0)
	}

	r = mustResolve(t, e, SlotOf[float32]("v", c(constraints.Range, "min", "0.1", "max", "0.2")))
	for i := 0; i < 10000; i++ {
		v, err := r.Generate()
		require.NoError(t, err)
		f := v.(float32)
		assert.True(t, float64(f) >= 0.1 && float64(f) <= 0.2, f)
	}
}

func TestNumericHandler_floatTypeLimits(t *testing.T) {
	e := newTestEngine(t)

	r := mustResolve(t, e, SlotOf[float64]("v", c(constraints.Range, "min", "1e300")))
	var above bool
	for i := 0; i < 10000; i++ {
		v, err := r.Generate()
		require.NoError(t, err)
		f := v.(float64)
		require.False(t, math.IsInf(f, 0))
		assert.GreaterOrEqual(t, f, 1e300)
		above = above || f > 1e300
	}
	assert.True(t, above, "values are stuck at the lower bound")

	r = mustResolve(t, e, SlotOf[float64]("v", c(constraints.Positive)))
	var huge bool
	for i := 0; i < 10000; i++ {
		v, err := r.Generate()
		require.NoError(t, err)
		f := v.(float64)
		assert.Greater(t, f, 0.0)
		assert.LessOrEqual(t, f, math.MaxFloat64)
		huge = huge || f > 1e300
	}
	assert.True(t, huge, "values are capped below the float64 maximum")

	r = mustResolve(t, e, SlotOf[float32]("v", c(constraints.Negative)))
	var low bool
	for i := 0; i < 10000; i++ {
		v, err := r.Generate()
		require.NoError(t, err)
		f := v.(float32)
		require.False(t, math.IsInf(float64(f), 0))
		assert.Less(t, f, float32(0))
		assert.GreaterOrEqual(t, f, float32(-math.MaxFloat32))
		low = low || f < -1e30
	}
	assert.True(t, low, "values are capped above the float32 minimum")
}

func TestNumericHandler_bigAndText(t *testing.T) {
	e := newTestEngine(t)
	r := mustResolve(t, e, SlotOf[*big.Int]("v", c(constraints.Range, "min", "100000000000000000000", "max", "100000000000000000010")))
	lo, _ := new(big.Int).SetString("100000000000000000000", 10)
	hi, _ := new(big.Int).SetString("100000000000000000010", 10)
	for i := 0; i < 100; i++ {
		v, err := r.Generate()
		require.NoError(t, err)
		b := v.(*big.Int)
		assert.True(t, b.Cmp(lo) >= 0 && b.Cmp(hi) <= 0, b.String())
	}

	r = mustResolve(t, e, SlotOf[string]("v", c(constraints.Range, "min", "-1.25", "max", "1.25")))
	for i := 0; i < 100; i++ {
		v, err := r.Generate()
		require.NoError(t, err)
		d, err := decimal.NewFromString(v.(string))
		require.NoError(t, err)
		assert.True(t, d.Abs().LessThanOrEqual(decimal.RequireFromString("1.25")), d.String())
	}
}

func TestNumericHandler_errors(t *testing.T) {
	e := newTestEngine(t)

	type test struct {
		name string
		slot Slot
		err  error
	}
	tests := []test{
		{
			name: "min above max",
			slot: SlotOf[int]("v", c(constraints.Range, "min", 5, "max", 3)),
			err:  ErrUnsatisfiableBounds,
		},
		{
			name: "empty exclusive interval",
			slot: SlotOf[int]("v", c(constraints.Range, "min", 1, "max", 2, "min_inclusive", false, "max_inclusive", false)),
			err:  ErrUnsatisfiableBounds,
		},
		{
			name: "outside of type",
			slot: SlotOf[uint8]("v", c(constraints.Negative)),
			err:  ErrUnsatisfiableBounds,
		},
		{
			name: "float exclusive point",
			slot: SlotOf[float64]("v", c(constraints.Range, "min", 1, "max", 1, "max_inclusive", false)),
			err:  ErrUnsatisfiableBounds,
		},
		{
			name: "not a number",
			slot: SlotOf[int]("v", c(constraints.Range, "min", "abc")),
			err:  ErrInvalidParameter,
		},
		{
			name: "missing sibling value",
			slot: SlotOf[int]("v", c(constraints.Min)),
			err:  ErrInvalidParameter,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := e.Resolve(tt.slot)
			require.ErrorIs(t, err, tt.err)
			var resErr *ResolutionError
			require.True(t, errors.As(err, &resErr))
			assert.Equal(t, tt.slot.Name, resErr.Slot)
			assert.Equal(t, tt.slot.Constraints[0].Kind, resErr.Kind)
		})
	}
}

func TestNumericHandler_declines(t *testing.T) {
	e := newTestEngine(t)
	for _, slot := range []Slot{
		SlotOf[bool]("v", c(constraints.Range, "min", 1)),
		SlotOf[[]int]("v", c(constraints.Positive)),
		SlotOf[User]("v", c(constraints.Min, "value", 1)),
	} {
		r, ok, err := e.Resolve(slot)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, r)
	}
}
