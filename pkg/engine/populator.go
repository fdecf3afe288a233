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
	"math"
	"math/big"
	"reflect"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/greenmaskio/greenrand/pkg/generators/randomizers"
)

var durationType = reflect.TypeFor[time.Duration]()

// Populator produces values for slots that no constraint applies to.
type Populator interface {
	Populate(t reflect.Type, scope *Scope) (any, error)
}

// ReflectPopulator fills any type through reflection using the scope source. Structs are built by record
// construction, so nested fields honor their rand tags. Values nested deeper than the configured depth
// are zero.
type ReflectPopulator struct{}

func (p ReflectPopulator) Populate(t reflect.Type, scope *Scope) (any, error) {
	v, err := p.value(t, scope)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func (p ReflectPopulator) value(t reflect.Type, scope *Scope) (reflect.Value, error) {
	if scope.Exhausted() {
		return reflect.Zero(t), nil
	}
	e := scope.Engine()
	src := scope.Source()

	if values, ok := e.enums[t]; ok {
		return values[src.IntN(len(values))], nil
	}
	if category, ok := e.semanticTypes[t]; ok {
		if v, ok := e.DispatchSemantic(category, scope.Locale()); ok {
			if rv, ok := assignValue(t, v); ok {
				return rv, nil
			}
		}
	}

	switch t {
	case timeType:
		window := int64(e.cfg.TemporalWindow)
		return reflect.ValueOf(e.Now().Add(time.Duration(src.Int64Between(-window, window)))), nil
	case durationType:
		return reflect.ValueOf(time.Duration(src.Int64Between(0, int64(24*time.Hour)))), nil
	case decimalType:
		bound := decimal.New(1, 6)
		l, err := randomizers.NewNumericLimiter(bound.Neg(), bound, true, true, e.cfg.DecimalScale)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(l.Limit(src)), nil
	case bigIntType:
		bound := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
		return reflect.ValueOf(*src.BigIntBetween(new(big.Int).Neg(bound), bound)), nil
	case uuidType:
		u, err := randomizers.NewUUIDRandomizer(src).Next()
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(u), nil
	}

	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Bool:
		v.SetBool(src.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		minValue := int64(-1) << (t.Bits() - 1)
		v.SetInt(src.Int64Between(minValue, -(minValue + 1)))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v.SetUint(src.Uint64Between(0, math.MaxUint64>>(64-t.Bits())))
	case reflect.Float32, reflect.Float64:
		v.SetFloat(src.Float64())
	case reflect.Complex64, reflect.Complex128:
		v.SetComplex(complex(src.Float64(), src.Float64()))
	case reflect.String:
		r, err := randomizers.NewStringRandomizer(
			src, []rune(e.cfg.Charset), e.cfg.StringLength.Min, e.cfg.StringLength.Max,
		)
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetString(r.Next())
	case reflect.Slice:
		n := p.size(scope)
		v = reflect.MakeSlice(t, n, n)
		if err := p.fill(scope, v, p.elem(scope, t.Elem())); err != nil {
			return reflect.Value{}, err
		}
	case reflect.Array:
		if err := p.fill(scope, v, p.elem(scope, t.Elem())); err != nil {
			return reflect.Value{}, err
		}
	case reflect.Map:
		return p.mapping(scope, t)
	case reflect.Chan:
		n := p.size(scope)
		ch := reflect.MakeChan(reflect.ChanOf(reflect.BothDir, t.Elem()), n)
		elem := p.elem(scope, t.Elem())
		for i := 0; i < n; i++ {
			ev, err := p.element(scope, elem, i)
			if err != nil {
				return reflect.Value{}, err
			}
			ch.Send(ev)
		}
		ch.Close()
		if ch.Type() != t {
			ch = ch.Convert(t)
		}
		return ch, nil
	case reflect.Pointer:
		ev, err := e.generate(scope.Child(), Slot{Type: t.Elem(), Locale: scope.Locale()})
		if err != nil {
			return reflect.Value{}, err
		}
		v = reflect.New(t.Elem())
		v.Elem().Set(ev)
	case reflect.Struct:
		return e.construct(scope, t)
	case reflect.Interface:
		impl, ok := e.impls[t]
		if !ok {
			return v, nil
		}
		iv, err := e.generate(scope.Child(), Slot{Type: impl, Locale: scope.Locale()})
		if err != nil {
			return reflect.Value{}, err
		}
		v.Set(iv)
	default:
		log.Debug().
			Str("Type", t.String()).
			Msg("type is not supported by populator: using zero value")
	}
	return v, nil
}

func (p ReflectPopulator) size(scope *Scope) int {
	minValue, maxValue := scope.CollectionSize()
	return scope.Source().IntBetween(minValue, maxValue)
}

// elem returns the element type to generate: the hinted type replaces interface elements.
func (p ReflectPopulator) elem(scope *Scope, declared reflect.Type) reflect.Type {
	if hint := scope.ElementHint(); hint != nil && declared.Kind() == reflect.Interface && hint.AssignableTo(declared) {
		return hint
	}
	return declared
}

func (p ReflectPopulator) element(scope *Scope, t reflect.Type, idx int) (reflect.Value, error) {
	slot := Slot{
		Name:   "[" + strconv.Itoa(idx) + "]",
		Type:   t,
		Locale: scope.Locale(),
	}
	return scope.Engine().generate(scope.Child(), slot)
}

func (p ReflectPopulator) fill(scope *Scope, dst reflect.Value, elem reflect.Type) error {
	for i := 0; i < dst.Len(); i++ {
		v, err := p.element(scope, elem, i)
		if err != nil {
			return err
		}
		dst.Index(i).Set(v)
	}
	return nil
}

func (p ReflectPopulator) mapping(scope *Scope, t reflect.Type) (reflect.Value, error) {
	key := t.Key()
	if impl, ok := scope.Engine().impls[key]; ok && impl.Comparable() {
		key = impl
	}
	m := reflect.MakeMap(t)
	if key.Kind() == reflect.Interface {
		log.Debug().
			Str("Type", t.String()).
			Msg("map key type is an interface: generating empty map")
		return m, nil
	}
	n := p.size(scope)
	for i := 0; i < n; i++ {
		k, err := p.element(scope, key, i)
		if err != nil {
			return reflect.Value{}, err
		}
		if m.MapIndex(k).IsValid() {
			continue
		}
		ev, err := p.element(scope, t.Elem(), i)
		if err != nil {
			return reflect.Value{}, err
		}
		m.SetMapIndex(k, ev)
	}
	return m, nil
}
