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
	"reflect"

	"github.com/greenmaskio/greenrand/pkg/constraints"
)

// Randomizer produces values for one slot. It owns its random source, so a randomizer must not be shared
// between goroutines.
type Randomizer interface {
	Generate() (any, error)
}

type RandomizerFunc func() (any, error)

func (f RandomizerFunc) Generate() (any, error) {
	return f()
}

// Handler builds randomizers for a constraint kind. It returns nil when the slot type does not fit the
// constraint.
type Handler interface {
	Randomizer(scope *Scope, slot Slot, c constraints.Constraint) (Randomizer, error)
}

type HandlerFunc func(scope *Scope, slot Slot, c constraints.Constraint) (Randomizer, error)

func (f HandlerFunc) Randomizer(scope *Scope, slot Slot, c constraints.Constraint) (Randomizer, error) {
	return f(scope, slot, c)
}

// HandlerFactory builds a handler once per engine.
type HandlerFactory func(cfg *Config) Handler

type valueFunc func() (reflect.Value, error)

// valueRandomizer wraps a generator of the dereferenced slot type into a randomizer of the slot type.
func valueRandomizer(t reflect.Type, fn valueFunc) Randomizer {
	return RandomizerFunc(func() (any, error) {
		v, err := fn()
		if err != nil {
			return nil, err
		}
		return wrapValue(t, v).Interface(), nil
	})
}

// derefType strips all pointer levels.
func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// wrapValue converts v to t, allocating the pointer levels t has on top of the type of v.
func wrapValue(t reflect.Type, v reflect.Value) reflect.Value {
	if v.Type() == t {
		return v
	}
	if t.Kind() == reflect.Pointer && !v.Type().AssignableTo(t) {
		inner := wrapValue(t.Elem(), v)
		p := reflect.New(t.Elem())
		p.Elem().Set(inner)
		return p
	}
	if v.Type().AssignableTo(t) {
		res := reflect.New(t).Elem()
		res.Set(v)
		return res
	}
	return v.Convert(t)
}

// assignValue converts an arbitrary value produced by a randomizer, provider or populator into a value
// of t. Conversions are limited to values of the same kind, so a number never becomes a string.
func assignValue(t reflect.Type, v any) (reflect.Value, bool) {
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		res := reflect.New(t).Elem()
		res.Set(rv)
		return res, true
	}
	if rv.Kind() == t.Kind() && rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), true
	}
	if t.Kind() == reflect.Pointer {
		inner, ok := assignValue(t.Elem(), v)
		if !ok {
			return reflect.Value{}, false
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(inner)
		return p, true
	}
	return reflect.Value{}, false
}

func isContainer(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return true
	}
	return false
}

func isConcrete(t reflect.Type) bool {
	return t != nil && t.Kind() != reflect.Interface
}
