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
	"slices"

	"github.com/greenmaskio/greenrand/pkg/constraints"
)

// AnyType is the placeholder type meaning "not specified".
var AnyType = reflect.TypeOf((*any)(nil)).Elem()

// Slot is a typed location that receives a generated value: a struct field, a function parameter or a
// standalone value.
type Slot struct {
	Name string
	Type reflect.Type
	// TypeArgs overrides the type arguments derived from Type.
	TypeArgs []reflect.Type
	// TypeRef is a textual type reference resolved through the type catalog.
	TypeRef string
	// Override is the explicit element type. AnyType means not set.
	Override reflect.Type
	// Default is used when no other element type could be inferred.
	Default     reflect.Type
	Constraints []constraints.Constraint
	// Locale of semantic values. Empty means the engine default.
	Locale string
	// Size fixes the element count of unconstrained collections when greater than zero.
	Size int
}

func NewSlot(name string, t reflect.Type, cs ...constraints.Constraint) Slot {
	return Slot{
		Name:        name,
		Type:        t,
		Constraints: cs,
	}
}

func SlotOf[T any](name string, cs ...constraints.Constraint) Slot {
	return NewSlot(name, reflect.TypeOf((*T)(nil)).Elem(), cs...)
}

func (s Slot) WithConstraints(cs ...constraints.Constraint) Slot {
	s.Constraints = append(slices.Clone(s.Constraints), cs...)
	return s
}

func (s Slot) WithTypeArgs(args ...reflect.Type) Slot {
	s.TypeArgs = args
	return s
}

func (s Slot) WithTypeRef(ref string) Slot {
	s.TypeRef = ref
	return s
}

func (s Slot) WithOverride(t reflect.Type) Slot {
	s.Override = t
	return s
}

func (s Slot) WithDefault(t reflect.Type) Slot {
	s.Default = t
	return s
}

func (s Slot) WithLocale(locale string) Slot {
	s.Locale = locale
	return s
}

func (s Slot) WithSize(size int) Slot {
	s.Size = size
	return s
}

// Constraint returns the first constraint of the kind declared on the slot.
func (s Slot) Constraint(kind constraints.Kind) (constraints.Constraint, bool) {
	for _, c := range s.Constraints {
		if c.Kind == kind {
			return c, true
		}
	}
	return constraints.Constraint{}, false
}

// element returns a constraint free slot for an element of the slot.
func (s Slot) element(name string, t reflect.Type) Slot {
	return Slot{
		Name:   s.Name + name,
		Type:   t,
		Locale: s.Locale,
	}
}
