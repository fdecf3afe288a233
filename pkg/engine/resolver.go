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
	"fmt"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"
)

// Infer returns the concrete element type of the slot. The first rule that yields a type wins:
//  1. the explicit override;
//  2. the first argument of the first type argument when the latter is a container;
//  3. the first type argument when it is concrete;
//  4. the textual type reference resolved through the type catalog;
//  5. the slot type itself when it is concrete and not a container;
//  6. the slot default.
func (e *Engine) Infer(slot Slot) (reflect.Type, error) {
	if slot.Override != nil && slot.Override != AnyType {
		return slot.Override, nil
	}

	args := slot.TypeArgs
	if len(args) == 0 && slot.Type != nil {
		args = typeArgsOf(slot.Type)
	}
	if len(args) > 0 && args[0] != nil {
		arg0 := args[0]
		if isContainer(derefType(arg0)) {
			if inner := typeArgsOf(arg0); len(inner) > 0 {
				return inner[0], nil
			}
		} else if isConcrete(arg0) {
			return arg0, nil
		}
	}

	if slot.TypeRef != "" {
		name := normalizeTypeRef(slot.TypeRef)
		t, err := e.catalog.Lookup(name)
		if err == nil {
			return t, nil
		}
		log.Debug().
			Err(err).
			Str("Slot", slot.Name).
			Str("TypeRef", slot.TypeRef).
			Msg("unable to resolve type reference")
	}

	if slot.Type != nil && isConcrete(slot.Type) && !isContainer(derefType(slot.Type)) {
		return slot.Type, nil
	}

	if slot.Default != nil {
		return slot.Default, nil
	}
	return nil, fmt.Errorf("slot %q of type %v: %w", slot.Name, slot.Type, ErrTypeUnresolved)
}

// typeArgsOf returns the element types of a container: [elem] for slices, arrays and channels and
// [key, elem] for maps. Pointers are dereferenced first.
func typeArgsOf(t reflect.Type) []reflect.Type {
	t = derefType(t)
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Chan:
		return []reflect.Type{t.Elem()}
	case reflect.Map:
		return []reflect.Type{t.Key(), t.Elem()}
	}
	return nil
}

// normalizeTypeRef strips wildcard and bound syntax from a type reference: "? extends User" becomes
// "User", "*User" becomes "User" and "Box[int]" or "Box<int>" become "Box".
func normalizeTypeRef(ref string) string {
	fields := strings.Fields(ref)
	if len(fields) == 0 {
		return ""
	}
	s := strings.Join(fields, " ")
	for i := len(fields) - 2; i >= 0; i-- {
		if fields[i] == "extends" || fields[i] == "super" {
			s = strings.Join(fields[i+1:], " ")
			break
		}
	}
	if s == "?" {
		return ""
	}
	s = strings.TrimLeft(s, "*")
	if idx := strings.IndexAny(s, "[<"); idx > 0 && s[:idx] != "map" {
		s = s[:idx]
	}
	return s
}
