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

	"github.com/spf13/cast"

	"github.com/greenmaskio/greenrand/pkg/constraints"
)

// Struct tags read by record construction besides constraints.TagName.
const (
	LocaleTagName = "rand_locale"
	SizeTagName   = "rand_size"
	TypeTagName   = "rand_type"
)

// Construct builds a value of the struct type t. Exported fields are generated in declaration order
// honoring the constraints of their rand tags, unexported fields stay zero.
func (e *Engine) Construct(t reflect.Type) (any, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s is not a struct: %w", t, ErrInvalidParameter)
	}
	v, err := e.construct(e.newScope(Slot{Name: t.Name()}), t)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// Fill generates values of the fields of the struct ptr points to that carry a rand tag. Other fields
// are left untouched.
func (e *Engine) Fill(ptr any) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("expected non nil pointer to struct got %T: %w", ptr, ErrInvalidParameter)
	}
	target := rv.Elem()
	t := target.Type()
	scope := e.newScope(Slot{Name: t.Name()})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if _, ok := f.Tag.Lookup(constraints.TagName); !ok || !f.IsExported() {
			continue
		}
		slot, skip, err := fieldSlot(t, f, scope)
		if err != nil {
			return err
		}
		if skip {
			continue
		}
		v, err := e.generate(scope.Child(), slot)
		if err != nil {
			return err
		}
		target.Field(i).Set(v)
	}
	return nil
}

func (e *Engine) construct(scope *Scope, t reflect.Type) (reflect.Value, error) {
	res := reflect.New(t).Elem()
	if scope.Exhausted() {
		return res, nil
	}
	values := make([]reflect.Value, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		slot, skip, err := fieldSlot(t, f, scope)
		if err != nil {
			return reflect.Value{}, err
		}
		if skip {
			continue
		}
		if values[i], err = e.generate(scope.Child(), slot); err != nil {
			return reflect.Value{}, err
		}
	}
	for i, v := range values {
		if v.IsValid() {
			res.Field(i).Set(v)
		}
	}
	return res, nil
}

// fieldSlot builds the slot of a struct field from its tags. The skip result is true for fields tagged
// with rand:"-".
func fieldSlot(owner reflect.Type, f reflect.StructField, scope *Scope) (Slot, bool, error) {
	tag := f.Tag.Get(constraints.TagName)
	if tag == "-" {
		return Slot{}, true, nil
	}
	name := owner.Name() + "." + f.Name
	cs, err := constraints.ParseTag(tag)
	if err != nil {
		return Slot{}, false, fmt.Errorf("field %s: %w", name, err)
	}
	slot := Slot{
		Name:        name,
		Type:        f.Type,
		Constraints: cs,
		Locale:      scope.Locale(),
		TypeRef:     f.Tag.Get(TypeTagName),
	}
	if locale := f.Tag.Get(LocaleTagName); locale != "" {
		slot.Locale = locale
	}
	if size := f.Tag.Get(SizeTagName); size != "" {
		if slot.Size, err = cast.ToIntE(size); err != nil || slot.Size < 0 {
			return Slot{}, false, fmt.Errorf("field %s: tag %s=%q: %w", name, SizeTagName, size, ErrInvalidParameter)
		}
	}
	return slot, false, nil
}
