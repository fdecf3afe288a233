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
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/greenrand/pkg/constraints"
	"github.com/greenmaskio/greenrand/pkg/generators/randomizers"
)

// SizeHandler generates strings and containers with a length within the bounds of Size, Length or
// NotEmpty. Elements are generated by the engine as constraint free slots.
type SizeHandler struct {
	cfg *Config
}

func NewSizeHandler(cfg *Config) Handler {
	return &SizeHandler{
		cfg: cfg,
	}
}

func (h *SizeHandler) bounds(c constraints.Constraint, defaultMax int) (int, int, error) {
	if c.Kind == constraints.NotEmpty {
		return 1, max(1, defaultMax), nil
	}
	if c.Kind == constraints.Length {
		defaultMax = DefaultLengthMax
	}
	minValue, err := c.ParamInt(constraints.ParamMin, 0)
	if err != nil {
		return 0, 0, err
	}
	maxValue, err := c.ParamInt(constraints.ParamMax, max(minValue, defaultMax))
	if err != nil {
		return 0, 0, err
	}
	if minValue < 0 || maxValue < 0 || minValue > maxValue {
		return 0, 0, fmt.Errorf("size interval [%d, %d]: %w", minValue, maxValue, ErrUnsatisfiableBounds)
	}
	return minValue, maxValue, nil
}

func (h *SizeHandler) Randomizer(scope *Scope, slot Slot, c constraints.Constraint) (Randomizer, error) {
	base := derefType(slot.Type)
	switch base.Kind() {
	case reflect.String:
		minValue, maxValue, err := h.bounds(c, h.cfg.StringLength.Max)
		if err != nil {
			return nil, err
		}
		r, err := randomizers.NewStringRandomizer(scope.Source(), []rune(h.cfg.Charset), minValue, maxValue)
		if err != nil {
			return nil, err
		}
		return valueRandomizer(slot.Type, textValue(base, r.Next)), nil
	case reflect.Slice:
		minValue, maxValue, err := h.bounds(c, h.cfg.CollectionSize.Max)
		if err != nil {
			return nil, err
		}
		return valueRandomizer(slot.Type, h.slice(scope, slot, base, minValue, maxValue)), nil
	case reflect.Array:
		minValue, maxValue, err := h.bounds(c, h.cfg.CollectionSize.Max)
		if err != nil {
			return nil, err
		}
		if base.Len() < minValue || base.Len() > maxValue {
			return nil, fmt.Errorf(
				"array length %d is out of [%d, %d]: %w", base.Len(), minValue, maxValue, ErrUnsatisfiableBounds,
			)
		}
		return valueRandomizer(slot.Type, h.array(scope, slot, base)), nil
	case reflect.Map:
		minValue, maxValue, err := h.bounds(c, h.cfg.CollectionSize.Max)
		if err != nil {
			return nil, err
		}
		return valueRandomizer(slot.Type, h.mapping(scope, slot, base, minValue, maxValue)), nil
	case reflect.Chan:
		minValue, maxValue, err := h.bounds(c, h.cfg.CollectionSize.Max)
		if err != nil {
			return nil, err
		}
		return valueRandomizer(slot.Type, h.channel(scope, slot, base, minValue, maxValue)), nil
	case reflect.Interface:
		if slot.Type != base {
			return nil, nil
		}
		return h.iface(scope, slot, c)
	}
	return nil, nil
}

// iface handles slots of interface type: a registered implementation is generated when there is one,
// otherwise a slice of the inferred element type is generated when it implements the interface.
func (h *SizeHandler) iface(scope *Scope, slot Slot, c constraints.Constraint) (Randomizer, error) {
	e := scope.Engine()
	if impl, ok := e.impls[slot.Type]; ok {
		implSlot := slot
		implSlot.Type = impl
		return h.Randomizer(scope, implSlot, c)
	}
	elem, err := e.Infer(slot)
	if err != nil {
		log.Debug().
			Err(err).
			Str("Slot", slot.Name).
			Msg("unable to infer element type of interface slot")
		return nil, nil
	}
	list := reflect.SliceOf(elem)
	if !list.AssignableTo(slot.Type) {
		return nil, nil
	}
	listSlot := slot
	listSlot.Type = list
	return h.Randomizer(scope, listSlot, c)
}

// elementType replaces an interface element type with the inferred one when it fits.
func elementType(scope *Scope, slot Slot, declared reflect.Type) reflect.Type {
	if declared.Kind() != reflect.Interface {
		return declared
	}
	if impl, ok := scope.Engine().impls[declared]; ok {
		return impl
	}
	inferred, err := scope.Engine().Infer(slot)
	if err != nil || !isConcrete(inferred) || !inferred.AssignableTo(declared) {
		return declared
	}
	return inferred
}

func (h *SizeHandler) fill(scope *Scope, slot Slot, dst reflect.Value, elem reflect.Type) error {
	e := scope.Engine()
	for i := 0; i < dst.Len(); i++ {
		v, err := e.element(scope, slot.element("["+strconv.Itoa(i)+"]", elem))
		if err != nil {
			return err
		}
		dst.Index(i).Set(v)
	}
	return nil
}

func (h *SizeHandler) slice(scope *Scope, slot Slot, t reflect.Type, minValue, maxValue int) valueFunc {
	elem := elementType(scope, slot, t.Elem())
	return func() (reflect.Value, error) {
		n := scope.Source().IntBetween(minValue, maxValue)
		v := reflect.MakeSlice(t, n, n)
		if err := h.fill(scope, slot, v, elem); err != nil {
			return reflect.Value{}, err
		}
		return v, nil
	}
}

func (h *SizeHandler) array(scope *Scope, slot Slot, t reflect.Type) valueFunc {
	elem := elementType(scope, slot, t.Elem())
	return func() (reflect.Value, error) {
		v := reflect.New(t).Elem()
		if err := h.fill(scope, slot, v, elem); err != nil {
			return reflect.Value{}, err
		}
		return v, nil
	}
}

// mapping generates maps and sets. Colliding keys are skipped, so a map may be shorter than the drawn
// size but it is never longer than maxValue.
func (h *SizeHandler) mapping(scope *Scope, slot Slot, t reflect.Type, minValue, maxValue int) valueFunc {
	e := scope.Engine()
	key := t.Key()
	if key.Kind() == reflect.Interface {
		inferred, err := e.Infer(slot)
		if err != nil || !isConcrete(inferred) || !inferred.AssignableTo(key) || !inferred.Comparable() {
			return func() (reflect.Value, error) {
				return reflect.Value{}, fmt.Errorf("key type of %s cannot be inferred: %w", t, ErrNoValue)
			}
		}
		key = inferred
	}
	elem := t.Elem()
	isSet := elem.Kind() == reflect.Bool || elem.Kind() == reflect.Struct && elem.NumField() == 0
	return func() (reflect.Value, error) {
		n := scope.Source().IntBetween(minValue, maxValue)
		m := reflect.MakeMapWithSize(t, n)
		for i := 0; i < n; i++ {
			k, err := e.element(scope, slot.element("[key]", key))
			if err != nil {
				return reflect.Value{}, err
			}
			if m.MapIndex(k).IsValid() {
				continue
			}
			var v reflect.Value
			switch {
			case isSet && elem.Kind() == reflect.Bool:
				v = reflect.New(elem).Elem()
				v.SetBool(true)
			case isSet:
				v = reflect.New(elem).Elem()
			default:
				if v, err = e.element(scope, slot.element("[value]", elem)); err != nil {
					return reflect.Value{}, err
				}
			}
			m.SetMapIndex(k, v)
		}
		return m, nil
	}
}

// channel generates a buffered channel holding all the elements. The channel is closed, so receivers
// can range over it.
func (h *SizeHandler) channel(scope *Scope, slot Slot, t reflect.Type, minValue, maxValue int) valueFunc {
	e := scope.Engine()
	elem := elementType(scope, slot, t.Elem())
	return func() (reflect.Value, error) {
		n := scope.Source().IntBetween(minValue, maxValue)
		ch := reflect.MakeChan(reflect.ChanOf(reflect.BothDir, t.Elem()), n)
		for i := 0; i < n; i++ {
			v, err := e.element(scope, slot.element("["+strconv.Itoa(i)+"]", elem))
			if err != nil {
				return reflect.Value{}, err
			}
			ch.Send(v)
		}
		ch.Close()
		if ch.Type() != t {
			ch = ch.Convert(t)
		}
		return ch, nil
	}
}
