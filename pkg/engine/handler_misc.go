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
	"time"

	"github.com/greenmaskio/greenrand/pkg/constraints"
	"github.com/greenmaskio/greenrand/pkg/generators/randomizers"
)

var timeType = reflect.TypeFor[time.Time]()

// BoolHandler handles AssertTrue and AssertFalse.
type BoolHandler struct{}

func NewBoolHandler(*Config) Handler {
	return BoolHandler{}
}

func (h BoolHandler) Randomizer(_ *Scope, slot Slot, c constraints.Constraint) (Randomizer, error) {
	base := derefType(slot.Type)
	if base.Kind() != reflect.Bool {
		return nil, nil
	}
	value := c.Kind == constraints.AssertTrue
	return valueRandomizer(slot.Type, func() (reflect.Value, error) {
		v := reflect.New(base).Elem()
		v.SetBool(value)
		return v, nil
	}), nil
}

// NullHandler produces nil for nillable slot types.
type NullHandler struct{}

func NewNullHandler(*Config) Handler {
	return NullHandler{}
}

func (h NullHandler) Randomizer(_ *Scope, slot Slot, _ constraints.Constraint) (Randomizer, error) {
	switch slot.Type.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
	default:
		return nil, nil
	}
	t := slot.Type
	return RandomizerFunc(func() (any, error) {
		return reflect.Zero(t).Interface(), nil
	}), nil
}

// NotBlankHandler generates strings with at least one non whitespace character.
type NotBlankHandler struct {
	cfg *Config
}

func NewNotBlankHandler(cfg *Config) Handler {
	return &NotBlankHandler{
		cfg: cfg,
	}
}

func (h *NotBlankHandler) Randomizer(scope *Scope, slot Slot, _ constraints.Constraint) (Randomizer, error) {
	base := derefType(slot.Type)
	if !isStringLike(base) {
		return nil, nil
	}
	r, err := randomizers.NewStringRandomizer(
		scope.Source(), []rune(h.cfg.Charset), max(1, h.cfg.StringLength.Min), max(1, h.cfg.StringLength.Max),
	)
	if err != nil {
		return nil, err
	}
	if err = r.SetNotBlank(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsatisfiableBounds, err)
	}
	return valueRandomizer(slot.Type, textValue(base, r.Next)), nil
}

// TemporalHandler handles Future, FutureOrPresent, Past and PastOrPresent for time.Time slots and int64
// unix timestamps in seconds. Instants are drawn within the temporal window around the reference time of
// the engine, read on every draw.
type TemporalHandler struct {
	cfg *Config
}

func NewTemporalHandler(cfg *Config) Handler {
	return &TemporalHandler{
		cfg: cfg,
	}
}

func (h *TemporalHandler) Randomizer(scope *Scope, slot Slot, c constraints.Constraint) (Randomizer, error) {
	base := derefType(slot.Type)
	isUnix := base.Kind() == reflect.Int64 && base != reflect.TypeFor[time.Duration]()
	if base != timeType && !isUnix {
		return nil, nil
	}

	step := time.Nanosecond
	if isUnix {
		step = time.Second
	}
	window := h.cfg.TemporalWindow
	var lo, hi time.Duration
	switch c.Kind {
	case constraints.Future:
		lo, hi = step, window
	case constraints.FutureOrPresent:
		lo, hi = 0, window
	case constraints.Past:
		lo, hi = -window, -step
	case constraints.PastOrPresent:
		lo, hi = -window, 0
	default:
		return nil, fmt.Errorf("kind %s is not temporal: %w", c.Kind, ErrInvalidParameter)
	}
	// Offsets are drawn around the epoch and applied to the reference time of each draw.
	epoch := time.Unix(0, 0)
	limiter, err := randomizers.NewTimestampLimiter(epoch.Add(lo), epoch.Add(hi))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsatisfiableBounds, err)
	}
	r := randomizers.NewTimestampRandomizer(scope.Source(), limiter)
	e := scope.Engine()
	if isUnix {
		return valueRandomizer(slot.Type, func() (reflect.Value, error) {
			now := e.Now().Truncate(time.Second)
			v := reflect.New(base).Elem()
			v.SetInt(min(max(now.Add(r.Next().Sub(epoch)).Unix(), now.Add(lo).Unix()), now.Add(hi).Unix()))
			return v, nil
		}), nil
	}
	return valueRandomizer(slot.Type, func() (reflect.Value, error) {
		return reflect.ValueOf(e.Now().Add(r.Next().Sub(epoch))), nil
	}), nil
}
