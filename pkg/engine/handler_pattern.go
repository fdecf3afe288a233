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
	"reflect"

	"github.com/greenmaskio/greenrand/pkg/constraints"
	"github.com/greenmaskio/greenrand/pkg/generators/randomizers"
)

// PatternHandler generates strings that fully match the regular expression of the constraint.
type PatternHandler struct {
	cfg *Config
}

func NewPatternHandler(cfg *Config) Handler {
	return &PatternHandler{
		cfg: cfg,
	}
}

func (h *PatternHandler) Randomizer(scope *Scope, slot Slot, c constraints.Constraint) (Randomizer, error) {
	base := derefType(slot.Type)
	if !isStringLike(base) {
		return nil, nil
	}
	if !c.Has(constraints.ParamRegex) {
		return nil, fmt.Errorf("parameter %q is required: %w", constraints.ParamRegex, ErrInvalidParameter)
	}
	pattern, err := c.ParamString(constraints.ParamRegex, "")
	if err != nil {
		return nil, err
	}
	r, err := newRegexRandomizer(scope, pattern, h.cfg.MaxRepeat)
	if err != nil {
		return nil, err
	}
	return valueRandomizer(slot.Type, textValue(base, r.Next)), nil
}

func newRegexRandomizer(scope *Scope, pattern string, maxRepeat int) (*randomizers.RegexRandomizer, error) {
	r, err := randomizers.NewRegexRandomizer(scope.Source(), pattern, maxRepeat)
	switch {
	case errors.Is(err, randomizers.ErrMalformedPattern):
		return nil, fmt.Errorf("%w: %w", ErrMalformedPattern, err)
	case errors.Is(err, randomizers.ErrUnsatisfiablePattern):
		return nil, fmt.Errorf("%w: %w", ErrUnsatisfiableBounds, err)
	case err != nil:
		return nil, err
	}
	return r, nil
}

// isStringLike reports whether t is a string or a byte slice kind.
func isStringLike(t reflect.Type) bool {
	return t.Kind() == reflect.String || t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

// textValue stores the generated text into a value of the string-like type t.
func textValue(t reflect.Type, next func() string) valueFunc {
	return func() (reflect.Value, error) {
		v := reflect.New(t).Elem()
		if t.Kind() == reflect.String {
			v.SetString(next())
		} else {
			v.SetBytes([]byte(next()))
		}
		return v, nil
	}
}
