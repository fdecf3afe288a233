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
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/greenmaskio/greenrand/pkg/constraints"
	"github.com/greenmaskio/greenrand/pkg/generators/randomizers"
	"github.com/greenmaskio/greenrand/pkg/semantic"
)

const (
	DefaultEmailPattern = `[a-z]{3,10}(\.[a-z]{3,10})?@(example|mail|test)\.(com|org|net|io)`
	DefaultURLProtocol  = "http"
	DefaultURLHost      = "www.example.com"

	urlPathLength = 10
	urlPathChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

var uuidType = reflect.TypeFor[uuid.UUID]()

// EmailHandler generates email addresses from a regular expression. The regex parameter replaces the
// default pattern.
type EmailHandler struct {
	cfg *Config
}

func NewEmailHandler(cfg *Config) Handler {
	return &EmailHandler{
		cfg: cfg,
	}
}

func (h *EmailHandler) Randomizer(scope *Scope, slot Slot, c constraints.Constraint) (Randomizer, error) {
	base := derefType(slot.Type)
	if !isStringLike(base) {
		return nil, nil
	}
	pattern, err := c.ParamString(constraints.ParamRegex, "")
	if err != nil {
		return nil, err
	}
	if pattern == "" || pattern == ".*" {
		pattern = DefaultEmailPattern
	}
	r, err := newRegexRandomizer(scope, pattern, h.cfg.MaxRepeat)
	if err != nil {
		return nil, err
	}
	return valueRandomizer(slot.Type, textValue(base, r.Next)), nil
}

type CreditCardHandler struct{}

func NewCreditCardHandler(*Config) Handler {
	return CreditCardHandler{}
}

func (h CreditCardHandler) Randomizer(scope *Scope, slot Slot, c constraints.Constraint) (Randomizer, error) {
	base := derefType(slot.Type)
	if !isStringLike(base) {
		return nil, nil
	}
	bin, err := c.ParamString(constraints.ParamBin, randomizers.DefaultCreditCardBin)
	if err != nil {
		return nil, err
	}
	length, err := c.ParamInt(constraints.ParamLength, randomizers.DefaultCreditCardLength)
	if err != nil {
		return nil, err
	}
	r, err := randomizers.NewCreditCardRandomizer(scope.Source(), bin, length)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return valueRandomizer(slot.Type, textValue(base, r.Next)), nil
}

type EANHandler struct{}

func NewEANHandler(*Config) Handler {
	return EANHandler{}
}

func (h EANHandler) Randomizer(scope *Scope, slot Slot, c constraints.Constraint) (Randomizer, error) {
	base := derefType(slot.Type)
	if !isStringLike(base) {
		return nil, nil
	}
	typ, err := c.ParamString(constraints.ParamType, "EAN13")
	if err != nil {
		return nil, err
	}
	var length int
	switch strings.ToUpper(strings.ReplaceAll(typ, "-", "")) {
	case "EAN13", "13":
		length = 13
	case "EAN8", "8":
		length = 8
	default:
		return nil, fmt.Errorf("unknown EAN type %q: %w", typ, ErrInvalidParameter)
	}
	r, err := randomizers.NewEANRandomizer(scope.Source(), length)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return valueRandomizer(slot.Type, textValue(base, r.Next)), nil
}

type ISBNHandler struct{}

func NewISBNHandler(*Config) Handler {
	return ISBNHandler{}
}

func (h ISBNHandler) Randomizer(scope *Scope, slot Slot, _ constraints.Constraint) (Randomizer, error) {
	base := derefType(slot.Type)
	if !isStringLike(base) {
		return nil, nil
	}
	r := randomizers.NewISBNRandomizer(scope.Source())
	return valueRandomizer(slot.Type, textValue(base, r.Next)), nil
}

// URLHandler generates protocol://host[:port]/path URLs with a random alphabetic path.
type URLHandler struct{}

func NewURLHandler(*Config) Handler {
	return URLHandler{}
}

func (h URLHandler) Randomizer(scope *Scope, slot Slot, c constraints.Constraint) (Randomizer, error) {
	base := derefType(slot.Type)
	if !isStringLike(base) {
		return nil, nil
	}
	protocol, err := c.ParamString(constraints.ParamProtocol, "")
	if err != nil {
		return nil, err
	}
	if protocol == "" {
		protocol = DefaultURLProtocol
	}
	host, err := c.ParamString(constraints.ParamHost, "")
	if err != nil {
		return nil, err
	}
	if host == "" {
		host = DefaultURLHost
	}
	port, err := c.ParamInt(constraints.ParamPort, -1)
	if err != nil {
		return nil, err
	}
	if port > 65535 || port < -1 {
		return nil, fmt.Errorf("port %d: %w", port, ErrInvalidParameter)
	}
	prefix := protocol + "://" + host
	if port != -1 {
		prefix += ":" + strconv.Itoa(port)
	}
	prefix += "/"
	path, err := randomizers.NewStringRandomizer(scope.Source(), []rune(urlPathChars), urlPathLength, urlPathLength)
	if err != nil {
		return nil, err
	}
	return valueRandomizer(slot.Type, textValue(base, func() string {
		return prefix + path.Next()
	})), nil
}

// UUIDHandler generates version 4 UUIDs for uuid.UUID, [16]byte and string-like slots.
type UUIDHandler struct{}

func NewUUIDHandler(*Config) Handler {
	return UUIDHandler{}
}

func (h UUIDHandler) Randomizer(scope *Scope, slot Slot, _ constraints.Constraint) (Randomizer, error) {
	base := derefType(slot.Type)
	r := randomizers.NewUUIDRandomizer(scope.Source())
	switch {
	case base == uuidType || base.Kind() == reflect.Array && base.Len() == 16 && base.Elem().Kind() == reflect.Uint8:
		return valueRandomizer(slot.Type, func() (reflect.Value, error) {
			u, err := r.Next()
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(u).Convert(base), nil
		}), nil
	case isStringLike(base):
		return valueRandomizer(slot.Type, func() (reflect.Value, error) {
			u, err := r.Next()
			if err != nil {
				return reflect.Value{}, err
			}
			return textValue(base, u.String)()
		}), nil
	}
	return nil, nil
}

// SemanticHandler dispatches to the locale provider of the slot. Values that do not fit the slot type are
// converted to text for string slots and otherwise reported as no value.
type SemanticHandler struct{}

func NewSemanticHandler(*Config) Handler {
	return SemanticHandler{}
}

func (h SemanticHandler) Randomizer(scope *Scope, slot Slot, c constraints.Constraint) (Randomizer, error) {
	category, err := c.ParamString(constraints.ParamCategory, "")
	if err != nil {
		return nil, err
	}
	if category == "" {
		return nil, fmt.Errorf("parameter %q is required: %w", constraints.ParamCategory, ErrInvalidParameter)
	}
	e := scope.Engine()
	base := derefType(slot.Type)
	locale := scope.Locale()
	return RandomizerFunc(func() (any, error) {
		v, ok := e.DispatchSemantic(semantic.Category(category), locale)
		if !ok {
			return nil, fmt.Errorf("category %q for locale %s: %w", category, locale, ErrNoValue)
		}
		if rv, ok := assignValue(slot.Type, v); ok {
			return rv.Interface(), nil
		}
		if isStringLike(base) {
			s, err := cast.ToStringE(v)
			if err == nil {
				res, _ := textValue(base, func() string { return s })()
				return wrapValue(slot.Type, res).Interface(), nil
			}
		}
		return nil, fmt.Errorf("category %q produced %T for %s: %w", category, v, slot.Type, ErrNoValue)
	}), nil
}
