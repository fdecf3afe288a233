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
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenmaskio/greenrand/pkg/semantic"
)

// TypeCatalog resolves textual type references such as "User", "[]int" or "map[string]*User".
type TypeCatalog struct {
	mx    sync.RWMutex
	types map[string]reflect.Type
}

func NewTypeCatalog() *TypeCatalog {
	c := &TypeCatalog{
		types: make(map[string]reflect.Type),
	}
	for _, t := range []reflect.Type{
		reflect.TypeFor[bool](),
		reflect.TypeFor[string](),
		reflect.TypeFor[int](),
		reflect.TypeFor[int8](),
		reflect.TypeFor[int16](),
		reflect.TypeFor[int32](),
		reflect.TypeFor[int64](),
		reflect.TypeFor[uint](),
		reflect.TypeFor[uint8](),
		reflect.TypeFor[uint16](),
		reflect.TypeFor[uint32](),
		reflect.TypeFor[uint64](),
		reflect.TypeFor[uintptr](),
		reflect.TypeFor[float32](),
		reflect.TypeFor[float64](),
		reflect.TypeFor[complex64](),
		reflect.TypeFor[complex128](),
		reflect.TypeFor[time.Time](),
		reflect.TypeFor[time.Duration](),
		reflect.TypeFor[decimal.Decimal](),
		reflect.TypeFor[uuid.UUID](),
		reflect.TypeFor[big.Int](),
		reflect.TypeFor[semantic.Address](),
		reflect.TypeFor[semantic.Person](),
	} {
		c.register(t)
	}
	c.types["byte"] = reflect.TypeFor[byte]()
	c.types["rune"] = reflect.TypeFor[rune]()
	c.types["any"] = AnyType
	c.types["decimal"] = reflect.TypeFor[decimal.Decimal]()
	return c
}

// Register adds a named type under its name, its package qualified name and its full import path.
func (c *TypeCatalog) Register(t reflect.Type) error {
	if t.Name() == "" {
		return fmt.Errorf("type %s has no name: %w", t, ErrInvalidParameter)
	}
	c.mx.Lock()
	defer c.mx.Unlock()
	c.register(t)
	return nil
}

func (c *TypeCatalog) register(t reflect.Type) {
	c.types[t.Name()] = t
	c.types[t.String()] = t
	if t.PkgPath() != "" {
		c.types[t.PkgPath()+"."+t.Name()] = t
	}
}

// RegisterAs adds a type under an arbitrary name.
func (c *TypeCatalog) RegisterAs(name string, t reflect.Type) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.types[name] = t
}

func (c *TypeCatalog) Names() []string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	res := make([]string, 0, len(c.types))
	for name := range c.types {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Lookup parses a type expression. Supported forms are names, *T, []T, [N]T, map[K]V and chan T.
func (c *TypeCatalog) Lookup(expr string) (reflect.Type, error) {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		return nil, fmt.Errorf("empty type expression: %w", ErrTypeUnresolved)
	case strings.HasPrefix(expr, "*"):
		t, err := c.Lookup(expr[1:])
		if err != nil {
			return nil, err
		}
		return reflect.PointerTo(t), nil
	case strings.HasPrefix(expr, "[]"):
		t, err := c.Lookup(expr[2:])
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(t), nil
	case strings.HasPrefix(expr, "["):
		end := strings.IndexByte(expr, ']')
		if end < 0 {
			return nil, fmt.Errorf("type %q: unterminated array length: %w", expr, ErrTypeUnresolved)
		}
		n, err := strconv.Atoi(strings.TrimSpace(expr[1:end]))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("type %q: invalid array length: %w", expr, ErrTypeUnresolved)
		}
		t, err := c.Lookup(expr[end+1:])
		if err != nil {
			return nil, err
		}
		return reflect.ArrayOf(n, t), nil
	case strings.HasPrefix(expr, "map["):
		end := matchingBracket(expr, len("map"))
		if end < 0 {
			return nil, fmt.Errorf("type %q: unterminated map key: %w", expr, ErrTypeUnresolved)
		}
		key, err := c.Lookup(expr[len("map["):end])
		if err != nil {
			return nil, err
		}
		if !key.Comparable() {
			return nil, fmt.Errorf("type %q: map key %s is not comparable: %w", expr, key, ErrTypeUnresolved)
		}
		elem, err := c.Lookup(expr[end+1:])
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(key, elem), nil
	case strings.HasPrefix(expr, "chan "):
		t, err := c.Lookup(expr[len("chan "):])
		if err != nil {
			return nil, err
		}
		return reflect.ChanOf(reflect.BothDir, t), nil
	}

	c.mx.RLock()
	defer c.mx.RUnlock()
	t, ok := c.types[expr]
	if !ok {
		return nil, fmt.Errorf("type %q is not registered: %w", expr, ErrTypeUnresolved)
	}
	return t, nil
}

func matchingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
