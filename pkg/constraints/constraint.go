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

package constraints

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

type Params map[string]any

// Constraint is a declarative restriction attached to a slot.
type Constraint struct {
	Kind   Kind
	Params Params
}

func New(kind Kind, params Params) Constraint {
	if params == nil {
		params = Params{}
	}
	return Constraint{
		Kind:   kind,
		Params: params,
	}
}

func (c Constraint) Has(name string) bool {
	_, ok := c.Params[name]
	return ok
}

func (c Constraint) ParamString(name, defaultValue string) (string, error) {
	v, ok := c.Params[name]
	if !ok || v == nil {
		return defaultValue, nil
	}
	res, err := cast.ToStringE(v)
	if err != nil {
		return "", c.paramError(name, err)
	}
	return res, nil
}

func (c Constraint) ParamInt(name string, defaultValue int) (int, error) {
	v, ok := c.Params[name]
	if !ok || v == nil {
		return defaultValue, nil
	}
	res, err := cast.ToIntE(v)
	if err != nil {
		return 0, c.paramError(name, err)
	}
	return res, nil
}

func (c Constraint) ParamBool(name string, defaultValue bool) (bool, error) {
	v, ok := c.Params[name]
	if !ok || v == nil {
		return defaultValue, nil
	}
	res, err := cast.ToBoolE(v)
	if err != nil {
		return false, c.paramError(name, err)
	}
	return res, nil
}

// ParamDecimal returns the parameter as decimal. The second value reports whether the parameter is set.
func (c Constraint) ParamDecimal(name string) (decimal.Decimal, bool, error) {
	v, ok := c.Params[name]
	if !ok || v == nil {
		return decimal.Zero, false, nil
	}
	switch vv := v.(type) {
	case decimal.Decimal:
		return vv, true, nil
	case float32:
		return decimal.NewFromFloat32(vv), true, nil
	case float64:
		return decimal.NewFromFloat(vv), true, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return decimal.Zero, false, c.paramError(name, err)
	}
	res, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false, c.paramError(name, err)
	}
	return res, true, nil
}

func (c Constraint) paramError(name string, err error) error {
	return fmt.Errorf("%s parameter %q: %w: %w", c.Kind, name, ErrInvalidParameter, err)
}

// String renders the constraint in the tag syntax.
func (c Constraint) String() string {
	if len(c.Params) == 0 {
		return c.Kind.String()
	}
	names := make([]string, 0, len(c.Params))
	for name := range c.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	sb.WriteString(c.Kind.String())
	sb.WriteByte('(')
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(quoteValue(cast.ToString(c.Params[name])))
	}
	sb.WriteByte(')')
	return sb.String()
}

func quoteValue(v string) string {
	plain := v != ""
	for _, c := range v {
		if !(c == '.' || c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			plain = false
			break
		}
	}
	if plain {
		return v
	}
	return "'" + strings.ReplaceAll(v, "'", `\'`) + "'"
}
