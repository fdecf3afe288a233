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
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraint_params(t *testing.T) {
	c := New(Range, Params{
		"min":           "1.5",
		"max":           9.5,
		"min_inclusive": "false",
		"count":         "12",
		"bad":           "abc",
	})

	minValue, ok, err := c.ParamDecimal(ParamMin)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, minValue.Equal(decimal.RequireFromString("1.5")))

	maxValue, ok, err := c.ParamDecimal(ParamMax)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, maxValue.Equal(decimal.RequireFromString("9.5")))

	_, ok, err = c.ParamDecimal("missing")
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = c.ParamDecimal("bad")
	require.ErrorIs(t, err, ErrInvalidParameter)

	inclusive, err := c.ParamBool(ParamMinInclusive, true)
	require.NoError(t, err)
	assert.False(t, inclusive)

	inclusive, err = c.ParamBool(ParamMaxInclusive, true)
	require.NoError(t, err)
	assert.True(t, inclusive)

	count, err := c.ParamInt("count", 0)
	require.NoError(t, err)
	assert.Equal(t, 12, count)

	_, err = c.ParamInt("bad", 0)
	require.ErrorIs(t, err, ErrInvalidParameter)

	s, err := c.ParamString("missing", "default")
	require.NoError(t, err)
	assert.Equal(t, "default", s)
}

func TestConstraint_String(t *testing.T) {
	c := New(Pattern, Params{"regex": "[a-z]{2}"})
	assert.Equal(t, "legacy.Pattern(regex='[a-z]{2}')", c.String())

	parsed, err := ParseTag(c.String())
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, c, parsed[0])

	assert.Equal(t, "current.UUID", New(UUID, nil).String())
}

func TestDefinitions(t *testing.T) {
	for _, ns := range []Namespace{NamespaceCurrent, NamespaceLegacy} {
		defs := Definitions(ns)
		require.NotEmpty(t, defs)
		for _, d := range defs {
			assert.Equal(t, ns, d.Kind.Namespace)
			assert.NotEmpty(t, d.Description)
			assert.True(t, IsKnown(d.Kind))
		}
	}
	assert.Len(t, Definitions(NamespaceLegacy), 19)
}
