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

package domains

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/greenrand/pkg/constraints"
	"github.com/greenmaskio/greenrand/pkg/engine"
)

const slotsYAML = `
slots:
  - name: code
    type: string
    tag: "Pattern(regex='[A-Z]{2}\\d{3}')"
  - name: prices
    type: "map[string]decimal"
    size: 3
    constraints:
      - kind: Size
        params:
          min: 1
          max: 2
  - name: any
    type: "[]any"
    override: int
    locale: fr_FR
`

func TestSlotsFile(t *testing.T) {
	f, err := ReadSlotsFile(strings.NewReader(slotsYAML))
	require.NoError(t, err)
	require.Len(t, f.Slots, 3)
	catalog := engine.NewTypeCatalog()

	code, err := f.Slots[0].Slot(catalog)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[string](), code.Type)
	pattern, ok := code.Constraint(constraints.CurrentPattern)
	require.True(t, ok)
	regex, err := pattern.ParamString(constraints.ParamRegex, "")
	require.NoError(t, err)
	assert.Equal(t, `[A-Z]{2}\d{3}`, regex)

	prices, err := f.Slots[1].Slot(catalog)
	require.NoError(t, err)
	assert.Equal(t, "map[string]decimal.Decimal", prices.Type.String())
	assert.Equal(t, 3, prices.Size)
	size, ok := prices.Constraint(constraints.Size)
	require.True(t, ok)
	maxValue, err := size.ParamInt(constraints.ParamMax, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, maxValue)

	list, err := f.Slots[2].Slot(catalog)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[int](), list.Override)
	assert.Equal(t, "fr_FR", list.Locale)
}

func TestSlotsFile_errors(t *testing.T) {
	_, err := ReadSlotsFile(strings.NewReader("slots: []"))
	require.ErrorIs(t, err, errSlotIsInvalid)

	catalog := engine.NewTypeCatalog()
	_, err = (&SlotDefinition{Name: "v", Type: "Unknown"}).Slot(catalog)
	require.ErrorIs(t, err, engine.ErrTypeUnresolved)

	_, err = (&SlotDefinition{Name: "v", Type: "int", Tag: "Range(min=1"}).Slot(catalog)
	require.ErrorIs(t, err, constraints.ErrMalformedTag)

	_, err = (&SlotDefinition{Name: "v", Type: "int", Constraints: []*ConstraintDefinition{{Kind: "x.Range"}}}).Slot(catalog)
	require.ErrorIs(t, err, constraints.ErrMalformedTag)

	_, err = (&SlotDefinition{Type: "int"}).Slot(catalog)
	require.ErrorIs(t, err, errSlotIsInvalid)
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Engine.Validate())
	assert.Equal(t, "json", cfg.Generate.Format)
	assert.Equal(t, 1, cfg.Generate.Count)
}
