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
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/greenmaskio/greenrand/pkg/constraints"
	"github.com/greenmaskio/greenrand/pkg/engine"
)

var errSlotIsInvalid = errors.New("slot is invalid")

// SlotsFile is the document read by the generate command. It is decoded with yaml directly, so
// parameter values such as regular expressions keep their exact text.
type SlotsFile struct {
	Slots []*SlotDefinition `yaml:"slots" json:"slots"`
}

type ConstraintDefinition struct {
	Kind   string         `yaml:"kind" json:"kind"`
	Params map[string]any `yaml:"params" json:"params,omitempty"`
}

type SlotDefinition struct {
	Name string `yaml:"name" json:"name"`
	// Type is a type expression resolved by the engine type catalog, for instance "[]int" or "map[string]User".
	Type     string `yaml:"type" json:"type"`
	TypeRef  string `yaml:"type_ref" json:"type_ref,omitempty"`
	Override string `yaml:"override" json:"override,omitempty"`
	Locale   string `yaml:"locale" json:"locale,omitempty"`
	Size     int    `yaml:"size" json:"size,omitempty"`
	// Tag holds constraints in the struct tag syntax. They precede the structured constraints.
	Tag         string                  `yaml:"tag" json:"tag,omitempty"`
	Constraints []*ConstraintDefinition `yaml:"constraints" json:"constraints,omitempty"`
}

func LoadSlotsFile(path string) (*SlotsFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSlotsFile(f)
}

func ReadSlotsFile(r io.Reader) (*SlotsFile, error) {
	res := &SlotsFile{}
	if err := yaml.NewDecoder(r).Decode(res); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	if len(res.Slots) == 0 {
		return nil, fmt.Errorf("no slots defined: %w", errSlotIsInvalid)
	}
	return res, nil
}

// Slot converts the definition into an engine slot using the engine type catalog.
func (sd *SlotDefinition) Slot(catalog *engine.TypeCatalog) (engine.Slot, error) {
	if sd.Name == "" {
		return engine.Slot{}, fmt.Errorf("empty name: %w", errSlotIsInvalid)
	}
	if sd.Type == "" {
		return engine.Slot{}, fmt.Errorf("slot %q: empty type: %w", sd.Name, errSlotIsInvalid)
	}
	t, err := catalog.Lookup(sd.Type)
	if err != nil {
		return engine.Slot{}, fmt.Errorf("slot %q: %w", sd.Name, err)
	}
	cs, err := constraints.ParseTag(sd.Tag)
	if err != nil {
		return engine.Slot{}, fmt.Errorf("slot %q: %w", sd.Name, err)
	}
	for _, cd := range sd.Constraints {
		kind, err := constraints.ParseKind(cd.Kind)
		if err != nil {
			return engine.Slot{}, fmt.Errorf("slot %q: %w", sd.Name, err)
		}
		cs = append(cs, constraints.New(kind, cd.Params))
	}

	slot := engine.NewSlot(sd.Name, t, cs...).
		WithTypeRef(sd.TypeRef).
		WithLocale(sd.Locale).
		WithSize(sd.Size)
	if sd.Override != "" {
		override, err := catalog.Lookup(sd.Override)
		if err != nil {
			return engine.Slot{}, fmt.Errorf("slot %q: override: %w", sd.Name, err)
		}
		slot = slot.WithOverride(override)
	}
	return slot, nil
}
