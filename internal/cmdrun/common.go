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

package cmdrun

import (
	"errors"
	"fmt"

	"github.com/greenmaskio/greenrand/internal/domains"
	"github.com/greenmaskio/greenrand/pkg/engine"
)

var errValueValidationFailed = errors.New("value validation failed")

type OutputFormat string

const (
	FormatNameJson     OutputFormat = "json"
	FormatNameText     OutputFormat = "text"
	FormatNameTemplate OutputFormat = "template"
)

func (m OutputFormat) Validate() error {
	switch m {
	case FormatNameJson, FormatNameText, FormatNameTemplate:
		return nil
	default:
		return fmt.Errorf("format '%s': %w", m, errValueValidationFailed)
	}
}

// newEngine builds the engine and registers the type aliases of the config.
func newEngine(cfg *domains.Config, opts ...engine.Option) (*engine.Engine, error) {
	e, err := engine.New(cfg.Engine, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	for alias, name := range cfg.Types {
		t, err := e.Catalog().Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("type alias %q: %w", alias, err)
		}
		e.Catalog().RegisterAs(alias, t)
	}
	return e, nil
}
