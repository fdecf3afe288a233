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
	"fmt"
	"io"

	"github.com/tidwall/sjson"

	"github.com/greenmaskio/greenrand/internal/domains"
	"github.com/greenmaskio/greenrand/pkg/engine"
)

type InferOptions struct {
	Type     string
	Override string
	TypeRef  string
	Default  string
}

// RunInfer prints the element type the engine infers for a slot of the given type.
func RunInfer(cfg *domains.Config, opts InferOptions, format OutputFormat, out io.Writer) error {
	if err := format.Validate(); err != nil {
		return err
	}
	e, err := newEngine(cfg)
	if err != nil {
		return err
	}
	catalog := e.Catalog()

	slot := engine.Slot{Name: "slot", TypeRef: opts.TypeRef}
	if opts.Type != "" {
		if slot.Type, err = catalog.Lookup(opts.Type); err != nil {
			return err
		}
	}
	if opts.Override != "" {
		if slot.Override, err = catalog.Lookup(opts.Override); err != nil {
			return fmt.Errorf("override: %w", err)
		}
	}
	if opts.Default != "" {
		if slot.Default, err = catalog.Lookup(opts.Default); err != nil {
			return fmt.Errorf("default: %w", err)
		}
	}

	t, err := e.Infer(slot)
	if err != nil {
		return err
	}

	switch format {
	case FormatNameJson:
		res := []byte("{}")
		if res, err = sjson.SetBytes(res, "type", opts.Type); err != nil {
			return err
		}
		if res, err = sjson.SetBytes(res, "element_type", t.String()); err != nil {
			return err
		}
		if res, err = sjson.SetBytes(res, "kind", t.Kind().String()); err != nil {
			return err
		}
		_, err = out.Write(append(res, '\n'))
	default:
		_, err = fmt.Fprintln(out, t.String())
	}
	return err
}
