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
	"github.com/greenmaskio/greenrand/pkg/semantic"
)

// RunSemantic prints count values of the category from the provider of the locale.
func RunSemantic(
	cfg *domains.Config, category semantic.Category, locale string, count int, format OutputFormat, out io.Writer,
) error {
	if err := format.Validate(); err != nil {
		return err
	}
	if !semantic.IsKnown(category) {
		return fmt.Errorf("category %q: %w", category, semantic.ErrUnsupportedCategory)
	}
	if locale == "" {
		locale = cfg.Engine.DefaultLocale
	}
	key, _, err := semantic.ParseLocale(locale)
	if err != nil {
		return err
	}
	e, err := newEngine(cfg)
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		v, ok := e.DispatchSemantic(category, locale)
		if !ok {
			return fmt.Errorf("category %q for locale %s: no value", category, key)
		}
		switch format {
		case FormatNameJson:
			res := []byte("{}")
			if res, err = sjson.SetBytes(res, "category", string(category)); err != nil {
				return err
			}
			if res, err = sjson.SetBytes(res, "locale", string(key)); err != nil {
				return err
			}
			if res, err = sjson.SetBytes(res, "value", v); err != nil {
				return err
			}
			_, err = out.Write(append(res, '\n'))
		default:
			_, err = fmt.Fprintf(out, "%+v\n", v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
