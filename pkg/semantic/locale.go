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

package semantic

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

const DefaultLocale LocaleKey = "en_US"

// LocaleKey is a normalized locale of form language[_COUNTRY], for instance en_US, zh_CN or fr.
type LocaleKey string

// Locale is passed to a ProviderFactory.
type Locale struct {
	Key    LocaleKey
	Tag    language.Tag
	Region language.Region
	// Seed is the engine seed perturbed with the locale key.
	Seed int64
}

// ParseLocale accepts "en", "en_US" and "en-US" forms. The language part is lower-cased and the
// region part upper-cased in the returned key.
func ParseLocale(s string) (LocaleKey, language.Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", language.Und, fmt.Errorf("empty locale: %w", ErrMalformedLocale)
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-'
	})
	if len(parts) == 0 || len(parts) > 2 {
		return "", language.Und, fmt.Errorf("locale %q: expected language[_COUNTRY]: %w", s, ErrMalformedLocale)
	}
	base, err := language.ParseBase(parts[0])
	if err != nil {
		return "", language.Und, fmt.Errorf("locale %q: %w: %w", s, ErrMalformedLocale, err)
	}
	if len(parts) == 1 {
		tag, err := language.Compose(base)
		if err != nil {
			return "", language.Und, fmt.Errorf("locale %q: %w: %w", s, ErrMalformedLocale, err)
		}
		return LocaleKey(base.String()), tag, nil
	}
	region, err := language.ParseRegion(parts[1])
	if err != nil {
		return "", language.Und, fmt.Errorf("locale %q: %w: %w", s, ErrMalformedLocale, err)
	}
	tag, err := language.Compose(base, region)
	if err != nil {
		return "", language.Und, fmt.Errorf("locale %q: %w: %w", s, ErrMalformedLocale, err)
	}
	return LocaleKey(base.String() + "_" + region.String()), tag, nil
}
