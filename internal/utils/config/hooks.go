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

package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	gostr "github.com/xhit/go-str2duration/v2"
)

var durationType = reflect.TypeOf(time.Duration(0))

// StringToDurationHookFunc parses durations with day and week units such as "3650d" or "1w2d".
func StringToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data any,
	) (any, error) {
		if f.Kind() != reflect.String || t != durationType {
			return data, nil
		}
		raw := strings.TrimSpace(data.(string))
		if raw == "" {
			return time.Duration(0), nil
		}
		dur, err := gostr.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse duration %q: %w", raw, err)
		}
		return dur, nil
	}
}

// StringToSliceWithBracketHookFunc decodes a JSON array string such as `["a", "b"]` into a slice. Other
// strings are passed through.
func StringToSliceWithBracketHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Kind,
		t reflect.Kind,
		data any) (any, error) {
		if f != reflect.String || t != reflect.Slice {
			return data, nil
		}

		raw := strings.TrimSpace(data.(string))
		if raw == "" {
			return []string{}, nil
		}
		if !strings.HasPrefix(raw, "[") {
			return data, nil
		}
		var slice []any
		if err := json.Unmarshal([]byte(raw), &slice); err != nil {
			return data, nil
		}
		return slice, nil
	}
}

// DecodeHook is the hook chain used to decode the configuration.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		StringToDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		StringToSliceWithBracketHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// DecoderConfig applies DecodeHook to a mapstructure decoder config. It fits viper.DecoderConfigOption.
func DecoderConfig(cfg *mapstructure.DecoderConfig) {
	cfg.DecodeHook = DecodeHook()
	cfg.WeaklyTypedInput = true
}
