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
	"time"

	"github.com/greenmaskio/greenrand/pkg/generators/randomizers"
	"github.com/greenmaskio/greenrand/pkg/semantic"
)

const (
	DefaultSeed           = 123
	DefaultMaxDepth       = 4
	DefaultDecimalScale   = 2
	DefaultLengthMax      = 255
	DefaultTemporalWindow = 10 * 365 * 24 * time.Hour
)

type Range struct {
	Min int `mapstructure:"min" yaml:"min" json:"min"`
	Max int `mapstructure:"max" yaml:"max" json:"max"`
}

func (r Range) Validate() error {
	if r.Min < 0 || r.Min > r.Max {
		return fmt.Errorf("range [%d, %d]: %w", r.Min, r.Max, ErrUnsatisfiableBounds)
	}
	return nil
}

type Config struct {
	Seed           int64         `mapstructure:"seed" yaml:"seed" json:"seed"`
	Charset        string        `mapstructure:"charset" yaml:"charset" json:"charset"`
	StringLength   Range         `mapstructure:"string_length" yaml:"string_length" json:"string_length"`
	CollectionSize Range         `mapstructure:"collection_size" yaml:"collection_size" json:"collection_size"`
	DefaultLocale  string        `mapstructure:"default_locale" yaml:"default_locale" json:"default_locale"`
	MaxRepeat      int           `mapstructure:"max_repeat" yaml:"max_repeat" json:"max_repeat"`
	DecimalScale   int32         `mapstructure:"decimal_scale" yaml:"decimal_scale" json:"decimal_scale"`
	MaxDepth       int           `mapstructure:"max_depth" yaml:"max_depth" json:"max_depth"`
	TemporalWindow time.Duration `mapstructure:"temporal_window" yaml:"temporal_window" json:"temporal_window"`
	// Now is the reference time of temporal constraints. Zero means the engine construction time.
	Now time.Time `mapstructure:"now" yaml:"now" json:"now"`
}

func NewConfig() *Config {
	return &Config{
		Seed:           DefaultSeed,
		Charset:        randomizers.DefaultCharset,
		StringLength:   Range{Min: 1, Max: 32},
		CollectionSize: Range{Min: 1, Max: 10},
		DefaultLocale:  string(semantic.DefaultLocale),
		MaxRepeat:      randomizers.DefaultMaxRepeat,
		DecimalScale:   DefaultDecimalScale,
		MaxDepth:       DefaultMaxDepth,
		TemporalWindow: DefaultTemporalWindow,
	}
}

func (c *Config) Validate() error {
	if c.Charset == "" {
		return fmt.Errorf("charset: %w", randomizers.ErrEmptyCharset)
	}
	if err := c.StringLength.Validate(); err != nil {
		return fmt.Errorf("string_length: %w", err)
	}
	if err := c.CollectionSize.Validate(); err != nil {
		return fmt.Errorf("collection_size: %w", err)
	}
	if c.DecimalScale < 0 {
		return fmt.Errorf("decimal_scale must not be negative: %w", ErrInvalidParameter)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative: %w", ErrInvalidParameter)
	}
	if c.TemporalWindow < 0 {
		return fmt.Errorf("temporal_window must not be negative: %w", ErrInvalidParameter)
	}
	if _, _, err := semantic.ParseLocale(c.DefaultLocale); err != nil {
		return fmt.Errorf("default_locale: %w", err)
	}
	return nil
}
