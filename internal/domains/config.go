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
	"github.com/greenmaskio/greenrand/pkg/engine"
)

const (
	defaultLogFormat = "text"
	defaultLogLevel  = "info"
	defaultCount     = 1
	defaultFormat    = "json"
)

func NewConfig() *Config {
	return &Config{
		Log: LogConfig{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Engine: engine.NewConfig(),
		Generate: Generate{
			Count:  defaultCount,
			Format: defaultFormat,
		},
	}
}

type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log" json:"log"`
	Engine   *engine.Config `mapstructure:"engine" yaml:"engine" json:"engine"`
	Generate Generate       `mapstructure:"generate" yaml:"generate" json:"generate"`
	// Types maps type names used by slot files to the names of types already known by the type catalog.
	Types map[string]string `mapstructure:"types" yaml:"types" json:"types,omitempty"`
}

type LogConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format,omitempty"`
	Level  string `mapstructure:"level" yaml:"level" json:"level,omitempty"`
}

type Generate struct {
	Slots    string `mapstructure:"slots" yaml:"slots" json:"slots,omitempty"`
	Count    int    `mapstructure:"count" yaml:"count" json:"count,omitempty"`
	Format   string `mapstructure:"format" yaml:"format" json:"format,omitempty"`
	Template string `mapstructure:"template" yaml:"template" json:"template,omitempty"`
	Stats    bool   `mapstructure:"stats" yaml:"stats" json:"stats,omitempty"`
	// Output is a file the records are written to instead of stdout. A ".gz" suffix enables compression.
	Output   string `mapstructure:"output" yaml:"output" json:"output,omitempty"`
	Compress bool   `mapstructure:"compress" yaml:"compress" json:"compress,omitempty"`
	Pgzip    bool   `mapstructure:"pgzip" yaml:"pgzip" json:"pgzip,omitempty"`
}
