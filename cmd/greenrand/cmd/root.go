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

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/greenmaskio/greenrand/cmd/greenrand/cmd/generate"
	"github.com/greenmaskio/greenrand/cmd/greenrand/cmd/infer"
	"github.com/greenmaskio/greenrand/cmd/greenrand/cmd/list_constraints"
	"github.com/greenmaskio/greenrand/cmd/greenrand/cmd/semantic"
	"github.com/greenmaskio/greenrand/internal/domains"
	configUtils "github.com/greenmaskio/greenrand/internal/utils/config"
	"github.com/greenmaskio/greenrand/pkg/engine"
)

const (
	envPrefix      = "GREENRAND"
	configDirName  = "greenrand"
	configFileName = "config.yml"
)

var (
	Version    string
	Commit     string
	CommitDate string

	RootCmd = &cobra.Command{
		Use:   "greenrand",
		Short: "Greenrand generates random values that satisfy declarative constraints",
		Long: "Greenrand synthesizes random test values for typed slots. Slots carry constraints such as " +
			"numeric bounds, regular expressions, sizes and semantic categories, and every generated value " +
			"satisfies them. Generation is deterministic for a given seed",
	}
	cfgFile string
	Config  = domains.NewConfig()
)

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				Commit = setting.Value
			}
			if setting.Key == "vcs.time" {
				CommitDate = setting.Value
			}
		}
	}
	if Version != "" {
		RootCmd.Version = fmt.Sprintf("%s %s %s", Version, Commit, CommitDate)
	} else {
		RootCmd.Version = fmt.Sprintf("%s %s", Commit, CommitDate)
	}

	cobra.OnInitialize(initConfig)
	// Removing short help flag from default
	RootCmd.PersistentFlags().BoolP("help", "", false, "help for greenrand")
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	RootCmd.PersistentFlags().StringP("log-format", "", "text", "logging format [text|json]")
	RootCmd.PersistentFlags().StringP("log-level", "", zerolog.LevelInfoValue,
		fmt.Sprintf(
			"logging level %s|%s|%s|%s",
			zerolog.LevelDebugValue,
			zerolog.LevelInfoValue,
			zerolog.LevelWarnValue,
			zerolog.LevelErrorValue,
		),
	)
	RootCmd.PersistentFlags().Int64P("seed", "", engine.DefaultSeed, "base seed of the generated values")
	RootCmd.PersistentFlags().StringP("locale", "", Config.Engine.DefaultLocale, "default locale of semantic values")

	RootCmd.AddCommand(generate.NewCmd(Config))
	RootCmd.AddCommand(infer.NewCmd(Config))
	RootCmd.AddCommand(semantic.NewCmd(Config))
	RootCmd.AddCommand(list_constraints.NewCmd(Config))

	flags := map[string]string{
		"log.format":            "log-format",
		"log.level":             "log-level",
		"engine.seed":           "seed",
		"engine.default_locale": "locale",
	}
	for key, flag := range flags {
		if err := viper.BindPFlag(key, RootCmd.PersistentFlags().Lookup(flag)); err != nil {
			log.Fatal().Err(err).Msg("")
		}
	}

	RootCmd.InitDefaultCompletionCmd()
	RootCmd.InitDefaultHelpCmd()
	RootCmd.InitDefaultVersionFlag()

	for _, c := range RootCmd.Commands() {
		if c.Name() == "completion" || c.Name() == "help" {
			c.DisableFlagParsing = true
			for _, subc := range c.Commands() {
				subc.DisableFlagParsing = true
			}
		}
	}
}

// defaultConfigFile returns the config file of the user config directory if it exists.
func defaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, configDirName, configFileName)
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("Path", path).Msg("cannot access default config file")
		}
		return ""
	}
	return path
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = defaultConfigFile()
	}
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal().Err(err).Msg("error reading from config file")
		}
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.Unmarshal(Config, configUtils.DecoderConfig); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}
