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

package generate

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/greenmaskio/greenrand/internal/cmdrun"
	"github.com/greenmaskio/greenrand/internal/domains"
	"github.com/greenmaskio/greenrand/internal/utils/logger"
)

func NewCmd(cfg *domains.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "generate records for the slots of a slot definition file",
		Run: func(cmd *cobra.Command, args []string) {
			if err := logger.SetLogLevel(cfg.Log.Level, cfg.Log.Format); err != nil {
				log.Fatal().Err(err).Msg("")
			}
			if err := cmdrun.RunGenerate(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
				log.Fatal().Err(err).Msg("cannot generate records")
			}
		},
	}

	cmd.Flags().StringP("slots", "s", "", "slot definition file")
	cmd.Flags().IntP("count", "n", cfg.Generate.Count, "number of generated records")
	cmd.Flags().StringP("format", "f", cfg.Generate.Format, "output format [json|text|template]")
	cmd.Flags().StringP("template", "t", "", "template of a record, used with --format=template")
	cmd.Flags().BoolP("stats", "", false, "print resolution counters to stderr")
	cmd.Flags().StringP("output", "o", "", "write records to the file instead of stdout")
	cmd.Flags().BoolP("compress", "", false, "gzip the output file, implied by a .gz suffix")
	cmd.Flags().BoolP("pgzip", "", false, "use parallel gzip for the output file")

	for _, name := range []string{"slots", "count", "format", "template", "stats", "output", "compress", "pgzip"} {
		if err := viper.BindPFlag("generate."+name, cmd.Flags().Lookup(name)); err != nil {
			log.Fatal().Err(err).Msg("")
		}
	}
	return cmd
}
