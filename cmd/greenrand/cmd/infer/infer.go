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

package infer

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/greenmaskio/greenrand/internal/cmdrun"
	"github.com/greenmaskio/greenrand/internal/domains"
	"github.com/greenmaskio/greenrand/internal/utils/logger"
)

func NewCmd(cfg *domains.Config) *cobra.Command {
	var (
		opts   cmdrun.InferOptions
		format string
	)
	cmd := &cobra.Command{
		Use:   "infer [type]",
		Args:  cobra.MaximumNArgs(1),
		Short: "print the element type inferred for a slot type",
		Run: func(cmd *cobra.Command, args []string) {
			if err := logger.SetLogLevel(cfg.Log.Level, cfg.Log.Format); err != nil {
				log.Fatal().Err(err).Msg("")
			}
			if len(args) > 0 {
				opts.Type = args[0]
			}
			if err := cmdrun.RunInfer(cfg, opts, cmdrun.OutputFormat(format), cmd.OutOrStdout()); err != nil {
				log.Fatal().Err(err).Msg("cannot infer element type")
			}
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "", "", "slot type expression, for instance '[][]int'")
	cmd.Flags().StringVarP(&opts.Override, "override", "", "", "explicit element type override")
	cmd.Flags().StringVarP(&opts.TypeRef, "type-ref", "", "", "textual type reference, for instance '? extends User'")
	cmd.Flags().StringVarP(&opts.Default, "default", "", "", "element type used when nothing else applies")
	cmd.Flags().StringVarP(&format, "format", "f", string(cmdrun.FormatNameText), "output format [text|json]")
	return cmd
}
