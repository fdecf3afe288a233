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

package list_constraints

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/greenmaskio/greenrand/internal/cmdrun"
	"github.com/greenmaskio/greenrand/internal/domains"
	"github.com/greenmaskio/greenrand/internal/utils/logger"
)

func NewCmd(cfg *domains.Config) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list-constraints",
		Short: "list of the supported constraint kinds with documentation",
		Run: func(cmd *cobra.Command, args []string) {
			if err := logger.SetLogLevel(cfg.Log.Level, cfg.Log.Format); err != nil {
				log.Err(err).Msg("")
			}
			if err := cmdrun.RunListConstraints(cmdrun.OutputFormat(format), cmd.OutOrStdout()); err != nil {
				log.Err(err).Msg("")
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(cmdrun.FormatNameText), "output format [text|json]")
	return cmd
}
