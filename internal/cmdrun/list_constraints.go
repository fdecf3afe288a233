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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	stringsutils "github.com/greenmaskio/greenrand/internal/utils/strings"
	"github.com/greenmaskio/greenrand/pkg/constraints"
	"github.com/greenmaskio/greenrand/pkg/engine"
)

const descriptionWidth = 60

type constraintResponse struct {
	Namespace   string   `json:"namespace"`
	Name        string   `json:"name"`
	Params      []string `json:"params,omitempty"`
	Description string   `json:"description"`
	Supported   bool     `json:"supported"`
}

// RunListConstraints prints the constraint vocabularies and whether the default registry handles each
// kind.
func RunListConstraints(format OutputFormat, out io.Writer) error {
	if err := format.Validate(); err != nil {
		return err
	}
	registry, err := engine.DefaultRegistry()
	if err != nil {
		return err
	}

	var res []*constraintResponse
	for _, ns := range []constraints.Namespace{constraints.NamespaceCurrent, constraints.NamespaceLegacy} {
		for _, d := range constraints.Definitions(ns) {
			_, ok := registry.Get(d.Kind)
			res = append(res, &constraintResponse{
				Namespace:   string(d.Kind.Namespace),
				Name:        d.Kind.Name,
				Params:      d.Params,
				Description: d.Description,
				Supported:   ok,
			})
		}
	}

	switch format {
	case FormatNameJson:
		return json.NewEncoder(out).Encode(res)
	case FormatNameText:
		return listConstraintsText(out, res)
	default:
		return fmt.Errorf("format '%s' is not supported by list-constraints: %w", format, errValueValidationFailed)
	}
}

func listConstraintsText(out io.Writer, res []*constraintResponse) error {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"namespace", "name", "parameters", "description", "supported"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetRowLine(true)
	table.SetAutoMergeCellsByColumnIndex([]int{0})
	for _, c := range res {
		table.Append([]string{
			c.Namespace,
			c.Name,
			strings.Join(c.Params, ", "),
			stringsutils.WrapString(c.Description, descriptionWidth),
			fmt.Sprint(c.Supported),
		})
	}
	table.Render()
	return nil
}
