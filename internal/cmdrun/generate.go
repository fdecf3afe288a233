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
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/greenmaskio/greenrand/internal/domains"
	"github.com/greenmaskio/greenrand/internal/metrics"
	"github.com/greenmaskio/greenrand/internal/utils/ioutils"
	"github.com/greenmaskio/greenrand/pkg/engine"
)

// record is one generated row: the values by slot name and their JSON encoding.
type record struct {
	values map[string]any
	raw    []byte
}

// RunGenerate generates cfg.Generate.Count records for the slots of cfg.Generate.Slots and renders them
// to out, or to the cfg.Generate.Output file when it is set. Counters are rendered to statsOut when
// cfg.Generate.Stats is set.
func RunGenerate(cfg *domains.Config, out, statsOut io.Writer) error {
	format := OutputFormat(cfg.Generate.Format)
	if err := format.Validate(); err != nil {
		return err
	}
	if cfg.Generate.Count < 0 {
		return fmt.Errorf("count %d: %w", cfg.Generate.Count, errValueValidationFailed)
	}
	var tmpl *template.Template
	if format == FormatNameTemplate {
		var err error
		tmpl, err = template.New("record").Funcs(sprig.TxtFuncMap()).Parse(cfg.Generate.Template)
		if err != nil {
			return fmt.Errorf("parse template: %w", err)
		}
	}

	slotsFile, err := domains.LoadSlotsFile(cfg.Generate.Slots)
	if err != nil {
		return fmt.Errorf("load slots: %w", err)
	}

	var opts []engine.Option
	var m *metrics.Metrics
	if cfg.Generate.Stats {
		m = metrics.New(nil)
		opts = append(opts, engine.WithObserver(m))
	}
	e, err := newEngine(cfg, opts...)
	if err != nil {
		return err
	}

	slots := make([]engine.Slot, 0, len(slotsFile.Slots))
	for _, sd := range slotsFile.Slots {
		slot, err := sd.Slot(e.Catalog())
		if err != nil {
			return err
		}
		slots = append(slots, slot)
	}

	records := make([]*record, 0, cfg.Generate.Count)
	for i := 0; i < cfg.Generate.Count; i++ {
		r, err := generateRecord(e, slots)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, r)
	}
	log.Debug().
		Int("Records", len(records)).
		Int("Slots", len(slots)).
		Msg("records generated")

	var file ioutils.CountWriteCloser
	if cfg.Generate.Output != "" {
		file, err = ioutils.CreateOutput(cfg.Generate.Output, ioutils.OutputOptions{
			Compress: cfg.Generate.Compress,
			Pgzip:    cfg.Generate.Pgzip,
		})
		if err != nil {
			return err
		}
		out = file
	}

	switch format {
	case FormatNameJson:
		err = renderJson(out, records)
	case FormatNameText:
		err = renderText(out, slots, records)
	case FormatNameTemplate:
		err = renderTemplate(out, tmpl, records)
	}
	if file != nil {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
		log.Info().
			Str("Output", cfg.Generate.Output).
			Int64("Bytes", file.Count()).
			Int("Records", len(records)).
			Msg("records written")
	}
	if err != nil {
		return fmt.Errorf("render records: %w", err)
	}

	if m != nil {
		if err := renderStats(statsOut, m); err != nil {
			return fmt.Errorf("render stats: %w", err)
		}
	}
	return nil
}

func generateRecord(e *engine.Engine, slots []engine.Slot) (*record, error) {
	res := &record{
		values: make(map[string]any, len(slots)),
		raw:    []byte("{}"),
	}
	for _, slot := range slots {
		v, err := e.Generate(slot)
		if err != nil {
			return nil, err
		}
		v = jsonValue(v)
		res.values[slot.Name] = v
		if res.raw, err = sjson.SetBytes(res.raw, escapePath(slot.Name), v); err != nil {
			return nil, fmt.Errorf("encode slot %q: %w", slot.Name, err)
		}
	}
	return res, nil
}

// jsonValue converts values that cannot be encoded as JSON: channels become slices, maps with non
// string keys get their keys formatted and complex numbers become strings. Structs holding such values
// become maps keyed by their JSON field names.
func jsonValue(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if !needsConversion(rv.Type(), nil) {
		return v
	}
	return convertValue(rv)
}

func convertValue(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return jsonValue(rv.Elem().Interface())
	case reflect.Chan:
		var res []any
		for {
			item, ok := rv.TryRecv()
			if !ok {
				break
			}
			res = append(res, jsonValue(item.Interface()))
		}
		return res
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		res := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key()
			name := fmt.Sprint(key.Interface())
			if key.Kind() == reflect.String {
				name = key.String()
			}
			res[name] = jsonValue(iter.Value().Interface())
		}
		return res
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		res := make([]any, rv.Len())
		for i := range res {
			res[i] = jsonValue(rv.Index(i).Interface())
		}
		return res
	case reflect.Struct:
		t := rv.Type()
		res := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name, ok := jsonFieldName(f)
			if !ok {
				continue
			}
			res[name] = jsonValue(rv.Field(i).Interface())
		}
		return res
	case reflect.Complex64, reflect.Complex128:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, rv.Type().Bits())
	}
	return rv.Interface()
}

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// needsConversion reports whether a value of type t may hold something encoding/json rejects. Types
// with their own marshalers are encoded as is.
func needsConversion(t reflect.Type, seen map[reflect.Type]struct{}) bool {
	if t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType) {
		return false
	}
	switch t.Kind() {
	case reflect.Chan, reflect.Complex64, reflect.Complex128, reflect.Interface:
		return true
	case reflect.Pointer, reflect.Array:
		return needsConversion(t.Elem(), seen)
	case reflect.Slice:
		return t.Elem().Kind() != reflect.Uint8 && needsConversion(t.Elem(), seen)
	case reflect.Map:
		return t.Key().Kind() != reflect.String || needsConversion(t.Elem(), seen)
	case reflect.Struct:
		if _, ok := seen[t]; ok {
			return false
		}
		if seen == nil {
			seen = make(map[reflect.Type]struct{})
		}
		seen[t] = struct{}{}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if _, ok := jsonFieldName(f); ok && needsConversion(f.Type, seen) {
				return true
			}
		}
	}
	return false
}

// jsonFieldName returns the name encoding/json uses for an exported field.
func jsonFieldName(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return f.Name, true
}

// escapePath escapes the path syntax characters of gjson and sjson.
func escapePath(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch r {
		case '\\', '.', '*', '?', '|', '#', '@', ':', '!', '=', '<', '>', '%':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func renderJson(out io.Writer, records []*record) error {
	for _, r := range records {
		if _, err := out.Write(append(r.raw, '\n')); err != nil {
			return err
		}
	}
	return nil
}

func renderText(out io.Writer, slots []engine.Slot, records []*record) error {
	header := make([]string, len(slots))
	for i, slot := range slots {
		header[i] = slot.Name
	}
	data := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, len(slots))
		for i, slot := range slots {
			row[i] = gjson.GetBytes(r.raw, escapePath(slot.Name)).String()
		}
		data = append(data, row)
	}
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(data)
	table.Render()
	return nil
}

func renderTemplate(out io.Writer, tmpl *template.Template, records []*record) error {
	buf := &bytes.Buffer{}
	for i, r := range records {
		buf.Reset()
		data := maps.Clone(r.values)
		data["_index"] = i
		data["_json"] = string(r.raw)
		if err := tmpl.Execute(buf, data); err != nil {
			return fmt.Errorf("execute template: %w", err)
		}
		buf.WriteByte('\n')
		if _, err := out.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func renderStats(out io.Writer, m *metrics.Metrics) error {
	samples, err := m.Snapshot()
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"metric", "labels", "value"})
	table.SetAutoFormatHeaders(false)
	for _, s := range samples {
		labels := make([]string, 0, len(s.Labels))
		for _, k := range sortedKeys(s.Labels) {
			labels = append(labels, k+"="+s.Labels[k])
		}
		table.Append([]string{s.Name, strings.Join(labels, ", "), strconv.FormatFloat(s.Value, 'f', -1, 64)})
	}
	table.Render()
	return nil
}
