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
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/greenmaskio/greenrand/internal/domains"
	"github.com/greenmaskio/greenrand/pkg/semantic"
)

const testSlots = `
slots:
  - name: code
    type: string
    tag: "Pattern(regex='[A-Z]{2}\\d{3}')"
  - name: age
    type: int
    tag: "Range(min=18, max=99)"
  - name: tags
    type: "[]string"
    constraints:
      - kind: Size
        params:
          min: 2
          max: 2
`

func newTestConfig(t *testing.T) *domains.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slots.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSlots), 0o600))
	cfg := domains.NewConfig()
	cfg.Generate.Slots = path
	return cfg
}

func TestRunGenerate_json(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Generate.Count = 5

	out := &bytes.Buffer{}
	require.NoError(t, RunGenerate(cfg, out, nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		require.True(t, gjson.Valid(line), line)
		assert.Regexp(t, `^[A-Z]{2}\d{3}$`, gjson.Get(line, "code").String())
		age := gjson.Get(line, "age").Int()
		assert.GreaterOrEqual(t, age, int64(18))
		assert.LessOrEqual(t, age, int64(99))
		assert.Len(t, gjson.Get(line, "tags").Array(), 2)
	}
}

func TestRunGenerate_deterministic(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Generate.Count = 3

	first := &bytes.Buffer{}
	require.NoError(t, RunGenerate(cfg, first, nil))
	second := &bytes.Buffer{}
	require.NoError(t, RunGenerate(cfg, second, nil))
	assert.Equal(t, first.String(), second.String())
}

func TestRunGenerate_text(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Generate.Format = string(FormatNameText)

	out := &bytes.Buffer{}
	require.NoError(t, RunGenerate(cfg, out, nil))
	header := strings.Split(out.String(), "\n")[1]
	assert.Contains(t, header, "code")
	assert.Contains(t, header, "age")
	assert.Contains(t, header, "tags")
}

func TestRunGenerate_template(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Generate.Count = 2
	cfg.Generate.Format = string(FormatNameTemplate)
	cfg.Generate.Template = `{{ ._index }}:{{ .code | lower }}:{{ len .tags }}`

	out := &bytes.Buffer{}
	require.NoError(t, RunGenerate(cfg, out, nil))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, `^0:[a-z]{2}\d{3}:2$`, lines[0])
	assert.Regexp(t, `^1:[a-z]{2}\d{3}:2$`, lines[1])
}

func TestRunGenerate_stats(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Generate.Count = 4
	cfg.Generate.Stats = true

	out := &bytes.Buffer{}
	stats := &bytes.Buffer{}
	require.NoError(t, RunGenerate(cfg, out, stats))
	assert.Contains(t, stats.String(), "greenrand_constraint_resolutions_total")
	assert.Contains(t, stats.String(), "outcome=applied")
}

func TestRunGenerate_errors(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Generate.Format = "xml"
		err := RunGenerate(cfg, &bytes.Buffer{}, nil)
		require.ErrorIs(t, err, errValueValidationFailed)
	})
	t.Run("broken template", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Generate.Format = string(FormatNameTemplate)
		cfg.Generate.Template = "{{ .code"
		require.Error(t, RunGenerate(cfg, &bytes.Buffer{}, nil))
	})
	t.Run("missing slots file", func(t *testing.T) {
		cfg := domains.NewConfig()
		cfg.Generate.Slots = filepath.Join(t.TempDir(), "missing.yaml")
		require.ErrorIs(t, RunGenerate(cfg, &bytes.Buffer{}, nil), os.ErrNotExist)
	})
	t.Run("unknown type alias", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Types = map[string]string{"Money": "NoSuchType"}
		require.Error(t, RunGenerate(cfg, &bytes.Buffer{}, nil))
	})
}

func TestRunGenerate_typeAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
slots:
  - name: price
    type: Money
    tag: "DecimalMin(value='1.00'); DecimalMax(value='2.00')"
`), 0o600))
	cfg := domains.NewConfig()
	cfg.Generate.Slots = path
	cfg.Types = map[string]string{"Money": "decimal"}

	out := &bytes.Buffer{}
	require.NoError(t, RunGenerate(cfg, out, nil))
	price := gjson.Get(out.String(), "price").Float()
	assert.GreaterOrEqual(t, price, 1.0)
	assert.LessOrEqual(t, price, 2.0)
}

func TestRunGenerate_output(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Generate.Count = 3
	cfg.Generate.Output = filepath.Join(t.TempDir(), "records.jsonl.gz")
	cfg.Generate.Pgzip = true

	out := &bytes.Buffer{}
	require.NoError(t, RunGenerate(cfg, out, nil))
	assert.Empty(t, out.String())

	f, err := os.Open(cfg.Generate.Output)
	require.NoError(t, err)
	defer f.Close()
	r, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)

	expected := &bytes.Buffer{}
	cfg.Generate.Output = ""
	require.NoError(t, RunGenerate(cfg, expected, nil))
	assert.Equal(t, expected.String(), string(data))
}

func TestJsonValue(t *testing.T) {
	ch := make(chan int, 2)
	ch <- 1
	ch <- 2
	close(ch)
	assert.Equal(t, []any{1, 2}, jsonValue(ch))
	assert.Equal(t, map[string]any{"7": "x"}, jsonValue(map[int]string{7: "x"}))
	assert.Equal(t, "(1+2i)", jsonValue(complex(1, 2)))
	assert.Equal(t, []int{1, 2}, jsonValue([]int{1, 2}))
	assert.Nil(t, jsonValue(nil))
}

func TestJsonValue_nested(t *testing.T) {
	type point struct {
		C      complex128
		Label  string `json:"label,omitempty"`
		Hidden int    `json:"-"`
		secret complex64
	}
	ch := make(chan int, 1)
	ch <- 3
	close(ch)

	values := map[string]any{
		"complex map":  map[string]complex128{"a": complex(1, -1)},
		"channel map":  map[string]chan int{"c": ch},
		"struct slice": []point{{C: complex(0, 1), Label: "p", Hidden: 1}},
		"pointer":      &point{C: 2},
	}
	raw := []byte("{}")
	for name, v := range values {
		var err error
		raw, err = sjson.SetBytes(raw, escapePath(name), jsonValue(v))
		require.NoError(t, err, name)
	}

	assert.Equal(t, "(1-1i)", gjson.GetBytes(raw, "complex map.a").String())
	assert.Equal(t, `[3]`, gjson.GetBytes(raw, "channel map.c").Raw)
	assert.Equal(t, "(0+1i)", gjson.GetBytes(raw, "struct slice.0.C").String())
	assert.Equal(t, "p", gjson.GetBytes(raw, "struct slice.0.label").String())
	assert.False(t, gjson.GetBytes(raw, "struct slice.0.Hidden").Exists())
	assert.False(t, gjson.GetBytes(raw, "struct slice.0.secret").Exists())
	assert.Equal(t, "(2+0i)", gjson.GetBytes(raw, "pointer.C").String())
}

func TestRunGenerate_complexSlots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
slots:
  - name: weights
    type: "map[string]complex128"
  - name: roots
    type: "[]complex64"
`), 0o600))
	cfg := domains.NewConfig()
	cfg.Generate.Slots = path
	cfg.Generate.Count = 3

	out := &bytes.Buffer{}
	require.NoError(t, RunGenerate(cfg, out, nil))
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		require.True(t, gjson.Valid(line), line)
		assert.True(t, gjson.Get(line, "weights").IsObject(), line)
		assert.True(t, gjson.Get(line, "roots").IsArray(), line)
	}
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, `a\.b`, escapePath("a.b"))
	assert.Equal(t, `plain`, escapePath("plain"))
}

func TestRunInfer(t *testing.T) {
	cfg := domains.NewConfig()

	out := &bytes.Buffer{}
	require.NoError(t, RunInfer(cfg, InferOptions{Type: "[][]int"}, FormatNameText, out))
	assert.Equal(t, "int\n", out.String())

	out.Reset()
	require.NoError(t, RunInfer(cfg, InferOptions{Type: "[]any", Override: "string"}, FormatNameJson, out))
	assert.Equal(t, "string", gjson.Get(out.String(), "element_type").String())
	assert.Equal(t, "[]any", gjson.Get(out.String(), "type").String())

	require.Error(t, RunInfer(cfg, InferOptions{Type: "NoSuchType"}, FormatNameText, out))
}

func TestRunSemantic(t *testing.T) {
	cfg := domains.NewConfig()

	out := &bytes.Buffer{}
	require.NoError(t, RunSemantic(cfg, semantic.CategoryCity, "", 3, FormatNameJson, out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, string(semantic.DefaultLocale), gjson.Get(line, "locale").String())
		assert.NotEmpty(t, gjson.Get(line, "value").String())
	}

	err := RunSemantic(cfg, "weather", "", 1, FormatNameText, out)
	require.ErrorIs(t, err, semantic.ErrUnsupportedCategory)
}

func TestRunListConstraints(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, RunListConstraints(FormatNameJson, out))
	res := gjson.Parse(out.String())
	require.True(t, res.IsArray())
	assert.NotEmpty(t, res.Array())
	for _, c := range res.Array() {
		assert.True(t, c.Get("supported").Bool(), c.Raw)
	}
	assert.True(t, res.Get(`#(name=="Range").namespace`).Exists())

	out.Reset()
	require.NoError(t, RunListConstraints(FormatNameText, out))
	assert.Contains(t, out.String(), "Range")
	assert.Contains(t, out.String(), "description")

	require.ErrorIs(t, RunListConstraints(FormatNameTemplate, out), errValueValidationFailed)
}
