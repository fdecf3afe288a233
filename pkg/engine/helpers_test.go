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
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/greenrand/pkg/constraints"
)

var testNow = time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)

type User struct {
	Name  string `rand:"Size(min=2, max=8)"`
	Email string `rand:"Email"`
	Age   int    `rand:"Range(min=18, max=99)"`
	Tags  []string
	note  string
}

type Shape interface {
	Area() float64
}

type Square struct {
	Side float64 `rand:"Range(min=1, max=10)"`
}

func (s Square) Area() float64 {
	return s.Side * s.Side
}

type Color string

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	cfg := NewConfig()
	cfg.Seed = 42
	cfg.Now = testNow
	e, err := New(cfg, nil, opts...)
	require.NoError(t, err)
	return e
}

func c(kind constraints.Kind, params ...any) constraints.Constraint {
	p := constraints.Params{}
	for i := 0; i+1 < len(params); i += 2 {
		p[params[i].(string)] = params[i+1]
	}
	return constraints.New(kind, p)
}

func mustResolve(t *testing.T, e *Engine, slot Slot) Randomizer {
	t.Helper()
	r, ok, err := e.Resolve(slot)
	require.NoError(t, err)
	require.True(t, ok)
	return r
}
