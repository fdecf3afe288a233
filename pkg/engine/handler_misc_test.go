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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/greenrand/pkg/constraints"
)

func TestBoolHandler(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 20; i++ {
		v, err := Value[bool](e, c(constraints.AssertTrue))
		require.NoError(t, err)
		assert.True(t, v)
		v, err = Value[bool](e, c(constraints.AssertFalse))
		require.NoError(t, err)
		assert.False(t, v)
	}
	p, err := Value[*bool](e, c(constraints.AssertTrue))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, *p)
}

func TestNullHandler(t *testing.T) {
	e := newTestEngine(t)

	p, err := Value[*User](e, c(constraints.Null))
	require.NoError(t, err)
	assert.Nil(t, p)

	m, err := Value[map[string]int](e, c(constraints.Null))
	require.NoError(t, err)
	assert.Nil(t, m)

	_, ok, err := e.Resolve(SlotOf[int]("v", c(constraints.Null)))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNotBlankHandler(t *testing.T) {
	cfg := NewConfig()
	cfg.Charset = " \tx"
	cfg.Now = testNow
	e, err := New(cfg, nil)
	require.NoError(t, err)

	r := mustResolve(t, e, SlotOf[string]("v", c(constraints.NotBlank)))
	for i := 0; i < 200; i++ {
		v, err := r.Generate()
		require.NoError(t, err)
		assert.NotEmpty(t, strings.TrimSpace(v.(string)))
	}

	cfg = NewConfig()
	cfg.Charset = " \t"
	e, err = New(cfg, nil)
	require.NoError(t, err)
	_, _, err = e.Resolve(SlotOf[string]("v", c(constraints.NotBlank)))
	require.ErrorIs(t, err, ErrUnsatisfiableBounds)
}

func TestTemporalHandler(t *testing.T) {
	e := newTestEngine(t)
	window := e.Config().TemporalWindow

	type test struct {
		kind     constraints.Kind
		from, to time.Time
	}
	tests := []test{
		{kind: constraints.Future, from: testNow.Add(time.Nanosecond), to: testNow.Add(window)},
		{kind: constraints.FutureOrPresent, from: testNow, to: testNow.Add(window)},
		{kind: constraints.Past, from: testNow.Add(-window), to: testNow.Add(-time.Nanosecond)},
		{kind: constraints.PastOrPresent, from: testNow.Add(-window), to: testNow},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			r := mustResolve(t, e, SlotOf[time.Time]("ts", c(tt.kind)))
			for i := 0; i < 200; i++ {
				v, err := r.Generate()
				require.NoError(t, err)
				ts := v.(time.Time)
				assert.False(t, ts.Before(tt.from), ts)
				assert.False(t, ts.After(tt.to), ts)
			}

			r = mustResolve(t, e, SlotOf[int64]("unix", c(tt.kind)))
			for i := 0; i < 200; i++ {
				v, err := r.Generate()
				require.NoError(t, err)
				sec := v.(int64)
				assert.GreaterOrEqual(t, sec, tt.from.Add(-time.Second).Unix())
				assert.LessOrEqual(t, sec, tt.to.Unix())
			}
		})
	}

	v, err := Value[int64](e, c(constraints.Past))
	require.NoError(t, err)
	assert.Less(t, v, testNow.Unix())

	_, ok, err := e.Resolve(SlotOf[time.Duration]("d", c(constraints.Future)))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTemporalHandler_liveClock(t *testing.T) {
	cfg := NewConfig()
	cfg.TemporalWindow = 50 * time.Millisecond
	e, err := New(cfg, nil)
	require.NoError(t, err)

	future := mustResolve(t, e, SlotOf[time.Time]("ts", c(constraints.Future)))
	past := mustResolve(t, e, SlotOf[time.Time]("ts", c(constraints.PastOrPresent)))
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 100; i++ {
		before := time.Now()
		v, err := future.Generate()
		require.NoError(t, err)
		assert.True(t, v.(time.Time).After(before), "future value %s is not after %s", v, before)

		v, err = past.Generate()
		require.NoError(t, err)
		after := time.Now()
		assert.False(t, v.(time.Time).After(after))
		assert.True(t, v.(time.Time).After(before.Add(-cfg.TemporalWindow-time.Millisecond)))
	}
}

func TestEngine_Now(t *testing.T) {
	assert.Equal(t, testNow, newTestEngine(t).Now())

	e, err := New(nil, nil)
	require.NoError(t, err)
	first := e.Now()
	time.Sleep(time.Millisecond)
	assert.True(t, e.Now().After(first))
}
