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
	"reflect"
	"regexp"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/greenrand/pkg/constraints"
)

func TestPatternHandler(t *testing.T) {
	e := newTestEngine(t)
	patterns := []string{
		`[A-Z][a-z]{2}-[0-9]{3}`,
		`(foo|bar)+baz?`,
		`\d{4}-\d{2}-\d{2}`,
		`[A-F0-9]{2}(:[A-F0-9]{2}){5}`,
	}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			re := regexp.MustCompile(`^(?:` + pattern + `)$`)
			r := mustResolve(t, e, SlotOf[string]("code", c(constraints.Pattern, "regex", pattern)))
			for i := 0; i < 1000; i++ {
				v, err := r.Generate()
				require.NoError(t, err)
				assert.Regexp(t, re, v)
			}
		})
	}

	r := mustResolve(t, e, SlotOf[[]byte]("raw", c(constraints.CurrentPattern, "regex", `[0-9a-f]{8}`)))
	v, err := r.Generate()
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{8}$`, string(v.([]byte)))
}

func TestPatternHandler_errors(t *testing.T) {
	e := newTestEngine(t)
	_, _, err := e.Resolve(SlotOf[string]("v", c(constraints.Pattern, "regex", `[a-z`)))
	require.ErrorIs(t, err, ErrMalformedPattern)

	_, _, err = e.Resolve(SlotOf[string]("v", c(constraints.Pattern)))
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, ok, err := e.Resolve(SlotOf[int]("v", c(constraints.Pattern, "regex", `[0-9]`)))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSizeHandler_strings(t *testing.T) {
	e := newTestEngine(t)

	r := mustResolve(t, e, SlotOf[string]("v", c(constraints.Size, "min", 3, "max", 5)))
	for i := 0; i < 200; i++ {
		v, err := r.Generate()
		require.NoError(t, err)
		n := utf8.RuneCountInString(v.(string))
		assert.True(t, n >= 3 && n <= 5, n)
	}

	r = mustResolve(t, e, SlotOf[string]("v", c(constraints.Length, "min", 250)))
	for i := 0; i < 20; i++ {
		v, err := r.Generate()
		require.NoError(t, err)
		n := utf8.RuneCountInString(v.(string))
		assert.True(t, n >= 250 && n <= DefaultLengthMax, n)
	}

	r = mustResolve(t, e, SlotOf[*string]("v", c(constraints.NotEmpty)))
	for i := 0; i < 200; i++ {
		v, err := r.Generate()
		require.NoError(t, err)
		assert.NotEmpty(t, *v.(*string))
	}

	_, _, err := e.Resolve(SlotOf[string]("v", c(constraints.Size, "min", 5, "max", 3)))
	require.ErrorIs(t, err, ErrUnsatisfiableBounds)
}

func TestSizeHandler_collections(t *testing.T) {
	e := newTestEngine(t)

	t.Run("slice of structs", func(t *testing.T) {
		v, err := e.Generate(SlotOf[[]User]("users", c(constraints.Size, "min", 2, "max", 4)))
		require.NoError(t, err)
		users := v.([]User)
		assert.True(t, len(users) >= 2 && len(users) <= 4)
		for _, u := range users {
			assert.True(t, u.Age >= 18 && u.Age <= 99, u.Age)
			assert.Contains(t, u.Email, "@")
		}
	})

	t.Run("map with exact size", func(t *testing.T) {
		v, err := e.Generate(SlotOf[map[string]int]("m", c(constraints.Size, "min", 3, "max", 3)))
		require.NoError(t, err)
		assert.Len(t, v.(map[string]int), 3)
	})

	t.Run("set", func(t *testing.T) {
		v, err := e.Generate(SlotOf[map[int]struct{}]("s", c(constraints.Size, "min", 1, "max", 5)))
		require.NoError(t, err)
		s := v.(map[int]struct{})
		assert.True(t, len(s) >= 1 && len(s) <= 5)
	})

	t.Run("array within bounds", func(t *testing.T) {
		v, err := e.Generate(SlotOf[[3]int8]("a", c(constraints.Size, "min", 1, "max", 3)))
		require.NoError(t, err)
		assert.IsType(t, [3]int8{}, v)
	})

	t.Run("array outside of bounds", func(t *testing.T) {
		_, err := e.Generate(SlotOf[[3]int8]("a", c(constraints.Size, "min", 4, "max", 5)))
		require.ErrorIs(t, err, ErrUnsatisfiableBounds)
	})

	t.Run("channel is closed", func(t *testing.T) {
		v, err := e.Generate(SlotOf[<-chan string]("ch", c(constraints.Size, "min", 2, "max", 2)))
		require.NoError(t, err)
		ch := v.(<-chan string)
		var res []string
		for s := range ch {
			res = append(res, s)
		}
		assert.Len(t, res, 2)
	})

	t.Run("interface element inferred from override", func(t *testing.T) {
		slot := SlotOf[[]Shape]("shapes", c(constraints.NotEmpty)).WithOverride(reflect.TypeFor[Square]())
		v, err := e.Generate(slot)
		require.NoError(t, err)
		shapes := v.([]Shape)
		require.NotEmpty(t, shapes)
		for _, s := range shapes {
			sq, ok := s.(Square)
			require.True(t, ok)
			assert.True(t, sq.Side >= 1 && sq.Side <= 10)
		}
	})

	t.Run("interface slot becomes a list", func(t *testing.T) {
		slot := SlotOf[any]("v", c(constraints.Size, "min", 2, "max", 2)).WithOverride(reflect.TypeFor[int]())
		v, err := e.Generate(slot)
		require.NoError(t, err)
		assert.Len(t, v.([]int), 2)
	})

	t.Run("interface map key without hint", func(t *testing.T) {
		v, err := e.Generate(SlotOf[map[any]int]("m", c(constraints.Size, "min", 1, "max", 2)))
		require.NoError(t, err)
		assert.Empty(t, v.(map[any]int))
	})
}
