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

package randomizers

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/greenrand/pkg/generators"
)

func TestRegexRandomizer_Next(t *testing.T) {
	tests := []string{
		`[A-Z][a-z]{2}-[0-9]{3}`,
		`^\d{3}-\d{2}-\d{4}$`,
		`(foo|bar)+baz?`,
		`[^a-z]{5}`,
		`(?i)hello`,
		`a*b+c?`,
		`[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,4}`,
		`\w{3,}\s\W`,
		`.{0,5}`,
		`x{2,}`,
		`(?:ab|cd){1,3}`,
		``,
		`\bword\b`,
	}
	for _, pattern := range tests {
		t.Run(pattern, func(t *testing.T) {
			re := regexp.MustCompile(`^(?:` + pattern + `)$`)
			r, err := NewRegexRandomizer(generators.NewSource(11), pattern, DefaultMaxRepeat)
			require.NoError(t, err)
			for i := 0; i < 500; i++ {
				res := r.Next()
				require.Truef(t, re.MatchString(res), "value %q does not match %q", res, pattern)
			}
		})
	}
}

func TestRegexRandomizer_malformed(t *testing.T) {
	_, err := NewRegexRandomizer(generators.NewSource(1), `[a-z`, DefaultMaxRepeat)
	require.ErrorIs(t, err, ErrMalformedPattern)
}

func TestRegexRandomizer_unbounded_repeat_cap(t *testing.T) {
	r, err := NewRegexRandomizer(generators.NewSource(1), `a+`, 3)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		res := r.Next()
		require.GreaterOrEqual(t, len(res), 1)
		require.LessOrEqual(t, len(res), 3)
	}
}

func TestRegexRandomizer_determinism(t *testing.T) {
	r1, err := NewRegexRandomizer(generators.NewSource(5), `[a-z]{4,8}`, DefaultMaxRepeat)
	require.NoError(t, err)
	r2, err := NewRegexRandomizer(generators.NewSource(5), `[a-z]{4,8}`, DefaultMaxRepeat)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		require.Equal(t, r1.Next(), r2.Next())
	}
}
