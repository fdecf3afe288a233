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
	"errors"
	"fmt"
	"unicode"

	"github.com/greenmaskio/greenrand/pkg/generators"
)

const DefaultCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var ErrEmptyCharset = errors.New("charset is empty")

type StringRandomizer struct {
	src        *generators.Source
	characters []rune
	minLength  int
	maxLength  int
	notBlank   bool
	buf        []rune
}

func NewStringRandomizer(src *generators.Source, chars []rune, minLength, maxLength int) (*StringRandomizer, error) {
	if len(chars) == 0 {
		return nil, ErrEmptyCharset
	}
	if minLength < 0 {
		return nil, fmt.Errorf("minLength (%d) is negative: %w", minLength, ErrWrongLimits)
	}
	if minLength > maxLength {
		return nil, fmt.Errorf("minLength (%d) is greater than maxLength (%d): %w", minLength, maxLength, ErrWrongLimits)
	}

	return &StringRandomizer{
		src:        src,
		characters: chars,
		minLength:  minLength,
		maxLength:  maxLength,
		buf:        make([]rune, 0, maxLength),
	}, nil
}

// SetNotBlank makes every generated string contain at least one non-space character. The minimal
// length is raised to 1 when required.
func (st *StringRandomizer) SetNotBlank() error {
	var hasVisible bool
	for _, c := range st.characters {
		if !unicode.IsSpace(c) {
			hasVisible = true
			break
		}
	}
	if !hasVisible {
		return fmt.Errorf("charset has only whitespace characters: %w", ErrEmptyCharset)
	}
	if st.maxLength < 1 {
		return fmt.Errorf("not blank string cannot be shorter than 1: %w", ErrWrongLimits)
	}
	st.minLength = max(st.minLength, 1)
	st.notBlank = true
	return nil
}

func (st *StringRandomizer) Next() string {
	st.buf = st.buf[:0]
	length := st.src.IntBetween(st.minLength, st.maxLength)
	var visible bool
	for i := 0; i < length; i++ {
		c := st.characters[st.src.IntN(len(st.characters))]
		if !unicode.IsSpace(c) {
			visible = true
		}
		st.buf = append(st.buf, c)
	}
	if st.notBlank && !visible {
		st.buf[st.src.IntN(len(st.buf))] = st.visibleChar()
	}
	return string(st.buf)
}

func (st *StringRandomizer) visibleChar() rune {
	for {
		c := st.characters[st.src.IntN(len(st.characters))]
		if !unicode.IsSpace(c) {
			return c
		}
	}
}
