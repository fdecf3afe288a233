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
	"regexp/syntax"
	"strings"
	"unicode"

	"github.com/greenmaskio/greenrand/pkg/generators"
)

// DefaultMaxRepeat caps unbounded quantifiers (*, + and {n,}).
const DefaultMaxRepeat = 10

const (
	printableLow  = 0x20
	printableHigh = 0x7E
)

var (
	ErrMalformedPattern     = errors.New("malformed regular expression")
	ErrUnsatisfiablePattern = errors.New("regular expression matches nothing")
)

// RegexRandomizer walks the parsed expression tree and emits a string that fully matches the pattern.
// It guarantees a match, not a uniform coverage of the pattern language.
type RegexRandomizer struct {
	src       *generators.Source
	pattern   string
	re        *syntax.Regexp
	maxRepeat int
	sb        strings.Builder
}

func NewRegexRandomizer(src *generators.Source, pattern string, maxRepeat int) (*RegexRandomizer, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w: %w", pattern, ErrMalformedPattern, err)
	}
	if hasNoMatch(re) {
		return nil, fmt.Errorf("pattern %q: %w", pattern, ErrUnsatisfiablePattern)
	}
	if maxRepeat <= 0 {
		maxRepeat = DefaultMaxRepeat
	}
	return &RegexRandomizer{
		src:       src,
		pattern:   pattern,
		re:        re,
		maxRepeat: maxRepeat,
	}, nil
}

func (rr *RegexRandomizer) Pattern() string {
	return rr.pattern
}

func (rr *RegexRandomizer) Next() string {
	rr.sb.Reset()
	rr.walk(rr.re)
	return rr.sb.String()
}

func (rr *RegexRandomizer) walk(re *syntax.Regexp) {
	switch re.Op {
	case syntax.OpLiteral:
		for _, r := range re.Rune {
			if re.Flags&syntax.FoldCase != 0 && rr.src.Bool() {
				r = swapCase(r)
			}
			rr.sb.WriteRune(r)
		}
	case syntax.OpCharClass:
		rr.sb.WriteRune(rr.pickFromRanges(re.Rune))
	case syntax.OpAnyCharNotNL, syntax.OpAnyChar:
		rr.sb.WriteRune(rune(rr.src.IntBetween(printableLow, printableHigh)))
	case syntax.OpCapture:
		rr.walk(re.Sub[0])
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			rr.walk(sub)
		}
	case syntax.OpAlternate:
		rr.walk(rr.pickAlternative(re.Sub))
	case syntax.OpStar:
		rr.repeat(re.Sub[0], 0, -1)
	case syntax.OpPlus:
		rr.repeat(re.Sub[0], 1, -1)
	case syntax.OpQuest:
		rr.repeat(re.Sub[0], 0, 1)
	case syntax.OpRepeat:
		rr.repeat(re.Sub[0], re.Min, re.Max)
	default:
		// Anchors, word boundaries and empty matches do not produce characters
	}
}

func (rr *RegexRandomizer) repeat(re *syntax.Regexp, minCount, maxCount int) {
	if maxCount < 0 {
		maxCount = max(minCount, rr.maxRepeat)
	}
	if minCount == 0 && hasNoMatch(re) {
		return
	}
	count := rr.src.IntBetween(minCount, maxCount)
	for i := 0; i < count; i++ {
		rr.walk(re)
	}
}

func (rr *RegexRandomizer) pickAlternative(subs []*syntax.Regexp) *syntax.Regexp {
	for {
		sub := subs[rr.src.IntN(len(subs))]
		if !hasNoMatch(sub) {
			return sub
		}
	}
}

func swapCase(r rune) rune {
	if unicode.IsUpper(r) {
		return unicode.ToLower(r)
	}
	return unicode.ToUpper(r)
}

// pickFromRanges draws a rune from the class. Printable ASCII members are preferred so negated classes
// do not produce control or exotic unicode characters.
func (rr *RegexRandomizer) pickFromRanges(ranges []rune) rune {
	printable := intersectRanges(ranges, printableLow, printableHigh)
	if len(printable) > 0 {
		ranges = printable
	}
	var total int
	for i := 0; i < len(ranges); i += 2 {
		total += int(ranges[i+1]-ranges[i]) + 1
	}
	idx := rr.src.IntN(total)
	for i := 0; i < len(ranges); i += 2 {
		size := int(ranges[i+1]-ranges[i]) + 1
		if idx < size {
			return ranges[i] + rune(idx)
		}
		idx -= size
	}
	return ranges[0]
}

func intersectRanges(ranges []rune, low, high rune) []rune {
	var res []rune
	for i := 0; i < len(ranges); i += 2 {
		lo, hi := max(ranges[i], low), min(ranges[i+1], high)
		if lo <= hi {
			res = append(res, lo, hi)
		}
	}
	return res
}

func hasNoMatch(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpNoMatch:
		return true
	case syntax.OpCharClass:
		return len(re.Rune) == 0
	case syntax.OpAlternate:
		for _, sub := range re.Sub {
			if !hasNoMatch(sub) {
				return false
			}
		}
		return true
	case syntax.OpStar, syntax.OpQuest:
		return false
	case syntax.OpRepeat:
		if re.Min == 0 {
			return false
		}
	}
	for _, sub := range re.Sub {
		if hasNoMatch(sub) {
			return true
		}
	}
	return false
}
