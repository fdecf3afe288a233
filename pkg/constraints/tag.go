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

package constraints

import (
	"fmt"
	"strings"
)

const TagName = "rand"

// ParseTag parses a struct tag value such as
//
//	Range(min=1, max=10); Pattern(regex='[a-z]{3}'); legacy.NotBlank
//
// Constraints are separated by semicolons and keep their declaration order. Quoted values are taken
// verbatim except for \' which stands for a single quote.
func ParseTag(tag string) ([]Constraint, error) {
	p := &tagParser{src: tag}
	var res []Constraint
	seen := make(map[Kind]struct{})
	for {
		p.skipSpaces()
		if p.eof() {
			return res, nil
		}
		c, err := p.constraint()
		if err != nil {
			return nil, fmt.Errorf("parse tag %q: %w", tag, err)
		}
		if _, ok := seen[c.Kind]; ok {
			return nil, fmt.Errorf("parse tag %q: constraint %s is declared twice: %w", tag, c.Kind, ErrMalformedTag)
		}
		seen[c.Kind] = struct{}{}
		res = append(res, c)
		p.skipSpaces()
		if p.eof() {
			return res, nil
		}
		if p.peek() != ';' {
			return nil, p.errorf(tag, "expected ';'")
		}
		p.pos++
	}
}

type tagParser struct {
	src string
	pos int
}

func (p *tagParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *tagParser) peek() byte {
	return p.src[p.pos]
}

func (p *tagParser) skipSpaces() {
	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

func (p *tagParser) errorf(tag, msg string) error {
	return fmt.Errorf("parse tag %q: %s at position %d: %w", tag, msg, p.pos, ErrMalformedTag)
}

func (p *tagParser) constraint() (Constraint, error) {
	start := p.pos
	for !p.eof() && p.peek() != '(' && p.peek() != ';' {
		p.pos++
	}
	kind, err := ParseKind(p.src[start:p.pos])
	if err != nil {
		return Constraint{}, err
	}
	c := New(kind, nil)
	if p.eof() || p.peek() != '(' {
		return c, nil
	}
	p.pos++
	for {
		p.skipSpaces()
		if p.eof() {
			return Constraint{}, fmt.Errorf("unterminated parameter list of %s: %w", kind, ErrMalformedTag)
		}
		if p.peek() == ')' {
			p.pos++
			return c, nil
		}
		name, value, err := p.param()
		if err != nil {
			return Constraint{}, fmt.Errorf("%s: %w", kind, err)
		}
		if _, ok := c.Params[name]; ok {
			return Constraint{}, fmt.Errorf("%s: parameter %q is set twice: %w", kind, name, ErrMalformedTag)
		}
		c.Params[name] = value
		p.skipSpaces()
		if !p.eof() && p.peek() == ',' {
			p.pos++
		}
	}
}

func (p *tagParser) param() (string, string, error) {
	start := p.pos
	for !p.eof() && p.peek() != '=' && p.peek() != ')' && p.peek() != ',' {
		p.pos++
	}
	name := strings.TrimSpace(p.src[start:p.pos])
	if !isIdentifier(name) {
		return "", "", fmt.Errorf("invalid parameter name %q: %w", name, ErrMalformedTag)
	}
	if p.eof() || p.peek() != '=' {
		return "", "", fmt.Errorf("parameter %q has no value: %w", name, ErrMalformedTag)
	}
	p.pos++
	p.skipSpaces()
	if !p.eof() && p.peek() == '\'' {
		value, err := p.quoted()
		if err != nil {
			return "", "", fmt.Errorf("parameter %q: %w", name, err)
		}
		return name, value, nil
	}
	start = p.pos
	for !p.eof() && p.peek() != ',' && p.peek() != ')' {
		p.pos++
	}
	return name, strings.TrimSpace(p.src[start:p.pos]), nil
}

func (p *tagParser) quoted() (string, error) {
	p.pos++
	var sb strings.Builder
	for !p.eof() {
		c := p.peek()
		switch {
		case c == '\\' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '\'':
			sb.WriteByte('\'')
			p.pos += 2
		case c == '\'':
			p.pos++
			return sb.String(), nil
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("unterminated quoted value: %w", ErrMalformedTag)
}
