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

	"github.com/greenmaskio/greenrand/pkg/generators"
)

// Scope carries the state of one generation call down the recursion: the random source, the nesting
// depth and the slot-level settings inherited by nested values.
type Scope struct {
	engine *Engine
	src    *generators.Source
	depth  int
	locale string
	size   int
	// elem is the inferred element type used for containers of interface elements.
	elem reflect.Type
}

func (s *Scope) Engine() *Engine {
	return s.engine
}

func (s *Scope) Source() *generators.Source {
	return s.src
}

func (s *Scope) Config() *Config {
	return s.engine.cfg
}

func (s *Scope) Depth() int {
	return s.depth
}

func (s *Scope) Locale() string {
	return s.locale
}

// Exhausted reports whether the nesting depth reached the configured limit.
func (s *Scope) Exhausted() bool {
	return s.depth > s.engine.cfg.MaxDepth
}

// CollectionSize returns the size bounds of unconstrained collections.
func (s *Scope) CollectionSize() (int, int) {
	if s.size > 0 {
		return s.size, s.size
	}
	return s.engine.cfg.CollectionSize.Min, s.engine.cfg.CollectionSize.Max
}

// ElementHint returns the inferred element type for containers of interface elements.
func (s *Scope) ElementHint() reflect.Type {
	return s.elem
}

// Child returns a nested scope with an independent source derived from this one. Slot-level size and
// element hints are not inherited.
func (s *Scope) Child() *Scope {
	return &Scope{
		engine: s.engine,
		src:    s.src.Child(),
		depth:  s.depth + 1,
		locale: s.locale,
	}
}

func (s *Scope) sibling() *Scope {
	return &Scope{
		engine: s.engine,
		src:    s.src.Child(),
		depth:  s.depth,
		locale: s.locale,
		size:   s.size,
		elem:   s.elem,
	}
}
