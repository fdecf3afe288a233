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
	"fmt"
	"slices"

	"github.com/greenmaskio/greenrand/pkg/constraints"
)

var (
	CurrentRegistry = NewRegistry()
	LegacyRegistry  = NewRegistry()
)

// Registry maps constraint kinds to handler factories keeping the registration order.
type Registry struct {
	kinds     []constraints.Kind
	factories map[constraints.Kind]HandlerFactory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[constraints.Kind]HandlerFactory),
	}
}

// Register adds the factory of the kind. A factory registered earlier for the same kind is replaced.
func (r *Registry) Register(kind constraints.Kind, factory HandlerFactory) {
	if _, ok := r.factories[kind]; !ok {
		r.kinds = append(r.kinds, kind)
	}
	r.factories[kind] = factory
}

// MustRegister adds the factory of the kind and panics when the kind is already registered.
func (r *Registry) MustRegister(kind constraints.Kind, factory HandlerFactory) {
	if _, ok := r.factories[kind]; ok {
		panic(fmt.Sprintf("register handler %s: %v", kind, constraints.ErrKindConflict))
	}
	r.Register(kind, factory)
}

func (r *Registry) Get(kind constraints.Kind) (HandlerFactory, bool) {
	f, ok := r.factories[kind]
	return f, ok
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []constraints.Kind {
	return slices.Clone(r.kinds)
}

func (r *Registry) Len() int {
	return len(r.kinds)
}

// Merge adds every kind of other. A kind registered in both registries is a conflict and nothing is
// merged in that case.
func (r *Registry) Merge(other *Registry) error {
	for _, kind := range other.kinds {
		if _, ok := r.factories[kind]; ok {
			return fmt.Errorf("merge registries: kind %s is registered twice: %w", kind, constraints.ErrKindConflict)
		}
	}
	for _, kind := range other.kinds {
		r.Register(kind, other.factories[kind])
	}
	return nil
}

func (r *Registry) Clone() *Registry {
	res := NewRegistry()
	for _, kind := range r.kinds {
		res.Register(kind, r.factories[kind])
	}
	return res
}

// DefaultRegistry returns the current and the legacy vocabularies merged together.
func DefaultRegistry() (*Registry, error) {
	res := CurrentRegistry.Clone()
	if err := res.Merge(LegacyRegistry); err != nil {
		return nil, err
	}
	return res, nil
}

func init() {
	CurrentRegistry.MustRegister(constraints.Range, NewNumericHandler)
	CurrentRegistry.MustRegister(constraints.CurrentDecimalMin, NewNumericHandler)
	CurrentRegistry.MustRegister(constraints.CurrentDecimalMax, NewNumericHandler)
	CurrentRegistry.MustRegister(constraints.CurrentPattern, NewPatternHandler)
	CurrentRegistry.MustRegister(constraints.Length, NewSizeHandler)
	CurrentRegistry.MustRegister(constraints.NotEmpty, NewSizeHandler)
	CurrentRegistry.MustRegister(constraints.Semantic, NewSemanticHandler)
	CurrentRegistry.MustRegister(constraints.CreditCardNumber, NewCreditCardHandler)
	CurrentRegistry.MustRegister(constraints.EAN, NewEANHandler)
	CurrentRegistry.MustRegister(constraints.ISBN, NewISBNHandler)
	CurrentRegistry.MustRegister(constraints.URL, NewURLHandler)
	CurrentRegistry.MustRegister(constraints.UUID, NewUUIDHandler)

	LegacyRegistry.MustRegister(constraints.AssertTrue, NewBoolHandler)
	LegacyRegistry.MustRegister(constraints.AssertFalse, NewBoolHandler)
	LegacyRegistry.MustRegister(constraints.Null, NewNullHandler)
	LegacyRegistry.MustRegister(constraints.Future, NewTemporalHandler)
	LegacyRegistry.MustRegister(constraints.FutureOrPresent, NewTemporalHandler)
	LegacyRegistry.MustRegister(constraints.Past, NewTemporalHandler)
	LegacyRegistry.MustRegister(constraints.PastOrPresent, NewTemporalHandler)
	LegacyRegistry.MustRegister(constraints.Min, NewNumericHandler)
	LegacyRegistry.MustRegister(constraints.Max, NewNumericHandler)
	LegacyRegistry.MustRegister(constraints.DecimalMin, NewNumericHandler)
	LegacyRegistry.MustRegister(constraints.DecimalMax, NewNumericHandler)
	LegacyRegistry.MustRegister(constraints.Pattern, NewPatternHandler)
	LegacyRegistry.MustRegister(constraints.Size, NewSizeHandler)
	LegacyRegistry.MustRegister(constraints.Positive, NewNumericHandler)
	LegacyRegistry.MustRegister(constraints.PositiveOrZero, NewNumericHandler)
	LegacyRegistry.MustRegister(constraints.Negative, NewNumericHandler)
	LegacyRegistry.MustRegister(constraints.NegativeOrZero, NewNumericHandler)
	LegacyRegistry.MustRegister(constraints.NotBlank, NewNotBlankHandler)
	LegacyRegistry.MustRegister(constraints.Email, NewEmailHandler)
}
