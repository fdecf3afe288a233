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
	"reflect"

	"github.com/greenmaskio/greenrand/pkg/semantic"
)

type Option func(e *Engine) error

// WithPopulator replaces the populator used for slots without an applicable constraint.
func WithPopulator(p Populator) Option {
	return func(e *Engine) error {
		e.populator = p
		return nil
	}
}

// WithTypes registers named types in the type catalog.
func WithTypes(types ...reflect.Type) Option {
	return func(e *Engine) error {
		for _, t := range types {
			if err := e.catalog.Register(t); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithEnum registers the closed set of values of T. The populator draws T values from this set only.
func WithEnum[T comparable](values ...T) Option {
	return func(e *Engine) error {
		if len(values) == 0 {
			return fmt.Errorf("enum has no values: %w", ErrInvalidParameter)
		}
		t := reflect.TypeOf((*T)(nil)).Elem()
		vals := make([]reflect.Value, len(values))
		for i, v := range values {
			vals[i] = reflect.ValueOf(v)
		}
		e.enums[t] = vals
		return e.catalog.Register(t)
	}
}

// WithImplementation makes the populator and the size handler create impl for slots of interface type
// iface.
func WithImplementation(iface, impl reflect.Type) Option {
	return func(e *Engine) error {
		if iface.Kind() != reflect.Interface {
			return fmt.Errorf("%s is not an interface: %w", iface, ErrInvalidParameter)
		}
		if !impl.Implements(iface) {
			return fmt.Errorf("%s does not implement %s: %w", impl, iface, ErrInvalidParameter)
		}
		e.impls[iface] = impl
		return nil
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) error {
		e.observer = o
		return nil
	}
}

// WithProviderFactory replaces the semantic provider factory. It is called at most once per locale.
func WithProviderFactory(f semantic.ProviderFactory) Option {
	return func(e *Engine) error {
		e.providerFactory = f
		return nil
	}
}

// WithSemanticType maps a Go type to a semantic category, so unconstrained slots of this type get values
// from the locale provider.
func WithSemanticType(t reflect.Type, category semantic.Category) Option {
	return func(e *Engine) error {
		e.semanticTypes[t] = category
		return e.catalog.Register(t)
	}
}
