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
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/greenrand/pkg/constraints"
	"github.com/greenmaskio/greenrand/pkg/generators"
	"github.com/greenmaskio/greenrand/pkg/semantic"
)

// Engine resolves slot constraints into randomizers and generates values. The handler set is fixed at
// construction. An Engine is safe for concurrent use.
type Engine struct {
	cfg             *Config
	kinds           []constraints.Kind
	handlers        map[constraints.Kind]Handler
	deriver         *generators.Deriver
	catalog         *TypeCatalog
	cache           *semantic.Cache
	providerFactory semantic.ProviderFactory
	populator       Populator
	observer        Observer
	enums           map[reflect.Type][]reflect.Value
	impls           map[reflect.Type]reflect.Type
	semanticTypes   map[reflect.Type]semantic.Category
	now             time.Time
}

// New creates an engine. A nil cfg means NewConfig() and a nil registry means DefaultRegistry().
func New(cfg *Config, registry *Registry, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if registry == nil {
		var err error
		registry, err = DefaultRegistry()
		if err != nil {
			return nil, err
		}
	}

	e := &Engine{
		cfg:       cfg,
		kinds:     registry.Kinds(),
		handlers:  make(map[constraints.Kind]Handler, registry.Len()),
		deriver:   generators.NewDeriver(cfg.Seed),
		catalog:   NewTypeCatalog(),
		populator: ReflectPopulator{},
		observer:  noopObserver{},
		enums:     make(map[reflect.Type][]reflect.Value),
		impls:     make(map[reflect.Type]reflect.Type),
		semanticTypes: map[reflect.Type]semantic.Category{
			reflect.TypeFor[semantic.Address](): semantic.CategoryAddress,
			reflect.TypeFor[semantic.Person]():  semantic.CategoryPerson,
		},
		now: cfg.Now,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	for _, kind := range e.kinds {
		factory, _ := registry.Get(kind)
		e.handlers[kind] = factory(cfg)
	}

	e.cache = semantic.NewCache(cfg.Seed, e.providerFactory)
	e.cache.OnConstructed(e.observer.OnProviderConstructed)

	log.Debug().
		Int64("Seed", cfg.Seed).
		Int("Handlers", len(e.handlers)).
		Msg("engine initialised")
	return e, nil
}

func (e *Engine) Config() *Config {
	return e.cfg
}

func (e *Engine) Catalog() *TypeCatalog {
	return e.catalog
}

// Kinds returns the kinds the engine has handlers for in resolution priority order.
func (e *Engine) Kinds() []constraints.Kind {
	res := make([]constraints.Kind, len(e.kinds))
	copy(res, e.kinds)
	return res
}

// Now returns the reference time of temporal constraints: Config.Now when it is set, the current time
// otherwise.
func (e *Engine) Now() time.Time {
	if !e.now.IsZero() {
		return e.now
	}
	return time.Now()
}

func (e *Engine) newScope(slot Slot) *Scope {
	return &Scope{
		engine: e,
		src:    e.deriver.Next(slot.Name),
		locale: e.slotLocale(slot),
		size:   slot.Size,
	}
}

func (e *Engine) slotLocale(slot Slot) string {
	if slot.Locale != "" {
		return slot.Locale
	}
	return e.cfg.DefaultLocale
}

// Resolve returns the randomizer of the first constraint of the slot that has a registered handler.
// The boolean is false when no constraint applies: none is registered or the handler declined the slot
// type. Every call obtains its own random source.
func (e *Engine) Resolve(slot Slot) (Randomizer, bool, error) {
	if slot.Type == nil {
		return nil, false, fmt.Errorf("slot %q has no type: %w", slot.Name, ErrTypeUnresolved)
	}
	return e.resolve(e.newScope(slot), slot)
}

func (e *Engine) resolve(scope *Scope, slot Slot) (Randomizer, bool, error) {
	for _, c := range slot.Constraints {
		h, ok := e.handlers[c.Kind]
		if !ok {
			continue
		}
		r, err := h.Randomizer(scope, slot, c)
		if err != nil {
			e.observer.OnResolve(c.Kind, OutcomeFailed)
			return nil, false, newResolutionError(slot, c, err)
		}
		if r == nil {
			e.observer.OnResolve(c.Kind, OutcomeDeclined)
			log.Debug().
				Str("Slot", slot.Name).
				Str("Type", slot.Type.String()).
				Str("Constraint", c.Kind.String()).
				Msg("constraint does not apply to the slot type")
			return nil, false, nil
		}
		e.observer.OnResolve(c.Kind, OutcomeApplied)
		return r, true, nil
	}
	return nil, false, nil
}

// DispatchSemantic returns a value of the category from the provider of the locale. The provider is
// constructed on the first use of the locale.
func (e *Engine) DispatchSemantic(category semantic.Category, locale string) (any, bool) {
	if locale == "" {
		locale = e.cfg.DefaultLocale
	}
	return e.cache.Dispatch(category, locale)
}

// Generate produces a value of the slot type. The first applicable constraint wins; without one the
// value comes from the semantic provider for semantic types and from the populator otherwise.
func (e *Engine) Generate(slot Slot) (any, error) {
	if slot.Type == nil {
		t, err := e.Infer(slot)
		if err != nil {
			return nil, err
		}
		slot.Type = t
	}
	v, err := e.generate(e.newScope(slot), slot)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// Value generates a value of T honoring the constraints.
func Value[T any](e *Engine, cs ...constraints.Constraint) (T, error) {
	var res T
	v, err := e.Generate(SlotOf[T]("", cs...))
	if err != nil {
		return res, err
	}
	if v == nil {
		return res, nil
	}
	res, ok := v.(T)
	if !ok {
		return res, fmt.Errorf("generated %T instead of %T: %w", v, res, ErrNoValue)
	}
	return res, nil
}

func (e *Engine) generate(scope *Scope, slot Slot) (reflect.Value, error) {
	scope.locale = e.slotLocale(slot)
	if slot.Size > 0 {
		scope.size = slot.Size
	}
	r, ok, err := e.resolve(scope.sibling(), slot)
	if err != nil {
		return reflect.Value{}, err
	}
	if ok {
		v, err := r.Generate()
		if err == nil {
			if rv, ok := assignValue(slot.Type, v); ok {
				return rv, nil
			}
			err = fmt.Errorf("value of type %T is not assignable to %s: %w", v, slot.Type, ErrNoValue)
		}
		if !errors.Is(err, ErrNoValue) {
			return reflect.Value{}, fmt.Errorf("slot %q: %w", slot.Name, err)
		}
		log.Debug().
			Err(err).
			Str("Slot", slot.Name).
			Msg("constraint produced no value: using fallback")
	}

	e.observer.OnFallback(slot.Name)
	if category, ok := e.semanticTypes[derefType(slot.Type)]; ok {
		if v, ok := e.DispatchSemantic(category, scope.locale); ok {
			if rv, ok := assignValue(slot.Type, v); ok {
				return rv, nil
			}
		}
	}

	t := slot.Type
	if t.Kind() == reflect.Interface {
		if inferred, err := e.Infer(slot); err == nil && isConcrete(inferred) && inferred.AssignableTo(t) {
			t = inferred
		}
	} else if args := typeArgsOf(t); len(args) == 1 && args[0].Kind() == reflect.Interface {
		if inferred, err := e.Infer(slot); err == nil && isConcrete(inferred) {
			scope.elem = inferred
		}
	}
	return e.populate(scope, t, slot.Type)
}

// populate runs the populator for t and converts the result to the slot type.
func (e *Engine) populate(scope *Scope, t, slotType reflect.Type) (reflect.Value, error) {
	v, err := e.populator.Populate(t, scope)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("populate %s: %w", t, err)
	}
	rv, ok := assignValue(slotType, v)
	if !ok {
		return reflect.Value{}, fmt.Errorf("populated %T is not assignable to %s: %w", v, slotType, ErrNoValue)
	}
	return rv, nil
}

// element generates a constraint free nested value.
func (e *Engine) element(scope *Scope, slot Slot) (reflect.Value, error) {
	return e.generate(scope.Child(), slot)
}
