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

package semantic

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/greenmaskio/greenrand/pkg/generators"
)

// Cache lazily constructs one provider per locale key and reuses it afterwards. Concurrent first
// accesses to the same key share a single construction.
type Cache struct {
	seed          int64
	factory       ProviderFactory
	onConstructed func(key LocaleKey)
	mx            sync.RWMutex
	providers     map[LocaleKey]Provider
	group         singleflight.Group
}

func NewCache(seed int64, factory ProviderFactory) *Cache {
	if factory == nil {
		factory = NewFakerProvider
	}
	return &Cache{
		seed:      seed,
		factory:   factory,
		providers: make(map[LocaleKey]Provider),
	}
}

// OnConstructed registers a callback called after each successful provider construction.
func (c *Cache) OnConstructed(fn func(key LocaleKey)) {
	c.onConstructed = fn
}

// Provider returns the provider of the locale, constructing it on the first access.
func (c *Cache) Provider(locale string) (Provider, error) {
	key, tag, err := ParseLocale(locale)
	if err != nil {
		return nil, err
	}
	if p, ok := c.lookup(key); ok {
		return p, nil
	}

	res, err, _ := c.group.Do(string(key), func() (any, error) {
		if p, ok := c.lookup(key); ok {
			return p, nil
		}
		region, _ := tag.Region()
		p, err := c.factory(Locale{
			Key:    key,
			Tag:    tag,
			Region: region,
			Seed:   generators.PerturbSeed(c.seed, string(key)),
		})
		if err != nil {
			return nil, fmt.Errorf("construct provider for locale %s: %w", key, err)
		}
		c.mx.Lock()
		c.providers[key] = p
		c.mx.Unlock()
		log.Debug().
			Str("Locale", string(key)).
			Msg("semantic provider constructed")
		if c.onConstructed != nil {
			c.onConstructed(key)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(Provider), nil
}

// Dispatch returns a value of the category from the locale provider. Any failure results in no value.
func (c *Cache) Dispatch(category Category, locale string) (any, bool) {
	p, err := c.Provider(locale)
	if err != nil {
		log.Debug().
			Err(err).
			Str("Locale", locale).
			Str("Category", string(category)).
			Msg("semantic provider is not available")
		return nil, false
	}
	v, err := p.ValueFor(category)
	if err != nil {
		log.Debug().
			Err(err).
			Str("Locale", locale).
			Str("Category", string(category)).
			Msg("semantic provider returned no value")
		return nil, false
	}
	return v, true
}

// Locales returns the keys of constructed providers.
func (c *Cache) Locales() []LocaleKey {
	c.mx.RLock()
	defer c.mx.RUnlock()
	res := make([]LocaleKey, 0, len(c.providers))
	for k := range c.providers {
		res = append(res, k)
	}
	return res
}

func (c *Cache) lookup(key LocaleKey) (Provider, bool) {
	c.mx.RLock()
	defer c.mx.RUnlock()
	p, ok := c.providers[key]
	return p, ok
}
