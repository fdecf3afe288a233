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
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type countingFactory struct {
	calls atomic.Int64
}

func (f *countingFactory) New(locale Locale) (Provider, error) {
	f.calls.Add(1)
	return ProviderFunc(func(category Category) (any, error) {
		if category == CategoryName {
			return "name-" + string(locale.Key), nil
		}
		return nil, ErrUnsupportedCategory
	}), nil
}

func TestCache_concurrent_first_access(t *testing.T) {
	f := &countingFactory{}
	c := NewCache(1, f.New)

	var eg errgroup.Group
	for i := 0; i < 1000; i++ {
		eg.Go(func() error {
			v, ok := c.Dispatch(CategoryName, "zh_CN")
			if !ok {
				return errors.New("no value")
			}
			if v != "name-zh_CN" {
				return errors.New("unexpected value")
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	assert.Equal(t, int64(1), f.calls.Load())
}

func TestCache_Dispatch(t *testing.T) {
	f := &countingFactory{}
	c := NewCache(1, f.New)

	v, ok := c.Dispatch(CategoryName, "en-us")
	require.True(t, ok)
	assert.Equal(t, "name-en_US", v)

	v, ok = c.Dispatch(CategoryName, "en_US")
	require.True(t, ok)
	assert.Equal(t, "name-en_US", v)
	assert.Equal(t, int64(1), f.calls.Load())

	_, ok = c.Dispatch(CategoryEmail, "en_US")
	require.False(t, ok)

	_, ok = c.Dispatch(CategoryName, "??")
	require.False(t, ok)
	assert.Equal(t, []LocaleKey{"en_US"}, c.Locales())
}

func TestCache_failed_construction_is_not_cached(t *testing.T) {
	var calls int
	c := NewCache(1, func(locale Locale) (Provider, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("temporary")
		}
		return ProviderFunc(func(category Category) (any, error) {
			return "ok", nil
		}), nil
	})
	var constructed []LocaleKey
	c.OnConstructed(func(key LocaleKey) {
		constructed = append(constructed, key)
	})

	_, err := c.Provider("fr")
	require.Error(t, err)
	p, err := c.Provider("fr")
	require.NoError(t, err)
	v, err := p.ValueFor(CategoryWord)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []LocaleKey{"fr"}, constructed)
}
