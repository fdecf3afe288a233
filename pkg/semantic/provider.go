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

// Provider produces realistic values of semantic categories for a single locale. Implementations must be
// safe for concurrent use because one provider instance is shared by every caller of its locale.
type Provider interface {
	ValueFor(category Category) (any, error)
}

// ProviderFactory builds the provider of a locale. It is called at most once per locale key by a Cache.
type ProviderFactory func(locale Locale) (Provider, error)

type ProviderFunc func(category Category) (any, error)

func (f ProviderFunc) ValueFor(category Category) (any, error) {
	return f(category)
}
