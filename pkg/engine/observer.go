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
	"github.com/greenmaskio/greenrand/pkg/constraints"
	"github.com/greenmaskio/greenrand/pkg/semantic"
)

type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeDeclined Outcome = "declined"
	OutcomeFailed   Outcome = "failed"
)

// Observer receives engine events. Implementations must be safe for concurrent use.
type Observer interface {
	OnResolve(kind constraints.Kind, outcome Outcome)
	OnFallback(slot string)
	OnProviderConstructed(locale semantic.LocaleKey)
}

type noopObserver struct{}

func (noopObserver) OnResolve(constraints.Kind, Outcome) {}

func (noopObserver) OnFallback(string) {}

func (noopObserver) OnProviderConstructed(semantic.LocaleKey) {}
