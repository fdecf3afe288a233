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

	"github.com/greenmaskio/greenrand/pkg/generators"
)

var ErrEmptyChoice = errors.New("choice values list is empty")

type ChoiceRandomizer[T any] struct {
	src    *generators.Source
	values []T
}

func NewChoiceRandomizer[T any](src *generators.Source, values []T) (*ChoiceRandomizer[T], error) {
	if len(values) == 0 {
		return nil, ErrEmptyChoice
	}
	return &ChoiceRandomizer[T]{
		src:    src,
		values: values,
	}, nil
}

func (rc *ChoiceRandomizer[T]) Next() T {
	return rc.values[rc.src.IntN(len(rc.values))]
}
