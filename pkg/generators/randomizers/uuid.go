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
	"fmt"

	"github.com/google/uuid"

	"github.com/greenmaskio/greenrand/pkg/generators"
)

// UUIDRandomizer generates version 4 UUIDs from the seeded source instead of crypto/rand.
type UUIDRandomizer struct {
	src *generators.Source
}

func NewUUIDRandomizer(src *generators.Source) *UUIDRandomizer {
	return &UUIDRandomizer{
		src: src,
	}
}

func (ur *UUIDRandomizer) Next() (uuid.UUID, error) {
	res, err := uuid.NewRandomFromReader(ur.src)
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate uuid: %w", err)
	}
	return res, nil
}
