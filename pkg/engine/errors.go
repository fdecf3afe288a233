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

	"github.com/greenmaskio/greenrand/pkg/constraints"
)

var (
	ErrMalformedPattern    = errors.New("malformed pattern")
	ErrUnsatisfiableBounds = errors.New("unsatisfiable bounds")
	ErrTypeUnresolved      = errors.New("unable to resolve type")
	ErrNoValue             = errors.New("no value")
	ErrInvalidParameter    = constraints.ErrInvalidParameter
)

// ResolutionError is returned when a handler fails to build or run a randomizer for a slot.
type ResolutionError struct {
	Slot   string
	Type   reflect.Type
	Kind   constraints.Kind
	Params constraints.Params
	Err    error
}

func newResolutionError(slot Slot, c constraints.Constraint, err error) *ResolutionError {
	return &ResolutionError{
		Slot:   slot.Name,
		Type:   slot.Type,
		Kind:   c.Kind,
		Params: c.Params,
		Err:    err,
	}
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("slot %q of type %v: constraint %s: %v", e.Slot, e.Type, e.Kind, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
