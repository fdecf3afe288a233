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

package constraints

import (
	"fmt"
	"strings"
)

type Namespace string

const (
	NamespaceCurrent Namespace = "current"
	NamespaceLegacy  Namespace = "legacy"
)

// Kind identifies a constraint within its vocabulary. Kinds with the same name in different namespaces
// are different kinds.
type Kind struct {
	Namespace Namespace
	Name      string
}

func NewKind(ns Namespace, name string) Kind {
	return Kind{
		Namespace: ns,
		Name:      name,
	}
}

func (k Kind) String() string {
	return string(k.Namespace) + "." + k.Name
}

func (k Kind) IsZero() bool {
	return k.Name == ""
}

// ParseKind parses "namespace.Name" or a bare name. Bare names are looked up in the current vocabulary
// first, then in the legacy one. Unknown bare names are placed into the current namespace.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Kind{}, fmt.Errorf("empty constraint name: %w", ErrMalformedTag)
	}
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		ns, name := Namespace(s[:idx]), s[idx+1:]
		if ns != NamespaceCurrent && ns != NamespaceLegacy {
			return Kind{}, fmt.Errorf("unknown namespace %q: %w", ns, ErrMalformedTag)
		}
		if !isIdentifier(name) {
			return Kind{}, fmt.Errorf("invalid constraint name %q: %w", name, ErrMalformedTag)
		}
		return NewKind(ns, name), nil
	}
	if !isIdentifier(s) {
		return Kind{}, fmt.Errorf("invalid constraint name %q: %w", s, ErrMalformedTag)
	}
	if k := NewKind(NamespaceCurrent, s); IsKnown(k) {
		return k, nil
	}
	if k := NewKind(NamespaceLegacy, s); IsKnown(k) {
		return k, nil
	}
	return NewKind(NamespaceCurrent, s), nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
