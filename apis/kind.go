/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import (
	"fmt"
	"strings"
)

// Kind selects one of the interchangeable accessor strategies.
//
// All kinds produce identical observable results for Get and Set. They differ
// only in how (and whether) they build and cache accessor artifacts:
//
//   - Direct: resolves the method through reflection on every call. No cache.
//     Works everywhere and serves as the correctness baseline.
//   - Closure: builds a closure around the method expression once per
//     property and caches it. Only method resolution is cached; each call
//     still goes through reflect.Value.Call.
//   - Generated: builds a typed thunk once per property that invokes the
//     method's code directly, without reflection on the hot path. Value
//     types without a template fall back to a reflection-backed thunk.
type Kind int

const (
	// Generated is the default and fastest kind.
	Generated Kind = iota
	// Closure caches method resolution in reflection-backed closures.
	Closure
	// Direct never caches.
	Direct
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case Generated:
		return "generated"
	case Closure:
		return "closure"
	case Direct:
		return "direct"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == Generated || k == Closure || k == Direct
}

// ParseKind parses a case-insensitive kind name.
func ParseKind(s string) (Kind, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Generated, fmt.Errorf("propx: empty strategy kind")
	}

	switch strings.ToLower(trimmed) {
	case "generated":
		return Generated, nil
	case "closure":
		return Closure, nil
	case "direct":
		return Direct, nil
	default:
		return Generated, fmt.Errorf("propx: unknown strategy kind %q", s)
	}
}

// MustParseKind is like ParseKind but panics on error.
func MustParseKind(s string) Kind {
	k, err := ParseKind(s)
	if err != nil {
		panic(err)
	}
	return k
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("propx: cannot marshal unknown strategy kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
