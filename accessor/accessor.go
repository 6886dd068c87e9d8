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

// Package accessor provides the Get/Set facade over one strategy.
package accessor

import (
	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/coerce"
	"dirpx.dev/propx/property"
	"dirpx.dev/propx/strategy"
)

// New constructs an apis.Accessor that delegates to s and routes every value
// through c. A nil c selects coerce.Default(). The returned accessor is safe
// for concurrent use provided s and c are.
func New(s apis.Strategy, c apis.Coercer) apis.Accessor {
	if s == nil {
		panic("propx(accessor): nil strategy")
	}
	if c == nil {
		c = coerce.Default()
	}
	return facade{s: s, c: c}
}

// facade is an immutable pairing of a strategy and a coercer.
// Switching strategy means building a new facade.
type facade struct {
	s apis.Strategy
	c apis.Coercer
}

// Get reads p on target and coerces the result.
func (a facade) Get(p *property.Property, target any) (any, error) {
	v, err := a.s.GetValue(p, target)
	if err != nil {
		return nil, err
	}
	out, err := a.c.Coerce(p, v)
	if err != nil {
		return nil, &apis.AccessError{Op: apis.OpGet, Property: p.String(), Strategy: a.s.Kind(), Err: err}
	}
	return out, nil
}

// Set coerces value and writes it into p on target. Argument errors take
// precedence over conversion errors.
func (a facade) Set(p *property.Property, target any, value any) error {
	if err := strategy.Validate(apis.OpSet, p, target); err != nil {
		return &apis.AccessError{Op: apis.OpSet, Property: p.String(), Strategy: a.s.Kind(), Err: err}
	}
	v, err := a.c.Coerce(p, value)
	if err != nil {
		return &apis.AccessError{Op: apis.OpSet, Property: p.String(), Strategy: a.s.Kind(), Err: err}
	}
	return a.s.SetValue(p, target, v)
}

// Strategy returns the strategy backing the facade.
func (a facade) Strategy() apis.Strategy { return a.s }
