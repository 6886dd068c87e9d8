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

// Package strategy implements the interchangeable accessor strategies.
//
// Every strategy validates its arguments the same way and in the same order
// (see Validate), so the kinds are indistinguishable to callers apart from
// speed. Direct never caches. Closure and Generated build one artifact per
// property and operation, store it in an apis.Registry with insert-if-absent
// semantics and invoke it directly afterwards. Properties declared on
// value-semantics owners always take the direct path and are never cached.
package strategy

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/property"
)

// ErrUnknownKind is returned by New for an unknown strategy kind.
var ErrUnknownKind = errors.New("propx(strategy): unknown strategy kind")

// discard is the logger used when none is configured.
var discard = slog.New(slog.DiscardHandler)

// New returns the Strategy of kind k. Caching kinds store their artifacts in
// reg; a nil reg selects the process-wide registry of the kind.
func New(k apis.Kind, reg apis.Registry, log *slog.Logger) (apis.Strategy, error) {
	switch k {
	case apis.Direct:
		return NewDirect(), nil
	case apis.Closure:
		return NewClosure(reg, log), nil
	case apis.Generated:
		return NewGenerated(reg, log), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, k)
	}
}

// Validate checks the arguments of a Get (op == apis.OpGet) or Set call.
// It returns apis.ErrNullArgument for a missing descriptor or target (a nil
// pointer counts as missing), apis.ErrNotReadable or apis.ErrNotWritable for a
// missing capability and apis.ErrIncompatibleTarget when the target's dynamic
// type is not the owner type.
func Validate(op apis.Op, p *property.Property, target any) error {
	if p == nil || isNil(target) {
		return apis.ErrNullArgument
	}
	if op == apis.OpGet && !p.CanRead() {
		return apis.ErrNotReadable
	}
	if op == apis.OpSet && !p.CanWrite() {
		return apis.ErrNotWritable
	}
	if t := reflect.TypeOf(target); t != p.Owner() {
		return fmt.Errorf("%w: %s is not %s", apis.ErrIncompatibleTarget, t, p.Owner())
	}
	return nil
}

// isNil reports whether target is absent.
func isNil(target any) bool {
	if target == nil {
		return true
	}
	v := reflect.ValueOf(target)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// checkValue ensures value can be handed to the setter as is.
func checkValue(p *property.Property, value any) error {
	if value == nil {
		return nil
	}
	vt, pt := reflect.TypeOf(value), p.Type()
	if vt == pt || (pt.Kind() == reflect.Interface && vt.Implements(pt)) {
		return nil
	}
	return fmt.Errorf("%w: %s is not %s", apis.ErrInvalidConversion, vt, pt)
}

// fail wraps err into an *apis.AccessError.
func fail(op apis.Op, p *property.Property, k apis.Kind, err error) error {
	return &apis.AccessError{Op: op, Property: p.String(), Strategy: k, Err: err}
}

// valueOf returns the reflect.Value handed to a setter. nil becomes the zero
// value of the property type.
func valueOf(p *property.Property, value any) reflect.Value {
	if value == nil {
		return reflect.Zero(p.Type())
	}
	return reflect.ValueOf(value)
}
