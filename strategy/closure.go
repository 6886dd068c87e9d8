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

package strategy

import (
	"log/slog"
	"reflect"

	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/property"
)

// NewClosure creates an apis.Strategy that caches, per property, a closure
// around the method expression of the getter or setter. A nil reg selects
// the process-wide registry of apis.Closure.
//
// The closure caches method resolution only: each call still goes through
// reflect.Value.Call. Use NewGenerated for calls without reflection.
func NewClosure(reg apis.Registry, log *slog.Logger) apis.Strategy {
	return newCached(apis.Closure, reg, log, closureEmitter{})
}

// closureEmitter adapts the method expression (func(*T) V or func(*T, V)) to
// the untyped GetFunc/SetFunc calling convention.
type closureEmitter struct{}

func (closureEmitter) getter(p *property.Property) (apis.GetFunc, error) {
	return callGetter(p.GetMethod().Func), nil
}

func (closureEmitter) setter(p *property.Property) (apis.SetFunc, error) {
	return callSetter(p.SetMethod().Func, p.Type()), nil
}

// callGetter wraps the method expression fn of a getter. The conversions to
// and from reflect.Value happen at the adapter boundary only.
func callGetter(fn reflect.Value) apis.GetFunc {
	return func(target any) (any, error) {
		out := fn.Call([]reflect.Value{reflect.ValueOf(target)})
		return out[0].Interface(), nil
	}
}

// callSetter wraps the method expression fn of a setter taking vt. A nil
// value is passed as the zero value of vt.
func callSetter(fn reflect.Value, vt reflect.Type) apis.SetFunc {
	zero := reflect.Zero(vt)
	return func(target any, value any) error {
		v := zero
		if value != nil {
			v = reflect.ValueOf(value)
		}
		fn.Call([]reflect.Value{reflect.ValueOf(target), v})
		return nil
	}
}
