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
	"fmt"
	"log/slog"
	"reflect"
	"unsafe"

	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/property"
)

// NewGenerated creates an apis.Strategy that caches, per property, a typed
// thunk calling the method's code directly. A nil reg selects the
// process-wide registry of apis.Generated.
//
// The thunk is an instantiation of a statically compiled generic template
// chosen by the property's value type (see RegisterType). It receives the
// target's data pointer as the method receiver, so the hot path performs no
// reflection. Value types with neither an exact template nor a matching
// shape (structs, arrays, most interfaces) are served by a reflection-backed
// thunk until RegisterType is called for them. A method without an invokable
// code pointer fails with apis.ErrCodeGeneration.
func NewGenerated(reg apis.Registry, log *slog.Logger) apis.Strategy {
	return newCached(apis.Generated, reg, log, generatedEmitter{})
}

// generatedEmitter instantiates templates for properties of pointer owners.
type generatedEmitter struct{}

func (generatedEmitter) getter(p *property.Property) (apis.GetFunc, error) {
	m := p.GetMethod()
	code, typ, err := prepare(m, p.Type())
	if err != nil {
		return nil, err
	}
	if tpl, ok := lookupTemplate(p.Type()); ok {
		return tpl.get(code, typ), nil
	}
	return callGetter(m.Func), nil
}

func (generatedEmitter) setter(p *property.Property) (apis.SetFunc, error) {
	m := p.SetMethod()
	code, typ, err := prepare(m, p.Type())
	if err != nil {
		return nil, err
	}
	if tpl, ok := lookupTemplate(p.Type()); ok {
		return tpl.set(code, typ), nil
	}
	return callSetter(m.Func, p.Type()), nil
}

// prepare resolves the code pointer of m and the runtime type descriptor of
// the value type vt (nil for interface types).
func prepare(m reflect.Method, vt reflect.Type) (code, typ unsafe.Pointer, err error) {
	if !m.Func.IsValid() || m.Func.Kind() != reflect.Func {
		return nil, nil, fmt.Errorf("%w: method %s has no function value", apis.ErrCodeGeneration, m.Name)
	}
	code = unpack(m.Func.Interface()).data
	if code == nil {
		return nil, nil, fmt.Errorf("%w: method %s has no code pointer", apis.ErrCodeGeneration, m.Name)
	}
	if vt.Kind() != reflect.Interface {
		typ = unpack(reflect.Zero(vt).Interface()).typ
	}
	return code, typ, nil
}
