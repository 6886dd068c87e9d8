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
	"reflect"
	"sync"
	"time"
	"unsafe"

	"dirpx.dev/propx/apis"
)

// A method value obtained from reflect.Type.Method on a pointer type is a
// func(*T, ...) whose receiver is passed like any other pointer argument.
// Templates reinterpret that function as func(unsafe.Pointer, ...) and call it
// with the data word of the target interface, which for pointer owners is the
// pointer itself. Values cross the untyped boundary by boxing into and
// unboxing out of interfaces right at the call.

func init() {
	RegisterType[bool]()
	RegisterType[int]()
	RegisterType[int8]()
	RegisterType[int16]()
	RegisterType[int32]()
	RegisterType[int64]()
	RegisterType[uint]()
	RegisterType[uint8]()
	RegisterType[uint16]()
	RegisterType[uint32]()
	RegisterType[uint64]()
	RegisterType[uintptr]()
	RegisterType[float32]()
	RegisterType[float64]()
	RegisterType[complex64]()
	RegisterType[complex128]()
	RegisterType[string]()
	RegisterType[[]byte]()
	RegisterType[[]string]()
	RegisterType[any]()
	RegisterType[error]()
	RegisterType[time.Time]()
	RegisterType[time.Duration]()
}

// eface is the runtime layout of an empty interface.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func unpack(v any) eface {
	return *(*eface)(unsafe.Pointer(&v))
}

func pack(typ, data unsafe.Pointer) any {
	var v any
	*(*eface)(unsafe.Pointer(&v)) = eface{typ: typ, data: data}
	return v
}

// template instantiates getter and setter thunks for one value type.
// code is the method's function value, typ the runtime type of the value
// type (nil for interface value types).
type template struct {
	get func(code, typ unsafe.Pointer) apis.GetFunc
	set func(code, typ unsafe.Pointer) apis.SetFunc
}

var (
	// exact holds templates keyed by the exact value type.
	exact sync.Map // key: reflect.Type, val: template

	// shapes holds templates keyed by kind. They serve value types without
	// an exact template whose layout matches a builtin type: named
	// primitives and slices box through typ, pointer-shaped types pass
	// their word.
	shapes = map[reflect.Kind]template{
		reflect.Bool:          shape[bool](),
		reflect.Int:           shape[int](),
		reflect.Int8:          shape[int8](),
		reflect.Int16:         shape[int16](),
		reflect.Int32:         shape[int32](),
		reflect.Int64:         shape[int64](),
		reflect.Uint:          shape[uint](),
		reflect.Uint8:         shape[uint8](),
		reflect.Uint16:        shape[uint16](),
		reflect.Uint32:        shape[uint32](),
		reflect.Uint64:        shape[uint64](),
		reflect.Uintptr:       shape[uintptr](),
		reflect.Float32:       shape[float32](),
		reflect.Float64:       shape[float64](),
		reflect.Complex64:     shape[complex64](),
		reflect.Complex128:    shape[complex128](),
		reflect.String:        shape[string](),
		reflect.Slice:         shape[[]byte](),
		reflect.Ptr:           pointerShape,
		reflect.Map:           pointerShape,
		reflect.Chan:          pointerShape,
		reflect.Func:          pointerShape,
		reflect.UnsafePointer: pointerShape,
	}

	pointerShape = template{get: emitGetWord, set: emitSetWord}
)

// RegisterType adds a template for the value type V. Properties of type V
// can then be served by the generated strategy. Registering a type twice is
// harmless.
func RegisterType[V any]() {
	exact.Store(reflect.TypeFor[V](), template{get: emitGet[V], set: emitSet[V]})
}

// lookupTemplate returns the template serving vt.
func lookupTemplate(vt reflect.Type) (template, bool) {
	if t, ok := exact.Load(vt); ok {
		return t.(template), true
	}
	t, ok := shapes[vt.Kind()]
	return t, ok
}

func emitGet[V any](code, _ unsafe.Pointer) apis.GetFunc {
	fn := *(*func(unsafe.Pointer) V)(unsafe.Pointer(&code))
	return func(target any) (any, error) {
		return fn(unpack(target).data), nil
	}
}

func emitSet[V any](code, _ unsafe.Pointer) apis.SetFunc {
	fn := *(*func(unsafe.Pointer, V))(unsafe.Pointer(&code))
	return func(target any, value any) error {
		v, ok := value.(V)
		if !ok && value != nil {
			return fmt.Errorf("%w: %T is not %s", apis.ErrInvalidConversion, value, reflect.TypeFor[V]())
		}
		fn(unpack(target).data, v)
		return nil
	}
}

func shape[S any]() template {
	return template{get: emitGetAs[S], set: emitSetAs[S]}
}

// emitGetAs calls a getter returning a type with the layout of S and boxes
// the result as typ.
func emitGetAs[S any](code, typ unsafe.Pointer) apis.GetFunc {
	fn := *(*func(unsafe.Pointer) S)(unsafe.Pointer(&code))
	return func(target any) (any, error) {
		v := new(S)
		*v = fn(unpack(target).data)
		return pack(typ, unsafe.Pointer(v)), nil
	}
}

// emitSetAs unboxes a value of type typ with the layout of S and calls the setter.
func emitSetAs[S any](code, typ unsafe.Pointer) apis.SetFunc {
	fn := *(*func(unsafe.Pointer, S))(unsafe.Pointer(&code))
	return func(target any, value any) error {
		var v S
		if value != nil {
			e := unpack(value)
			if e.typ != typ {
				return fmt.Errorf("%w: unexpected %T", apis.ErrInvalidConversion, value)
			}
			v = *(*S)(e.data)
		}
		fn(unpack(target).data, v)
		return nil
	}
}

// emitGetWord calls a getter returning a pointer-shaped type and boxes the word as typ.
func emitGetWord(code, typ unsafe.Pointer) apis.GetFunc {
	fn := *(*func(unsafe.Pointer) unsafe.Pointer)(unsafe.Pointer(&code))
	return func(target any) (any, error) {
		return pack(typ, fn(unpack(target).data)), nil
	}
}

// emitSetWord unboxes a pointer-shaped value of type typ and calls the setter.
func emitSetWord(code, typ unsafe.Pointer) apis.SetFunc {
	fn := *(*func(unsafe.Pointer, unsafe.Pointer))(unsafe.Pointer(&code))
	return func(target any, value any) error {
		var w unsafe.Pointer
		if value != nil {
			e := unpack(value)
			if e.typ != typ {
				return fmt.Errorf("%w: unexpected %T", apis.ErrInvalidConversion, value)
			}
			w = e.data
		}
		fn(unpack(target).data, w)
		return nil
	}
}
