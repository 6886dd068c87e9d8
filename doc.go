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


// Package propx reads and writes properties of Go values through cached,
// interchangeable accessor strategies.
//
// A property is a getter method Name() V and/or a setter method SetName(V)
// declared on an owner type. Callers describe one with property.New and
// then read or write it on any target of the owner type:
//
//	p := property.MustNew(reflect.TypeFor[*User](), "Age", "SetAge")
//	_ = propx.Set(p, u, 42)
//	age, _ := propx.Get(p, u)
//
// # Strategies
//
// Three strategies produce identical results and differ only in cost:
//
//   - apis.Direct resolves the method through reflection on every call.
//
//   - apis.Closure builds a reflection-backed closure around the method
//     expression on first access and caches it.
//
//   - apis.Generated (the default) builds a typed thunk from a statically
//     compiled template for the property's value type and calls the
//     method's code directly. Structs, arrays and most interface types have
//     no built-in template and are called through reflection until
//     strategy.RegisterType adds one.
//
// Built artifacts live in one process-wide registry per strategy kind
// (registry.Of). The first builder of a slot wins and every later caller
// reuses its artifact. Entries are never evicted.
//
// Owners with value semantics (non-pointer owner types) are always served
// by the direct path and never cached.
//
// # Coercion
//
// Every value crosses a coercion step (package coerce). A nil value becomes
// the zero value of the property type. Values of primitive properties are
// converted from any primitive or numeric string with range checks, so
// propx.Set(p, u, int64(5)) works for an int property and 9.9 truncates to 9.
// Other values must have the property type or be assignable to it, as a
// []string is to a named slice type.
//
// # Global snapshot
//
// The package keeps a read-mostly snapshot of the configuration, the
// builder and the accessor behind an atomic pointer. Get and Set load it
// without locking. SetConfig, SetBuilder and LoadConfig rebuild the
// accessor under a short mutex and publish a new snapshot. SetAccessor
// installs a caller-provided accessor and pins it, so configuration changes
// leave it alone until UnpinAccessor.
//
// # Errors
//
// Failures are *apis.AccessError values wrapping one of the apis sentinels
// (ErrNullArgument, ErrNotReadable, ErrNotWritable, ErrInvalidConversion,
// ErrCodeGeneration, ErrIncompatibleTarget); match them with errors.Is.
package propx
