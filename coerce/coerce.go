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

// Package coerce normalizes values flowing through an accessor.
//
// A nil value becomes the zero value of the property type. Values for
// properties of a primitive kind (bool, integers, floats, complexes) are
// converted from whatever primitive or string they arrive as, with checked
// range semantics. Values of any other type are accepted when they already
// have the property type (or implement it, for interface types) and are
// converted when they are merely assignable to it, as []string is to a named
// slice type.
package coerce

import (
	"fmt"
	"reflect"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/property"
)

// DefaultCacheSize is the default number of memoized conversion plans.
const DefaultCacheSize = 256

// New constructs an apis.Coercer memoizing up to size conversion plans.
func New(size int) (apis.Coercer, error) {
	plans, err := lru.New[planKey, plan](size)
	if err != nil {
		return nil, fmt.Errorf("propx(coerce): %w", err)
	}
	return &coercer{plans: plans}, nil
}

// Default returns the process-wide coercer of DefaultCacheSize plans.
func Default() apis.Coercer {
	return defaultCoercer()
}

var defaultCoercer = sync.OnceValue(func() apis.Coercer {
	c, err := New(DefaultCacheSize)
	if err != nil {
		panic(err)
	}
	return c
})

// planKey is a (source, destination) type pair.
type planKey struct {
	src, dst reflect.Type
}

// plan converts a value of the source type of its key.
type plan func(v reflect.Value) (any, error)

// coercer memoizes conversion plans in a bounded LRU cache.
type coercer struct {
	plans *lru.Cache[planKey, plan]
}

// Ensure coercer implements apis.Coercer.
var _ apis.Coercer = (*coercer)(nil)

// Coerce converts value to the value type of p.
func (c *coercer) Coerce(p *property.Property, value any) (any, error) {
	if p == nil {
		return nil, apis.ErrNullArgument
	}
	dst := p.Type()
	if value == nil {
		return reflect.Zero(dst).Interface(), nil
	}
	src := reflect.TypeOf(value)
	if src == dst {
		return value, nil
	}
	if dst.Kind() == reflect.Interface && src.Implements(dst) {
		return value, nil
	}

	k := planKey{src: src, dst: dst}
	pl, ok := c.plans.Get(k)
	if !ok {
		pl = build(src, dst)
		c.plans.Add(k, pl)
	}
	return pl(reflect.ValueOf(value))
}

// IsPrimitive reports whether k is a primitive kind subject to conversion.
func IsPrimitive(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}
