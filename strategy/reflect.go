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
	"reflect"

	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/property"
)

// NewDirect creates an apis.Strategy that resolves every access through
// reflection. It keeps no state.
func NewDirect() apis.Strategy {
	return directStrategy{}
}

// directStrategy looks the method up by name on each call. It is the
// correctness baseline and the path taken for value-semantics owners.
type directStrategy struct{}

// Ensure directStrategy implements apis.Strategy.
var _ apis.Strategy = directStrategy{}

// Kind returns apis.Direct.
func (directStrategy) Kind() apis.Kind { return apis.Direct }

// GetValue reads p on target via reflect.Value.MethodByName.
func (directStrategy) GetValue(p *property.Property, target any) (any, error) {
	if err := Validate(apis.OpGet, p, target); err != nil {
		return nil, fail(apis.OpGet, p, apis.Direct, err)
	}
	return directGet(p, target), nil
}

// SetValue writes p on target via reflect.Value.MethodByName.
func (directStrategy) SetValue(p *property.Property, target any, value any) error {
	if err := Validate(apis.OpSet, p, target); err != nil {
		return fail(apis.OpSet, p, apis.Direct, err)
	}
	if err := checkValue(p, value); err != nil {
		return fail(apis.OpSet, p, apis.Direct, err)
	}
	directSet(p, target, value)
	return nil
}

func directGet(p *property.Property, target any) any {
	m := reflect.ValueOf(target).MethodByName(p.GetMethod().Name)
	return m.Call(nil)[0].Interface()
}

func directSet(p *property.Property, target any, value any) {
	m := reflect.ValueOf(target).MethodByName(p.SetMethod().Name)
	m.Call([]reflect.Value{valueOf(p, value)})
}
