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

import "dirpx.dev/propx/property"

// Strategy reads and writes property values on targets. Implementations own
// the construction and caching of accessor artifacts; they never coerce
// values. They must be safe for concurrent use.
type Strategy interface {
	// Kind reports which strategy this is.
	Kind() Kind
	// GetValue returns the raw value of p on target.
	GetValue(p *property.Property, target any) (any, error)
	// SetValue stores value, which must already be of p's value type, into p on target.
	SetValue(p *property.Property, target any, value any) error
}
