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

// Accessor is the public Get/Set surface. It delegates to exactly one
// Strategy and routes every value through a Coercer.
type Accessor interface {
	// Get returns the coerced value of p on target.
	Get(p *property.Property, target any) (any, error)
	// Set coerces value and stores it into p on target.
	Set(p *property.Property, target any, value any) error
	// Strategy returns the strategy backing this accessor.
	Strategy() Strategy
}

// Coercer normalizes values flowing into and out of an Accessor.
type Coercer interface {
	// Coerce converts value to p's value type: nil becomes the zero value
	// and primitive numeric/boolean values are converted. Other values pass
	// through unchanged.
	Coerce(p *property.Property, value any) (any, error)
}
