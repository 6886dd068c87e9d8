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

import "errors"

var (
	// ErrNullArgument is returned when the descriptor or the target is missing.
	ErrNullArgument = errors.New("propx: null argument")
	// ErrNotReadable is returned when reading a property without a getter.
	ErrNotReadable = errors.New("propx: property cannot be read")
	// ErrNotWritable is returned when writing a property without a setter.
	ErrNotWritable = errors.New("propx: property cannot be written")
	// ErrInvalidConversion is returned when a value cannot be converted to
	// the property's value type.
	ErrInvalidConversion = errors.New("propx: invalid conversion")
	// ErrCodeGeneration is returned when the generated strategy cannot build
	// an accessor for a property.
	ErrCodeGeneration = errors.New("propx: code generation failed")
	// ErrIncompatibleTarget is returned when the target's dynamic type is not
	// the property's owner type.
	ErrIncompatibleTarget = errors.New("propx: target type does not match property owner")
)

// AccessError records a failed Get or Set.
type AccessError struct {
	Op       Op
	Property string
	Strategy Kind
	Err      error
}

func (e *AccessError) Error() string {
	return "propx: " + e.Op.String() + " " + e.Property + " (" + e.Strategy.String() + "): " + e.Err.Error()
}

func (e *AccessError) Unwrap() error { return e.Err }
