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

// Package property describes accessor-style members of Go types.
//
// A property is a pair of methods on a declaring (owner) type: a getter of the
// form Name() V and a setter of the form SetName(V). Either side may be absent.
// The caller resolves the methods from its own type metadata and hands them to
// New or FromMethods; this package only validates and describes them.
package property

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNilOwner is returned when a nil owner type is provided.
	ErrNilOwner = errors.New("propx(property): nil owner type provided")
	// ErrInterfaceOwner is returned when the owner type is an interface.
	// Interface methods carry no invokable code.
	ErrInterfaceOwner = errors.New("propx(property): owner type is an interface")
	// ErrMethodNotFound is returned when a named method is not in the owner's method set.
	ErrMethodNotFound = errors.New("propx(property): method not found")
	// ErrBadSignature is returned when a method does not look like a getter or setter.
	ErrBadSignature = errors.New("propx(property): method has no accessor signature")
	// ErrTypeMismatch is returned when getter and setter disagree on the value type.
	ErrTypeMismatch = errors.New("propx(property): getter and setter value types differ")
	// ErrNoCapability is returned when neither a getter nor a setter is provided.
	ErrNoCapability = errors.New("propx(property): neither getter nor setter provided")
)

// Key identifies a property. Keys are comparable and two descriptors built for
// the same owner and methods produce equal keys.
type Key struct {
	// Owner is the declaring type.
	Owner reflect.Type
	// Getter is the getter method name, or "" if the property is write-only.
	Getter string
	// Setter is the setter method name, or "" if the property is read-only.
	Setter string
}

// Property is an immutable property descriptor.
type Property struct {
	key  Key
	typ  reflect.Type
	get  reflect.Method
	set  reflect.Method
	name string
}

// New resolves the getter and setter methods named on owner and returns the
// descriptor. An empty method name means the capability is absent.
func New(owner reflect.Type, getter, setter string) (*Property, error) {
	if owner == nil {
		return nil, ErrNilOwner
	}
	if owner.Kind() == reflect.Interface {
		return nil, fmt.Errorf("%w: %s", ErrInterfaceOwner, owner)
	}

	var gm, sm *reflect.Method
	if getter != "" {
		m, ok := owner.MethodByName(getter)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrMethodNotFound, owner, getter)
		}
		gm = &m
	}
	if setter != "" {
		m, ok := owner.MethodByName(setter)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrMethodNotFound, owner, setter)
		}
		sm = &m
	}
	return FromMethods(owner, gm, sm)
}

// MustNew is like New but panics on error.
func MustNew(owner reflect.Type, getter, setter string) *Property {
	p, err := New(owner, getter, setter)
	if err != nil {
		panic(err)
	}
	return p
}

// FromMethods builds a descriptor from methods already resolved on owner.
// Either method may be nil.
func FromMethods(owner reflect.Type, get, set *reflect.Method) (*Property, error) {
	if owner == nil {
		return nil, ErrNilOwner
	}
	if owner.Kind() == reflect.Interface {
		return nil, fmt.Errorf("%w: %s", ErrInterfaceOwner, owner)
	}
	if get == nil && set == nil {
		return nil, ErrNoCapability
	}

	p := &Property{key: Key{Owner: owner}}

	if get != nil {
		mt := get.Type
		if !get.Func.IsValid() || mt.NumIn() != 1 || mt.In(0) != owner || mt.NumOut() != 1 {
			return nil, fmt.Errorf("%w: getter %s.%s", ErrBadSignature, owner, get.Name)
		}
		p.get = *get
		p.key.Getter = get.Name
		p.typ = mt.Out(0)
	}

	if set != nil {
		mt := set.Type
		if !set.Func.IsValid() || mt.NumIn() != 2 || mt.In(0) != owner || mt.NumOut() != 0 || mt.IsVariadic() {
			return nil, fmt.Errorf("%w: setter %s.%s", ErrBadSignature, owner, set.Name)
		}
		if p.typ != nil && p.typ != mt.In(1) {
			return nil, fmt.Errorf("%w: %s.%s returns %s, %s.%s takes %s",
				ErrTypeMismatch, owner, get.Name, p.typ, owner, set.Name, mt.In(1))
		}
		p.set = *set
		p.key.Setter = set.Name
		p.typ = mt.In(1)
	}

	p.name = p.key.Getter
	if p.name == "" {
		p.name = strings.TrimPrefix(p.key.Setter, "Set")
		if p.name == "" {
			p.name = p.key.Setter
		}
	}
	return p, nil
}

// Key returns the identity of the property.
func (p *Property) Key() Key { return p.key }

// Owner returns the declaring type.
func (p *Property) Owner() reflect.Type { return p.key.Owner }

// Type returns the value type.
func (p *Property) Type() reflect.Type { return p.typ }

// Name returns the property name: the getter name, or the setter name
// without its "Set" prefix for write-only properties.
func (p *Property) Name() string { return p.name }

// CanRead reports whether the property has a getter.
func (p *Property) CanRead() bool { return p.key.Getter != "" }

// CanWrite reports whether the property has a setter.
func (p *Property) CanWrite() bool { return p.key.Setter != "" }

// GetMethod returns the getter. It is the zero Method when CanRead is false.
func (p *Property) GetMethod() reflect.Method { return p.get }

// SetMethod returns the setter. It is the zero Method when CanWrite is false.
func (p *Property) SetMethod() reflect.Method { return p.set }

// ValueOwner reports whether the owner has value semantics, i.e. targets are
// passed by copy rather than by pointer.
func (p *Property) ValueOwner() bool { return p.key.Owner.Kind() != reflect.Ptr }

// String returns "Owner.Name".
func (p *Property) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.key.Owner.String() + "." + p.name
}
