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

// Package fixture holds types with accessor-style methods used by tests
// across packages.
package fixture

import (
	"io"
	"reflect"
	"time"

	"dirpx.dev/propx/property"
)

// Celsius is a named primitive.
type Celsius float64

// Level is a named string.
type Level string

// Names is a named slice.
type Names []string

// Address is a struct value type.
type Address struct {
	Street string
	Zip    int
}

// Person owns one property of each interesting value type.
type Person struct {
	name    string
	age     int
	small   int8
	active  bool
	score   float64
	temp    Celsius
	level   Level
	tags    []string
	labels  map[string]string
	friend  *Person
	home    Address
	born    time.Time
	extra   any
	err     error
	reader  io.Reader
	counter uint32
	ints    []int
	aliases Names
}

func (p *Person) Name() string { return p.name }
func (p *Person) SetName(v string) { p.name = v }
func (p *Person) Age() int { return p.age }
func (p *Person) SetAge(v int) { p.age = v }
func (p *Person) Small() int8 { return p.small }
func (p *Person) SetSmall(v int8) { p.small = v }
func (p *Person) Active() bool { return p.active }
func (p *Person) SetActive(v bool) { p.active = v }
func (p *Person) Score() float64 { return p.score }
func (p *Person) SetScore(v float64) { p.score = v }
func (p *Person) Temp() Celsius { return p.temp }
func (p *Person) SetTemp(v Celsius) { p.temp = v }
func (p *Person) Level() Level { return p.level }
func (p *Person) SetLevel(v Level) { p.level = v }
func (p *Person) Tags() []string { return p.tags }
func (p *Person) SetTags(v []string) { p.tags = v }
func (p *Person) Labels() map[string]string { return p.labels }
func (p *Person) SetLabels(v map[string]string) { p.labels = v }
func (p *Person) Friend() *Person { return p.friend }
func (p *Person) SetFriend(v *Person) { p.friend = v }
func (p *Person) Home() Address { return p.home }
func (p *Person) SetHome(v Address) { p.home = v }
func (p *Person) Born() time.Time { return p.born }
func (p *Person) SetBorn(v time.Time) { p.born = v }
func (p *Person) Extra() any { return p.extra }
func (p *Person) SetExtra(v any) { p.extra = v }
func (p *Person) Err() error { return p.err }
func (p *Person) SetErr(v error) { p.err = v }
func (p *Person) Reader() io.Reader { return p.reader }
func (p *Person) SetReader(v io.Reader) { p.reader = v }
func (p *Person) Counter() uint32 { return p.counter }
func (p *Person) SetCounter(v uint32) { p.counter = v }
func (p *Person) Ints() []int { return p.ints }
func (p *Person) SetInts(v []int) { p.ints = v }
func (p *Person) Aliases() Names { return p.aliases }
func (p *Person) SetAliases(v Names) { p.aliases = v }

// ID is read-only.
func (p *Person) ID() string { return "person:" + p.name }

// SetPassword is write-only.
func (p *Person) SetPassword(string) {}

// Point has value semantics: its methods have value receivers.
type Point struct {
	X, Y int
}

func (p Point) GetX() int { return p.X }

// SetX mutates only the copy it is called on.
func (p Point) SetX(int) {}

// Prop builds the descriptor of property name on *Person, using the
// conventional Name/SetName method pair.
func Prop(name string) *property.Property {
	return property.MustNew(reflect.TypeFor[*Person](), name, "Set"+name)
}

// ReadOnly returns the descriptor of the read-only ID property.
func ReadOnly() *property.Property {
	return property.MustNew(reflect.TypeFor[*Person](), "ID", "")
}

// WriteOnly returns the descriptor of the write-only Password property.
func WriteOnly() *property.Property {
	return property.MustNew(reflect.TypeFor[*Person](), "", "SetPassword")
}

// PointX returns the descriptor of X on the value-semantics Point.
func PointX() *property.Property {
	return property.MustNew(reflect.TypeFor[Point](), "GetX", "SetX")
}
