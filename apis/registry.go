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

// Op is the kind of access an accessor artifact performs.
type Op uint8

const (
	// OpGet reads a property.
	OpGet Op = iota
	// OpSet writes a property.
	OpSet
)

// String returns "get" or "set".
func (o Op) String() string {
	if o == OpSet {
		return "set"
	}
	return "get"
}

// GetFunc is a cached getter artifact.
type GetFunc func(target any) (any, error)

// SetFunc is a cached setter artifact.
type SetFunc func(target any, value any) error

// Slot is the cache key of one accessor artifact.
type Slot struct {
	// Key identifies the property.
	Key property.Key
	// Op selects the getter or the setter.
	Op Op
}

// Entry is a single built accessor artifact. Exactly one of Get and Set is
// non-nil, matching Slot.Op.
type Entry struct {
	Slot Slot
	Get  GetFunc
	Set  SetFunc
}

// Registry caches accessor artifacts. Reads must be lock-free or close to it;
// writes are insert-if-absent so concurrent builders converge on one entry.
type Registry interface {
	// Load returns the entry stored for s, if any.
	Load(s Slot) (Entry, bool)
	// LoadOrStore stores e unless an entry for e.Slot already exists. It
	// returns the entry that is now live and whether it was already present.
	LoadOrStore(e Entry) (actual Entry, loaded bool)
	// Entries returns a snapshot for diagnostics (order is unspecified).
	Entries() []Entry
	// Count returns the number of cached entries.
	Count() int
	// Reset clears all entries.
	Reset()
}
