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

// Package registry holds accessor artifacts built by the caching strategies.
//
// Each strategy kind owns one process-wide registry, returned by Of. The
// registries are populated lazily on first access to a property, are never
// evicted and live until the process exits. Their size is bounded only by the
// number of distinct properties ever accessed. Reset exists for tests.
package registry

import (
	"sync"

	"dirpx.dev/propx/apis"
)

// New constructs an empty, private Registry.
func New() apis.Registry {
	return &registry{}
}

// global holds the process-wide registry of each strategy kind.
var global = [...]*registry{
	apis.Generated: {},
	apis.Closure:   {},
	apis.Direct:    {},
}

// Of returns the process-wide Registry shared by every strategy of kind k.
// It returns nil for unknown kinds.
func Of(k apis.Kind) apis.Registry {
	if !k.Valid() {
		return nil
	}
	return global[k]
}

// registry is a Registry backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps apis.Slot to apis.Entry.
	m sync.Map
	// count tracks the number of stored entries.
	count int
}

// Load returns the entry stored for s, if any.
func (r *registry) Load(s apis.Slot) (apis.Entry, bool) {
	if v, ok := r.m.Load(s); ok {
		return v.(apis.Entry), true
	}
	return apis.Entry{}, false
}

// LoadOrStore stores e unless an entry for the same slot exists. The first
// stored entry wins; later builders get it back with loaded=true.
func (r *registry) LoadOrStore(e apis.Entry) (apis.Entry, bool) {
	// Fast read path: another goroutine may have finished the build already.
	if old, ok := r.m.Load(e.Slot); ok {
		return old.(apis.Entry), true
	}

	// Write path: guard with a mutex to keep counter consistent.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(e.Slot); ok {
		return old.(apis.Entry), true
	}

	r.m.Store(e.Slot, e)
	r.count++
	return e, false
}

// Entries returns a snapshot for diagnostics (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(_, value any) bool {
		entries = append(entries, value.(apis.Entry))
		return true
	})
	return entries
}

// Count returns the number of stored entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all stored entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
