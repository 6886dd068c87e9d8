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

package registry_test

import (
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/property"
	"dirpx.dev/propx/registry"
)

// TestConcurrentLoadOrStore verifies that concurrent first-time builders for
// the same slots converge on exactly one live entry per slot.
func TestConcurrentLoadOrStore(t *testing.T) {
	reg := registry.New()

	var slots []apis.Slot
	for _, getter := range []string{"V", ""} {
		p, err := property.New(reflect.TypeOf(&T1{}), getter, "SetV")
		if err != nil {
			t.Fatalf("property.New: %v", err)
		}
		slots = append(slots, apis.Slot{Key: p.Key(), Op: apis.OpGet}, apis.Slot{Key: p.Key(), Op: apis.OpSet})
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	winners := make([]map[apis.Slot]string, workers)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			seen := make(map[apis.Slot]string, len(slots))
			for i := 0; i < 1000; i++ {
				s := slots[(i+id)%len(slots)]
				tag := fmt.Sprintf("worker-%d", id)
				e, _ := reg.LoadOrStore(apis.Entry{Slot: s, Get: func(any) (any, error) { return tag, nil }})
				v, _ := e.Get(nil)
				if prev, ok := seen[s]; ok && prev != v.(string) {
					t.Errorf("slot %v changed owner: %q -> %q", s, prev, v)
					return
				}
				seen[s] = v.(string)
			}
			winners[id] = seen
		}(w)
	}
	wg.Wait()

	if reg.Count() != len(slots) {
		var live []apis.Slot
		for _, e := range reg.Entries() {
			live = append(live, e.Slot)
		}
		t.Fatalf("count mismatch: got %d want %d\n%s", reg.Count(), len(slots), spew.Sdump(live))
	}
	// Every worker must have observed the same winner for each slot.
	for _, s := range slots {
		want := ""
		for _, seen := range winners {
			if seen == nil {
				continue
			}
			if want == "" {
				want = seen[s]
			}
			if seen[s] != want {
				t.Fatalf("slot %v: workers disagree on live entry: %q vs %q", s, seen[s], want)
			}
		}
	}
}
