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

package strategy_test

import (
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/internal/fixture"
)

// TestConcurrentFirstAccess verifies that many goroutines racing to build the
// accessor for a never-seen property all read the right value, and that the
// cache ends up with exactly one entry for it.
func TestConcurrentFirstAccess(t *testing.T) {
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			s, reg := fresh(t, k)
			p := fixture.Prop("Age")

			workers := runtime.GOMAXPROCS(0) * 4
			targets := make([]*fixture.Person, workers)
			for i := range targets {
				targets[i] = &fixture.Person{}
				targets[i].SetAge(i)
			}

			start := make(chan struct{})
			wg := sync.WaitGroup{}
			wg.Add(workers)
			for w := 0; w < workers; w++ {
				go func(id int) {
					defer wg.Done()
					<-start
					for i := 0; i < 200; i++ {
						got, err := s.GetValue(p, targets[id])
						if err != nil {
							t.Errorf("GetValue: %v", err)
							return
						}
						if got != id {
							t.Errorf("worker %d: got %v", id, got)
							return
						}
					}
				}(w)
			}
			close(start)
			wg.Wait()

			want := 1
			if k == apis.Direct {
				want = 0
			}
			if reg.Count() != want {
				t.Fatalf("count: got %d want %d", reg.Count(), want)
			}
		})
	}
}

// TestConcurrentSetGet hammers cached setters and getters on distinct targets.
func TestConcurrentSetGet(t *testing.T) {
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			s, _ := fresh(t, k)
			name := fixture.Prop("Name")
			score := fixture.Prop("Score")

			workers := runtime.GOMAXPROCS(0) * 4
			wg := sync.WaitGroup{}
			wg.Add(workers)
			for w := 0; w < workers; w++ {
				go func(id int) {
					defer wg.Done()
					target := &fixture.Person{}
					for i := 0; i < 500; i++ {
						if err := s.SetValue(score, target, float64(i)); err != nil {
							t.Errorf("SetValue: %v", err)
							return
						}
						if err := s.SetValue(name, target, "w"); err != nil {
							t.Errorf("SetValue: %v", err)
							return
						}
						got, err := s.GetValue(score, target)
						if err != nil || got != float64(i) {
							t.Errorf("GetValue: got %v, %v", got, err)
							return
						}
					}
				}(w)
			}
			wg.Wait()
		})
	}
}
