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
	"log/slog"

	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/property"
	"dirpx.dev/propx/registry"
)

// emitter builds accessor artifacts for one caching strategy.
// Builds must be free of side effects: concurrent builders for the same
// property may both run and only one result is kept.
type emitter interface {
	getter(p *property.Property) (apis.GetFunc, error)
	setter(p *property.Property) (apis.SetFunc, error)
}

// cachedStrategy consults an apis.Registry before building an artifact with
// its emitter.
type cachedStrategy struct {
	kind apis.Kind
	reg  apis.Registry
	log  *slog.Logger
	emit emitter
}

// Ensure cachedStrategy implements apis.Strategy.
var _ apis.Strategy = (*cachedStrategy)(nil)

func newCached(k apis.Kind, reg apis.Registry, log *slog.Logger, e emitter) *cachedStrategy {
	if reg == nil {
		reg = registry.Of(k)
	}
	if log == nil {
		log = discard
	}
	return &cachedStrategy{kind: k, reg: reg, log: log, emit: e}
}

// Kind returns the strategy kind.
func (s *cachedStrategy) Kind() apis.Kind { return s.kind }

// GetValue reads p on target with the cached getter, building it on first use.
func (s *cachedStrategy) GetValue(p *property.Property, target any) (any, error) {
	if err := Validate(apis.OpGet, p, target); err != nil {
		return nil, fail(apis.OpGet, p, s.kind, err)
	}
	if p.ValueOwner() {
		return directGet(p, target), nil
	}

	slot := apis.Slot{Key: p.Key(), Op: apis.OpGet}
	e, ok := s.reg.Load(slot)
	if !ok {
		fn, err := s.emit.getter(p)
		if err != nil {
			return nil, fail(apis.OpGet, p, s.kind, err)
		}
		e = s.store(apis.Entry{Slot: slot, Get: fn}, p)
	}
	v, err := e.Get(target)
	if err != nil {
		return nil, fail(apis.OpGet, p, s.kind, err)
	}
	return v, nil
}

// SetValue writes p on target with the cached setter, building it on first use.
func (s *cachedStrategy) SetValue(p *property.Property, target any, value any) error {
	if err := Validate(apis.OpSet, p, target); err != nil {
		return fail(apis.OpSet, p, s.kind, err)
	}
	if err := checkValue(p, value); err != nil {
		return fail(apis.OpSet, p, s.kind, err)
	}
	if p.ValueOwner() {
		directSet(p, target, value)
		return nil
	}

	slot := apis.Slot{Key: p.Key(), Op: apis.OpSet}
	e, ok := s.reg.Load(slot)
	if !ok {
		fn, err := s.emit.setter(p)
		if err != nil {
			return fail(apis.OpSet, p, s.kind, err)
		}
		e = s.store(apis.Entry{Slot: slot, Set: fn}, p)
	}
	if err := e.Set(target, value); err != nil {
		return fail(apis.OpSet, p, s.kind, err)
	}
	return nil
}

// store publishes a freshly built entry and returns the live one.
func (s *cachedStrategy) store(e apis.Entry, p *property.Property) apis.Entry {
	live, loaded := s.reg.LoadOrStore(e)
	s.log.Debug("propx: accessor built",
		slog.String("strategy", s.kind.String()),
		slog.String("property", p.String()),
		slog.String("op", e.Slot.Op.String()),
		slog.Bool("discarded", loaded),
	)
	return live
}
