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


package propx

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/builder"
	"dirpx.dev/propx/config"
	"dirpx.dev/propx/property"
)

// init publishes the default snapshot.
func init() {
	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	acc, err := s.bld.BuildAccessor(s.cfg)
	if err != nil {
		panic(err)
	}
	s.acc = acc
	st.Store(s)
}

var (
	// ErrNilAccessor is returned when a builder returns a nil accessor.
	ErrNilAccessor = errors.New("propx: builder returned nil accessor")
)

// Get reads p on target through the global accessor.
func Get(p *property.Property, target any) (any, error) {
	return st.Load().acc.Get(p, target)
}

// Set writes value into p on target through the global accessor.
func Set(p *property.Property, target any, value any) error {
	return st.Load().acc.Set(p, target, value)
}

// GetAs reads p on target through the global accessor and asserts the
// result to T.
func GetAs[T any](p *property.Property, target any) (T, error) {
	var zero T
	v, err := Get(p, target)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		return zero, &apis.AccessError{
			Op:       apis.OpGet,
			Property: p.String(),
			Strategy: st.Load().acc.Strategy().Kind(),
			Err:      fmt.Errorf("%w: %T is not %T", apis.ErrInvalidConversion, v, zero),
		}
	}
	return out, nil
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the global configuration. Unless the accessor is
// pinned it is rebuilt for cfg. On error the previous snapshot stays live.
func SetConfig(cfg apis.Config) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	acc := old.acc
	if !old.pacc {
		var err error
		if acc, err = build(old.bld, cfg); err != nil {
			return err
		}
	}

	st.Store(&state{cfg: cfg, acc: acc, bld: old.bld, pacc: old.pacc})
	return nil
}

// LoadConfig decodes a YAML document with config.FromYAML and applies it
// with SetConfig. The current logger is carried over.
func LoadConfig(data []byte) error {
	cfg, err := config.FromYAML(data, config.WithLogger(Config().Logger))
	if err != nil {
		return err
	}
	return SetConfig(cfg)
}

// Accessor returns the global accessor.
func Accessor() apis.Accessor {
	return st.Load().acc
}

// SetAccessor installs acc as the global accessor and pins it: later
// configuration or builder changes leave it in place until UnpinAccessor.
// A nil acc is ignored.
func SetAccessor(acc apis.Accessor) {
	if acc == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, acc: acc, bld: old.bld, pacc: true})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder replaces the global builder and rebuilds the accessor with it
// unless the accessor is pinned. A nil b is ignored.
func SetBuilder(b apis.Builder) error {
	if b == nil {
		return nil
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	acc := old.acc
	if !old.pacc {
		var err error
		if acc, err = build(b, old.cfg); err != nil {
			return err
		}
	}

	st.Store(&state{cfg: old.cfg, acc: acc, bld: b, pacc: old.pacc})
	return nil
}

// SetAll replaces every component of the global snapshot at once. Nil
// arguments keep the current config and builder. A nil acc rebuilds the
// accessor and clears the pin; a non-nil acc is installed pinned.
func SetAll(cfg *apis.Config, acc apis.Accessor, b apis.Builder) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}
	nbld := old.bld
	if b != nil {
		nbld = b
	}

	pinned := acc != nil
	if !pinned {
		var err error
		if acc, err = build(nbld, ncfg); err != nil {
			return err
		}
	}

	st.Store(&state{cfg: ncfg, acc: acc, bld: nbld, pacc: pinned})
	return nil
}

// IsAccessorPinned reports whether the global accessor is pinned.
func IsAccessorPinned() bool {
	return st.Load().pacc
}

// PinAccessor keeps the current accessor across configuration changes.
func PinAccessor() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, acc: old.acc, bld: old.bld, pacc: true})
}

// UnpinAccessor lets the next SetConfig or SetBuilder rebuild the accessor.
func UnpinAccessor() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, acc: old.acc, bld: old.bld, pacc: false})
}

// build asks b for an accessor and rejects a nil result.
func build(b apis.Builder, cfg apis.Config) (apis.Accessor, error) {
	acc, err := b.BuildAccessor(cfg)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, ErrNilAccessor
	}
	return acc, nil
}

// buildMu serializes writers so a partially built snapshot is never published.
var buildMu sync.Mutex

// st is the global snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot published through st. Writers build a new
// state and swap it in; published states are never mutated.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// acc is the global accessor.
	acc apis.Accessor
	// bld builds acc from cfg.
	bld apis.Builder
	// pacc indicates whether acc is pinned.
	pacc bool
}
