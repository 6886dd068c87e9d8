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

package builder

import (
	"fmt"

	"dirpx.dev/propx/accessor"
	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/coerce"
	"dirpx.dev/propx/config"
	"dirpx.dev/propx/registry"
	"dirpx.dev/propx/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildStrategy builds the Strategy selected by cfg.Strategy. Caching
// strategies are backed by the process-wide registry of their kind, so every
// strategy of the same kind shares one cache.
func (b *builder) BuildStrategy(cfg apis.Config) (apis.Strategy, error) {
	return strategy.New(cfg.Strategy, registry.Of(cfg.Strategy), cfg.Logger)
}

// BuildAccessor builds an Accessor over the Strategy selected by cfg and a
// coercer holding up to cfg.CoercionCacheSize plans. The default size shares
// the process-wide coercer.
func (b *builder) BuildAccessor(cfg apis.Config) (apis.Accessor, error) {
	s, err := b.BuildStrategy(cfg)
	if err != nil {
		return nil, err
	}

	c := coerce.Default()
	if cfg.CoercionCacheSize > 0 && cfg.CoercionCacheSize != config.DefaultCoercionCacheSize {
		if c, err = coerce.New(cfg.CoercionCacheSize); err != nil {
			return nil, fmt.Errorf("propx(builder): %w", err)
		}
	}
	return accessor.New(s, c), nil
}
