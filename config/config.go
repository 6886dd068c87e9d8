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

package config

import (
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"

	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/coerce"
)

const (
	// DefaultStrategy represents the default for Strategy.
	DefaultStrategy = apis.Generated
	// DefaultCoercionCacheSize represents the default for CoercionCacheSize.
	DefaultCoercionCacheSize = coerce.DefaultCacheSize
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure CoercionCacheSize is valid.
	if cfg.CoercionCacheSize <= 0 {
		cfg.CoercionCacheSize = DefaultCoercionCacheSize
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
// The nil Logger discards records.
func DefaultConfig() apis.Config {
	return apis.Config{
		Strategy:          DefaultStrategy,
		CoercionCacheSize: DefaultCoercionCacheSize,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithStrategy sets the Strategy option.
func WithStrategy(k apis.Kind) Option {
	return func(c *apis.Config) {
		c.Strategy = k
	}
}

// WithCoercionCacheSize sets the CoercionCacheSize option.
// A non-positive value resets to the default.
func WithCoercionCacheSize(size int) Option {
	return func(c *apis.Config) {
		if size <= 0 {
			c.CoercionCacheSize = DefaultCoercionCacheSize
			return
		}
		c.CoercionCacheSize = size
	}
}

// WithLogger sets the Logger option.
func WithLogger(l *slog.Logger) Option {
	return func(c *apis.Config) {
		c.Logger = l
	}
}

// file is the YAML form of apis.Config.
type file struct {
	Strategy          string `yaml:"strategy"`
	CoercionCacheSize int    `yaml:"coercion_cache_size"`
}

// FromYAML decodes a configuration document such as
//
//	strategy: closure
//	coercion_cache_size: 512
//
// Missing keys keep their defaults. Options are applied after decoding.
func FromYAML(data []byte, opts ...Option) (apis.Config, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return apis.Config{}, fmt.Errorf("propx(config): %w", err)
	}

	cfg := DefaultConfig()
	if f.Strategy != "" {
		k, err := apis.ParseKind(f.Strategy)
		if err != nil {
			return apis.Config{}, fmt.Errorf("propx(config): %w", err)
		}
		cfg.Strategy = k
	}
	if f.CoercionCacheSize < 0 {
		return apis.Config{}, fmt.Errorf("propx(config): negative coercion_cache_size %d", f.CoercionCacheSize)
	}
	if f.CoercionCacheSize > 0 {
		cfg.CoercionCacheSize = f.CoercionCacheSize
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, nil
}
