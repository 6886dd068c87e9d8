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
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/builder"
	"dirpx.dev/propx/config"
	"dirpx.dev/propx/internal/fixture"
)

// reset installs a clean snapshot built by b from cfg.
func reset(tb testing.TB, b apis.Builder, cfg apis.Config) {
	tb.Helper()
	require.NoError(tb, SetAll(&cfg, nil, b))
}

// ---------------------- Test doubles (mocks) ----------------------

type mockAccessor struct {
	id string
	apis.Accessor
}

type mockBuilder struct {
	mu      sync.Mutex
	lastCfg apis.Config
	builds  int
	fail    error
	nilAcc  bool
}

func (b *mockBuilder) BuildStrategy(cfg apis.Config) (apis.Strategy, error) {
	return builder.New().BuildStrategy(cfg)
}

func (b *mockBuilder) BuildAccessor(cfg apis.Config) (apis.Accessor, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg = cfg
	if b.fail != nil {
		return nil, b.fail
	}
	if b.nilAcc {
		return nil, nil
	}
	b.builds++
	inner, err := builder.New().BuildAccessor(cfg)
	if err != nil {
		return nil, err
	}
	return &mockAccessor{id: "acc#" + strconv.Itoa(b.builds), Accessor: inner}, nil
}

func (b *mockBuilder) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.builds
}

// ---------------------- Tests ----------------------

func TestDefaultSnapshot(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())

	assert.Equal(t, apis.Generated, Config().Strategy)
	assert.Equal(t, apis.Generated, Accessor().Strategy().Kind())
	assert.False(t, IsAccessorPinned())

	p := fixture.Prop("Age")
	u := &fixture.Person{}
	require.NoError(t, Set(p, u, "41"))
	v, err := Get(p, u)
	require.NoError(t, err)
	assert.Equal(t, 41, v)

	home := fixture.Address{Street: "Elm", Zip: 2}
	require.NoError(t, Set(fixture.Prop("Home"), u, home))
	got, err := GetAs[fixture.Address](fixture.Prop("Home"), u)
	require.NoError(t, err)
	assert.Equal(t, home, got)
}

func TestGetAs(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())

	u := &fixture.Person{}
	require.NoError(t, Set(fixture.Prop("Name"), u, "ada"))

	name, err := GetAs[string](fixture.Prop("Name"), u)
	require.NoError(t, err)
	assert.Equal(t, "ada", name)

	_, err = GetAs[int](fixture.Prop("Name"), u)
	assert.ErrorIs(t, err, apis.ErrInvalidConversion)

	friend, err := GetAs[*fixture.Person](fixture.Prop("Friend"), u)
	require.NoError(t, err)
	assert.Nil(t, friend)

	_, err = GetAs[string](nil, u)
	assert.ErrorIs(t, err, apis.ErrNullArgument)
}

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := &mockBuilder{}
	reset(t, b, config.DefaultConfig())

	before := Accessor()
	require.NoError(t, SetConfig(config.NewConfig(config.WithStrategy(apis.Direct))))

	assert.NotSame(t, before, Accessor())
	assert.Equal(t, apis.Direct, Accessor().Strategy().Kind())
	assert.Equal(t, apis.Direct, Config().Strategy)
	assert.Equal(t, apis.Direct, b.lastCfg.Strategy)
}

func TestSetConfig_ErrorKeepsSnapshot(t *testing.T) {
	b := &mockBuilder{}
	reset(t, b, config.DefaultConfig())
	before := Accessor()

	b.fail = errors.New("boom")
	err := SetConfig(config.NewConfig(config.WithStrategy(apis.Closure)))
	assert.EqualError(t, err, "boom")
	assert.Same(t, before, Accessor())
	assert.Equal(t, apis.Generated, Config().Strategy)

	b.fail = nil
	b.nilAcc = true
	assert.ErrorIs(t, SetConfig(config.DefaultConfig()), ErrNilAccessor)
	assert.Same(t, before, Accessor())
}

func TestSetAccessor_Pins(t *testing.T) {
	b := &mockBuilder{}
	reset(t, b, config.DefaultConfig())

	custom := &mockAccessor{id: "custom", Accessor: Accessor()}
	SetAccessor(custom)
	SetAccessor(nil)
	assert.True(t, IsAccessorPinned())

	builds := b.count()
	require.NoError(t, SetConfig(config.NewConfig(config.WithStrategy(apis.Closure))))
	assert.Same(t, custom, Accessor())
	assert.Equal(t, builds, b.count())
	assert.Equal(t, apis.Closure, Config().Strategy)

	UnpinAccessor()
	require.NoError(t, SetConfig(config.NewConfig(config.WithStrategy(apis.Direct))))
	assert.NotSame(t, custom, Accessor())
	assert.Equal(t, builds+1, b.count())
}

func TestPinAccessor(t *testing.T) {
	b := &mockBuilder{}
	reset(t, b, config.DefaultConfig())

	PinAccessor()
	pinned := Accessor()
	require.NoError(t, SetConfig(config.NewConfig(config.WithStrategy(apis.Direct))))
	assert.Same(t, pinned, Accessor())

	UnpinAccessor()
	assert.False(t, IsAccessorPinned())
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	a := &mockBuilder{}
	reset(t, a, config.DefaultConfig())

	b := &mockBuilder{}
	require.NoError(t, SetBuilder(b))
	assert.Same(t, b, Builder())
	assert.Equal(t, 1, b.count())

	PinAccessor()
	c := &mockBuilder{}
	require.NoError(t, SetBuilder(c))
	assert.Equal(t, 0, c.count())
	require.NoError(t, SetBuilder(nil))
	assert.Same(t, c, Builder())
}

func TestLoadConfig(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())

	require.NoError(t, LoadConfig([]byte("strategy: Closure\ncoercion_cache_size: 32\n")))
	assert.Equal(t, apis.Closure, Config().Strategy)
	assert.Equal(t, 32, Config().CoercionCacheSize)
	assert.Equal(t, apis.Closure, Accessor().Strategy().Kind())

	assert.Error(t, LoadConfig([]byte("strategy: sideways\n")))
	assert.Equal(t, apis.Closure, Config().Strategy)
}

func TestGet_Concurrent_With_SetConfig(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())

	p := fixture.Prop("Score")
	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	errs := make(chan error, readers)
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func(i int) {
			defer wg.Done()
			u := &fixture.Person{}
			for j := 0; j < 1000; j++ {
				if err := Set(p, u, j); err != nil {
					errs <- err
					return
				}
				v, err := Get(p, u)
				if err != nil {
					errs <- err
					return
				}
				if v != float64(j) {
					errs <- errors.New("lost write")
					return
				}
			}
		}(i)
	}

	go func() {
		kinds := []apis.Kind{apis.Generated, apis.Closure, apis.Direct}
		for i := 0; i < 20; i++ {
			_ = SetConfig(config.NewConfig(config.WithStrategy(kinds[i%3])))
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestUnknownStrategy_Rejected(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())
	assert.Error(t, SetConfig(apis.Config{Strategy: apis.Kind(99)}))
	assert.Equal(t, apis.Generated, Accessor().Strategy().Kind())
}
