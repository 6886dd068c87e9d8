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


package apis_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/propx/apis"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "generated", apis.Generated.String())
	assert.Equal(t, "closure", apis.Closure.String())
	assert.Equal(t, "direct", apis.Direct.String())
	assert.Equal(t, "unknown(7)", apis.Kind(7).String())
	assert.False(t, apis.Kind(-1).Valid())
}

func TestParseKind(t *testing.T) {
	cases := map[string]apis.Kind{
		"generated":  apis.Generated,
		" Closure ":  apis.Closure,
		"DIRECT":     apis.Direct,
		"\tdirect\n": apis.Direct,
	}
	for in, want := range cases {
		got, err := apis.ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "   ", "emit", "direct-ish"} {
		_, err := apis.ParseKind(in)
		assert.Error(t, err, in)
	}
	assert.Panics(t, func() { apis.MustParseKind("nope") })
	assert.Equal(t, apis.Closure, apis.MustParseKind("closure"))
}

func TestKind_Text(t *testing.T) {
	for _, k := range []apis.Kind{apis.Generated, apis.Closure, apis.Direct} {
		b, err := k.MarshalText()
		require.NoError(t, err)

		var got apis.Kind
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, k, got)
	}

	_, err := apis.Kind(9).MarshalText()
	assert.Error(t, err)

	k := apis.Direct
	assert.Error(t, k.UnmarshalText([]byte("bogus")))
	assert.Equal(t, apis.Direct, k, "failed unmarshal must leave the kind untouched")
}

func TestAccessError(t *testing.T) {
	err := &apis.AccessError{
		Op:       apis.OpSet,
		Property: "*fixture.Person.Age",
		Strategy: apis.Closure,
		Err:      apis.ErrInvalidConversion,
	}
	assert.Equal(t, "propx: set *fixture.Person.Age (closure): propx: invalid conversion", err.Error())
	assert.ErrorIs(t, err, apis.ErrInvalidConversion)
	assert.False(t, errors.Is(err, apis.ErrNullArgument))

	var ae *apis.AccessError
	require.ErrorAs(t, error(err), &ae)
	assert.Equal(t, apis.OpSet, ae.Op)
	assert.Equal(t, "get", apis.OpGet.String())
}
