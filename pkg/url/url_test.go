// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package url

import (
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		s      string
		expect interface{}
	}{
		{"foo", "stk://foo"},
		{"stk://foo", "stk://foo"},
		{"stk://foo/stake", "stk://foo/stake"},
		{"xxx://foo", wrongScheme("xxx://foo")},
		{"/foo", missingHost("/foo")},
		{"stk://:123", missingHost("stk://:123")},
		{"stk://foo?bar", unsupportedPart("stk://foo?bar")},
		{"stk://user@foo", unsupportedPart("stk://user@foo")},
	}

	for _, c := range cases {
		t.Run("", func(t *testing.T) {
			u, err := Parse(c.s)
			if _, ok := c.expect.(error); ok {
				require.Error(t, err)
				require.Equal(t, c.expect, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, c.expect, u.String())
			}
		})
	}
}

func TestURL_Equal(t *testing.T) {
	cases := []struct {
		u, v *URL
		eq   bool
	}{
		{&URL{Authority: "foo"}, &URL{Authority: "FOO"}, true},
		{&URL{Authority: "foo", Path: "/stake"}, &URL{Authority: "foo", Path: "/STAKE"}, true},
		{&URL{Authority: "foo"}, &URL{Authority: "foo", Path: "bar"}, false},
		{&URL{Authority: "foo"}, &URL{Authority: "bar"}, false},
	}

	for _, c := range cases {
		t.Run("", func(t *testing.T) {
			if c.eq {
				assert.Truef(t, c.u.Equal(c.v), "%v != %v", c.u, c.v)
			} else {
				assert.Falsef(t, c.u.Equal(c.v), "%v == %v", c.u, c.v)
			}
		})
	}
}

func TestURL_AccountID(t *testing.T) {
	// The account ID must be insensitive to case and redundant slashes.
	a := MustParse("stk://Staking/Pool")
	b := MustParse("stk://staking/pool/")
	require.Equal(t, a.AccountID(), b.AccountID())

	h := sha256.Sum256([]byte(strings.ToLower("staking/pool")))
	require.Equal(t, h[:], a.AccountID())

	// Different paths must produce different IDs.
	c := MustParse("stk://staking/vault")
	require.NotEqual(t, a.AccountID(), c.AccountID())
}

func TestURL_Parent(t *testing.T) {
	u := MustParse("stk://foo/stake")
	v, ok := u.Parent()
	require.True(t, ok)
	require.Equal(t, "stk://foo", v.String())
	require.True(t, v.IsRootIdentity())
	require.True(t, v.ParentOf(u))

	_, ok = v.Parent()
	require.False(t, ok)
}

func TestURL_JoinPath(t *testing.T) {
	u := MustParse("stk://foo")
	require.Equal(t, "stk://foo/stake", u.JoinPath("stake").String())
	require.Equal(t, "stk://foo/a/b", u.JoinPath("a", "b").String())
}

func TestURL_JSON(t *testing.T) {
	u := MustParse("stk://staking/pool")
	data, err := u.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"stk://staking/pool"`, string(data))

	v := new(URL)
	require.NoError(t, v.UnmarshalJSON(data))
	require.True(t, u.Equal(v))
}
