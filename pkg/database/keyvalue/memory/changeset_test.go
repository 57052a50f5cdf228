// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/stakecore/stakecore/pkg/database/keyvalue"
	"gitlab.com/stakecore/stakecore/pkg/errors"
)

func TestIsolation(t *testing.T) {
	db := New()
	key := keyvalue.NewKey("Account", "foo")

	// Writes are not visible to other change sets before commit
	cs := db.Begin(true)
	defer cs.Discard()
	require.NoError(t, cs.Put(key, []byte("bar")))

	other := db.Begin(false)
	defer other.Discard()
	_, err := other.Get(key)
	require.True(t, errors.Is(err, errors.NotFound))

	// And they are after
	require.NoError(t, cs.Commit())
	other = db.Begin(false)
	defer other.Discard()
	v, err := other.Get(key)
	require.NoError(t, err)
	require.Equal(t, []byte("bar"), v)
}

func TestReadOnly(t *testing.T) {
	db := New()
	cs := db.Begin(false)
	defer cs.Discard()
	err := cs.Put(keyvalue.NewKey("x"), []byte("y"))
	require.True(t, errors.Is(err, errors.BadRequest))
}

func TestDelete(t *testing.T) {
	db := New()
	key := keyvalue.NewKey("Account", "foo")

	cs := db.Begin(true)
	require.NoError(t, cs.Put(key, []byte("bar")))
	require.NoError(t, cs.Commit())

	cs = db.Begin(true)
	require.NoError(t, cs.Delete(key))

	// The deletion is visible within the change set before commit
	_, err := cs.Get(key)
	require.True(t, errors.Is(err, errors.NotFound))
	require.NoError(t, cs.Commit())

	cs = db.Begin(false)
	defer cs.Discard()
	_, err = cs.Get(key)
	require.True(t, errors.Is(err, errors.NotFound))
}

func TestCreateConflict(t *testing.T) {
	db := New()
	key := keyvalue.NewKey("Account", "foo")

	cs := db.Begin(true)
	require.NoError(t, cs.Create(key, []byte("bar")))
	require.NoError(t, cs.Commit())

	// Creating again fails immediately
	cs = db.Begin(true)
	defer cs.Discard()
	err := cs.Create(key, []byte("baz"))
	require.True(t, errors.Is(err, errors.Conflict))
}

func TestCreateRace(t *testing.T) {
	// Two change sets created before either commits - the precondition must
	// be rechecked at commit so exactly one wins
	db := New()
	key := keyvalue.NewKey("Account", "foo")

	a, b := db.Begin(true), db.Begin(true)
	require.NoError(t, a.Create(key, []byte("a")))
	require.NoError(t, b.Create(key, []byte("b")))

	require.NoError(t, a.Commit())
	err := b.Commit()
	require.True(t, errors.Is(err, errors.Conflict))

	cs := db.Begin(false)
	defer cs.Discard()
	v, err := cs.Get(key)
	require.NoError(t, err)
	require.Equal(t, []byte("a"), v)
}

func TestConcurrentCreate(t *testing.T) {
	db := New()
	key := keyvalue.NewKey("Account", "foo")

	const n = 16
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			cs := db.Begin(true)
			defer cs.Discard()
			err := cs.Create(key, []byte{byte(i)})
			if err == nil {
				err = cs.Commit()
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()

	var won int
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			require.True(t, errors.Is(err, errors.Conflict), "expected conflict, got %v", err)
		}
	}
	require.Equal(t, 1, won)
}
