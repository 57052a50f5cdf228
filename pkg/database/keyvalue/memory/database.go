// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"sync"

	"gitlab.com/stakecore/stakecore/pkg/database/keyvalue"
	"gitlab.com/stakecore/stakecore/pkg/errors"
)

// Database is an in-memory key-value store.
type Database struct {
	mu      sync.RWMutex
	entries map[keyvalue.Key][]byte
}

var _ keyvalue.Beginner = (*Database)(nil)

func New() *Database {
	return &Database{entries: map[keyvalue.Key][]byte{}}
}

// Begin begins a change set.
func (d *Database) Begin(writable bool) keyvalue.ChangeSet {
	var commit CommitFunc
	if writable {
		commit = d.put
	}
	return NewChangeSet(d.get, commit, nil)
}

func (d *Database) Close() error { return nil }

func (d *Database) get(key keyvalue.Key) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	value, ok := d.entries[key]
	if !ok {
		return nil, errors.NotFound.WithFormat("%v not found", key)
	}
	return value, nil
}

func (d *Database) put(entries map[keyvalue.Key]Entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Recheck create preconditions under the lock so concurrent creates of
	// the same key have exactly one winner
	for _, e := range entries {
		if !e.Create {
			continue
		}
		if _, ok := d.entries[e.Key]; ok {
			return errors.Conflict.WithFormat("%v already exists", e.Key)
		}
	}

	for _, e := range entries {
		if e.Delete {
			delete(d.entries, e.Key)
		} else {
			d.entries[e.Key] = e.Value
		}
	}
	return nil
}
