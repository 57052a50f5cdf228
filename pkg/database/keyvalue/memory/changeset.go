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

// An Entry is a pending change to a key.
type Entry struct {
	Key    keyvalue.Key
	Value  []byte
	Delete bool

	// Create indicates that the entry must not exist when the change set is
	// committed.
	Create bool
}

type (
	// GetFunc reads a key from the underlying store.
	GetFunc func(keyvalue.Key) ([]byte, error)
	// CommitFunc applies entries to the underlying store atomically.
	CommitFunc func(map[keyvalue.Key]Entry) error
	// DiscardFunc releases any resources held by the change set.
	DiscardFunc func()
)

// ChangeSet is a generic implementation of [keyvalue.ChangeSet] backed by
// get, commit, and discard functions. It is used by the memory and badger
// stores.
type ChangeSet struct {
	mu      sync.RWMutex
	entries map[keyvalue.Key]Entry
	get     GetFunc
	commit  CommitFunc
	discard DiscardFunc
}

var _ keyvalue.ChangeSet = (*ChangeSet)(nil)

// NewChangeSet constructs a change set. If commit is nil the change set is
// read-only.
func NewChangeSet(get GetFunc, commit CommitFunc, discard DiscardFunc) *ChangeSet {
	return &ChangeSet{get: get, commit: commit, discard: discard}
}

func (c *ChangeSet) Get(key keyvalue.Key) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		if entry.Delete {
			return nil, errors.NotFound.WithFormat("%v not found", key)
		}
		return entry.Value, nil
	}
	return c.get(key)
}

func (c *ChangeSet) Put(key keyvalue.Key, value []byte) error {
	return c.record(Entry{Key: key, Value: value})
}

func (c *ChangeSet) Create(key keyvalue.Key, value []byte) error {
	// Fail fast if the key is already visible. The precondition is rechecked
	// at commit regardless.
	_, err := c.Get(key)
	switch {
	case err == nil:
		return errors.Conflict.WithFormat("%v already exists", key)
	case errors.Is(err, errors.NotFound):
		// Ok
	default:
		return errors.UnknownError.Wrap(err)
	}

	return c.record(Entry{Key: key, Value: value, Create: true})
}

func (c *ChangeSet) Delete(key keyvalue.Key) error {
	return c.record(Entry{Key: key, Delete: true})
}

func (c *ChangeSet) record(e Entry) error {
	if c.commit == nil {
		return errors.BadRequest.With("change set is not writable")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = map[keyvalue.Key]Entry{}
	}
	if prev, ok := c.entries[e.Key]; ok && prev.Create && !e.Delete {
		// Preserve the precondition if the entry is rewritten
		e.Create = true
	}
	c.entries[e.Key] = e
	return nil
}

func (c *ChangeSet) Commit() error {
	c.mu.Lock()
	entries := c.entries
	c.entries = nil
	c.mu.Unlock()

	defer c.Discard()
	if c.commit == nil {
		return errors.BadRequest.With("change set is not writable")
	}
	if len(entries) == 0 {
		return nil
	}
	return c.commit(entries)
}

func (c *ChangeSet) Discard() {
	c.mu.Lock()
	c.entries = nil
	c.mu.Unlock()
	if c.discard != nil {
		c.discard()
	}
}
