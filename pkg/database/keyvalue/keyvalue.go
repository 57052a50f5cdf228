// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package keyvalue

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// A Key identifies a record in a key-value store.
type Key [32]byte

// NewKey hashes the given components into a key. Components may be strings,
// byte slices, 32-byte arrays, or unsigned integers.
func NewKey(parts ...interface{}) Key {
	digest := sha256.New()
	for _, p := range parts {
		switch p := p.(type) {
		case string:
			digest.Write([]byte(p))
		case []byte:
			digest.Write(p)
		case [32]byte:
			digest.Write(p[:])
		case Key:
			digest.Write(p[:])
		case uint64:
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], p)
			digest.Write(b[:])
		default:
			panic(fmt.Errorf("cannot use %T as a key component", p))
		}
	}
	var k Key
	copy(k[:], digest.Sum(nil))
	return k
}

// Append hashes additional components into the key.
func (k Key) Append(parts ...interface{}) Key {
	return NewKey(append([]interface{}{k}, parts...)...)
}

func (k Key) String() string { return fmt.Sprintf("%X", k[:4]) }

// A Beginner can begin a change set.
type Beginner interface {
	// Begin begins a change set. Writes of a read-only change set fail.
	Begin(writable bool) ChangeSet

	// Close closes the store.
	Close() error
}

// A ChangeSet is a set of pending changes to a key-value store. Changes are
// not visible to other change sets until Commit.
type ChangeSet interface {
	// Get retrieves the value of the key, or an errors.NotFound error.
	Get(key Key) ([]byte, error)

	// Put stores the value of the key, replacing any existing value.
	Put(key Key, value []byte) error

	// Create stores the value of the key on the condition that the key does
	// not exist. The condition is rechecked when the change set is committed;
	// Commit fails with errors.Conflict if another change set created the
	// key first.
	Create(key Key, value []byte) error

	// Delete removes the key.
	Delete(key Key) error

	// Commit applies the changes atomically. Commit fails with
	// errors.Conflict if a Create precondition no longer holds, in which
	// case no changes are applied.
	Commit() error

	// Discard discards the changes.
	Discard()
}
