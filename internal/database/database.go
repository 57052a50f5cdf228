// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package database provides typed access to ledger records over a key-value
// store.
package database

import (
	"github.com/rs/zerolog"
	"gitlab.com/stakecore/stakecore/pkg/database/keyvalue"
	"gitlab.com/stakecore/stakecore/pkg/database/keyvalue/badger"
	"gitlab.com/stakecore/stakecore/pkg/database/keyvalue/memory"
	"gitlab.com/stakecore/stakecore/pkg/errors"
)

// Database is the ledger's system of record.
type Database struct {
	store  keyvalue.Beginner
	logger zerolog.Logger
}

// New creates a database backed by the given store.
func New(store keyvalue.Beginner, logger zerolog.Logger) *Database {
	return &Database{store: store, logger: logger.With().Str("module", "database").Logger()}
}

// OpenInMemory creates an in-memory database.
func OpenInMemory(logger zerolog.Logger) *Database {
	return New(memory.New(), logger)
}

// OpenBadger opens a Badger-backed database at the given path.
func OpenBadger(filepath string, logger zerolog.Logger) (*Database, error) {
	store, err := badger.New(filepath, logger)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return New(store, logger), nil
}

// Begin begins a batch. All reads within a batch see a consistent view;
// writes become visible to other batches only when the batch commits.
func (d *Database) Begin(writable bool) *Batch {
	return &Batch{kv: d.store.Begin(writable), logger: d.logger}
}

// View runs the function within a read-only batch.
func (d *Database) View(fn func(*Batch) error) error {
	batch := d.Begin(false)
	defer batch.Discard()
	return fn(batch)
}

// Update runs the function within a writable batch and commits it if the
// function succeeds.
func (d *Database) Update(fn func(*Batch) error) error {
	batch := d.Begin(true)
	defer batch.Discard()
	err := fn(batch)
	if err != nil {
		return err
	}
	return batch.Commit()
}

// Close closes the underlying store.
func (d *Database) Close() error {
	return d.store.Close()
}
