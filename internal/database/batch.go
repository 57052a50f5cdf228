// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package database

import (
	"github.com/rs/zerolog"
	"gitlab.com/stakecore/stakecore/pkg/database/keyvalue"
	"gitlab.com/stakecore/stakecore/pkg/errors"
)

// Batch is a set of pending changes to the ledger.
type Batch struct {
	kv     keyvalue.ChangeSet
	logger zerolog.Logger
	done   bool
}

// Commit applies the batch atomically. Commit fails with errors.Conflict if
// a record created by the batch was created by another batch first, in which
// case nothing is applied.
func (b *Batch) Commit() error {
	if b.done {
		return errors.InternalError.With("batch is already done")
	}
	b.done = true
	return b.kv.Commit()
}

// Discard discards the batch.
func (b *Batch) Discard() {
	if b.done {
		return
	}
	b.done = true
	b.kv.Discard()
}
