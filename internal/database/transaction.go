// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package database

import (
	"encoding/json"

	"gitlab.com/stakecore/stakecore/pkg/database/keyvalue"
	"gitlab.com/stakecore/stakecore/pkg/errors"
	"gitlab.com/stakecore/stakecore/protocol"
)

// Transaction returns an accessor for the transaction status record.
func (b *Batch) Transaction(id protocol.TxID) *Transaction {
	return &Transaction{batch: b, id: id, key: keyvalue.NewKey("Transaction", id[:])}
}

// Transaction provides access to a transaction status record.
type Transaction struct {
	batch *Batch
	id    protocol.TxID
	key   keyvalue.Key
}

// GetStatus loads the transaction status. Returns errors.NotFound if the
// transaction is unknown.
func (t *Transaction) GetStatus() (*protocol.TransactionStatus, error) {
	data, err := t.batch.kv.Get(t.key)
	switch {
	case err == nil:
		// Ok
	case errors.Is(err, errors.NotFound):
		return nil, errors.NotFound.WithFormat("transaction %v not found", t.id)
	default:
		return nil, errors.UnknownError.WithFormat("load transaction %v: %w", t.id, err)
	}

	status := new(protocol.TransactionStatus)
	if err := json.Unmarshal(data, status); err != nil {
		return nil, errors.EncodingError.WithFormat("load transaction %v: %w", t.id, err)
	}
	return status, nil
}

// PutStatus stores the transaction status.
func (t *Transaction) PutStatus(status *protocol.TransactionStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return errors.EncodingError.WithFormat("store transaction %v: %w", t.id, err)
	}
	return t.batch.kv.Put(t.key, data)
}
