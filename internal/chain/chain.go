// Package chain executes staking transactions against the ledger.
package chain

import (
	"gitlab.com/stakecore/stakecore/protocol"
)

// A TxExecutor executes a specific type of transaction.
type TxExecutor interface {
	// Type is the transaction type the executor can execute.
	Type() protocol.TransactionType

	// Validate validates the transaction against the current state without
	// requiring that its effects are committed.
	Validate(st *StateManager, tx *Delivery) (protocol.TransactionResult, error)

	// Execute executes the transaction, recording its effects in the state
	// manager's batch.
	Execute(st *StateManager, tx *Delivery) (protocol.TransactionResult, error)
}

// A Delivery is a transaction being delivered to the executor.
type Delivery struct {
	Envelope    *protocol.Envelope
	Transaction *protocol.Transaction
}

// Body returns the transaction body.
func (d *Delivery) Body() protocol.TransactionBody { return d.Transaction.Body }
