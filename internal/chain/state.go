package chain

import (
	"github.com/rs/zerolog"
	"gitlab.com/stakecore/stakecore/internal/database"
	"gitlab.com/stakecore/stakecore/pkg/errors"
	"gitlab.com/stakecore/stakecore/pkg/url"
	"gitlab.com/stakecore/stakecore/protocol"
)

// StateManager gives executors access to the ledger state within a single
// batch. All writes are applied atomically when the batch commits.
type StateManager struct {
	batch  *database.Batch
	logger zerolog.Logger

	// Requester is the identity derived from the envelope's public key.
	Requester *url.URL
	// Principal is the account the transaction acts upon.
	Principal *url.URL
	// Time is the ledger time of the transaction in unix seconds.
	Time uint64
}

// NewStateManager creates a state manager for the delivery.
func NewStateManager(batch *database.Batch, logger zerolog.Logger, delivery *Delivery, time uint64) *StateManager {
	return &StateManager{
		batch:     batch,
		logger:    logger,
		Requester: delivery.Envelope.Requester(),
		Principal: delivery.Transaction.Header.Principal,
		Time:      time,
	}
}

// LoadUrl loads the account record at the given URL.
func (m *StateManager) LoadUrl(u *url.URL) (protocol.Account, error) {
	return m.batch.Account(u).GetState()
}

// LoadUrlAs loads the account record at the given URL into the target.
func (m *StateManager) LoadUrlAs(u *url.URL, target interface{}) error {
	return m.batch.Account(u).GetStateAs(target)
}

// Exists returns true if an account record exists at the given URL.
func (m *StateManager) Exists(u *url.URL) (bool, error) {
	return m.batch.Account(u).Exists()
}

// Create records new accounts. Each record carries a not-exists precondition
// that is rechecked when the batch commits, so racing creates of the same
// address have exactly one winner.
func (m *StateManager) Create(accounts ...protocol.Account) error {
	for _, account := range accounts {
		err := m.batch.Account(account.GetUrl()).Create(account)
		if err != nil {
			return errors.UnknownError.Wrap(err)
		}
	}
	return nil
}

// Update records updates to existing accounts.
func (m *StateManager) Update(accounts ...protocol.Account) error {
	for _, account := range accounts {
		err := m.batch.Account(account.GetUrl()).PutState(account)
		if err != nil {
			return errors.UnknownError.Wrap(err)
		}
	}
	return nil
}
