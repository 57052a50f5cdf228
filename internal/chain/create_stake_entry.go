package chain

import (
	"gitlab.com/stakecore/stakecore/pkg/errors"
	"gitlab.com/stakecore/stakecore/pkg/url"
	"gitlab.com/stakecore/stakecore/protocol"
)

// CreateStakeEntry initializes a stake entry with a zero balance. The entry
// address is derived from the requester's identity, so repeated requests by
// the same requester target the same address, and the second and every later
// attempt fails with Conflict.
type CreateStakeEntry struct{}

var _ TxExecutor = CreateStakeEntry{}

func (CreateStakeEntry) Type() protocol.TransactionType {
	return protocol.TransactionTypeCreateStakeEntry
}

func (CreateStakeEntry) Execute(st *StateManager, tx *Delivery) (protocol.TransactionResult, error) {
	return (CreateStakeEntry{}).Validate(st, tx)
}

func (CreateStakeEntry) Validate(st *StateManager, tx *Delivery) (protocol.TransactionResult, error) {
	_, ok := tx.Body().(*protocol.CreateStakeEntry)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.CreateStakeEntry), tx.Body())
	}

	entryUrl, err := checkEntryAuth(st)
	if err != nil {
		return nil, err
	}

	// The pool must be initialized first
	ok, err = st.Exists(protocol.PoolUrl())
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if !ok {
		return nil, errors.NotFound.WithFormat("stake pool %v has not been initialized", protocol.PoolUrl())
	}

	ok, err = st.Exists(entryUrl)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if ok {
		return nil, errors.Conflict.WithFormat("stake entry %v is already initialized", entryUrl)
	}

	entry := newStakeEntry(st, entryUrl)
	err = st.Create(entry)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("create stake entry: %w", err)
	}
	return nil, nil
}

func newStakeEntry(st *StateManager, entryUrl *url.URL) *protocol.StakeEntry {
	entry := new(protocol.StakeEntry)
	entry.Url = entryUrl
	entry.Owner = st.Requester
	entry.LastStakedAt = st.Time
	entry.CreatedAt = st.Time
	return entry
}

// checkEntryAuth verifies that the principal is the stake entry address
// derived from the requester's identity.
func checkEntryAuth(st *StateManager) (*url.URL, error) {
	entryUrl := protocol.StakeEntryUrl(st.Requester)
	if !entryUrl.Equal(st.Principal) {
		return nil, errors.Unauthorized.WithFormat("signer is not authorized to act for %v", st.Principal)
	}
	return entryUrl, nil
}
