package chain

import (
	"gitlab.com/stakecore/stakecore/pkg/errors"
	"gitlab.com/stakecore/stakecore/protocol"
)

// UnstakeTokens withdraws the requester's entire staked balance. Rewards
// accrued since the last stake or claim are not paid out; the requester must
// claim them separately before unstaking.
type UnstakeTokens struct{}

var _ TxExecutor = UnstakeTokens{}

func (UnstakeTokens) Type() protocol.TransactionType {
	return protocol.TransactionTypeUnstakeTokens
}

func (UnstakeTokens) Execute(st *StateManager, tx *Delivery) (protocol.TransactionResult, error) {
	return (UnstakeTokens{}).Validate(st, tx)
}

func (UnstakeTokens) Validate(st *StateManager, tx *Delivery) (protocol.TransactionResult, error) {
	_, ok := tx.Body().(*protocol.UnstakeTokens)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.UnstakeTokens), tx.Body())
	}

	entryUrl, err := checkEntryAuth(st)
	if err != nil {
		return nil, err
	}

	pool, err := loadPool(st)
	if err != nil {
		return nil, err
	}

	entry := new(protocol.StakeEntry)
	err = st.LoadUrlAs(entryUrl, &entry)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if entry.Balance == 0 {
		return nil, errors.InsufficientFunds.WithFormat("stake entry %v has no staked balance", entryUrl)
	}

	returned := entry.Balance
	entry.Balance = 0
	entry.LastStakedAt = st.Time
	if pool.TotalStaked < returned {
		return nil, errors.InternalError.WithFormat("pool total %d is less than the entry balance %d", pool.TotalStaked, returned)
	}
	pool.TotalStaked -= returned

	err = st.Update(entry, pool)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	return &protocol.UnstakeTokensResult{Returned: returned}, nil
}
