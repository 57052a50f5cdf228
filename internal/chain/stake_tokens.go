package chain

import (
	"gitlab.com/stakecore/stakecore/pkg/errors"
	"gitlab.com/stakecore/stakecore/protocol"
)

// StakeTokens adds to the requester's staked balance. If the requester has no
// stake entry yet, one is created in the same batch. Any rewards pending at
// the time of the stake are paid out first.
type StakeTokens struct{}

var _ TxExecutor = StakeTokens{}

func (StakeTokens) Type() protocol.TransactionType {
	return protocol.TransactionTypeStakeTokens
}

func (StakeTokens) Execute(st *StateManager, tx *Delivery) (protocol.TransactionResult, error) {
	return (StakeTokens{}).Validate(st, tx)
}

func (StakeTokens) Validate(st *StateManager, tx *Delivery) (protocol.TransactionResult, error) {
	body, ok := tx.Body().(*protocol.StakeTokens)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.StakeTokens), tx.Body())
	}
	if body.Amount == 0 {
		return nil, errors.BadRequest.With("amount must not be zero")
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
	ok, err = st.Exists(entryUrl)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if ok {
		err = st.LoadUrlAs(entryUrl, &entry)
		if err != nil {
			return nil, errors.UnknownError.Wrap(err)
		}
	} else {
		entry = newStakeEntry(st, entryUrl)
		err = st.Create(entry)
		if err != nil {
			return nil, errors.UnknownError.WithFormat("create stake entry: %w", err)
		}
	}

	paid, err := payPendingRewards(st, pool, entry)
	if err != nil {
		return nil, err
	}

	balance, ok := protocol.AddBalance(entry.Balance, body.Amount)
	if !ok {
		return nil, errors.BadRequest.WithFormat("staking %d would overflow the entry balance", body.Amount)
	}
	total, ok := protocol.AddBalance(pool.TotalStaked, body.Amount)
	if !ok {
		return nil, errors.BadRequest.WithFormat("staking %d would overflow the pool total", body.Amount)
	}

	entry.Balance = balance
	entry.LastStakedAt = st.Time
	pool.TotalStaked = total
	err = st.Update(entry, pool)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	return &protocol.StakeTokensResult{RewardsPaid: paid, Balance: entry.Balance}, nil
}
