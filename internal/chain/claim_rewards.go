package chain

import (
	"gitlab.com/stakecore/stakecore/pkg/errors"
	"gitlab.com/stakecore/stakecore/protocol"
)

// ClaimRewards pays out the rewards accrued by the requester's stake entry
// since its last stake or claim. The entry must have a staked balance.
type ClaimRewards struct{}

var _ TxExecutor = ClaimRewards{}

func (ClaimRewards) Type() protocol.TransactionType {
	return protocol.TransactionTypeClaimRewards
}

func (ClaimRewards) Execute(st *StateManager, tx *Delivery) (protocol.TransactionResult, error) {
	return (ClaimRewards{}).Validate(st, tx)
}

func (ClaimRewards) Validate(st *StateManager, tx *Delivery) (protocol.TransactionResult, error) {
	_, ok := tx.Body().(*protocol.ClaimRewards)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.ClaimRewards), tx.Body())
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

	paid, err := payPendingRewards(st, pool, entry)
	if err != nil {
		return nil, err
	}

	entry.LastStakedAt = st.Time
	err = st.Update(entry)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	return &protocol.ClaimRewardsResult{RewardsPaid: paid}, nil
}
