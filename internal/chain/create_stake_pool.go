package chain

import (
	"gitlab.com/stakecore/stakecore/pkg/errors"
	"gitlab.com/stakecore/stakecore/protocol"
)

// CreateStakePool initializes the global stake pool. The pool lives at a
// fixed address, so at most one pool can ever be created; a second attempt
// fails with Conflict and has no effect.
type CreateStakePool struct{}

var _ TxExecutor = CreateStakePool{}

func (CreateStakePool) Type() protocol.TransactionType {
	return protocol.TransactionTypeCreateStakePool
}

func (CreateStakePool) Execute(st *StateManager, tx *Delivery) (protocol.TransactionResult, error) {
	return (CreateStakePool{}).Validate(st, tx)
}

func (CreateStakePool) Validate(st *StateManager, tx *Delivery) (protocol.TransactionResult, error) {
	body, ok := tx.Body().(*protocol.CreateStakePool)
	if !ok {
		return nil, errors.InternalError.WithFormat("invalid payload: want %T, got %T", new(protocol.CreateStakePool), tx.Body())
	}

	poolUrl := protocol.PoolUrl()
	if !poolUrl.Equal(st.Principal) {
		return nil, errors.BadRequest.WithFormat("invalid principal: the stake pool is %v", poolUrl)
	}

	ok, err := st.Exists(poolUrl)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if ok {
		return nil, errors.Conflict.WithFormat("stake pool %v is already initialized", poolUrl)
	}

	mint := new(protocol.TokenIssuer)
	mint.Url = protocol.RewardMintUrl()
	mint.Authority = poolUrl
	mint.Symbol = protocol.RewardSymbol
	mint.Precision = protocol.RewardPrecision

	pool := new(protocol.StakePool)
	pool.Url = poolUrl
	pool.Authority = st.Requester
	pool.RewardMint = mint.Url
	pool.RewardRate = body.RewardRate
	pool.CreatedAt = st.Time

	// Both records are created in one batch, so there is no observable state
	// where one exists without the other
	err = st.Create(pool, mint)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("create stake pool: %w", err)
	}
	return nil, nil
}
