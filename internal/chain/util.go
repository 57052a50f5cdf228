package chain

import (
	"gitlab.com/stakecore/stakecore/pkg/errors"
	"gitlab.com/stakecore/stakecore/protocol"
)

func loadPool(st *StateManager) (*protocol.StakePool, error) {
	pool := new(protocol.StakePool)
	err := st.LoadUrlAs(protocol.PoolUrl(), &pool)
	switch {
	case err == nil:
		return pool, nil
	case errors.Is(err, errors.NotFound):
		return nil, errors.NotFound.WithFormat("stake pool %v has not been initialized", protocol.PoolUrl())
	default:
		return nil, errors.UnknownError.Wrap(err)
	}
}

// payPendingRewards mints the rewards accrued by the entry since its last
// stake and records them on the entry and the reward issuer. The caller is
// responsible for stamping entry.LastStakedAt and persisting the entry.
func payPendingRewards(st *StateManager, pool *protocol.StakePool, entry *protocol.StakeEntry) (uint64, error) {
	pending, _ := protocol.CalculateRewards(entry.Balance, entry.LastStakedAt, pool.RewardRate, st.Time)
	if pending == 0 {
		return 0, nil
	}

	mint := new(protocol.TokenIssuer)
	err := st.LoadUrlAs(pool.RewardMint, &mint)
	if err != nil {
		return 0, errors.UnknownError.Wrap(err)
	}

	issued, ok := protocol.AddBalance(mint.Issued, pending)
	if !ok {
		return 0, errors.InternalError.WithFormat("minting %d rewards would overflow the issuer's supply", pending)
	}
	paid, ok := protocol.AddBalance(entry.RewardsPaid, pending)
	if !ok {
		return 0, errors.InternalError.WithFormat("paying %d rewards would overflow the entry's total", pending)
	}

	mint.Issued = issued
	entry.RewardsPaid = paid
	err = st.Update(mint)
	if err != nil {
		return 0, errors.UnknownError.Wrap(err)
	}
	return pending, nil
}
