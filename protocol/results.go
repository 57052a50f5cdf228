// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

// A TransactionResult is the typed result of a successfully executed
// transaction.
type TransactionResult interface {
	Type() TransactionType
}

// StakeTokensResult reports the outcome of staking.
type StakeTokensResult struct {
	// RewardsPaid is the amount of rewards paid out before the new stake was
	// added.
	RewardsPaid uint64 `json:"rewardsPaid"`
	// Balance is the staked balance after the stake.
	Balance uint64 `json:"balance"`
}

func (*StakeTokensResult) Type() TransactionType { return TransactionTypeStakeTokens }

// ClaimRewardsResult reports the rewards paid by a claim.
type ClaimRewardsResult struct {
	RewardsPaid uint64 `json:"rewardsPaid"`
}

func (*ClaimRewardsResult) Type() TransactionType { return TransactionTypeClaimRewards }

// UnstakeTokensResult reports the balance returned by an unstake.
type UnstakeTokensResult struct {
	Returned uint64 `json:"returned"`
}

func (*UnstakeTokensResult) Type() TransactionType { return TransactionTypeUnstakeTokens }
