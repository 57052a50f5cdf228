// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import "math/bits"

// CalculateRewards returns the reward accrued by a staked balance since the
// last stake or claim action, and the new last-staked timestamp.
//
//	Reward = staked * (now - lastStakedAt) * ratePerSec
//
// The reward is zero when nothing is staked or time has not advanced, and
// saturates to zero if the multiplication overflows.
func CalculateRewards(staked, lastStakedAt, ratePerSec, now uint64) (pending, newLastStakedAt uint64) {
	if staked == 0 || now <= lastStakedAt {
		return 0, now
	}

	elapsed := now - lastStakedAt

	hi, lo := bits.Mul64(staked, elapsed)
	if hi != 0 {
		return 0, now
	}
	hi, lo = bits.Mul64(lo, ratePerSec)
	if hi != 0 {
		return 0, now
	}
	return lo, now
}

// AddBalance adds to a balance. Returns false if the sum overflows.
func AddBalance(balance, amount uint64) (uint64, bool) {
	sum, carry := bits.Add64(balance, amount, 0)
	return sum, carry == 0
}
