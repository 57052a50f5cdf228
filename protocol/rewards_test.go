// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateRewards(t *testing.T) {
	cases := []struct {
		name                         string
		staked, last, rate, now      uint64
		expectPending, expectNewLast uint64
	}{
		{"simple", 100, 1000, 3, 1010, 100 * 10 * 3, 1010},
		{"nothing staked", 0, 1000, 3, 1010, 0, 1010},
		{"no time elapsed", 100, 1000, 3, 1000, 0, 1000},
		{"clock went backwards", 100, 1000, 3, 990, 0, 990},
		{"zero rate", 100, 1000, 0, 1010, 0, 1010},
		{"overflow saturates to zero", math.MaxUint64, 0, 2, math.MaxUint64, 0, math.MaxUint64},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pending, newLast := CalculateRewards(c.staked, c.last, c.rate, c.now)
			require.Equal(t, c.expectPending, pending)
			require.Equal(t, c.expectNewLast, newLast)
		})
	}
}

func TestAddBalance(t *testing.T) {
	sum, ok := AddBalance(1, 2)
	require.True(t, ok)
	require.Equal(t, uint64(3), sum)

	_, ok = AddBalance(math.MaxUint64, 1)
	require.False(t, ok)
}
