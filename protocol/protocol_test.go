// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/stakecore/stakecore/pkg/url"
)

func TestLiteIdentityForKey(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	u := LiteIdentityForKey(pub)
	require.True(t, u.IsRootIdentity())
	require.Len(t, u.Hostname(), 48)

	// The derivation is deterministic
	require.True(t, u.Equal(LiteIdentityForKey(pub)))

	// The URL round-trips through the parser with a valid checksum
	keyHash, err := ParseLiteIdentity(u)
	require.NoError(t, err)
	require.NotNil(t, keyHash)
	require.True(t, BelongsToKey(u, pub))
}

func TestParseLiteIdentity(t *testing.T) {
	// Not hex, not a lite identity - but not an error either
	keyHash, err := ParseLiteIdentity(url.MustParse("stk://staking"))
	require.NoError(t, err)
	require.Nil(t, keyHash)

	// Valid hex with a corrupted checksum is an error
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	u := LiteIdentityForKey(pub)
	s := u.Hostname()
	corrupt := s[:40] + "00000000"
	if s[40:] == "00000000" {
		corrupt = s[:40] + "11111111"
	}
	_, err = ParseLiteIdentity(url.MustParse(corrupt))
	require.Error(t, err)
}

func TestStakeEntryUrl(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	identity := LiteIdentityForKey(pub)
	entry := StakeEntryUrl(identity)
	require.True(t, identity.ParentOf(entry))
	require.True(t, entry.PathEqual("stake"))

	// Deriving from the entry itself targets the same address
	require.True(t, entry.Equal(StakeEntryUrl(entry)))
}

func TestEnvelopeSignVerify(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	env := &Envelope{Transaction: &Transaction{
		Header: TransactionHeader{Principal: PoolUrl(), Timestamp: 1},
		Body:   &CreateStakePool{RewardRate: 5},
	}}
	env.Sign(priv)
	require.True(t, env.Verify())
	require.True(t, env.Requester().Equal(LiteIdentityForKey(pub)))

	// Tampering with the transaction invalidates the signature
	env.Transaction.Header.Timestamp = 2
	require.False(t, env.Verify())
}

func TestTransactionJSONRoundTrip(t *testing.T) {
	txs := []*Transaction{
		{Header: TransactionHeader{Principal: PoolUrl(), Timestamp: 1}, Body: &CreateStakePool{RewardRate: 5}},
		{Header: TransactionHeader{Principal: url.MustParse("stk://foo/stake"), Timestamp: 2}, Body: &StakeTokens{Amount: 100}},
		{Header: TransactionHeader{Principal: url.MustParse("stk://foo/stake"), Timestamp: 3}, Body: &ClaimRewards{}},
		{Header: TransactionHeader{Principal: url.MustParse("stk://foo/stake"), Timestamp: 4}, Body: &UnstakeTokens{}},
		{Header: TransactionHeader{Principal: url.MustParse("stk://foo/stake"), Timestamp: 5}, Body: &CreateStakeEntry{}},
	}

	for _, tx := range txs {
		t.Run(tx.Body.Type().String(), func(t *testing.T) {
			data, err := tx.MarshalJSON()
			require.NoError(t, err)

			v := new(Transaction)
			require.NoError(t, v.UnmarshalJSON(data))
			require.Equal(t, tx.Body, v.Body)
			require.Equal(t, tx.ID(), v.ID())
		})
	}
}

func TestAccountRoundTrip(t *testing.T) {
	pool := &StakePool{
		Url:        PoolUrl(),
		Authority:  url.MustParse("stk://foo"),
		RewardMint: RewardMintUrl(),
		RewardRate: 5,
		CreatedAt:  1000,
	}

	data, err := MarshalAccount(pool)
	require.NoError(t, err)

	account, err := UnmarshalAccount(data)
	require.NoError(t, err)
	require.IsType(t, (*StakePool)(nil), account)

	v := account.(*StakePool)
	require.True(t, pool.Url.Equal(v.Url))
	require.True(t, pool.Authority.Equal(v.Authority))
	require.True(t, pool.RewardMint.Equal(v.RewardMint))
	require.Equal(t, pool.RewardRate, v.RewardRate)
	require.Equal(t, pool.CreatedAt, v.CreatedAt)
}
