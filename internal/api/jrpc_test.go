// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/AccumulateNetwork/jsonrpc2/v15"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gitlab.com/stakecore/stakecore/internal/chain"
	"gitlab.com/stakecore/stakecore/internal/database"
	"gitlab.com/stakecore/stakecore/pkg/errors"
	"gitlab.com/stakecore/stakecore/pkg/url"
	"gitlab.com/stakecore/stakecore/protocol"
)

func newTestJrpc(t *testing.T) *JrpcMethods {
	t.Helper()
	db := database.OpenInMemory(zerolog.Nop())
	t.Cleanup(func() { _ = db.Close() })

	x := chain.NewExecutor(db, zerolog.Nop())
	m, err := NewJrpc(Options{
		Logger:   zerolog.Nop(),
		Executor: x,
		Database: db,
	})
	require.NoError(t, err)
	return m
}

func signedRequest(t *testing.T, key ed25519.PrivateKey, principal *url.URL, timestamp uint64, body protocol.TransactionBody) json.RawMessage {
	t.Helper()
	env := new(protocol.Envelope)
	env.Transaction = new(protocol.Transaction)
	env.Transaction.Header.Principal = principal
	env.Transaction.Header.Timestamp = timestamp
	env.Transaction.Body = body
	env.Sign(key)

	data, err := json.Marshal(&TxRequest{Envelope: env})
	require.NoError(t, err)
	return data
}

func TestInitialize(t *testing.T) {
	m := newTestJrpc(t)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	params := signedRequest(t, key, protocol.PoolUrl(), 1, &protocol.CreateStakePool{RewardRate: 5})
	r := m.ExecuteCreateStakePool(context.Background(), params)

	res, ok := r.(*TxResponse)
	require.True(t, ok, "expected a TxResponse, got %T", r)
	require.Equal(t, uint64(errors.Delivered), res.Code)
	require.NotEqual(t, protocol.TxID{}, res.TxID)
}

func TestInitialize_Twice(t *testing.T) {
	m := newTestJrpc(t)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	r := m.ExecuteCreateStakePool(context.Background(), signedRequest(t, key, protocol.PoolUrl(), 1, &protocol.CreateStakePool{RewardRate: 5}))
	require.Equal(t, uint64(errors.Delivered), r.(*TxResponse).Code)

	r = m.ExecuteCreateStakePool(context.Background(), signedRequest(t, key, protocol.PoolUrl(), 2, &protocol.CreateStakePool{RewardRate: 5}))
	res := r.(*TxResponse)
	require.Equal(t, uint64(errors.Conflict), res.Code)
	require.Contains(t, res.Message, "already initialized")
}

func TestExecute_WrongType(t *testing.T) {
	m := newTestJrpc(t)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	// Submitting a stake envelope via the initialize method is rejected
	params := signedRequest(t, key, protocol.PoolUrl(), 1, &protocol.StakeTokens{Amount: 5})
	r := m.ExecuteCreateStakePool(context.Background(), params)

	rpcErr, ok := r.(jsonrpc2.Error)
	require.True(t, ok, "expected an error, got %T", r)
	require.Equal(t, ErrCodeValidation, rpcErr.Code)
}

func TestQuery(t *testing.T) {
	m := newTestJrpc(t)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	m.ExecuteCreateStakePool(context.Background(), signedRequest(t, key, protocol.PoolUrl(), 1, &protocol.CreateStakePool{RewardRate: 5}))

	r := m.Query(context.Background(), json.RawMessage(`{"url":"stk://staking/pool"}`))
	res, ok := r.(*QueryResponse)
	require.True(t, ok, "expected a QueryResponse, got %T", r)
	require.Equal(t, protocol.AccountTypeStakePool, res.Type)

	pool, ok := res.Data.(*protocol.StakePool)
	require.True(t, ok)
	require.Equal(t, uint64(5), pool.RewardRate)
}

func TestQuery_NotFound(t *testing.T) {
	m := newTestJrpc(t)

	r := m.Query(context.Background(), json.RawMessage(`{"url":"stk://staking/pool"}`))
	rpcErr, ok := r.(jsonrpc2.Error)
	require.True(t, ok, "expected an error, got %T", r)
	require.Equal(t, ErrCodeNotFound, rpcErr.Code)
}

func TestQueryTx(t *testing.T) {
	m := newTestJrpc(t)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	r := m.ExecuteCreateStakePool(context.Background(), signedRequest(t, key, protocol.PoolUrl(), 1, &protocol.CreateStakePool{RewardRate: 5}))
	txid := r.(*TxResponse).TxID

	params, err := json.Marshal(&TxnQuery{TxID: txid.String()})
	require.NoError(t, err)
	q := m.QueryTx(context.Background(), params)
	res, ok := q.(*TxResponse)
	require.True(t, ok, "expected a TxResponse, got %T", q)
	require.Equal(t, txid, res.TxID)
	require.Equal(t, uint64(errors.Delivered), res.Code)
}

func TestStatus(t *testing.T) {
	m := newTestJrpc(t)

	r := m.Status(context.Background(), nil)
	res := r.(*StatusResponse)
	require.True(t, res.Ok)
	require.False(t, res.PoolInitialized)

	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	m.ExecuteCreateStakePool(context.Background(), signedRequest(t, key, protocol.PoolUrl(), 1, &protocol.CreateStakePool{RewardRate: 5}))

	res = m.Status(context.Background(), nil).(*StatusResponse)
	require.True(t, res.PoolInitialized)
	require.Equal(t, uint64(5), res.RewardRate)
}

func TestParse_MissingEnvelope(t *testing.T) {
	m := newTestJrpc(t)

	r := m.Execute(context.Background(), json.RawMessage(`{}`))
	rpcErr, ok := r.(jsonrpc2.Error)
	require.True(t, ok, "expected an error, got %T", r)
	require.Equal(t, ErrCodeValidation, rpcErr.Code)
}
