// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"context"
	"encoding/json"

	"gitlab.com/stakecore/stakecore/protocol"
)

// Execute submits a signed envelope of any transaction type.
func (m *JrpcMethods) Execute(ctx context.Context, params json.RawMessage) interface{} {
	return m.executeWith(ctx, params, 0)
}

func (m *JrpcMethods) ExecuteCreateStakePool(ctx context.Context, params json.RawMessage) interface{} {
	return m.executeWith(ctx, params, protocol.TransactionTypeCreateStakePool)
}

func (m *JrpcMethods) ExecuteCreateStakeEntry(ctx context.Context, params json.RawMessage) interface{} {
	return m.executeWith(ctx, params, protocol.TransactionTypeCreateStakeEntry)
}

func (m *JrpcMethods) ExecuteStakeTokens(ctx context.Context, params json.RawMessage) interface{} {
	return m.executeWith(ctx, params, protocol.TransactionTypeStakeTokens)
}

func (m *JrpcMethods) ExecuteClaimRewards(ctx context.Context, params json.RawMessage) interface{} {
	return m.executeWith(ctx, params, protocol.TransactionTypeClaimRewards)
}

func (m *JrpcMethods) ExecuteUnstakeTokens(ctx context.Context, params json.RawMessage) interface{} {
	return m.executeWith(ctx, params, protocol.TransactionTypeUnstakeTokens)
}

// executeWith parses a transaction request, checks the envelope's type
// against the method's type, and delivers it to the executor. The response
// always carries the transaction ID so the caller can query the outcome
// later.
func (m *JrpcMethods) executeWith(ctx context.Context, params json.RawMessage, typ protocol.TransactionType) interface{} {
	req := new(TxRequest)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	env := req.Envelope
	if env.Transaction == nil || env.Transaction.Body == nil {
		return validatorError(protocolErrorf("missing transaction"))
	}
	if typ != protocol.TransactionTypeUnknown && env.Transaction.Body.Type() != typ {
		return validatorError(protocolErrorf("wrong transaction type: want %v, got %v", typ, env.Transaction.Body.Type()))
	}

	status, err := m.Executor.Deliver(ctx, env)
	if err != nil {
		return protocolError(err)
	}

	return formatTxResponse(status)
}

func formatTxResponse(status *protocol.TransactionStatus) *TxResponse {
	res := new(TxResponse)
	res.TxID = status.TxID
	res.Code = uint64(status.Code)
	if status.Error != nil {
		res.Message = status.Error.Error()
	}
	res.Result = status.Result
	return res
}
