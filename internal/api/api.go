// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package api exposes the staking executor over JSON-RPC.
package api

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"gitlab.com/stakecore/stakecore/internal/chain"
	"gitlab.com/stakecore/stakecore/internal/database"
	"gitlab.com/stakecore/stakecore/protocol"
)

// Options are the options for a JSON-RPC method set.
type Options struct {
	Logger   zerolog.Logger
	Executor *chain.Executor
	Database *database.Database
}

// TxRequest submits a signed envelope for execution.
type TxRequest struct {
	Envelope *protocol.Envelope `json:"envelope" validate:"required"`
}

// TxResponse reports the outcome of a submitted transaction.
type TxResponse struct {
	TxID    protocol.TxID   `json:"txid"`
	Code    uint64          `json:"code"`
	Message string          `json:"message,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// GeneralQuery queries an account record by URL.
type GeneralQuery struct {
	Url string `json:"url" validate:"required"`
}

// QueryResponse is the response to an account query.
type QueryResponse struct {
	Type protocol.AccountType `json:"type"`
	Data protocol.Account     `json:"data"`
}

// TxnQuery queries a transaction status by ID.
type TxnQuery struct {
	TxID string `json:"txid" validate:"required"`
}

// StatusResponse reports the state of the service.
type StatusResponse struct {
	Ok              bool   `json:"ok"`
	PoolInitialized bool   `json:"poolInitialized"`
	TotalStaked     uint64 `json:"totalStaked"`
	RewardRate      uint64 `json:"rewardRate"`
}

// VersionResponse reports the version of the service.
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}
