// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"context"
	"encoding/json"
	"io"
	stdlog "log"
	"mime"
	"net/http"
	"os"

	"github.com/AccumulateNetwork/jsonrpc2/v15"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gitlab.com/stakecore/stakecore"
	"gitlab.com/stakecore/stakecore/internal/database"
	"gitlab.com/stakecore/stakecore/pkg/errors"
	"gitlab.com/stakecore/stakecore/pkg/url"
	"gitlab.com/stakecore/stakecore/protocol"
)

// JrpcMethods is the JSON-RPC method set of the staking service.
type JrpcMethods struct {
	Options
	methods  jsonrpc2.MethodMap
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewJrpc creates the JSON-RPC method set.
func NewJrpc(opts Options) (*JrpcMethods, error) {
	m := new(JrpcMethods)
	m.Options = opts
	m.validate = validator.New()
	m.logger = opts.Logger.With().Str("module", "jrpc").Logger()

	if opts.Executor == nil {
		return nil, errors.InternalError.With("missing executor")
	}
	if opts.Database == nil {
		return nil, errors.InternalError.With("missing database")
	}

	m.populateMethodTable()
	return m, nil
}

func (m *JrpcMethods) populateMethodTable() {
	if m.methods == nil {
		m.methods = make(jsonrpc2.MethodMap, 11)
	}

	m.methods["execute"] = m.Execute
	m.methods["initialize"] = m.ExecuteCreateStakePool
	m.methods["create-pool"] = m.ExecuteCreateStakePool
	m.methods["create-entry"] = m.ExecuteCreateStakeEntry
	m.methods["stake"] = m.ExecuteStakeTokens
	m.methods["claim-rewards"] = m.ExecuteClaimRewards
	m.methods["unstake"] = m.ExecuteUnstakeTokens
	m.methods["query"] = m.Query
	m.methods["query-tx"] = m.QueryTx
	m.methods["status"] = m.Status
	m.methods["version"] = m.Version
}

// NewMux returns the HTTP mux of the service.
func (m *JrpcMethods) NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/status", m.jrpc2http(m.Status))
	mux.Handle("/version", m.jrpc2http(m.Version))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/v1", jsonrpc2.HTTPRequestHandler(m.methods, stdlog.New(os.Stdout, "", 0)))
	return mux
}

func (m *JrpcMethods) jrpc2http(jrpc jsonrpc2.MethodFunc) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			res.WriteHeader(http.StatusBadRequest)
			return
		}

		var params json.RawMessage
		mediatype, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
		if mediatype == "application/json" || mediatype == "text/json" {
			params = body
		}

		r := jrpc(req.Context(), params)
		res.Header().Add("Content-Type", "application/json")
		data, err := json.Marshal(r)
		if err != nil {
			m.logger.Error().Err(err).Msg("Failed to marshal response")
			res.WriteHeader(http.StatusInternalServerError)
			return
		}

		_, _ = res.Write(data)
	}
}

// Query returns the account record at the given URL.
func (m *JrpcMethods) Query(_ context.Context, params json.RawMessage) interface{} {
	req := new(GeneralQuery)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	u, err := url.Parse(req.Url)
	if err != nil {
		return validatorError(err)
	}

	var account protocol.Account
	err = m.Database.View(func(batch *database.Batch) error {
		var err error
		account, err = batch.Account(u).GetState()
		return err
	})
	if err != nil {
		return protocolError(err)
	}

	return &QueryResponse{Type: account.Type(), Data: account}
}

// QueryTx returns the status of the transaction with the given ID.
func (m *JrpcMethods) QueryTx(_ context.Context, params json.RawMessage) interface{} {
	req := new(TxnQuery)
	err := m.parse(params, req)
	if err != nil {
		return err
	}

	txid, err := protocol.ParseTxID(req.TxID)
	if err != nil {
		return validatorError(err)
	}

	var status *protocol.TransactionStatus
	err = m.Database.View(func(batch *database.Batch) error {
		var err error
		status, err = batch.Transaction(txid).GetStatus()
		return err
	})
	if err != nil {
		return protocolError(err)
	}

	return formatTxResponse(status)
}

// Status reports the state of the service and the pool.
func (m *JrpcMethods) Status(_ context.Context, params json.RawMessage) interface{} {
	res := new(StatusResponse)
	res.Ok = true

	pool := new(protocol.StakePool)
	err := m.Database.View(func(batch *database.Batch) error {
		return batch.Account(protocol.PoolUrl()).GetStateAs(&pool)
	})
	switch {
	case err == nil:
		res.PoolInitialized = true
		res.TotalStaked = pool.TotalStaked
		res.RewardRate = pool.RewardRate
	case errors.Is(err, errors.NotFound):
		// Not initialized yet
	default:
		return protocolError(err)
	}

	return res
}

// Version returns the version of the service.
func (m *JrpcMethods) Version(_ context.Context, _ json.RawMessage) interface{} {
	return &VersionResponse{Version: stakecore.Version, Commit: stakecore.Commit}
}

func (m *JrpcMethods) parse(params json.RawMessage, target interface{}) error {
	err := json.Unmarshal(params, target)
	if err != nil {
		return validatorError(err)
	}

	err = m.validate.Struct(target)
	if err != nil {
		return validatorError(err)
	}

	return nil
}
