// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api

import (
	"fmt"

	"github.com/AccumulateNetwork/jsonrpc2/v15"
	"gitlab.com/stakecore/stakecore/pkg/errors"
)

const (
	// ErrCodeInternal indicates an internal service error.
	ErrCodeInternal jsonrpc2.ErrorCode = -32800 - iota
	// ErrCodeValidation indicates a malformed request.
	ErrCodeValidation
	// ErrCodeNotFound indicates the requested record does not exist.
	ErrCodeNotFound
	// ErrCodeProtocolBase is the base offset for status-coded errors. A
	// status code X maps to the RPC error code ErrCodeProtocolBase - X.
	ErrCodeProtocolBase jsonrpc2.ErrorCode = -33000
)

func validatorError(err error) jsonrpc2.Error {
	return jsonrpc2.NewError(ErrCodeValidation, "Validation Error", err)
}

func internalError(err error) jsonrpc2.Error {
	return jsonrpc2.NewError(ErrCodeInternal, "Internal Error", err)
}

func protocolErrorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// protocolError maps a status-coded error to a JSON-RPC error.
func protocolError(err error) jsonrpc2.Error {
	if errors.Is(err, errors.NotFound) {
		return jsonrpc2.NewError(ErrCodeNotFound, "Not Found", err.Error())
	}

	var perr *errors.Error
	if errors.As(err, &perr) {
		return jsonrpc2.NewError(ErrCodeProtocolBase-jsonrpc2.ErrorCode(perr.Code), perr.Code.String(), perr.Message)
	}

	return internalError(err)
}
