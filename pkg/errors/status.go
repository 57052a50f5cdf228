// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is a request status code.
type Status uint64

const (
	// OK means the request completed.
	OK Status = 200
	// Delivered means the transaction has been delivered and committed.
	Delivered Status = 201
	// Pending means the transaction is known but not yet committed.
	Pending Status = 202

	// BadRequest means the request was malformed.
	BadRequest Status = 400
	// Unauthenticated means the signature could not be verified.
	Unauthenticated Status = 401
	// Unauthorized means the signer is not authorized to act for the
	// principal.
	Unauthorized Status = 403
	// NotFound means a record could not be located.
	NotFound Status = 404
	// Conflict means the record already exists and cannot be created again.
	Conflict Status = 409
	// InsufficientFunds means the account balance does not cover the request.
	InsufficientFunds Status = 412

	// InternalError means the node encountered an internal error.
	InternalError Status = 500
	// UnknownError means the error cause is unknown.
	UnknownError Status = 501
	// EncodingError means the record or request could not be decoded.
	EncodingError Status = 502
	// Unavailable means the effect could not be committed at this time and
	// the caller may retry.
	Unavailable Status = 503
)

// Success returns true if the status represents success.
func (s Status) Success() bool { return s < 300 }

// IsClientError returns true if the status is a client error.
func (s Status) IsClientError() bool { return s >= 400 && s < 500 }

// IsServerError returns true if the status is a server error.
func (s Status) IsServerError() bool { return s >= 500 }

// IsKnownError returns true if the status is non-zero and not UnknownError.
func (s Status) IsKnownError() bool { return s != 0 && s != UnknownError }

// Error implements error.
func (s Status) Error() string { return s.String() }

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Delivered:
		return "delivered"
	case Pending:
		return "pending"
	case BadRequest:
		return "badRequest"
	case Unauthenticated:
		return "unauthenticated"
	case Unauthorized:
		return "unauthorized"
	case NotFound:
		return "notFound"
	case Conflict:
		return "conflict"
	case InsufficientFunds:
		return "insufficientFunds"
	case InternalError:
		return "internalError"
	case UnknownError:
		return "unknownError"
	case EncodingError:
		return "encodingError"
	case Unavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("Status:%d", uint64(s))
	}
}

// StatusByName returns the named status and true, or zero and false if the
// name does not match any status.
func StatusByName(name string) (Status, bool) {
	switch strings.ToLower(name) {
	case "ok":
		return OK, true
	case "delivered":
		return Delivered, true
	case "pending":
		return Pending, true
	case "badrequest":
		return BadRequest, true
	case "unauthenticated":
		return Unauthenticated, true
	case "unauthorized":
		return Unauthorized, true
	case "notfound":
		return NotFound, true
	case "conflict":
		return Conflict, true
	case "insufficientfunds":
		return InsufficientFunds, true
	case "internalerror":
		return InternalError, true
	case "unknownerror":
		return UnknownError, true
	case "encodingerror":
		return EncodingError, true
	case "unavailable":
		return Unavailable, true
	default:
		return 0, false
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, ok := StatusByName(str)
	if !ok {
		return fmt.Errorf("invalid status %q", str)
	}
	*s = v
	return nil
}
