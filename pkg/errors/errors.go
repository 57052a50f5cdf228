// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"errors"
	"fmt"
)

// Error is a status-coded error. Cause is the error that precipitated this
// one, if any.
type Error struct {
	Code    Status `json:"code"`
	Message string `json:"message,omitempty"`
	Cause   *Error `json:"cause,omitempty"`
}

// With returns a new Error with the given message.
func (s Status) With(v ...interface{}) *Error {
	return &Error{Code: s, Message: fmt.Sprint(v...)}
}

// WithFormat returns a new Error with the formatted message. If the format
// wraps an error, that error becomes the cause.
func (s Status) WithFormat(format string, args ...interface{}) *Error {
	err := fmt.Errorf(format, args...)
	e := &Error{Code: s, Message: err.Error()}
	if u, ok := err.(interface{ Unwrap() error }); ok {
		e.setCause(convert(u.Unwrap()))
	}
	return e
}

// Wrap wraps the given error with the status, preserving the original as the
// cause. Wrap returns nil if err is nil, and returns err unchanged if err is
// already an *Error and the status is not a known error.
func (s Status) Wrap(err error) error {
	if err == nil {
		return nil
	}
	if !s.IsKnownError() {
		if _, ok := err.(*Error); ok {
			return err
		}
	}
	e := &Error{Code: s}
	e.setCause(convert(err))
	return e
}

func convert(err error) *Error {
	switch err := err.(type) {
	case nil:
		return nil
	case *Error:
		return err
	case Status:
		return &Error{Code: err, Message: err.String()}
	}

	e := &Error{Code: UnknownError, Message: err.Error()}
	if u := errors.Unwrap(err); u != nil {
		e.setCause(convert(u))
	}
	return e
}

func (e *Error) setCause(f *Error) {
	e.Cause = f
	if e.Message == "" && f != nil {
		e.Message = f.Message
	}
}

// Error implements error.
func (e *Error) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Code
}

// Is returns true if the target is a Status or *Error with the same code as
// this error or any of its causes.
func (e *Error) Is(target error) bool {
	switch f := target.(type) {
	case *Error:
		if e.Code == f.Code {
			return true
		}
	case Status:
		if e.Code == f {
			return true
		}
	}
	if e.Cause != nil {
		return e.Cause.Is(target)
	}
	return false
}

// Code returns the status code of the first *Error or Status found in the
// error's chain, or UnknownError if there is none.
func Code(err error) Status {
	for ; err != nil; err = errors.Unwrap(err) {
		switch err := err.(type) {
		case *Error:
			return err.Code
		case Status:
			return err
		}
	}
	return UnknownError
}

// Is is errors.Is.
func Is(err, target error) bool { return errors.Is(err, target) }

// As is errors.As.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Unwrap is errors.Unwrap.
func Unwrap(err error) error { return errors.Unwrap(err) }
