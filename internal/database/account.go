// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package database

import (
	"reflect"

	"gitlab.com/stakecore/stakecore/pkg/database/keyvalue"
	"gitlab.com/stakecore/stakecore/pkg/errors"
	"gitlab.com/stakecore/stakecore/pkg/url"
	"gitlab.com/stakecore/stakecore/protocol"
)

// Account returns an accessor for the account record at the given URL.
func (b *Batch) Account(u *url.URL) *Account {
	return &Account{batch: b, url: u, key: keyvalue.NewKey("Account", u.AccountID32())}
}

// Account provides access to an account record.
type Account struct {
	batch *Batch
	url   *url.URL
	key   keyvalue.Key
}

// Url returns the account's URL.
func (a *Account) Url() *url.URL { return a.url }

// GetState loads the account record. Returns errors.NotFound if the account
// does not exist.
func (a *Account) GetState() (protocol.Account, error) {
	data, err := a.batch.kv.Get(a.key)
	switch {
	case err == nil:
		// Ok
	case errors.Is(err, errors.NotFound):
		return nil, errors.NotFound.WithFormat("account %v not found", a.url)
	default:
		return nil, errors.UnknownError.WithFormat("load %v: %w", a.url, err)
	}

	account, err := protocol.UnmarshalAccount(data)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("load %v: %w", a.url, err)
	}
	return account, nil
}

// GetStateAs loads the account record into the target, which must be a
// pointer to a pointer to a concrete account type.
func (a *Account) GetStateAs(target interface{}) error {
	account, err := a.GetState()
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.InternalError.WithFormat("invalid target %T", target)
	}
	av := reflect.ValueOf(account)
	if !av.Type().AssignableTo(rv.Elem().Type()) {
		return errors.BadRequest.WithFormat("load %v: want %v, got %v", a.url, rv.Elem().Type(), av.Type())
	}
	rv.Elem().Set(av)
	return nil
}

// Exists returns true if the account record exists.
func (a *Account) Exists() (bool, error) {
	_, err := a.batch.kv.Get(a.key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errors.NotFound):
		return false, nil
	default:
		return false, errors.UnknownError.WithFormat("load %v: %w", a.url, err)
	}
}

// PutState stores the account record, which must already exist.
func (a *Account) PutState(account protocol.Account) error {
	data, err := a.marshal(account)
	if err != nil {
		return err
	}
	return a.batch.kv.Put(a.key, data)
}

// Create stores a new account record on the condition that no record exists
// at the address. The condition is rechecked when the batch commits, so two
// batches racing to create the same account have exactly one winner.
func (a *Account) Create(account protocol.Account) error {
	data, err := a.marshal(account)
	if err != nil {
		return err
	}

	err = a.batch.kv.Create(a.key, data)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errors.Conflict):
		return errors.Conflict.WithFormat("account %v already exists", a.url)
	default:
		return errors.UnknownError.WithFormat("create %v: %w", a.url, err)
	}
}

func (a *Account) marshal(account protocol.Account) ([]byte, error) {
	if !a.url.Equal(account.GetUrl()) {
		return nil, errors.InternalError.WithFormat("account URL %v does not match record URL %v", a.url, account.GetUrl())
	}

	data, err := protocol.MarshalAccount(account)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("store %v: %w", a.url, err)
	}
	return data, nil
}
