// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"encoding/json"

	"gitlab.com/stakecore/stakecore/pkg/errors"
	"gitlab.com/stakecore/stakecore/pkg/url"
)

// AccountType is the type of an account record.
type AccountType uint64

const (
	AccountTypeUnknown AccountType = iota
	AccountTypeStakePool
	AccountTypeStakeEntry
	AccountTypeTokenIssuer
)

func (t AccountType) String() string {
	switch t {
	case AccountTypeStakePool:
		return "stakePool"
	case AccountTypeStakeEntry:
		return "stakeEntry"
	case AccountTypeTokenIssuer:
		return "tokenIssuer"
	default:
		return "unknown"
	}
}

// AccountTypeByName returns the named account type and true, or zero and
// false.
func AccountTypeByName(name string) (AccountType, bool) {
	switch name {
	case "stakePool":
		return AccountTypeStakePool, true
	case "stakeEntry":
		return AccountTypeStakeEntry, true
	case "tokenIssuer":
		return AccountTypeTokenIssuer, true
	default:
		return 0, false
	}
}

func (t AccountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *AccountType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := AccountTypeByName(s)
	if !ok {
		return errors.EncodingError.WithFormat("invalid account type %q", s)
	}
	*t = v
	return nil
}

// An Account is a durable ledger record.
type Account interface {
	GetUrl() *url.URL
	Type() AccountType
}

// StakePool is the global staking pool record. A loadable pool record is the
// initialized state; absence of the record means the pool is uninitialized.
type StakePool struct {
	Url         *url.URL `json:"url"`
	Authority   *url.URL `json:"authority"`
	RewardMint  *url.URL `json:"rewardMint"`
	RewardRate  uint64   `json:"rewardRate"`
	TotalStaked uint64   `json:"totalStaked"`
	CreatedAt   uint64   `json:"createdAt"`
}

func (p *StakePool) GetUrl() *url.URL { return p.Url }
func (*StakePool) Type() AccountType { return AccountTypeStakePool }

// StakeEntry records a single participant's staking position. The entry URL
// is derived from the owner's identity, so each owner has at most one entry.
type StakeEntry struct {
	Url          *url.URL `json:"url"`
	Owner        *url.URL `json:"owner"`
	Balance      uint64   `json:"balance"`
	RewardsPaid  uint64   `json:"rewardsPaid"`
	LastStakedAt uint64   `json:"lastStakedAt"`
	CreatedAt    uint64   `json:"createdAt"`
}

func (e *StakeEntry) GetUrl() *url.URL { return e.Url }
func (*StakeEntry) Type() AccountType { return AccountTypeStakeEntry }

// TokenIssuer is the issuer of the reward token. Issued tracks the total
// amount of rewards minted by the pool.
type TokenIssuer struct {
	Url       *url.URL `json:"url"`
	Authority *url.URL `json:"authority"`
	Symbol    string   `json:"symbol"`
	Precision uint64   `json:"precision"`
	Issued    uint64   `json:"issued"`
}

func (i *TokenIssuer) GetUrl() *url.URL { return i.Url }
func (*TokenIssuer) Type() AccountType { return AccountTypeTokenIssuer }

// NewAccount creates a new account record of the given type.
func NewAccount(typ AccountType) (Account, error) {
	switch typ {
	case AccountTypeStakePool:
		return new(StakePool), nil
	case AccountTypeStakeEntry:
		return new(StakeEntry), nil
	case AccountTypeTokenIssuer:
		return new(TokenIssuer), nil
	default:
		return nil, errors.EncodingError.WithFormat("unknown account type %v", typ)
	}
}

type accountEnvelope struct {
	Type AccountType     `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalAccount marshals an account record with its type tag.
func MarshalAccount(account Account) ([]byte, error) {
	data, err := json.Marshal(account)
	if err != nil {
		return nil, errors.EncodingError.Wrap(err)
	}
	return json.Marshal(&accountEnvelope{Type: account.Type(), Data: data})
}

// UnmarshalAccount unmarshals an account record from its type-tagged
// encoding.
func UnmarshalAccount(data []byte) (Account, error) {
	env := new(accountEnvelope)
	if err := json.Unmarshal(data, env); err != nil {
		return nil, errors.EncodingError.Wrap(err)
	}

	account, err := NewAccount(env.Type)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(env.Data, account); err != nil {
		return nil, errors.EncodingError.Wrap(err)
	}
	return account, nil
}
