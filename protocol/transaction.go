// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"gitlab.com/stakecore/stakecore/pkg/errors"
	"gitlab.com/stakecore/stakecore/pkg/url"
)

// TransactionType is the type of a transaction.
type TransactionType uint64

const (
	TransactionTypeUnknown TransactionType = iota
	TransactionTypeCreateStakePool
	TransactionTypeCreateStakeEntry
	TransactionTypeStakeTokens
	TransactionTypeClaimRewards
	TransactionTypeUnstakeTokens
)

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeCreateStakePool:
		return "createStakePool"
	case TransactionTypeCreateStakeEntry:
		return "createStakeEntry"
	case TransactionTypeStakeTokens:
		return "stakeTokens"
	case TransactionTypeClaimRewards:
		return "claimRewards"
	case TransactionTypeUnstakeTokens:
		return "unstakeTokens"
	default:
		return "unknown"
	}
}

// TransactionTypeByName returns the named transaction type and true, or zero
// and false.
func TransactionTypeByName(name string) (TransactionType, bool) {
	switch name {
	case "createStakePool":
		return TransactionTypeCreateStakePool, true
	case "createStakeEntry":
		return TransactionTypeCreateStakeEntry, true
	case "stakeTokens":
		return TransactionTypeStakeTokens, true
	case "claimRewards":
		return TransactionTypeClaimRewards, true
	case "unstakeTokens":
		return TransactionTypeUnstakeTokens, true
	default:
		return 0, false
	}
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := TransactionTypeByName(s)
	if !ok {
		return errors.EncodingError.WithFormat("invalid transaction type %q", s)
	}
	*t = v
	return nil
}

// A TransactionBody is the typed payload of a transaction.
type TransactionBody interface {
	Type() TransactionType
}

// CreateStakePool initializes the global staking pool. Exactly one pool can
// ever be created.
type CreateStakePool struct {
	RewardRate uint64 `json:"rewardRate"`
}

func (*CreateStakePool) Type() TransactionType { return TransactionTypeCreateStakePool }

// CreateStakeEntry initializes the requester's stake entry with a zero
// balance.
type CreateStakeEntry struct{}

func (*CreateStakeEntry) Type() TransactionType { return TransactionTypeCreateStakeEntry }

// StakeTokens adds to the requester's staked balance, creating the entry if
// it does not exist. Pending rewards are paid out first.
type StakeTokens struct {
	Amount uint64 `json:"amount"`
}

func (*StakeTokens) Type() TransactionType { return TransactionTypeStakeTokens }

// ClaimRewards pays out the requester's pending rewards.
type ClaimRewards struct{}

func (*ClaimRewards) Type() TransactionType { return TransactionTypeClaimRewards }

// UnstakeTokens withdraws the requester's entire staked balance.
type UnstakeTokens struct{}

func (*UnstakeTokens) Type() TransactionType { return TransactionTypeUnstakeTokens }

// NewTransactionBody creates a new transaction body of the given type.
func NewTransactionBody(typ TransactionType) (TransactionBody, error) {
	switch typ {
	case TransactionTypeCreateStakePool:
		return new(CreateStakePool), nil
	case TransactionTypeCreateStakeEntry:
		return new(CreateStakeEntry), nil
	case TransactionTypeStakeTokens:
		return new(StakeTokens), nil
	case TransactionTypeClaimRewards:
		return new(ClaimRewards), nil
	case TransactionTypeUnstakeTokens:
		return new(UnstakeTokens), nil
	default:
		return nil, errors.EncodingError.WithFormat("unknown transaction type %v", typ)
	}
}

// TransactionHeader is the header of a transaction.
type TransactionHeader struct {
	// Principal is the account the transaction acts upon.
	Principal *url.URL `json:"principal"`
	// Timestamp orders transactions from the same requester.
	Timestamp uint64 `json:"timestamp"`
}

// Transaction is a signed request to mutate the ledger.
type Transaction struct {
	Header TransactionHeader `json:"header"`
	Body   TransactionBody   `json:"body"`
}

type bodyEnvelope struct {
	Type TransactionType `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type transactionJSON struct {
	Header TransactionHeader `json:"header"`
	Body   *bodyEnvelope     `json:"body"`
}

func (t *Transaction) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(t.Body)
	if err != nil {
		return nil, errors.EncodingError.Wrap(err)
	}
	return json.Marshal(&transactionJSON{
		Header: t.Header,
		Body:   &bodyEnvelope{Type: t.Body.Type(), Data: body},
	})
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	v := new(transactionJSON)
	if err := json.Unmarshal(data, v); err != nil {
		return errors.EncodingError.Wrap(err)
	}
	if v.Body == nil {
		return errors.EncodingError.With("missing transaction body")
	}

	body, err := NewTransactionBody(v.Body.Type)
	if err != nil {
		return err
	}
	if len(v.Body.Data) > 0 {
		if err := json.Unmarshal(v.Body.Data, body); err != nil {
			return errors.EncodingError.Wrap(err)
		}
	}

	t.Header = v.Header
	t.Body = body
	return nil
}

// A TxID is the hash of a transaction. It is the durable confirmation handle
// returned for every committed effect.
type TxID [32]byte

func (id TxID) String() string { return hex.EncodeToString(id[:]) }

// ParseTxID parses a hex-encoded transaction ID.
func ParseTxID(s string) (TxID, error) {
	var id TxID
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		return id, errors.BadRequest.WithFormat("invalid transaction ID %q", s)
	}
	copy(id[:], b)
	return id, nil
}

func (id TxID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *TxID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseTxID(s)
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// ID returns the transaction's ID, the SHA-256 of its canonical encoding.
func (t *Transaction) ID() TxID {
	data, err := t.MarshalJSON()
	if err != nil {
		panic(err)
	}
	return sha256.Sum256(data)
}

// An Envelope is a transaction plus the requester's signature. The requester
// identity is derived from the public key.
type Envelope struct {
	Transaction *Transaction `json:"transaction"`
	PublicKey   []byte       `json:"publicKey"`
	Signature   []byte       `json:"signature"`
}

// Sign signs the transaction hash with the given key and records the public
// key.
func (e *Envelope) Sign(key ed25519.PrivateKey) {
	id := e.Transaction.ID()
	e.PublicKey = key.Public().(ed25519.PublicKey)
	e.Signature = ed25519.Sign(key, id[:])
}

// Verify checks the signature against the transaction hash.
func (e *Envelope) Verify() bool {
	if len(e.PublicKey) != ed25519.PublicKeySize {
		return false
	}
	id := e.Transaction.ID()
	return ed25519.Verify(ed25519.PublicKey(e.PublicKey), id[:], e.Signature)
}

// Requester returns the lite identity derived from the envelope's public
// key.
func (e *Envelope) Requester() *url.URL {
	return LiteIdentityForKey(e.PublicKey)
}

// TransactionStatus records the outcome of a transaction.
type TransactionStatus struct {
	TxID   TxID            `json:"txid"`
	Code   errors.Status   `json:"code"`
	Error  *errors.Error   `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

// Failed returns true if the transaction failed.
func (s *TransactionStatus) Failed() bool { return !s.Code.Success() }

// Set sets the status code and error from the given error.
func (s *TransactionStatus) Set(err error) {
	s.Code = errors.Code(err)
	var e *errors.Error
	if errors.As(err, &e) {
		s.Error = e
	} else if err != nil {
		s.Error = errors.UnknownError.With(err.Error())
		s.Code = errors.UnknownError
	}
}
