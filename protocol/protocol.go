// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package protocol defines the account schema and transaction contract of
// the StakeCore staking program.
package protocol

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"gitlab.com/stakecore/stakecore/pkg/url"
)

// Staking is the authority of the program's namespace. The pool and reward
// issuer records live under it at fixed paths, so there is exactly one
// possible pool address.
const Staking = "staking"

// RewardSymbol is the symbol of the reward token.
const RewardSymbol = "SCR"

// RewardPrecision is the number of decimal places of the reward token.
const RewardPrecision = 9

// StakingUrl returns `stk://staking`.
func StakingUrl() *url.URL { return &url.URL{Authority: Staking} }

// PoolUrl returns `stk://staking/pool`, the fixed address of the stake pool.
func PoolUrl() *url.URL { return &url.URL{Authority: Staking, Path: "/pool"} }

// RewardMintUrl returns `stk://staking/rewards`, the fixed address of the
// reward token issuer.
func RewardMintUrl() *url.URL { return &url.URL{Authority: Staking, Path: "/rewards"} }

// StakeEntryUrl derives the stake entry address for an identity. The
// derivation is deterministic, so repeated requests by the same requester
// always target the same address.
func StakeEntryUrl(identity *url.URL) *url.URL {
	return identity.RootIdentity().JoinPath("stake")
}

// LiteIdentityForKey derives a lite identity URL from an ed25519 public key.
// The authority is the first 20 bytes of the key hash in hexadecimal plus a
// 4-byte checksum. For a key with hash
//
//	"aec070645fe53ee3b3763059376134f058cc337247c978add178b6ccdfb0019f"
//
// the checksum is calculated as
//
//	sha256("aec070645fe53ee3b3763059376134f058cc3372")[28:]
//
// and the resulting URL is
//
//	"stk://aec070645fe53ee3b3763059376134f058cc337226e2a324"
func LiteIdentityForKey(pubKey []byte) *url.URL {
	keyHash := sha256.Sum256(pubKey)
	return LiteIdentityForHash(keyHash[:])
}

// LiteIdentityForHash derives a lite identity URL from a key hash.
func LiteIdentityForHash(keyHash []byte) *url.URL {
	keyStr := fmt.Sprintf("%x", keyHash[:20])
	checkSum := sha256.Sum256([]byte(keyStr))
	checkStr := fmt.Sprintf("%x", checkSum[28:])
	return &url.URL{Authority: keyStr + checkStr}
}

// ParseLiteIdentity extracts the key hash from a lite identity URL. Returns
// `nil, nil` if the URL is not a lite identity URL.
func ParseLiteIdentity(u *url.URL) ([]byte, error) {
	if !u.IsRootIdentity() {
		return nil, nil
	}

	hostname := strings.ToLower(u.Hostname())
	b, err := hex.DecodeString(hostname)
	if err != nil || len(b) != 24 {
		return nil, nil
	}

	keyStr := hostname[:40]
	checkSum := sha256.Sum256([]byte(keyStr))
	if hostname[40:] != fmt.Sprintf("%x", checkSum[28:]) {
		return nil, fmt.Errorf("invalid checksum in lite identity %v", u)
	}
	return b[:20], nil
}

// BelongsToKey returns true if the identity is the lite identity of the
// given public key.
func BelongsToKey(identity *url.URL, pubKey []byte) bool {
	return LiteIdentityForKey(pubKey).Equal(identity.RootIdentity())
}
