// Package types fixes the concrete types of the runtime configuration: who the
// accounts are, how balances, nonces and block heights are represented, and what
// can be claimed.
package types

import (
	"go.uber.org/zap/zapcore"
)

type (
	// Balance is an amount of value owned by an account.
	Balance uint64
	// Nonce counts extrinsics admitted from an account.
	Nonce uint32
	// BlockHeight is the height of an executed block. Genesis is at height zero.
	BlockHeight uint64
)

// AccountID identifies an account. It is opaque to the runtime and compared by value.
type AccountID string

// String implements fmt.Stringer.
func (a AccountID) String() string {
	return string(a)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (a AccountID) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("account", string(a))
	return nil
}

// Content is the value an account claims ownership of, usually a hash of a document.
type Content string

// String implements fmt.Stringer.
func (c Content) String() string {
	return string(c)
}

// Uint64 returns the height as uint64.
func (h BlockHeight) Uint64() uint64 {
	return uint64(h)
}

// GenesisAccount is an account balance set before the first block.
type GenesisAccount struct {
	Account AccountID
	Balance Balance
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (g *GenesisAccount) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("account", g.Account.String())
	encoder.AddUint64("balance", uint64(g.Balance))
	return nil
}
