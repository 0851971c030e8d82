// Package system owns the chain-wide block height and the per-account nonces
// used for replay protection.
package system

import (
	"errors"
	"iter"
	"maps"
	"slices"

	"github.com/spacemeshos/go-pallets/core"
)

var (
	// ErrBlockHeightOverflow is returned when the block height is already at its
	// maximum. The height can never advance again after that.
	ErrBlockHeightOverflow = errors.New("system: block height overflow")
	// ErrNonceOverflow is returned when an account nonce is already at its maximum.
	ErrNonceOverflow = errors.New("system: nonce overflow")
)

// Pallet stores the block height and the nonce of every account that submitted
// at least one extrinsic.
type Pallet[A core.Ordered, H, N core.Unsigned] struct {
	height H
	nonces map[A]N
}

// New creates a system pallet at height zero with no nonces.
func New[A core.Ordered, H, N core.Unsigned]() *Pallet[A, H, N] {
	return &Pallet[A, H, N]{nonces: map[A]N{}}
}

// BlockHeight returns the height of the last executed block.
func (p *Pallet[A, H, N]) BlockHeight() H {
	return p.height
}

// NextBlockHeight returns the height the next block must declare.
func (p *Pallet[A, H, N]) NextBlockHeight() (H, error) {
	next, ok := core.CheckedIncrement(p.height)
	if !ok {
		return 0, ErrBlockHeightOverflow
	}
	return next, nil
}

// AdvanceBlockHeight increments the block height by one.
func (p *Pallet[A, H, N]) AdvanceBlockHeight() error {
	next, err := p.NextBlockHeight()
	if err != nil {
		return err
	}
	p.height = next
	return nil
}

// NonceOf returns the number of extrinsics admitted from the account.
func (p *Pallet[A, H, N]) NonceOf(account A) N {
	return p.nonces[account]
}

// IncrementNonce bumps the account nonce. The nonce is left untouched on overflow.
func (p *Pallet[A, H, N]) IncrementNonce(account A) error {
	next, ok := core.CheckedIncrement(p.nonces[account])
	if !ok {
		return ErrNonceOverflow
	}
	p.nonces[account] = next
	return nil
}

// Nonces iterates over all known nonces in account order.
func (p *Pallet[A, H, N]) Nonces() iter.Seq2[A, N] {
	return func(yield func(A, N) bool) {
		for _, account := range slices.Sorted(maps.Keys(p.nonces)) {
			if !yield(account, p.nonces[account]) {
				return
			}
		}
	}
}

// Restore replaces the pallet state. It is meant for loading a checkpoint into a
// fresh runtime and bypasses the monotonicity checks.
func (p *Pallet[A, H, N]) Restore(height H, nonces map[A]N) {
	p.height = height
	p.nonces = maps.Clone(nonces)
	if p.nonces == nil {
		p.nonces = map[A]N{}
	}
}
