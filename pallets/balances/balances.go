// Package balances implements the account ledger: per-account balances and value
// transfers between accounts.
package balances

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/spacemeshos/go-pallets/core"
)

var (
	// ErrInsufficientBalance is returned when the sender can't cover the amount.
	ErrInsufficientBalance = errors.New("balances: insufficient balance")
	// ErrBalanceOverflow is returned when the recipient balance would not be
	// representable after the transfer.
	ErrBalanceOverflow = errors.New("balances: balance overflow")
)

// Pallet is the account ledger. Accounts that were never written have a zero balance.
type Pallet[A core.Ordered, B core.Unsigned] struct {
	balances map[A]B
}

// New creates an empty ledger.
func New[A core.Ordered, B core.Unsigned]() *Pallet[A, B] {
	return &Pallet[A, B]{balances: map[A]B{}}
}

// BalanceOf returns the balance of the account.
func (p *Pallet[A, B]) BalanceOf(account A) B {
	return p.balances[account]
}

// SetBalance overwrites the balance of the account. Only genesis and state setup
// use it, block execution moves value exclusively with Transfer.
func (p *Pallet[A, B]) SetBalance(account A, value B) {
	p.set(account, value)
}

// set stores the balance. Zero balances are not stored, an absent account and an
// account with nothing left are the same state.
func (p *Pallet[A, B]) set(account A, value B) {
	if value == 0 {
		delete(p.balances, account)
		return
	}
	p.balances[account] = value
}

// Transfer moves amount from one account to another. Both balances are computed
// before either of them is written, so a failed transfer leaves no trace.
func (p *Pallet[A, B]) Transfer(from, to A, amount B) error {
	fromBalance, ok := core.CheckedSub(p.balances[from], amount)
	if !ok {
		return fmt.Errorf("%w: %v has %d, needs %d", ErrInsufficientBalance, from, p.balances[from], amount)
	}
	if from == to {
		return nil
	}
	toBalance, ok := core.CheckedAdd(p.balances[to], amount)
	if !ok {
		return fmt.Errorf("%w: %v has %d, receives %d", ErrBalanceOverflow, to, p.balances[to], amount)
	}
	p.set(from, fromBalance)
	p.set(to, toBalance)
	return nil
}

// Accounts iterates over every non-zero balance in account order.
func (p *Pallet[A, B]) Accounts() iter.Seq2[A, B] {
	return func(yield func(A, B) bool) {
		for _, account := range slices.Sorted(maps.Keys(p.balances)) {
			if !yield(account, p.balances[account]) {
				return
			}
		}
	}
}

// TotalIssuance sums all balances. Transfers never change it.
func (p *Pallet[A, B]) TotalIssuance() (B, error) {
	var total B
	for _, balance := range p.balances {
		sum, ok := core.CheckedAdd(total, balance)
		if !ok {
			return 0, fmt.Errorf("%w: total issuance", ErrBalanceOverflow)
		}
		total = sum
	}
	return total, nil
}
