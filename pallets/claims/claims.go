// Package claims is a proof-of-existence registry: an account claims a piece of
// content (usually its hash) and stays its only owner until it revokes the claim.
package claims

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/spacemeshos/go-pallets/core"
)

var (
	// ErrClaimAlreadyExists is returned when the content is already claimed.
	ErrClaimAlreadyExists = errors.New("claims: claim already exists")
	// ErrClaimNotFound is returned when revoking content that is not claimed.
	ErrClaimNotFound = errors.New("claims: claim not found")
	// ErrNotClaimOwner is returned when the caller is not the owner of the claim.
	ErrNotClaimOwner = errors.New("claims: caller is not the claim owner")
)

// Pallet maps claimed content to its owner.
type Pallet[A comparable, C core.Ordered] struct {
	claims map[C]A
}

// New creates an empty registry.
func New[A comparable, C core.Ordered]() *Pallet[A, C] {
	return &Pallet[A, C]{claims: map[C]A{}}
}

// ClaimOwner returns the owner of the content, if it is claimed.
func (p *Pallet[A, C]) ClaimOwner(content C) (A, bool) {
	owner, exist := p.claims[content]
	return owner, exist
}

// CreateClaim registers caller as the owner of content.
func (p *Pallet[A, C]) CreateClaim(caller A, content C) error {
	if owner, exist := p.claims[content]; exist {
		return fmt.Errorf("%w: %v owned by %v", ErrClaimAlreadyExists, content, owner)
	}
	p.claims[content] = caller
	return nil
}

// RevokeClaim removes the claim on content. Only the owner may revoke it.
func (p *Pallet[A, C]) RevokeClaim(caller A, content C) error {
	owner, exist := p.claims[content]
	if !exist {
		return fmt.Errorf("%w: %v", ErrClaimNotFound, content)
	}
	if owner != caller {
		return fmt.Errorf("%w: %v owned by %v, not %v", ErrNotClaimOwner, content, owner, caller)
	}
	delete(p.claims, content)
	return nil
}

// Len returns the number of active claims.
func (p *Pallet[A, C]) Len() int {
	return len(p.claims)
}

// Claims iterates over active claims in content order.
func (p *Pallet[A, C]) Claims() iter.Seq2[C, A] {
	return func(yield func(C, A) bool) {
		for _, content := range slices.Sorted(maps.Keys(p.claims)) {
			if !yield(content, p.claims[content]) {
				return
			}
		}
	}
}
