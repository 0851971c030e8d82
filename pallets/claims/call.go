package claims

import (
	"fmt"

	"github.com/spacemeshos/go-pallets/core"
)

// Call is the closed set of operations the pallet accepts through dispatch.
type Call[C core.Ordered] interface {
	claimsCall()
}

// CreateClaim claims Content for the caller.
type CreateClaim[C core.Ordered] struct {
	Content C
}

// RevokeClaim drops the caller's claim on Content.
type RevokeClaim[C core.Ordered] struct {
	Content C
}

func (CreateClaim[C]) claimsCall() {}

func (RevokeClaim[C]) claimsCall() {}

// Dispatch executes the call on behalf of caller.
func (p *Pallet[A, C]) Dispatch(caller A, call Call[C]) error {
	switch c := call.(type) {
	case CreateClaim[C]:
		return p.CreateClaim(caller, c.Content)
	case RevokeClaim[C]:
		return p.RevokeClaim(caller, c.Content)
	default:
		return fmt.Errorf("claims: unknown call %T", call)
	}
}

var _ core.Dispatcher[string, Call[string]] = (*Pallet[string, string])(nil)
