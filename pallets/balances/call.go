package balances

import (
	"fmt"

	"github.com/spacemeshos/go-pallets/core"
)

// Call is the closed set of operations the pallet accepts through dispatch.
type Call[A core.Ordered, B core.Unsigned] interface {
	balancesCall()
}

// Transfer moves Amount from the caller to To.
type Transfer[A core.Ordered, B core.Unsigned] struct {
	To     A
	Amount B
}

func (Transfer[A, B]) balancesCall() {}

// Dispatch executes the call on behalf of caller.
func (p *Pallet[A, B]) Dispatch(caller A, call Call[A, B]) error {
	switch c := call.(type) {
	case Transfer[A, B]:
		return p.Transfer(caller, c.To, c.Amount)
	default:
		return fmt.Errorf("balances: unknown call %T", call)
	}
}

var _ core.Dispatcher[string, Call[string, uint64]] = (*Pallet[string, uint64])(nil)
