package runtime

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/go-pallets/common/types"
	"github.com/spacemeshos/go-pallets/pallets/balances"
	"github.com/spacemeshos/go-pallets/pallets/claims"
)

// ErrUnknownCall is returned for a call that is not routed to any pallet.
var ErrUnknownCall = errors.New("runtime: unknown call")

// Call is a call to one of the runtime pallets. The set of variants is closed:
// BalancesCall and ClaimsCall.
type Call interface {
	runtimeCall()
}

type (
	// BalancesCall routes a call to the balances pallet.
	BalancesCall struct {
		balances.Call[types.AccountID, types.Balance]
	}
	// ClaimsCall routes a call to the claims pallet.
	ClaimsCall struct {
		claims.Call[types.Content]
	}
)

func (BalancesCall) runtimeCall() {}

func (ClaimsCall) runtimeCall() {}

// Transfer builds a balances transfer call.
func Transfer(to types.AccountID, amount types.Balance) Call {
	return BalancesCall{balances.Transfer[types.AccountID, types.Balance]{To: to, Amount: amount}}
}

// CreateClaim builds a call that claims content.
func CreateClaim(content types.Content) Call {
	return ClaimsCall{claims.CreateClaim[types.Content]{Content: content}}
}

// RevokeClaim builds a call that revokes a claim on content.
func RevokeClaim(content types.Content) Call {
	return ClaimsCall{claims.RevokeClaim[types.Content]{Content: content}}
}

// Dispatch forwards the call to the pallet that owns it. Pallet errors are
// returned unchanged.
func (r *Runtime) Dispatch(caller types.AccountID, call Call) error {
	switch c := call.(type) {
	case BalancesCall:
		if c.Call == nil {
			return fmt.Errorf("%w: empty balances call", ErrUnknownCall)
		}
		return r.balances.Dispatch(caller, c.Call)
	case ClaimsCall:
		if c.Call == nil {
			return fmt.Errorf("%w: empty claims call", ErrUnknownCall)
		}
		return r.claims.Dispatch(caller, c.Call)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCall, call)
	}
}

// callName is used as a metrics label and in logs.
func callName(call Call) string {
	switch c := call.(type) {
	case BalancesCall:
		switch c.Call.(type) {
		case balances.Transfer[types.AccountID, types.Balance]:
			return "balances.transfer"
		}
	case ClaimsCall:
		switch c.Call.(type) {
		case claims.CreateClaim[types.Content]:
			return "claims.create_claim"
		case claims.RevokeClaim[types.Content]:
			return "claims.revoke_claim"
		}
	}
	return "unknown"
}
