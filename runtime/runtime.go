// Package runtime composes the system, balances and claims pallets into a state
// machine that executes blocks of caller-attributed calls.
package runtime

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spacemeshos/go-pallets/common/types"
	"github.com/spacemeshos/go-pallets/core"
	"github.com/spacemeshos/go-pallets/log"
	"github.com/spacemeshos/go-pallets/pallets/balances"
	"github.com/spacemeshos/go-pallets/pallets/claims"
	"github.com/spacemeshos/go-pallets/pallets/system"
)

// ErrGenesisApplied is returned when genesis is applied twice or after the first block.
var ErrGenesisApplied = errors.New("runtime: genesis already applied")

type (
	// Header is the header of a runtime block.
	Header = core.Header[types.BlockHeight]
	// Extrinsic is a runtime call together with its caller.
	Extrinsic = core.Extrinsic[types.AccountID, Call]
	// Block is the unit of execution of the runtime.
	Block = core.Block[types.BlockHeight, types.AccountID, Call]
)

// Opt is for changing Runtime during initialization.
type Opt func(*Runtime)

// WithLogger sets logger for Runtime.
func WithLogger(logger *zap.Logger) Opt {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithObserver sets the observer notified about every executed extrinsic and block.
func WithObserver(observer Observer) Opt {
	return func(r *Runtime) {
		r.observer = observer
	}
}

// New returns a runtime at height zero with empty state.
func New(opts ...Opt) *Runtime {
	r := &Runtime{
		logger:   zap.NewNop(),
		system:   system.New[types.AccountID, types.BlockHeight, types.Nonce](),
		balances: balances.New[types.AccountID, types.Balance](),
		claims:   claims.New[types.AccountID, types.Content](),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Runtime owns one instance of every pallet. It is not safe for concurrent use,
// callers execute blocks one at a time.
type Runtime struct {
	logger   *zap.Logger
	observer Observer

	system   *system.Pallet[types.AccountID, types.BlockHeight, types.Nonce]
	balances *balances.Pallet[types.AccountID, types.Balance]
	claims   *claims.Pallet[types.AccountID, types.Content]

	genesis bool
	// halted is set once the block height can't advance anymore.
	halted error
}

// BlockHeight returns the height of the last executed block.
func (r *Runtime) BlockHeight() types.BlockHeight {
	return r.system.BlockHeight()
}

// BalanceOf returns the balance of the account.
func (r *Runtime) BalanceOf(account types.AccountID) types.Balance {
	return r.balances.BalanceOf(account)
}

// NonceOf returns the nonce of the account.
func (r *Runtime) NonceOf(account types.AccountID) types.Nonce {
	return r.system.NonceOf(account)
}

// ClaimOwner returns the owner of the content, if it is claimed.
func (r *Runtime) ClaimOwner(content types.Content) (types.AccountID, bool) {
	return r.claims.ClaimOwner(content)
}

// SetBalance overwrites the balance of the account outside of block execution.
func (r *Runtime) SetBalance(account types.AccountID, balance types.Balance) {
	r.balances.SetBalance(account, balance)
}

// TotalIssuance returns the sum of all balances.
func (r *Runtime) TotalIssuance() (types.Balance, error) {
	return r.balances.TotalIssuance()
}

// ApplyGenesis sets the initial balances. It can be called once and only before
// the first block.
func (r *Runtime) ApplyGenesis(genesis []types.GenesisAccount) error {
	if r.genesis || r.BlockHeight() != 0 {
		return ErrGenesisApplied
	}
	seen := make(map[types.AccountID]struct{}, len(genesis))
	for i := range genesis {
		if _, exist := seen[genesis[i].Account]; exist {
			return fmt.Errorf("duplicate genesis account %s", genesis[i].Account)
		}
		seen[genesis[i].Account] = struct{}{}
	}
	for i := range genesis {
		account := &genesis[i]
		r.logger.Info("genesis account", zap.Inline(account))
		r.balances.SetBalance(account.Account, account.Balance)
	}
	r.genesis = true
	r.logger.Info("genesis applied", zap.Int("accounts", len(genesis)), log.ZHeight(r.BlockHeight()))
	return nil
}
