package config

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/go-pallets/common/types"
	"github.com/spacemeshos/go-pallets/runtime"
)

// GenesisAccountConfig is a prefunded account.
type GenesisAccountConfig struct {
	Account string `mapstructure:"account"`
	Balance uint64 `mapstructure:"balance"`
}

// GenesisConfig lists the accounts funded before the first block.
//
// Accounts are a list and not a table keyed by account, since keys are case
// insensitive in the config file and account ids are not.
type GenesisConfig struct {
	Accounts []GenesisAccountConfig `mapstructure:"accounts"`
}

// DefaultGenesisConfig has no prefunded accounts.
func DefaultGenesisConfig() GenesisConfig {
	return GenesisConfig{}
}

// DefaultTestGenesisConfig funds the accounts used across tests and the demo.
func DefaultTestGenesisConfig() GenesisConfig {
	return GenesisConfig{
		Accounts: []GenesisAccountConfig{
			{Account: "Alice", Balance: 100},
		},
	}
}

// Validate rejects empty, too long and duplicate accounts.
func (g *GenesisConfig) Validate() error {
	seen := make(map[string]struct{}, len(g.Accounts))
	var errs []error
	for i, acc := range g.Accounts {
		switch {
		case acc.Account == "":
			errs = append(errs, fmt.Errorf("genesis account %d: empty account", i))
		case len(acc.Account) > runtime.MaxAccountLength:
			errs = append(errs, fmt.Errorf("genesis account %d: longer than %d", i, runtime.MaxAccountLength))
		}
		if _, exist := seen[acc.Account]; exist {
			errs = append(errs, fmt.Errorf("genesis account %d: duplicate %s", i, acc.Account))
		}
		seen[acc.Account] = struct{}{}
	}
	return errors.Join(errs...)
}

// ToAccounts converts the config to the runtime genesis.
func (g GenesisConfig) ToAccounts() []types.GenesisAccount {
	accounts := make([]types.GenesisAccount, 0, len(g.Accounts))
	for _, acc := range g.Accounts {
		accounts = append(accounts, types.GenesisAccount{
			Account: types.AccountID(acc.Account),
			Balance: types.Balance(acc.Balance),
		})
	}
	return accounts
}
