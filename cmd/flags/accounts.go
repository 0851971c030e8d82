// Package flags contains pflag values for configuration that doesn't map to a
// single scalar flag.
package flags

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spacemeshos/go-pallets/config"
)

// GenesisAccountsValue parses accounts in the form Alice=100,Bob=20. Setting the
// flag replaces accounts from the config file.
type GenesisAccountsValue struct {
	accounts *[]config.GenesisAccountConfig
	changed  bool
}

// NewGenesisAccountsValue writes parsed accounts to accounts.
func NewGenesisAccountsValue(accounts *[]config.GenesisAccountConfig) *GenesisAccountsValue {
	return &GenesisAccountsValue{accounts: accounts}
}

// Set implements pflag.Value. The flag can be repeated.
func (v *GenesisAccountsValue) Set(value string) error {
	var parsed []config.GenesisAccountConfig
	for _, pair := range strings.Split(value, ",") {
		if pair == "" {
			continue
		}
		account, balance, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("%s must be formatted as account=balance", pair)
		}
		amount, err := strconv.ParseUint(balance, 10, 64)
		if err != nil {
			return fmt.Errorf("balance of %s: %w", account, err)
		}
		parsed = append(parsed, config.GenesisAccountConfig{Account: account, Balance: amount})
	}
	if !v.changed {
		*v.accounts = nil
		v.changed = true
	}
	*v.accounts = append(*v.accounts, parsed...)
	return nil
}

// Type implements pflag.Value.
func (v *GenesisAccountsValue) Type() string {
	return "accounts"
}

// String implements pflag.Value.
func (v *GenesisAccountsValue) String() string {
	if v.accounts == nil {
		return ""
	}
	pairs := make([]string, 0, len(*v.accounts))
	for _, acc := range *v.accounts {
		pairs = append(pairs, fmt.Sprintf("%s=%d", acc.Account, acc.Balance))
	}
	return strings.Join(pairs, ",")
}
