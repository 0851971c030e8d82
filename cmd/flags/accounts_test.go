package flags

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-pallets/config"
)

func TestGenesisAccountsValue(t *testing.T) {
	accounts := []config.GenesisAccountConfig{{Account: "Zed", Balance: 1}}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(NewGenesisAccountsValue(&accounts), "accounts", "")

	require.NoError(t, fs.Parse([]string{"--accounts", "Alice=100,Bob=20", "--accounts=Charlie=0"}))
	require.Equal(t, []config.GenesisAccountConfig{
		{Account: "Alice", Balance: 100},
		{Account: "Bob", Balance: 20},
		{Account: "Charlie", Balance: 0},
	}, accounts)
	require.Equal(t, "Alice=100,Bob=20,Charlie=0", fs.Lookup("accounts").Value.String())
}

func TestGenesisAccountsValueInvalid(t *testing.T) {
	for _, value := range []string{"Alice", "Alice=-1", "Alice=ten"} {
		t.Run(value, func(t *testing.T) {
			var accounts []config.GenesisAccountConfig
			require.Error(t, NewGenesisAccountsValue(&accounts).Set(value))
		})
	}
}
