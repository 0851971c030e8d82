package presets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresetsValid(t *testing.T) {
	require.Equal(t, []string{"demo", "standalone"}, Options())
	for _, name := range Options() {
		t.Run(name, func(t *testing.T) {
			conf, err := Get(name)
			require.NoError(t, err)
			require.NoError(t, conf.Validate())
			require.NotEmpty(t, conf.Genesis.Accounts)
		})
	}
}

func TestGetCopiesGenesis(t *testing.T) {
	conf, err := Get("standalone")
	require.NoError(t, err)
	conf.Genesis.Accounts[0].Balance = 0

	again, err := Get("standalone")
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), again.Genesis.Accounts[0].Balance)
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("mainnet")
	require.ErrorContains(t, err, "not registered")
}
