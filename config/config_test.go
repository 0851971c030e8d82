package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-pallets/common/types"
)

func writeConfig(tb testing.TB, content string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "config.toml")
	require.NoError(tb, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[main]
blocks = "blocks.json"
data-dir = "/tmp/palletd"
checkpoint = false
recover = "latest"
metrics = true
metrics-port = 9090
shutdown-timeout = "2s"

[[genesis.accounts]]
account = "Alice"
balance = 100

[[genesis.accounts]]
account = "Bob"
balance = 7

[logging]
log-encoder = "json"
runtime = "debug"
`)
	conf, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, conf.ConfigFile)
	require.Equal(t, "blocks.json", conf.BlocksFile)
	require.Equal(t, "/tmp/palletd", conf.DataDir)
	require.False(t, conf.Checkpoint)
	require.Equal(t, RecoverLatest, conf.Recover)
	require.True(t, conf.CollectMetrics)
	require.Equal(t, 9090, conf.MetricsPort)
	require.Equal(t, 2*time.Second, conf.ShutdownTimeout)
	require.Equal(t, JSONLogEncoder, conf.LOGGING.Encoder)
	require.Equal(t, "debug", conf.LOGGING.RuntimeLoggerLevel)
	require.Equal(t, "info", conf.LOGGING.AppLoggerLevel, "unset values keep defaults")

	require.Equal(t, []types.GenesisAccount{
		{Account: "Alice", Balance: 100},
		{Account: "Bob", Balance: 7},
	}, conf.Genesis.ToAccounts())
}

func TestLoadDefaults(t *testing.T) {
	conf, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), *conf)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorContains(t, err, "failed to read config file")
}

func TestLoadInvalid(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		content string
		err     string
	}{
		{
			desc:    "duplicate genesis account",
			content: "[[genesis.accounts]]\naccount = \"Alice\"\n[[genesis.accounts]]\naccount = \"Alice\"\n",
			err:     "duplicate Alice",
		},
		{
			desc:    "empty genesis account",
			content: "[[genesis.accounts]]\nbalance = 1\n",
			err:     "empty account",
		},
		{
			desc:    "log level",
			content: "[logging]\nruntime = \"loud\"\n",
			err:     "runtime log level",
		},
		{
			desc:    "log encoder",
			content: "[logging]\nlog-encoder = \"xml\"\n",
			err:     "unknown log encoder",
		},
		{
			desc:    "metrics port",
			content: "[main]\nmetrics-port = 70000\n",
			err:     "out of range",
		},
		{
			desc:    "duration",
			content: "[main]\nshutdown-timeout = \"soon\"\n",
			err:     "parse config",
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.ErrorContains(t, err, tc.err)
		})
	}
}

func TestDefaultTestGenesisAccounts(t *testing.T) {
	require.Equal(t, []types.GenesisAccount{
		{Account: "Alice", Balance: 100},
	}, DefaultTestGenesisConfig().ToAccounts())
	require.Empty(t, DefaultGenesisConfig().ToAccounts())
}
