package presets

import (
	"github.com/spacemeshos/go-pallets/config"
)

func init() {
	register("standalone", standalone())
}

func standalone() config.Config {
	conf := config.DefaultConfig()
	conf.Genesis = config.GenesisConfig{
		Accounts: []config.GenesisAccountConfig{
			{Account: "Alice", Balance: 1_000_000},
			{Account: "Bob", Balance: 1_000_000},
			{Account: "Charlie", Balance: 1_000_000},
		},
	}
	conf.CollectMetrics = true
	conf.LOGGING.RuntimeLoggerLevel = "debug"
	return conf
}
