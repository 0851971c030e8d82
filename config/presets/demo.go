package presets

import (
	"github.com/spacemeshos/go-pallets/config"
)

func init() {
	register("demo", demo())
}

func demo() config.Config {
	conf := config.DefaultConfig()
	conf.Genesis = config.DefaultTestGenesisConfig()
	conf.Checkpoint = false
	return conf
}
