// Package presets contains named configurations that replace the defaults.
package presets

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spacemeshos/go-pallets/config"
)

var presets = map[string]config.Config{}

func register(name string, conf config.Config) {
	if _, exist := presets[name]; exist {
		panic(fmt.Sprintf("preset %s already registered", name))
	}
	presets[name] = conf
}

// Options returns the names of all presets.
func Options() []string {
	return slices.Sorted(maps.Keys(presets))
}

// Get returns the preset with the name.
func Get(name string) (config.Config, error) {
	conf, exist := presets[name]
	if !exist {
		return config.Config{}, fmt.Errorf("preset %q is not registered. select one of %v", name, Options())
	}
	// genesis accounts are the only reference shared between copies
	conf.Genesis.Accounts = slices.Clone(conf.Genesis.Accounts)
	return conf, nil
}
