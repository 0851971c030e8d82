// Package cmd is the command line interface of palletd.
package cmd

import (
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-pallets/cmd/flags"
	"github.com/spacemeshos/go-pallets/config"
	"github.com/spacemeshos/go-pallets/config/presets"
	"github.com/spacemeshos/go-pallets/log"
)

// options holds the flags that are not part of the config.
type options struct {
	preset   string
	accounts []config.GenesisAccountConfig
	// scratch receives flag values. Only changed flags are copied into the
	// loaded config.
	scratch config.Config
}

// AddCommands adds the persistent flags shared by all commands.
func (o *options) AddCommands(cmd *cobra.Command) {
	o.scratch = config.DefaultConfig()
	cmd.PersistentFlags().StringVarP(&o.preset, "preset", "p", "",
		fmt.Sprintf("preset overwrites default values of the config. options %+s", presets.Options()))

	/** ======================== BaseConfig Flags ========================== **/
	cmd.PersistentFlags().StringVarP(&o.scratch.ConfigFile, "config", "c",
		"", "load configuration from file")
	cmd.PersistentFlags().StringVarP(&o.scratch.BlocksFile, "blocks", "b",
		o.scratch.BlocksFile, "JSON file with blocks to execute")
	cmd.PersistentFlags().StringVarP(&o.scratch.DataDir, "data-dir", "d",
		o.scratch.DataDir, "directory for checkpoints")
	cmd.PersistentFlags().BoolVar(&o.scratch.Checkpoint, "checkpoint",
		o.scratch.Checkpoint, "write a checkpoint after executing the blocks")
	cmd.PersistentFlags().StringVar(&o.scratch.Recover, "recover",
		o.scratch.Recover, fmt.Sprintf("checkpoint file to recover from, or %q", config.RecoverLatest))
	cmd.PersistentFlags().BoolVar(&o.scratch.CollectMetrics, "metrics",
		o.scratch.CollectMetrics, "serve prometheus metrics while running")
	cmd.PersistentFlags().IntVar(&o.scratch.MetricsPort, "metrics-port",
		o.scratch.MetricsPort, "metrics server port")
	cmd.PersistentFlags().DurationVar(&o.scratch.ShutdownTimeout, "shutdown-timeout",
		o.scratch.ShutdownTimeout, "time to wait for the metrics server to stop")
	cmd.PersistentFlags().StringVar(&o.scratch.FileLock, "filelock",
		o.scratch.FileLock, "filesystem lock to prevent running more than one instance")
	cmd.PersistentFlags().VarP(flags.NewGenesisAccountsValue(&o.accounts), "accounts", "a",
		"list of prefunded accounts, e.g. Alice=100,Bob=20")

	/** ======================== Logging Flags ========================== **/
	cmd.PersistentFlags().StringVar(&o.scratch.LOGGING.Encoder, "log-encoder",
		o.scratch.LOGGING.Encoder, "log as json or console")
	cmd.PersistentFlags().StringVar(&o.scratch.LOGGING.AppLoggerLevel, "app",
		o.scratch.LOGGING.AppLoggerLevel, "log level of the application")
	cmd.PersistentFlags().StringVar(&o.scratch.LOGGING.RuntimeLoggerLevel, "runtime",
		o.scratch.LOGGING.RuntimeLoggerLevel, "log level of the runtime")
}

// parseConfig builds the config from the preset, the config file and the flags,
// in the order of increasing priority.
func (o *options) parseConfig(flagSet *pflag.FlagSet) (*config.Config, error) {
	conf := config.DefaultConfig()
	if o.preset != "" {
		preset, err := presets.Get(o.preset)
		if err != nil {
			return nil, log.ErrBadFlags(err)
		}
		conf = preset
	}
	if file := o.scratch.ConfigFile; file != "" {
		vip := viper.New()
		if err := config.LoadConfig(file, vip); err != nil {
			return nil, log.ErrMalformedConfig(err)
		}
		if err := config.Unmarshal(vip, &conf); err != nil {
			return nil, log.ErrMalformedConfig(err)
		}
	}
	if err := EnsureCLIFlags(flagSet, &o.scratch, &conf); err != nil {
		return nil, log.ErrBadFlags(err)
	}
	if flag := flagSet.Lookup("accounts"); flag != nil && flag.Changed {
		conf.Genesis.Accounts = o.accounts
	}
	if err := conf.Validate(); err != nil {
		return nil, log.ErrMalformedConfig(err)
	}
	return &conf, nil
}

// EnsureCLIFlags copies the values of changed flags from scratch to conf. Flags
// are matched to fields by their mapstructure tag.
func EnsureCLIFlags(flagSet *pflag.FlagSet, scratch, conf *config.Config) error {
	var err error
	flagSet.VisitAll(func(f *pflag.Flag) {
		if !f.Changed || err != nil {
			return
		}
		for _, pair := range []struct{ src, dst reflect.Value }{
			{reflect.ValueOf(&scratch.BaseConfig).Elem(), reflect.ValueOf(&conf.BaseConfig).Elem()},
			{reflect.ValueOf(&scratch.LOGGING).Elem(), reflect.ValueOf(&conf.LOGGING).Elem()},
		} {
			if assignField(pair.src, pair.dst, f.Name) {
				return
			}
		}
		if f.Name != "preset" && f.Name != "accounts" {
			err = fmt.Errorf("flag %s is not bound to the config", f.Name)
		}
	})
	return err
}

func assignField(src, dst reflect.Value, name string) bool {
	typ := src.Type()
	for i := range typ.NumField() {
		if typ.Field(i).Tag.Get("mapstructure") != name {
			continue
		}
		switch dst.Field(i).Interface().(type) {
		case string, bool, int, time.Duration:
			dst.Field(i).Set(src.Field(i))
			return true
		}
	}
	return false
}

// newLogger creates the logger of a module. An empty level falls back to the
// application level.
func newLogger(conf *config.Config, module, level string) (*zap.Logger, error) {
	if level == "" {
		level = conf.LOGGING.AppLoggerLevel
	}
	logger, err := log.New(module, level, conf.LOGGING.Encoder)
	if err != nil {
		return nil, log.ErrMalformedConfig(err)
	}
	return logger, nil
}
