// Package config contains palletd configuration definitions.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	defaultConfigFileName = "./config.toml"
	defaultDataDir        = "./palletd"
)

// RecoverLatest is the Recover value that selects the latest checkpoint.
const RecoverLatest = "latest"

// Config defines the top level configuration for palletd.
type Config struct {
	BaseConfig `mapstructure:"main"`
	Genesis    GenesisConfig `mapstructure:"genesis"`
	LOGGING    LoggerConfig  `mapstructure:"logging"`
}

// BaseConfig defines the default configuration options for palletd.
type BaseConfig struct {
	ConfigFile string `mapstructure:"config"`

	// BlocksFile is a JSON file with the blocks to execute.
	BlocksFile string `mapstructure:"blocks"`

	// DataDir holds the checkpoints under DataDir/checkpoint.
	DataDir string `mapstructure:"data-dir"`
	// Checkpoint enables writing a checkpoint after the blocks are executed.
	Checkpoint bool `mapstructure:"checkpoint"`
	// Recover is a checkpoint file to restore the state from instead of applying
	// genesis. RecoverLatest selects the latest checkpoint in DataDir.
	Recover string `mapstructure:"recover"`

	CollectMetrics bool `mapstructure:"metrics"`
	MetricsPort    int  `mapstructure:"metrics-port"`

	// ShutdownTimeout bounds the graceful shutdown of the metrics server.
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`

	// FileLock is held while blocks are executed, so that only one process writes
	// checkpoints to the data directory.
	FileLock string `mapstructure:"filelock"`
}

// DefaultConfig returns the default configuration for palletd.
func DefaultConfig() Config {
	return Config{
		BaseConfig: defaultBaseConfig(),
		Genesis:    DefaultGenesisConfig(),
		LOGGING:    DefaultLoggingConfig(),
	}
}

func defaultBaseConfig() BaseConfig {
	return BaseConfig{
		ConfigFile:      defaultConfigFileName,
		DataDir:         defaultDataDir,
		Checkpoint:      true,
		CollectMetrics:  false,
		MetricsPort:     1010,
		ShutdownTimeout: 5 * time.Second,
		FileLock:        filepath.Join(os.TempDir(), "palletd.lock"),
	}
}

// LoadConfig reads the config file into vip.
func LoadConfig(fileLocation string, vip *viper.Viper) error {
	if fileLocation == "" {
		fileLocation = defaultConfigFileName
	}
	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %w", err)
	}
	return nil
}

// Unmarshal decodes values loaded into vip on top of conf.
func Unmarshal(vip *viper.Viper, conf *Config) error {
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := vip.Unmarshal(conf, viper.DecodeHook(hook)); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Load reads the config file on top of the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	conf := DefaultConfig()
	if path != "" {
		vip := viper.New()
		if err := LoadConfig(path, vip); err != nil {
			return nil, err
		}
		if err := Unmarshal(vip, &conf); err != nil {
			return nil, err
		}
		conf.ConfigFile = path
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate checks the values that can't be checked by decoding.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		errs = append(errs, fmt.Errorf("metrics port %d out of range", cfg.MetricsPort))
	}
	if err := cfg.Genesis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.LOGGING.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
