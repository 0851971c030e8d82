package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/go-pallets/checkpoint"
	"github.com/spacemeshos/go-pallets/config"
	"github.com/spacemeshos/go-pallets/log"
	"github.com/spacemeshos/go-pallets/metrics"
	"github.com/spacemeshos/go-pallets/runtime"
)

// App executes a list of blocks on a runtime initialized from genesis or from a
// checkpoint.
type App struct {
	conf   *config.Config
	fs     afero.Fs
	out    io.Writer
	logger *zap.Logger

	runtimeLogger    *zap.Logger
	checkpointLogger *zap.Logger
	metricsLogger    *zap.Logger

	runtime    *runtime.Runtime
	blocks     []*runtime.Block
	metricsSrv *metrics.Server
	fileLock   *flock.Flock
}

// AppOpt configures App.
type AppOpt func(*App)

// WithFs sets the file system that blocks and checkpoints are read from.
func WithFs(fs afero.Fs) AppOpt {
	return func(app *App) {
		app.fs = fs
	}
}

// WithLogger makes module loggers children of logger instead of building them
// from the config. Module levels from the config can then only raise the level.
func WithLogger(logger *zap.Logger) AppOpt {
	return func(app *App) {
		app.logger = logger
	}
}

// NewApp creates the app. Output for the user is written to out.
func NewApp(conf *config.Config, out io.Writer, opts ...AppOpt) (*App, error) {
	app := &App{
		conf: conf,
		fs:   afero.NewOsFs(),
		out:  out,
	}
	for _, opt := range opts {
		opt(app)
	}
	parent := app.logger
	if parent == nil {
		logger, err := newLogger(conf, "palletd", conf.LOGGING.AppLoggerLevel)
		if err != nil {
			return nil, err
		}
		app.logger = logger
	}
	for _, logger := range []struct {
		dst    **zap.Logger
		module string
		level  string
	}{
		{&app.runtimeLogger, "runtime", conf.LOGGING.RuntimeLoggerLevel},
		{&app.checkpointLogger, "checkpoint", conf.LOGGING.CheckpointLoggerLevel},
		{&app.metricsLogger, "metrics", conf.LOGGING.MetricsLoggerLevel},
	} {
		var (
			created *zap.Logger
			err     error
		)
		if parent != nil {
			if created, err = log.Named(parent, logger.module, logger.level); err != nil {
				err = log.ErrMalformedConfig(err)
			}
		} else {
			created, err = newLogger(conf, logger.module, logger.level)
		}
		if err != nil {
			return nil, err
		}
		*logger.dst = created
	}
	return app, nil
}

// Runtime returns the runtime after Initialize.
func (app *App) Runtime() *runtime.Runtime {
	return app.runtime
}

// MetricsAddr is the address of the metrics server, nil if metrics are disabled.
func (app *App) MetricsAddr() net.Addr {
	if app.metricsSrv == nil {
		return nil
	}
	return app.metricsSrv.Addr()
}

// Lock locks the app for exclusive use. It returns an error if the app is already locked.
func (app *App) Lock() error {
	lockDir := filepath.Dir(app.conf.FileLock)
	if _, err := os.Stat(lockDir); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(lockDir, os.ModePerm); err != nil {
			return fmt.Errorf("creating dir %s for lock %s: %w", lockDir, app.conf.FileLock, err)
		}
	}
	fl := flock.New(app.conf.FileLock)
	locked, err := fl.TryLock()
	if err != nil {
		return fmt.Errorf("flock %s: %w", app.conf.FileLock, err)
	} else if !locked {
		return fmt.Errorf("only one palletd instance should be running (locking file %s)", fl.Path())
	}
	app.fileLock = fl
	return nil
}

// Unlock unlocks the app. It is a no-op if the app is not locked.
func (app *App) Unlock() {
	if app.fileLock == nil {
		return
	}
	if err := app.fileLock.Unlock(); err != nil {
		app.logger.Error("failed to unlock file",
			zap.String("path", app.fileLock.Path()),
			zap.Error(err),
		)
	}
	app.fileLock = nil
}

// Initialize reads the blocks file and creates the runtime, recovering its state
// or applying genesis. It also binds the metrics server if metrics are enabled.
func (app *App) Initialize() error {
	if app.conf.BlocksFile != "" {
		blocks, err := ReadBlocks(app.fs, app.conf.BlocksFile)
		if err != nil {
			return log.ErrReadBlocks(app.conf.BlocksFile, err)
		}
		app.blocks = blocks
	}
	app.runtime = runtime.New(runtime.WithLogger(app.runtimeLogger))
	if err := app.initState(); err != nil {
		return err
	}
	if app.conf.CollectMetrics {
		srv, err := metrics.NewServer(
			app.metricsLogger,
			net.JoinHostPort("", strconv.Itoa(app.conf.MetricsPort)),
			metrics.WithShutdownTimeout(app.conf.ShutdownTimeout),
		)
		if err != nil {
			return err
		}
		app.metricsSrv = srv
	}
	return nil
}

func (app *App) initState() error {
	if app.conf.Recover == "" {
		if err := app.runtime.ApplyGenesis(app.conf.Genesis.ToAccounts()); err != nil {
			return log.ErrGenesis(err)
		}
		return nil
	}
	file := app.conf.Recover
	if file == config.RecoverLatest {
		latest, err := checkpoint.Latest(app.fs, app.conf.DataDir)
		if err != nil {
			return log.ErrRecovery(app.conf.DataDir, err)
		}
		file = latest
	}
	if err := checkpoint.Recover(app.checkpointLogger, app.fs, app.runtime, file); err != nil {
		return log.ErrRecovery(file, err)
	}
	return nil
}

// Start executes the blocks from the configured file. The metrics server, if
// enabled, runs until execution completes.
func (app *App) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)
	if app.metricsSrv != nil {
		eg.Go(func() error {
			return app.metricsSrv.Serve(ctx)
		})
	}
	eg.Go(func() error {
		defer cancel()
		return app.execute(ctx, app.blocks)
	})
	return eg.Wait()
}

func (app *App) execute(ctx context.Context, blocks []*runtime.Block) error {
	var failed int
	for _, block := range blocks {
		if err := ctx.Err(); err != nil {
			return err
		}
		results, err := app.runtime.ExecuteBlock(block)
		if err != nil {
			return fmt.Errorf("block %d: %w", block.Header.Height, err)
		}
		for _, result := range results {
			if result.Ok() {
				continue
			}
			failed++
			fmt.Fprintf(app.out, "block %d extrinsic %d from %s failed: %v\n",
				block.Header.Height, result.Index, result.Caller, result.Failure())
		}
	}
	app.logger.Info("blocks executed",
		zap.Int("blocks", len(blocks)),
		zap.Int("failed extrinsics", failed),
		log.ZHeight(app.runtime.BlockHeight()),
	)
	fmt.Fprintf(app.out, "height %d root %s\n", app.runtime.BlockHeight(), app.runtime.StateRoot())
	if !app.conf.Checkpoint {
		return nil
	}
	path, err := checkpoint.Generate(app.checkpointLogger, app.fs, app.runtime, app.conf.DataDir)
	if err != nil {
		return fmt.Errorf("generate checkpoint: %w", err)
	}
	fmt.Fprintf(app.out, "checkpoint %s\n", path)
	return nil
}
