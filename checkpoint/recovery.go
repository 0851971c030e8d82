package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-pallets/common/types"
	"github.com/spacemeshos/go-pallets/hash"
	"github.com/spacemeshos/go-pallets/log"
	"github.com/spacemeshos/go-pallets/runtime"
)

var (
	// ErrStateRootMismatch is returned when the recovered state doesn't hash to
	// the root recorded in the checkpoint.
	ErrStateRootMismatch = errors.New("checkpoint: state root mismatch")
	// ErrNoCheckpoint is returned when the checkpoint directory has no snapshots.
	ErrNoCheckpoint = errors.New("checkpoint: no checkpoint found")
)

var fileRegex = regexp.MustCompile("^snapshot-(?P<Height>0|[1-9][0-9]*)$")

// Read loads a checkpoint file. The file is validated against Schema first.
func Read(fs afero.Fs, file string) (*Checkpoint, error) {
	checkpoint, _, err := read(fs, file)
	return checkpoint, err
}

func read(fs afero.Fs, file string) (*Checkpoint, types.Hash32, error) {
	data, err := afero.ReadFile(fs, file)
	if err != nil {
		return nil, types.Hash32{}, fmt.Errorf("%w: read recovery file %v", err, file)
	}
	checksum := types.Hash32(hash.Sum(data))
	if err = ValidateSchema(data); err != nil {
		return nil, checksum, err
	}
	var checkpoint Checkpoint
	if err = json.Unmarshal(data, &checkpoint); err != nil {
		return nil, checksum, fmt.Errorf("%w: unmarshal checkpoint from %v", err, file)
	}
	if checkpoint.Version != SchemaVersion {
		return nil, checksum, fmt.Errorf("expected version %v, got %v", SchemaVersion, checkpoint.Version)
	}
	if expected := fmt.Sprintf("snapshot-%d", checkpoint.Data.Height); checkpoint.Data.CheckpointId != expected {
		return nil, checksum, fmt.Errorf("checkpoint id %v doesn't match height %d",
			checkpoint.Data.CheckpointId, checkpoint.Data.Height)
	}
	return &checkpoint, checksum, nil
}

// Snapshot converts the checkpoint to runtime state. Accounts and contents must be
// unique within their list.
func (c *Checkpoint) Snapshot() (*runtime.Snapshot, error) {
	snapshot := &runtime.Snapshot{
		Height:   types.BlockHeight(c.Data.Height),
		Balances: make(map[types.AccountID]types.Balance, len(c.Data.Balances)),
		Nonces:   make(map[types.AccountID]types.Nonce, len(c.Data.Nonces)),
		Claims:   make(map[types.Content]types.AccountID, len(c.Data.Claims)),
	}
	for _, b := range c.Data.Balances {
		account := types.AccountID(b.Account)
		if _, exist := snapshot.Balances[account]; exist {
			return nil, fmt.Errorf("duplicate balance for %s", account)
		}
		snapshot.Balances[account] = types.Balance(b.Balance)
	}
	for _, n := range c.Data.Nonces {
		account := types.AccountID(n.Account)
		if _, exist := snapshot.Nonces[account]; exist {
			return nil, fmt.Errorf("duplicate nonce for %s", account)
		}
		snapshot.Nonces[account] = types.Nonce(n.Nonce)
	}
	for _, claim := range c.Data.Claims {
		content := types.Content(claim.Content)
		if _, exist := snapshot.Claims[content]; exist {
			return nil, fmt.Errorf("duplicate claim for %q", content)
		}
		snapshot.Claims[content] = types.AccountID(claim.Owner)
	}
	return snapshot, nil
}

// Recover restores a fresh runtime from the checkpoint file and verifies that the
// restored state matches the recorded root.
func Recover(logger *zap.Logger, fs afero.Fs, rt *runtime.Runtime, file string) error {
	checkpoint, checksum, err := read(fs, file)
	if err != nil {
		return err
	}
	snapshot, err := checkpoint.Snapshot()
	if err != nil {
		return fmt.Errorf("checkpoint %v: %w", file, err)
	}
	if err := rt.Restore(snapshot); err != nil {
		return err
	}
	if root := rt.StateRoot(); root != checkpoint.Data.Root {
		return fmt.Errorf("%w: recorded %s, restored %s", ErrStateRootMismatch, checkpoint.Data.Root, root)
	}
	logger.Info("recovered from checkpoint",
		zap.String("file", file),
		log.ZHeight(snapshot.Height),
		log.ZShortStringer("root", checkpoint.Data.Root),
		log.ZShortStringer("checksum", checksum),
	)
	return nil
}

// ParseHeight parses the checkpoint height from the file name.
func ParseHeight(fname string) (types.BlockHeight, error) {
	matches := fileRegex.FindStringSubmatch(filepath.Base(fname))
	if len(matches) != 2 {
		return 0, fmt.Errorf("unrecognized checkpoint file %s", fname)
	}
	height, err := strconv.ParseUint(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse checkpoint height %s: %w", fname, err)
	}
	return types.BlockHeight(height), nil
}

// Latest returns the checkpoint with the highest height under dataDir.
func Latest(fs afero.Fs, dataDir string) (string, error) {
	dir := filepath.Join(dataDir, checkpointDir)
	files, err := afero.ReadDir(fs, dir)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w in %v", ErrNoCheckpoint, dir)
	}
	if err != nil {
		return "", fmt.Errorf("read checkpoint dir %v: %w", dir, err)
	}
	var (
		latest string
		best   types.BlockHeight
	)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		height, err := ParseHeight(file.Name())
		if err != nil {
			// temporary files of unfinished checkpoints
			continue
		}
		if latest == "" || height > best {
			latest, best = file.Name(), height
		}
	}
	if latest == "" {
		return "", fmt.Errorf("%w in %v", ErrNoCheckpoint, dir)
	}
	return filepath.Join(dir, latest), nil
}
