package checkpoint

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-pallets/common/types"
	"github.com/spacemeshos/go-pallets/log"
	"github.com/spacemeshos/go-pallets/runtime"
)

const (
	SchemaVersion = "https://spacemesh.io/pallets/checkpoint.schema.json.1.0"

	checkpointDir = "checkpoint"
	schemaFile    = "schema.json"
	dirPerm       = 0o700
)

func checkpointRuntime(rt *runtime.Runtime) *Checkpoint {
	snapshot := rt.Snapshot()
	checkpoint := &Checkpoint{
		Version: SchemaVersion,
		Data: InnerData{
			CheckpointId: fmt.Sprintf("snapshot-%d", snapshot.Height),
			Height:       snapshot.Height.Uint64(),
			Root:         rt.StateRoot(),
			Balances:     make([]Balance, 0, len(snapshot.Balances)),
			Nonces:       make([]Nonce, 0, len(snapshot.Nonces)),
			Claims:       make([]Claim, 0, len(snapshot.Claims)),
		},
	}
	for account, balance := range snapshot.Balances {
		checkpoint.Data.Balances = append(checkpoint.Data.Balances, Balance{
			Account: account.String(),
			Balance: uint64(balance),
		})
	}
	for account, nonce := range snapshot.Nonces {
		checkpoint.Data.Nonces = append(checkpoint.Data.Nonces, Nonce{
			Account: account.String(),
			Nonce:   uint32(nonce),
		})
	}
	for content, owner := range snapshot.Claims {
		checkpoint.Data.Claims = append(checkpoint.Data.Claims, Claim{
			Content: content.String(),
			Owner:   owner.String(),
		})
	}
	slices.SortFunc(checkpoint.Data.Balances, func(a, b Balance) int { return strings.Compare(a.Account, b.Account) })
	slices.SortFunc(checkpoint.Data.Nonces, func(a, b Nonce) int { return strings.Compare(a.Account, b.Account) })
	slices.SortFunc(checkpoint.Data.Claims, func(a, b Claim) int { return strings.Compare(a.Content, b.Content) })
	return checkpoint
}

// Generate writes the state of the runtime to the checkpoint directory under
// dataDir and returns the path of the file.
func Generate(logger *zap.Logger, fs afero.Fs, rt *runtime.Runtime, dataDir string) (string, error) {
	checkpoint := checkpointRuntime(rt)
	path := SelfCheckpointFilename(dataDir, rt.BlockHeight())
	rf, err := NewRecoveryFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("new recovery file: %w", err)
	}
	if err = json.NewEncoder(rf).Encode(checkpoint); err != nil {
		if abortErr := rf.Abort(fs); abortErr != nil {
			logger.Warn("failed to drop partial checkpoint", zap.Error(abortErr))
		}
		return "", fmt.Errorf("marshal checkpoint json: %w", err)
	}
	checksum, err := rf.Save(fs)
	if err != nil {
		return "", err
	}
	logger.Info("checkpoint generated",
		zap.String("file", path),
		log.ZHeight(rt.BlockHeight()),
		log.ZShortStringer("root", checkpoint.Data.Root),
		log.ZShortStringer("checksum", checksum),
	)
	return path, nil
}

// SelfCheckpointFilename is the path of the checkpoint taken at height.
func SelfCheckpointFilename(dataDir string, height types.BlockHeight) string {
	return filepath.Join(dataDir, checkpointDir, fmt.Sprintf("snapshot-%d", height))
}
