package checkpoint_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-pallets/checkpoint"
	"github.com/spacemeshos/go-pallets/common/types"
	"github.com/spacemeshos/go-pallets/log/logtest"
	"github.com/spacemeshos/go-pallets/runtime"
)

func newRuntime(tb testing.TB) *runtime.Runtime {
	tb.Helper()
	rt := runtime.New(runtime.WithLogger(logtest.New(tb)))
	require.NoError(tb, rt.ApplyGenesis([]types.GenesisAccount{
		{Account: "Alice", Balance: 100},
		{Account: "Dave", Balance: 1},
	}))
	_, err := rt.ExecuteBlock(&runtime.Block{
		Header: runtime.Header{Height: 1},
		Extrinsics: []runtime.Extrinsic{
			{Caller: "Alice", Call: runtime.Transfer("Bob", 50)},
			{Caller: "Bob", Call: runtime.CreateClaim("doc")},
			{Caller: "Charlie", Call: runtime.CreateClaim("alpha")},
		},
	})
	require.NoError(tb, err)
	return rt
}

func expectedCheckpoint(root types.Hash32) *checkpoint.Checkpoint {
	return &checkpoint.Checkpoint{
		Version: checkpoint.SchemaVersion,
		Data: checkpoint.InnerData{
			CheckpointId: "snapshot-1",
			Height:       1,
			Root:         root,
			Balances: []checkpoint.Balance{
				{Account: "Alice", Balance: 50},
				{Account: "Bob", Balance: 50},
				{Account: "Dave", Balance: 1},
			},
			Nonces: []checkpoint.Nonce{
				{Account: "Alice", Nonce: 1},
				{Account: "Bob", Nonce: 1},
				{Account: "Charlie", Nonce: 1},
			},
			Claims: []checkpoint.Claim{
				{Content: "alpha", Owner: "Charlie"},
				{Content: "doc", Owner: "Bob"},
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := t.TempDir()
	rt := newRuntime(t)

	path, err := checkpoint.Generate(logtest.New(t), fs, rt, dir)
	require.NoError(t, err)
	require.Equal(t, checkpoint.SelfCheckpointFilename(dir, 1), path)
	require.Equal(t, filepath.Join(dir, "checkpoint", "snapshot-1"), path)

	persisted, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	require.NoError(t, checkpoint.ValidateSchema(persisted))

	var got checkpoint.Checkpoint
	require.NoError(t, json.Unmarshal(persisted, &got))
	require.Equal(t, expectedCheckpoint(rt.StateRoot()), &got)

	files, err := afero.ReadDir(fs, filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, files, 1, "temporary file must be renamed")

	_, err = checkpoint.Generate(logtest.New(t), fs, rt, dir)
	require.ErrorContains(t, err, "file already exist")
}

func TestGenerateRecover(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := t.TempDir()
	rt := newRuntime(t)
	path, err := checkpoint.Generate(logtest.New(t), fs, rt, dir)
	require.NoError(t, err)

	recovered := runtime.New(runtime.WithLogger(logtest.New(t)))
	require.NoError(t, checkpoint.Recover(logtest.New(t), fs, recovered, path))
	require.Equal(t, rt.Snapshot(), recovered.Snapshot())
	require.Equal(t, rt.StateRoot(), recovered.StateRoot())

	// execution continues from the checkpoint height
	results, err := recovered.ExecuteBlock(&runtime.Block{
		Header:     runtime.Header{Height: 2},
		Extrinsics: []runtime.Extrinsic{{Caller: "Alice", Call: runtime.Transfer("Bob", 50)}},
	})
	require.NoError(t, err)
	require.True(t, results[0].Ok())
	require.Equal(t, types.Nonce(2), recovered.NonceOf("Alice"))

	t.Run("not fresh", func(t *testing.T) {
		require.ErrorIs(t, checkpoint.Recover(logtest.New(t), fs, rt, path), runtime.ErrNotFresh)
	})
}

func TestLatest(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := t.TempDir()

	_, err := checkpoint.Latest(fs, dir)
	require.ErrorIs(t, err, checkpoint.ErrNoCheckpoint)

	rt := newRuntime(t)
	first, err := checkpoint.Generate(logtest.New(t), fs, rt, dir)
	require.NoError(t, err)
	latest, err := checkpoint.Latest(fs, dir)
	require.NoError(t, err)
	require.Equal(t, first, latest)

	for _, height := range []types.BlockHeight{2, 3, 4, 5, 6, 7, 8, 9, 10} {
		_, err := rt.ExecuteBlock(&runtime.Block{Header: runtime.Header{Height: height}})
		require.NoError(t, err)
	}
	tenth, err := checkpoint.Generate(logtest.New(t), fs, rt, dir)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "checkpoint", "snapshot-9.tmp-123"), nil, 0o600))

	latest, err = checkpoint.Latest(fs, dir)
	require.NoError(t, err)
	require.Equal(t, tenth, latest, "numeric and not lexicographic order")
}

func TestParseHeight(t *testing.T) {
	for _, tc := range []struct {
		fname  string
		height types.BlockHeight
		err    bool
	}{
		{fname: "snapshot-0", height: 0},
		{fname: "/data/checkpoint/snapshot-42", height: 42},
		{fname: "snapshot-01", err: true},
		{fname: "snapshot-4.tmp-991", err: true},
		{fname: "snapshot-", err: true},
		{fname: "snapshot-99999999999999999999", err: true},
	} {
		t.Run(tc.fname, func(t *testing.T) {
			height, err := checkpoint.ParseHeight(tc.fname)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.height, height)
		})
	}
}
