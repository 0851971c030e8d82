package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/go-pallets/checkpoint"
	"github.com/spacemeshos/go-pallets/common/types"
	"github.com/spacemeshos/go-pallets/config"
	"github.com/spacemeshos/go-pallets/runtime"
)

var (
	// Version is the app's semantic version. Designed to be overwritten by make.
	Version string
	// Commit is the git commit used to build the app. Designed to be overwritten by make.
	Commit string
	// Branch is the git branch used to build the app. Designed to be overwritten by make.
	Branch string
)

// NewRootCommand returns the palletd command with all subcommands.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "palletd",
		Short:         "execute blocks of balance transfers and claims",
		Version:       fmt.Sprintf("%s+%s+%s", Version, Commit, Branch),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.AddCommands(root)
	root.AddCommand(
		runCommand(opts),
		demoCommand(),
		checkpointCommand(),
	)
	return root
}

func runCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "execute the blocks file on top of genesis or a checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := opts.parseConfig(cmd.Flags())
			if err != nil {
				return err
			}
			app, err := NewApp(conf, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := app.Lock(); err != nil {
				return err
			}
			defer app.Unlock()
			if err := app.Initialize(); err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return app.Start(ctx)
		},
	}
}

func demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "run a two block scenario and print the resulting state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout())
		},
	}
}

func runDemo(out io.Writer) error {
	const (
		alice   types.AccountID = "Alice"
		bob     types.AccountID = "Bob"
		charlie types.AccountID = "Charlie"
	)
	rt := runtime.New()
	if err := rt.ApplyGenesis(config.DefaultTestGenesisConfig().ToAccounts()); err != nil {
		return err
	}
	blocks := []*runtime.Block{
		{
			Header: runtime.Header{Height: 1},
			Extrinsics: []runtime.Extrinsic{
				{Caller: alice, Call: runtime.Transfer(bob, 50)},
				{Caller: alice, Call: runtime.Transfer(charlie, 40)},
				{Caller: alice, Call: runtime.Transfer(bob, 150)},
			},
		},
		{
			Header: runtime.Header{Height: 2},
			Extrinsics: []runtime.Extrinsic{
				{Caller: alice, Call: runtime.CreateClaim("Asset")},
				{Caller: bob, Call: runtime.CreateClaim("Asset")},
				{Caller: bob, Call: runtime.RevokeClaim("Asset")},
			},
		},
	}
	for _, block := range blocks {
		results, err := rt.ExecuteBlock(block)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "block %d\n", block.Header.Height)
		for i := range results {
			writeResult(out, &results[i])
		}
	}
	_, err := rt.ExecuteBlock(&runtime.Block{Header: runtime.Header{Height: 4}})
	fmt.Fprintf(out, "block 4 rejected: %v\n", err)

	for _, account := range []types.AccountID{alice, bob, charlie} {
		fmt.Fprintf(out, "%s balance=%d nonce=%d\n", account, rt.BalanceOf(account), rt.NonceOf(account))
	}
	if owner, exist := rt.ClaimOwner("Asset"); exist {
		fmt.Fprintf(out, "Asset owner=%s\n", owner)
	}
	fmt.Fprintf(out, "height %d root %s\n", rt.BlockHeight(), rt.StateRoot())
	return nil
}

func writeResult(out io.Writer, result *runtime.ExtrinsicResult) {
	status := "ok"
	if err := result.Failure(); err != nil {
		status = fmt.Sprintf("failed: %v", err)
	}
	fmt.Fprintf(out, "  %d %s %s\n", result.Index, result.Caller, status)
}

func checkpointCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "work with checkpoint files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "inspect <file>",
		Short: "validate a checkpoint file and print its content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspectCheckpoint(afero.NewOsFs(), cmd.OutOrStdout(), args[0])
		},
	})
	return cmd
}

func inspectCheckpoint(fs afero.Fs, out io.Writer, file string) error {
	cp, err := checkpoint.Read(fs, file)
	if err != nil {
		return err
	}
	snapshot, err := cp.Snapshot()
	if err != nil {
		return err
	}
	rt := runtime.New()
	if err := rt.Restore(snapshot); err != nil {
		return err
	}
	total, err := rt.TotalIssuance()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s height=%d root=%s\n", cp.Data.CheckpointId, cp.Data.Height, cp.Data.Root)
	fmt.Fprintf(out, "accounts=%d issuance=%d nonces=%d claims=%d\n",
		len(cp.Data.Balances), total, len(cp.Data.Nonces), len(cp.Data.Claims))
	if root := rt.StateRoot(); root != cp.Data.Root {
		return fmt.Errorf("%w: recorded %s, computed %s", checkpoint.ErrStateRootMismatch, cp.Data.Root, root)
	}
	for _, b := range cp.Data.Balances {
		fmt.Fprintf(out, "  balance %s %d\n", b.Account, b.Balance)
	}
	for _, n := range cp.Data.Nonces {
		fmt.Fprintf(out, "  nonce %s %d\n", n.Account, n.Nonce)
	}
	for _, c := range cp.Data.Claims {
		fmt.Fprintf(out, "  claim %q %s\n", c.Content, c.Owner)
	}
	return nil
}
