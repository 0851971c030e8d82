// palletd executes blocks of balance transfers and claims against an in-memory runtime.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spacemeshos/go-pallets/cmd"
)

var (
	version string
	commit  string
	branch  string
)

func main() { // run the app
	cmd.Version = version
	cmd.Commit = commit
	cmd.Branch = branch
	if err := cmd.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
