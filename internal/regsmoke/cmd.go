// Package regsmoke is the CLI entry point.
package regsmoke

import (
	"context"

	"github.com/schmitthub/regsmoke/internal/cmd/factory"
	"github.com/schmitthub/regsmoke/internal/cmd/root"
	"github.com/schmitthub/regsmoke/internal/signals"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	BuildDate = ""
)

// Main is the entry point for the regsmoke CLI. It initializes the
// Factory, creates the root command, and executes it under a
// signal-cancelled context so an interrupted run still terminates the
// registry child process instead of orphaning it.
func Main() int {
	f := factory.New(Version, BuildDate)

	ctx, cancel := signals.SetupSignalContext(context.Background())
	defer cancel()

	rootCmd := root.NewCmdRoot(f, Version, BuildDate)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return 1
	}

	return 0
}
