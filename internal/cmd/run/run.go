package run

import (
	"context"
	"fmt"
	"time"

	"github.com/schmitthub/regsmoke/internal/cmdutil"
	"github.com/schmitthub/regsmoke/internal/config"
	"github.com/schmitthub/regsmoke/internal/iostreams"
	"github.com/schmitthub/regsmoke/internal/smoke"
	"github.com/spf13/cobra"
)

// RunOptions holds the dependencies and flag values for "regsmoke run".
type RunOptions struct {
	IOStreams *iostreams.IOStreams
	Config    func() (*config.Config, error)

	RegistryCmd  string
	RegistryDir  string
	SkipRegistry bool
	Addr         string
	Timeout      time.Duration
}

// NewCmdRun creates the "run" subcommand.
func NewCmdRun(f *cmdutil.Factory, runF func(context.Context, *RunOptions) error) *cobra.Command {
	opts := &RunOptions{
		IOStreams: f.IOStreams,
		Config:    f.Config,
	}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the registry smoke sequence",
		Long: `Starts the registry under test, drives it through login, pull, tag
and push with each available client tool (podman, docker), and issues a
final raw HTTP request to confirm the pushed artifact is visible.

Client command failures are reported as warnings, not errors: the run
log is the failure-detection mechanism. The exit code only reflects
harness-level failures such as a concurrent run holding the lock.`,
		Example: `  # Full run with the default registry launch command
  regsmoke run

  # Drive a registry that is already listening
  regsmoke run --skip-registry --addr 127.0.0.1:3000

  # Launch the registry from its source checkout
  regsmoke run --registry-dir ~/src/registry`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return runRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.RegistryCmd, "registry-cmd", "", "Override the registry launch command")
	cmd.Flags().StringVar(&opts.RegistryDir, "registry-dir", "", "Working directory for the registry launch command")
	cmd.Flags().BoolVar(&opts.SkipRegistry, "skip-registry", false, "Drive an already-running registry instead of launching one")
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Registry address (host:port), bypassing resolution")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Registry readiness timeout (default from config)")

	return cmd
}

func runRun(ctx context.Context, opts *RunOptions) error {
	cfg, err := opts.Config()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.RegistryCmd != "" {
		cfg.Registry.Command = opts.RegistryCmd
	}
	if opts.Timeout > 0 {
		cfg.Registry.ReadyTimeout = opts.Timeout
	}

	runner := smoke.New(cfg, opts.IOStreams)
	runner.Addr = opts.Addr
	runner.SkipRegistry = opts.SkipRegistry
	runner.RegistryDir = opts.RegistryDir

	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	printReport(opts.IOStreams, result)
	return nil
}

// printReport renders the per-phase outcome table at the end of a run.
func printReport(ios *iostreams.IOStreams, result *smoke.Result) {
	cs := ios.ColorScheme()

	fmt.Fprintln(ios.ErrOut)
	fmt.Fprintf(ios.ErrOut, "%s (registry %s)\n", cs.Bold("Smoke run report"), cs.Cyan(result.Addr))
	for _, phase := range result.Phases {
		var icon string
		switch phase.Status {
		case smoke.StatusOK:
			icon = cs.SuccessIcon()
		case smoke.StatusSkipped:
			icon = cs.SkipIcon()
		case smoke.StatusWarned:
			icon = cs.WarningIcon()
		}
		fmt.Fprintf(ios.ErrOut, "  %s %s\n", icon, phase.Name)
		for _, w := range phase.Warnings {
			fmt.Fprintf(ios.ErrOut, "      %s\n", cs.Muted(w))
		}
	}
	if result.Warned() {
		fmt.Fprintf(ios.ErrOut, "\n%s\n", cs.Yellow("Completed with warnings — review the log above."))
	} else {
		fmt.Fprintf(ios.ErrOut, "\n%s\n", cs.Green("Completed."))
	}
}
