package resolve

import (
	"fmt"

	"github.com/schmitthub/regsmoke/internal/cmdutil"
	"github.com/schmitthub/regsmoke/internal/config"
	"github.com/schmitthub/regsmoke/internal/iostreams"
	"github.com/spf13/cobra"
)

// ResolveOptions holds the dependencies for "regsmoke resolve".
type ResolveOptions struct {
	IOStreams *iostreams.IOStreams
	Config    func() (*config.Config, error)
}

// NewCmdResolve creates the "resolve" subcommand. It prints the registry
// address the harness would use, for scripting around the harness.
func NewCmdResolve(f *cmdutil.Factory, runF func(*ResolveOptions) error) *cobra.Command {
	opts := &ResolveOptions{
		IOStreams: f.IOStreams,
		Config:    f.Config,
	}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the resolved registry address",
		Long: `Prints the host:port the smoke run would target. Loopback by default;
when PODMAN_IS_REMOTE=true the host comes from a lookup of the local
hostname so client tools on another machine can reach the registry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(opts)
			}
			return resolveRun(opts)
		},
	}

	return cmd
}

func resolveRun(opts *ResolveOptions) error {
	cfg, err := opts.Config()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	addr, err := config.ResolveAddr(cfg.PodmanRemote, cfg.Registry.Port)
	if err != nil {
		return err
	}

	fmt.Fprintln(opts.IOStreams.Out, addr)
	return nil
}
