package root

import (
	"github.com/schmitthub/regsmoke/internal/cmd/resolve"
	"github.com/schmitthub/regsmoke/internal/cmd/run"
	versioncmd "github.com/schmitthub/regsmoke/internal/cmd/version"
	"github.com/schmitthub/regsmoke/internal/cmdutil"
	"github.com/schmitthub/regsmoke/internal/logger"
	"github.com/spf13/cobra"
)

// NewCmdRoot creates the root command for the regsmoke CLI.
func NewCmdRoot(f *cmdutil.Factory, version, buildDate string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regsmoke",
		Short: "Smoke-test a container registry through its client tools",
		Long: `Regsmoke validates a container-image registry against the standard
login → pull → tag → push workflow using podman and docker, then checks
the pushed artifact over plain HTTP.

Quick start:
  regsmoke run                   # launch the registry and run everything
  regsmoke run --skip-registry   # against an already-running registry
  regsmoke resolve               # print the address the run would use`,
		SilenceUsage: true,
		Annotations: map[string]string{
			"versionInfo": versioncmd.Format(version, buildDate),
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(f.Debug)

			logger.Debug().
				Str("version", f.Version).
				Bool("debug", f.Debug).
				Msg("regsmoke starting")

			return nil
		},
		Version: f.Version,
	}

	cmd.PersistentFlags().BoolVarP(&f.Debug, "debug", "D", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&f.ConfigFile, "config", "", "Path to regsmoke.yaml")

	cmd.SetVersionTemplate(versioncmd.Format(version, buildDate) + "\n")

	cmd.AddCommand(run.NewCmdRun(f, nil))
	cmd.AddCommand(resolve.NewCmdResolve(f, nil))
	cmd.AddCommand(versioncmd.NewCmdVersion(f, version, buildDate))

	return cmd
}
