// Package factory wires the real implementations behind cmdutil.Factory.
package factory

import (
	"os"
	"sync"

	"github.com/schmitthub/regsmoke/internal/cmdutil"
	"github.com/schmitthub/regsmoke/internal/config"
	"github.com/schmitthub/regsmoke/internal/iostreams"
)

// New creates a fully-wired Factory with lazy-initialized dependency
// closures. Called exactly once at the CLI entry point. Tests should NOT
// import this package — construct &cmdutil.Factory{} directly.
func New(version, buildDate string) *cmdutil.Factory {
	ios := iostreams.NewIOStreams()

	if !ios.IsOutputTTY() || os.Getenv("NO_COLOR") != "" {
		ios.SetColorEnabled(false)
	}

	f := &cmdutil.Factory{
		Version:   version,
		BuildDate: buildDate,
		IOStreams: ios,
	}

	var (
		cfgMu  sync.Mutex
		cfg    *config.Config
		cfgErr error
		loaded bool
	)
	f.Config = func() (*config.Config, error) {
		cfgMu.Lock()
		defer cfgMu.Unlock()
		if !loaded {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			loader := config.NewLoader(wd)
			if f.ConfigFile != "" {
				loader.SetConfigFile(f.ConfigFile)
			}
			cfg, cfgErr = loader.Load()
			loaded = true
		}
		return cfg, cfgErr
	}
	f.ResetConfig = func() {
		cfgMu.Lock()
		defer cfgMu.Unlock()
		loaded = false
	}

	return f
}
