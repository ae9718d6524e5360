package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Loader handles loading and parsing of the harness configuration.
type Loader struct {
	workDir string
	path    string // explicit config file, overrides workDir discovery
	viper   *viper.Viper
}

// NewLoader creates a configuration loader for the given working directory.
func NewLoader(workDir string) *Loader {
	return &Loader{
		workDir: workDir,
		viper:   viper.New(),
	}
}

// SetConfigFile points the loader at an explicit config file. The file
// must exist when Load is called.
func (l *Loader) SetConfigFile(path string) {
	l.path = path
}

// Load reads the optional regsmoke.yaml and applies environment overrides.
// A missing config file is not an error; defaults apply.
func (l *Loader) Load() (*Config, error) {
	defaults := DefaultConfig()
	l.viper.SetDefault("registry.command", defaults.Registry.Command)
	l.viper.SetDefault("registry.port", defaults.Registry.Port)
	l.viper.SetDefault("registry.ready_timeout", defaults.Registry.ReadyTimeout)
	l.viper.SetDefault("credentials.username", defaults.Credentials.Username)
	l.viper.SetDefault("credentials.password", defaults.Credentials.Password)
	l.viper.SetDefault("artifact.source", defaults.Artifact.Source)
	l.viper.SetDefault("artifact.repository", defaults.Artifact.Repository)
	l.viper.SetDefault("artifact.tag", defaults.Artifact.Tag)
	l.viper.SetDefault("phase_delay", defaults.PhaseDelay)
	l.viper.SetDefault("podman_remote", false)

	// Environment overrides: REGSMOKE_REGISTRY_PORT etc.
	l.viper.SetEnvPrefix(EnvPrefix)
	l.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.viper.AutomaticEnv()

	configPath := l.path
	if configPath == "" {
		configPath = filepath.Join(l.workDir, ConfigFileName)
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = ""
		}
	}

	if configPath != "" {
		l.viper.SetConfigFile(configPath)
		l.viper.SetConfigType("yaml")
		if err := l.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := l.viper.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// The legacy remote switch matches on the exact string "true"; any
	// other value, including "1" or "TRUE", means local mode.
	if v, ok := os.LookupEnv(RemoteEnvVar); ok {
		cfg.PodmanRemote = v == "true"
	}

	return &cfg, nil
}
