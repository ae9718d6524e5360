// Package config holds the harness configuration and registry address
// resolution. The resolved address is computed once at startup and passed
// by parameter to every downstream component; nothing re-reads it from
// the process environment.
package config

import (
	"fmt"
	"time"
)

const (
	// ConfigFileName is the default configuration file name.
	ConfigFileName = "regsmoke.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "REGSMOKE"

	// RemoteEnvVar is the legacy switch controlling address resolution.
	// Only the exact value "true" selects remote-host mode.
	RemoteEnvVar = "PODMAN_IS_REMOTE"

	// AddrEnvVar is exported into client tool environments so that
	// scripts invoked by the tools can find the registry.
	AddrEnvVar = "REGISTRY_ADDR"
)

// RegistryConfig describes how to launch and reach the registry under test.
type RegistryConfig struct {
	// Command launches the registry server in its standalone binary mode.
	Command string `mapstructure:"command"`
	// Port is the fixed port the registry listens on.
	Port int `mapstructure:"port"`
	// ReadyTimeout bounds the readiness probe after launch.
	ReadyTimeout time.Duration `mapstructure:"ready_timeout"`
}

// CredentialsConfig holds the fixed development credentials used for
// client logins. These are not secrets; the registry under test is a
// throwaway local process.
type CredentialsConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// ArtifactConfig is the fixed test artifact driven through the registry.
type ArtifactConfig struct {
	// Source is the public image pulled by each client tool.
	Source string `mapstructure:"source"`
	// Repository is the namespace/name the image is re-tagged into.
	Repository string `mapstructure:"repository"`
	// Tag is the tag pushed to the registry.
	Tag string `mapstructure:"tag"`
}

// TargetRef returns the full push reference for the given registry address.
func (a ArtifactConfig) TargetRef(addr string) string {
	return fmt.Sprintf("%s/%s:%s", addr, a.Repository, a.Tag)
}

// Config is the root harness configuration.
type Config struct {
	Registry    RegistryConfig    `mapstructure:"registry"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Artifact    ArtifactConfig    `mapstructure:"artifact"`

	// PhaseDelay is the pause between client phases and before the final
	// verification, letting pushes settle on the registry side.
	PhaseDelay time.Duration `mapstructure:"phase_delay"`

	// PodmanRemote selects remote-host address resolution. Bound to the
	// PODMAN_IS_REMOTE environment variable.
	PodmanRemote bool `mapstructure:"podman_remote"`
}

// DefaultConfig returns the built-in defaults. They match the registry
// server's own defaults so a bare `regsmoke run` works from the server's
// working directory.
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			Command:      "cargo run --features bin",
			Port:         3000,
			ReadyTimeout: 30 * time.Second,
		},
		Credentials: CredentialsConfig{
			Username: "devuser",
			Password: "devpw",
		},
		Artifact: ArtifactConfig{
			Source:     "hello-world",
			Repository: "testing/hello",
			Tag:        "prod",
		},
		PhaseDelay: time.Second,
	}
}
