package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	loader := NewLoader(t.TempDir())

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "cargo run --features bin", cfg.Registry.Command)
	assert.Equal(t, 3000, cfg.Registry.Port)
	assert.Equal(t, 30*time.Second, cfg.Registry.ReadyTimeout)
	assert.Equal(t, "devuser", cfg.Credentials.Username)
	assert.Equal(t, "hello-world", cfg.Artifact.Source)
	assert.Equal(t, "testing/hello", cfg.Artifact.Repository)
	assert.Equal(t, "prod", cfg.Artifact.Tag)
	assert.False(t, cfg.PodmanRemote)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
registry:
  command: ./registry --standalone
  port: 5000
  ready_timeout: 5s
artifact:
  tag: staging
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "./registry --standalone", cfg.Registry.Command)
	assert.Equal(t, 5000, cfg.Registry.Port)
	assert.Equal(t, 5*time.Second, cfg.Registry.ReadyTimeout)
	// Untouched keys keep their defaults.
	assert.Equal(t, "hello-world", cfg.Artifact.Source)
	assert.Equal(t, "staging", cfg.Artifact.Tag)
}

func TestLoadExplicitConfigFileMissing(t *testing.T) {
	loader := NewLoader(t.TempDir())
	loader.SetConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := loader.Load()
	require.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("REGSMOKE_REGISTRY_PORT", "4444")
	t.Setenv("REGSMOKE_CREDENTIALS_USERNAME", "other")

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, 4444, cfg.Registry.Port)
	assert.Equal(t, "other", cfg.Credentials.Username)
}

func TestLoadRemoteSwitch(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  bool
	}{
		{name: "unset", set: false, want: false},
		{name: "exact true", value: "true", set: true, want: true},
		{name: "uppercase is not true", value: "TRUE", set: true, want: false},
		{name: "numeric is not true", value: "1", set: true, want: false},
		{name: "empty is not true", value: "", set: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv(RemoteEnvVar, tt.value)
			}

			cfg, err := NewLoader(t.TempDir()).Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.PodmanRemote)
		})
	}
}

func TestArtifactTargetRef(t *testing.T) {
	a := DefaultConfig().Artifact
	assert.Equal(t, "127.0.0.1:3000/testing/hello:prod", a.TargetRef("127.0.0.1:3000"))
}
