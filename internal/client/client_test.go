package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/schmitthub/regsmoke/internal/iostreams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakeTool installs a shell script named name into dir that appends
// its argv to logPath. Lines prefixed with extra run first (e.g. an exit
// for failure simulation).
func writeFakeTool(t *testing.T, dir, name, logPath, extra string) {
	t.Helper()
	script := fmt.Sprintf("#!/bin/sh\necho \"%s $@\" >> %q\n%s\n", name, logPath, extra)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755))
}

func readLog(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestToolNotAvailable(t *testing.T) {
	t.Setenv("PATH", t.TempDir()) // empty dir: no tools

	ios, _, _, _ := iostreams.Test()
	podman := NewPodman(ios, nil)
	docker := NewDocker(ios, nil)

	assert.False(t, podman.Available())
	assert.False(t, docker.Available())

	err := podman.Pull(context.Background(), "hello-world")
	require.Error(t, err)
}

func TestPodmanSequence(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	writeFakeTool(t, dir, "podman", logPath, "")
	t.Setenv("PATH", dir)

	ios, _, _, _ := iostreams.Test()
	tool := NewPodman(ios, nil)
	require.True(t, tool.Available())

	ctx := context.Background()
	addr := "127.0.0.1:3000"
	require.NoError(t, tool.Login(ctx, addr, "devuser", "devpw"))
	require.NoError(t, tool.RemoveImage(ctx, "hello-world"))
	require.NoError(t, tool.Pull(ctx, "hello-world"))
	require.NoError(t, tool.Tag(ctx, "hello-world", addr+"/testing/hello:prod"))
	require.NoError(t, tool.Push(ctx, addr+"/testing/hello:prod"))

	calls := readLog(t, logPath)
	require.Len(t, calls, 5)
	assert.Equal(t, "podman login --username devuser --password devpw --tls-verify=false 127.0.0.1:3000", calls[0])
	assert.Equal(t, "podman rmi hello-world", calls[1])
	assert.Equal(t, "podman pull hello-world", calls[2])
	assert.Equal(t, "podman tag hello-world 127.0.0.1:3000/testing/hello:prod", calls[3])
	assert.Equal(t, "podman push --tls-verify=false 127.0.0.1:3000/testing/hello:prod", calls[4])
}

func TestDockerOmitsTLSFlag(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	writeFakeTool(t, dir, "docker", logPath, "")
	t.Setenv("PATH", dir)

	ios, _, _, _ := iostreams.Test()
	tool := NewDocker(ios, nil)
	require.True(t, tool.Available())

	ctx := context.Background()
	require.NoError(t, tool.Login(ctx, "127.0.0.1:3000", "devuser", "devpw"))
	require.NoError(t, tool.Push(ctx, "127.0.0.1:3000/testing/hello:prod"))

	calls := readLog(t, logPath)
	require.Len(t, calls, 2)
	assert.NotContains(t, calls[0], "--tls-verify")
	assert.NotContains(t, calls[1], "--tls-verify")
}

func TestCommandFailureReturnsError(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	writeFakeTool(t, dir, "podman", logPath, "exit 1")
	t.Setenv("PATH", dir)

	ios, _, _, _ := iostreams.Test()
	tool := NewPodman(ios, nil)

	err := tool.RemoveImage(context.Background(), "hello-world")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "podman rmi")
}

func TestToolEnvPassedToChild(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	script := fmt.Sprintf("#!/bin/sh\necho \"$REGISTRY_ADDR\" >> %q\n", logPath)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "podman"), []byte(script), 0o755))
	t.Setenv("PATH", dir)

	ios, _, _, _ := iostreams.Test()
	tool := NewPodman(ios, []string{"REGISTRY_ADDR=10.0.0.7:3000"})

	require.NoError(t, tool.Pull(context.Background(), "hello-world"))

	calls := readLog(t, logPath)
	require.Len(t, calls, 1)
	assert.Equal(t, "10.0.0.7:3000", calls[0])
}
