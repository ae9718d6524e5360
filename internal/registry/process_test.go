package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/schmitthub/regsmoke/internal/iostreams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAndStop(t *testing.T) {
	ios, _, _, _ := iostreams.Test()

	proc, err := Start(context.Background(), StartOptions{
		Command: "/bin/sleep 60",
		Stdout:  ios.Out,
		Stderr:  ios.ErrOut,
	})
	require.NoError(t, err)

	pid := proc.Pid()
	require.NoError(t, syscall.Kill(pid, 0), "process should be running")

	proc.Stop()

	// After Stop the child is reaped; signalling it must fail.
	assert.Error(t, syscall.Kill(pid, 0), "process should be gone after Stop")
}

func TestStopIsIdempotent(t *testing.T) {
	ios, _, _, _ := iostreams.Test()

	proc, err := Start(context.Background(), StartOptions{
		Command: "/bin/sleep 60",
		Stdout:  ios.Out,
		Stderr:  ios.ErrOut,
	})
	require.NoError(t, err)

	proc.Stop()
	proc.Stop() // second call must be a no-op, not a panic or re-signal
}

func TestStartQuotedCommand(t *testing.T) {
	ios, _, _, _ := iostreams.Test()
	marker := filepath.Join(t.TempDir(), "started")

	// The quoted argument must reach the shell as a single argv element.
	proc, err := Start(context.Background(), StartOptions{
		Command: fmt.Sprintf(`/bin/sh -c "touch %s"`, marker),
		Stdout:  ios.Out,
		Stderr:  ios.ErrOut,
	})
	require.NoError(t, err)
	defer proc.Stop()

	require.Eventually(t, func() bool {
		_, statErr := os.Stat(marker)
		return statErr == nil
	}, 5*time.Second, 50*time.Millisecond, "quoted command argument was mangled")
}

func TestStartUnterminatedQuote(t *testing.T) {
	_, err := Start(context.Background(), StartOptions{Command: `/bin/sh -c "touch`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid registry command")
}

func TestStartEmptyCommand(t *testing.T) {
	_, err := Start(context.Background(), StartOptions{Command: "  "})
	require.Error(t, err)
}

func TestStartMissingBinary(t *testing.T) {
	_, err := Start(context.Background(), StartOptions{Command: "/nonexistent/registry --standalone"})
	require.Error(t, err)
}

func TestContextCancelTerminatesProcess(t *testing.T) {
	ios, _, _, _ := iostreams.Test()
	ctx, cancel := context.WithCancel(context.Background())

	proc, err := Start(ctx, StartOptions{
		Command: "/bin/sleep 60",
		Stdout:  ios.Out,
		Stderr:  ios.ErrOut,
	})
	require.NoError(t, err)
	defer proc.Stop()

	pid := proc.Pid()
	cancel()

	// Stop after cancel must not hang: the group is already signalled,
	// Stop just reaps the child.
	done := make(chan struct{})
	go func() {
		proc.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return after context cancel")
	}

	assert.Error(t, syscall.Kill(pid, 0), "process should be gone")
}
