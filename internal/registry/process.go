// Package registry controls the lifetime of the registry server under
// test: launching it as a background process, probing it for readiness,
// and guaranteeing its termination at the end of the run.
package registry

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/google/shlex"
	"github.com/schmitthub/regsmoke/internal/logger"
)

// StartOptions configures the registry launch.
type StartOptions struct {
	// Command is the full launch command line, e.g. "cargo run --features bin".
	Command string
	// Dir is the working directory for the command (empty = inherit).
	Dir string
	// Stdout and Stderr receive the registry's streamed output.
	Stdout io.Writer
	Stderr io.Writer
	// ExtraEnv is appended to the inherited environment.
	ExtraEnv []string
}

// Process is a handle to the running registry server. It is owned by the
// caller that started it; Stop must be invoked exactly once per run, on
// both normal completion and early return.
type Process struct {
	cmd      *exec.Cmd
	stopOnce sync.Once
}

// Start launches the registry server as a background process in its own
// process group so that Stop can signal the whole group (the launch
// command may itself spawn the actual server binary).
func Start(ctx context.Context, opts StartOptions) (*Process, error) {
	fields, err := shlex.Split(opts.Command)
	if err != nil {
		return nil, fmt.Errorf("invalid registry command: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty registry command")
	}

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	cmd.Dir = opts.Dir
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	cmd.Env = append(os.Environ(), opts.ExtraEnv...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	// Cancelling the context tears the group down the same way Stop does.
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
	}

	logger.Debug().Str("command", opts.Command).Msg("starting registry process")

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start registry: %w", err)
	}

	return &Process{cmd: cmd}, nil
}

// Pid returns the process id of the launch command.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Stop sends SIGTERM to the registry's process group and reaps the
// child. Safe to call multiple times; only the first call signals.
func (p *Process) Stop() {
	p.stopOnce.Do(func() {
		pid := p.cmd.Process.Pid
		logger.Debug().Int("pid", pid).Msg("stopping registry process")

		if err := syscall.Kill(-pid, syscall.SIGTERM); err != nil {
			// Group may already be gone; fall back to the direct pid.
			_ = p.cmd.Process.Signal(syscall.SIGTERM)
		}
		_ = p.cmd.Wait()
	})
}
