// Package smoke orchestrates the full registry smoke sequence: resolve
// the registry address, start the registry under test, run the identical
// login→pull→tag→push routine through each available client tool, and
// confirm the pushed artifact with a raw HTTP request.
//
// The sequence is deliberately permissive: a failed client command is
// surfaced as a warning and the run continues. The run log, not the exit
// code, is the failure-detection mechanism.
package smoke

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/schmitthub/regsmoke/internal/client"
	"github.com/schmitthub/regsmoke/internal/config"
	"github.com/schmitthub/regsmoke/internal/iostreams"
	"github.com/schmitthub/regsmoke/internal/logger"
	"github.com/schmitthub/regsmoke/internal/registry"
	"github.com/schmitthub/regsmoke/internal/verify"
)

// Status classifies how a phase ended.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusWarned  Status = "warned"
)

// PhaseResult records the outcome of one phase of the run.
type PhaseResult struct {
	Name     string
	Status   Status
	Warnings []string
}

// Result is the outcome report for a whole run.
type Result struct {
	RunID  string
	Addr   string
	Phases []PhaseResult
}

// Warned reports whether any phase recorded a warning.
func (r *Result) Warned() bool {
	for _, p := range r.Phases {
		if p.Status == StatusWarned {
			return true
		}
	}
	return false
}

// Runner executes the smoke sequence. Construct with New, then call Run
// once. A Runner is not reusable.
type Runner struct {
	cfg *config.Config
	ios *iostreams.IOStreams

	// Addr overrides address resolution when non-empty. Used by tests
	// and by callers that already know where the registry listens.
	Addr string

	// SkipRegistry drives an already-running registry instead of
	// launching one.
	SkipRegistry bool

	// RegistryDir is the working directory for the registry launch
	// command (empty = inherit).
	RegistryDir string

	runID string
}

// New creates a Runner for one smoke run.
func New(cfg *config.Config, ios *iostreams.IOStreams) *Runner {
	return &Runner{
		cfg:   cfg,
		ios:   ios,
		runID: uuid.NewString(),
	}
}

// Run executes the whole sequence and returns the outcome report. The
// returned error covers harness-level failures only (lock contention,
// nothing at all runnable); client-tool failures are warnings in the
// report, preserving best-effort sequential execution.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	log := logger.WithField("run_id", r.runID)
	log.Info().Msg("starting registry smoke run")

	lock, err := acquireRunLock()
	if err != nil {
		return nil, err
	}
	defer releaseRunLock(lock)

	result := &Result{RunID: r.runID}

	// Resolve the registry address once; everything downstream takes it
	// by parameter.
	addr := r.Addr
	if addr == "" {
		var resolveErr error
		addr, resolveErr = config.ResolveAddr(r.cfg.PodmanRemote, r.cfg.Registry.Port)
		if resolveErr != nil {
			// Accepted failure mode: proceed and let connections fail
			// visibly in the client phases.
			log.Warn().Err(resolveErr).Str("addr", addr).Msg("address resolution failed, proceeding anyway")
		}
	}
	result.Addr = addr
	log.Info().Str("addr", addr).Msg("resolved registry address")

	toolEnv := []string{config.AddrEnvVar + "=" + addr}

	// Start the registry and guarantee its termination on every exit
	// path from here on.
	if !r.SkipRegistry {
		proc, startErr := registry.Start(ctx, registry.StartOptions{
			Command:  r.cfg.Registry.Command,
			Dir:      r.RegistryDir,
			Stdout:   r.ios.Out,
			Stderr:   r.ios.ErrOut,
			ExtraEnv: toolEnv,
		})
		if startErr != nil {
			// Downstream phases will fail their connection attempts;
			// the harness does not special-case this.
			result.Phases = append(result.Phases, PhaseResult{
				Name:     "registry",
				Status:   StatusWarned,
				Warnings: []string{startErr.Error()},
			})
			log.Warn().Err(startErr).Msg("registry failed to start, continuing anyway")
		} else {
			defer proc.Stop()
			phase := PhaseResult{Name: "registry", Status: StatusOK}
			if readyErr := registry.WaitReady(ctx, addr, r.cfg.Registry.ReadyTimeout); readyErr != nil {
				phase.Status = StatusWarned
				phase.Warnings = append(phase.Warnings, readyErr.Error())
				log.Warn().Err(readyErr).Msg("registry did not become ready, continuing anyway")
			}
			result.Phases = append(result.Phases, phase)
		}
	}

	// The two client routines run strictly one after the other.
	result.Phases = append(result.Phases, r.clientPhase(ctx, client.NewPodman(r.ios, toolEnv), addr))
	r.pause(ctx)
	result.Phases = append(result.Phases, r.clientPhase(ctx, client.NewDocker(r.ios, toolEnv), addr))
	r.pause(ctx)

	// Final independent checkpoint, issued exactly once, after both
	// routines.
	verifyPhase := PhaseResult{Name: "verify", Status: StatusOK}
	if err := verify.Fetch(ctx, addr, r.cfg.Artifact.Repository, r.ios.Out); err != nil {
		verifyPhase.Status = StatusWarned
		verifyPhase.Warnings = append(verifyPhase.Warnings, err.Error())
		log.Warn().Err(err).Msg("verification request failed")
	}
	result.Phases = append(result.Phases, verifyPhase)

	log.Info().Msg("smoke run finished")
	return result, nil
}

// clientPhase runs the fixed verification routine through one tool:
// availability check, login, best-effort local cleanup, pull, tag, push.
// Each failed step is recorded as a warning and the routine moves on.
func (r *Runner) clientPhase(ctx context.Context, tool *client.Tool, addr string) PhaseResult {
	log := logger.WithField("run_id", r.runID)
	phase := PhaseResult{Name: tool.Name, Status: StatusOK}

	if !tool.Available() {
		log.Info().Str("tool", tool.Name).Msg("client tool not available, skipping")
		phase.Status = StatusSkipped
		return phase
	}

	warn := func(step string, err error) {
		if err == nil {
			return
		}
		phase.Status = StatusWarned
		phase.Warnings = append(phase.Warnings, fmt.Sprintf("%s: %v", step, err))
		log.Warn().Err(err).Str("tool", tool.Name).Str("step", step).Msg("client step failed, continuing")
	}

	log.Info().Str("tool", tool.Name).Msg("logging in")
	warn("login", tool.Login(ctx, addr, r.cfg.Credentials.Username, r.cfg.Credentials.Password))

	// Stale local copies of the source image would mask a broken pull.
	if err := tool.RemoveImage(ctx, r.cfg.Artifact.Source); err != nil {
		log.Debug().Err(err).Str("tool", tool.Name).Msg("local cleanup failed (ignored)")
	}

	log.Info().Str("tool", tool.Name).Str("image", r.cfg.Artifact.Source).Msg("pulling source image")
	warn("pull", tool.Pull(ctx, r.cfg.Artifact.Source))

	target := r.cfg.Artifact.TargetRef(addr)
	log.Info().Str("tool", tool.Name).Str("target", target).Msg("tagging")
	warn("tag", tool.Tag(ctx, r.cfg.Artifact.Source, target))

	log.Info().Str("tool", tool.Name).Str("target", target).Msg("pushing")
	warn("push", tool.Push(ctx, target))

	return phase
}

// pause waits the configured phase delay, letting a push settle before
// the next phase. Returns early if the run context is cancelled.
func (r *Runner) pause(ctx context.Context) {
	if r.cfg.PhaseDelay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(r.cfg.PhaseDelay):
	}
}
