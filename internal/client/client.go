// Package client wraps the external registry client tools (podman,
// docker) behind a single Tool type. The harness only sequences CLI
// calls and inspects their exit status; it never talks to a daemon API.
package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/schmitthub/regsmoke/internal/iostreams"
	"github.com/schmitthub/regsmoke/internal/logger"
)

// Tool drives one registry client CLI.
type Tool struct {
	// Name is the executable name, e.g. "podman".
	Name string

	// path is the resolved executable path; empty if the tool is not
	// installed on this host.
	path string

	// insecureSkipTLS passes --tls-verify=false on login and push.
	// Podman needs it for a plain-HTTP registry; docker handles insecure
	// registries through daemon configuration instead, so for it the
	// flag stays off and the tool's defaults apply.
	insecureSkipTLS bool

	stdout io.Writer
	stderr io.Writer
	env    []string
}

// NewPodman returns the podman tool wrapper.
func NewPodman(ios *iostreams.IOStreams, env []string) *Tool {
	return newTool("podman", true, ios, env)
}

// NewDocker returns the docker tool wrapper.
func NewDocker(ios *iostreams.IOStreams, env []string) *Tool {
	return newTool("docker", false, ios, env)
}

func newTool(name string, insecureSkipTLS bool, ios *iostreams.IOStreams, env []string) *Tool {
	path, err := exec.LookPath(name)
	if err != nil {
		path = ""
	}
	return &Tool{
		Name:            name,
		path:            path,
		insecureSkipTLS: insecureSkipTLS,
		stdout:          ios.Out,
		stderr:          ios.ErrOut,
		env:             env,
	}
}

// Available reports whether the tool's executable was found on the host.
func (t *Tool) Available() bool {
	return t.path != ""
}

// Login authenticates the tool to the registry at addr.
func (t *Tool) Login(ctx context.Context, addr, username, password string) error {
	args := []string{"login", "--username", username, "--password", password}
	if t.insecureSkipTLS {
		args = append(args, "--tls-verify=false")
	}
	args = append(args, addr)
	return t.run(ctx, args...)
}

// RemoveImage removes a local copy of image. Callers treat failure as
// best-effort cleanup, not a verified precondition.
func (t *Tool) RemoveImage(ctx context.Context, image string) error {
	return t.run(ctx, "rmi", image)
}

// Pull fetches image from its public source.
func (t *Tool) Pull(ctx context.Context, image string) error {
	return t.run(ctx, "pull", image)
}

// Tag creates a local alias from src to dst.
func (t *Tool) Tag(ctx context.Context, src, dst string) error {
	return t.run(ctx, "tag", src, dst)
}

// Push uploads ref to its registry.
func (t *Tool) Push(ctx context.Context, ref string) error {
	args := []string{"push"}
	if t.insecureSkipTLS {
		args = append(args, "--tls-verify=false")
	}
	args = append(args, ref)
	return t.run(ctx, args...)
}

func (t *Tool) run(ctx context.Context, args ...string) error {
	if !t.Available() {
		return fmt.Errorf("%s is not available", t.Name)
	}

	logger.Debug().Str("tool", t.Name).Strs("args", args).Msg("running client command")

	cmd := exec.CommandContext(ctx, t.path, args...)
	cmd.Stdout = t.stdout
	cmd.Stderr = t.stderr
	cmd.Env = append(os.Environ(), t.env...)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", t.Name, args[0], err)
	}
	return nil
}
