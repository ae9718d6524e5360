// Package iostreams provides access to standard input/output/error streams.
// It follows the GitHub CLI pattern for testable I/O.
package iostreams

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

// IOStreams provides access to standard input/output/error streams.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// isOutputTTY caches whether stdout is a terminal.
	// -1 = unchecked, 0 = false, 1 = true
	isOutputTTY int

	// colorEnabled controls color output.
	// -1 = auto (detect from TTY), 0 = disabled, 1 = enabled
	colorEnabled int
}

// NewIOStreams creates IOStreams bound to the process streams.
func NewIOStreams() *IOStreams {
	return &IOStreams{
		In:           os.Stdin,
		Out:          os.Stdout,
		ErrOut:       os.Stderr,
		isOutputTTY:  -1,
		colorEnabled: -1,
	}
}

// IsOutputTTY returns whether stdout is attached to a terminal.
func (s *IOStreams) IsOutputTTY() bool {
	if s.isOutputTTY == -1 {
		if f, ok := s.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			s.isOutputTTY = 1
		} else {
			s.isOutputTTY = 0
		}
	}
	return s.isOutputTTY == 1
}

// SetColorEnabled forces color output on or off.
func (s *IOStreams) SetColorEnabled(enabled bool) {
	if enabled {
		s.colorEnabled = 1
	} else {
		s.colorEnabled = 0
	}
}

// ColorEnabled reports whether color output is active. The automatic
// default enables color only on a TTY with NO_COLOR unset.
func (s *IOStreams) ColorEnabled() bool {
	if s.colorEnabled == -1 {
		if !s.IsOutputTTY() || os.Getenv("NO_COLOR") != "" {
			s.colorEnabled = 0
		} else {
			s.colorEnabled = 1
		}
	}
	return s.colorEnabled == 1
}

// ColorScheme returns a ColorScheme for the current color setting.
func (s *IOStreams) ColorScheme() *ColorScheme {
	return NewColorScheme(s.ColorEnabled())
}

// Test returns IOStreams backed by buffers for use in tests,
// along with the in/out/errOut buffers.
func Test() (*IOStreams, *bytes.Buffer, *bytes.Buffer, *bytes.Buffer) {
	in := &bytes.Buffer{}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &IOStreams{
		In:           in,
		Out:          out,
		ErrOut:       errOut,
		isOutputTTY:  0,
		colorEnabled: 0,
	}, in, out, errOut
}
