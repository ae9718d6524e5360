package iostreams

import (
	"github.com/fatih/color"
)

// ColorScheme provides terminal color formatting. When colors are
// disabled, methods return the input string unmodified.
type ColorScheme struct {
	enabled bool
}

// NewColorScheme creates a new ColorScheme. If enabled is false, all
// color methods return unmodified strings.
func NewColorScheme(enabled bool) *ColorScheme {
	return &ColorScheme{enabled: enabled}
}

// Enabled returns whether colors are enabled.
func (cs *ColorScheme) Enabled() bool {
	return cs.enabled
}

func (cs *ColorScheme) render(c *color.Color, s string) string {
	if !cs.enabled {
		return s
	}
	return c.Sprint(s)
}

// Yellow returns the string in yellow (warning color).
func (cs *ColorScheme) Yellow(s string) string {
	return cs.render(color.New(color.FgYellow), s)
}

// Green returns the string in green (success color).
func (cs *ColorScheme) Green(s string) string {
	return cs.render(color.New(color.FgGreen), s)
}

// Cyan returns the string in cyan (info color).
func (cs *ColorScheme) Cyan(s string) string {
	return cs.render(color.New(color.FgCyan), s)
}

// Bold returns the string in bold.
func (cs *ColorScheme) Bold(s string) string {
	return cs.render(color.New(color.Bold), s)
}

// Muted returns the string dimmed.
func (cs *ColorScheme) Muted(s string) string {
	return cs.render(color.New(color.Faint), s)
}

// SuccessIcon returns a green check mark.
func (cs *ColorScheme) SuccessIcon() string {
	return cs.Green("✓")
}

// WarningIcon returns a yellow warning sign.
func (cs *ColorScheme) WarningIcon() string {
	return cs.Yellow("!")
}

// SkipIcon returns a muted dash.
func (cs *ColorScheme) SkipIcon() string {
	return cs.Muted("-")
}
