package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette colors whole rows by detection status. The zero value renders
// plain text.
type Palette struct {
	enabled bool
	forbids lipgloss.Style
	unsafe  lipgloss.Style
	bold    lipgloss.Style
}

// NewPalette builds the status styles on r. A nil renderer uses the default
// one, which detects the terminal's color profile.
func NewPalette(r *lipgloss.Renderer, enabled bool) Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Palette{
		enabled: enabled,
		forbids: r.NewStyle().Foreground(lipgloss.Color("#10B981")),
		unsafe:  r.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true),
		bold:    r.NewStyle().Bold(true),
	}
}

// Colorize styles s for status. GitHub markdown output is never colored.
func (p Palette) Colorize(status DetectionStatus, format OutputFormat, s string) string {
	if !p.enabled || format == FormatGitHubMarkdown || s == "" {
		return s
	}
	switch status {
	case NoneDetectedForbidsUnsafe:
		return p.forbids.Render(s)
	case UnsafeDetected:
		return p.unsafe.Render(s)
	default:
		return s
	}
}

func (p Palette) Bold(format OutputFormat, s string) string {
	if !p.enabled || format == FormatGitHubMarkdown {
		return s
	}
	return p.bold.Render(s)
}
