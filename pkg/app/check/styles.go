package check

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/deploymenttheory/go-partcheck/pkg/analysis"
)

// Status glyphs
const (
	GlyphOK      = "✅"
	GlyphWarning = "⚠️ "
	GlyphError   = "❌"
	GlyphInfo    = "ℹ️ "
)

var (
	colorSuccess = lipgloss.Color("#8BC34A")
	colorWarning = lipgloss.Color("#FFC107")
	colorError   = lipgloss.Color("#e53935")
	colorInfo    = lipgloss.Color("#2196F3")
)

// styles colours status lines for a given writer
type styles struct {
	title lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
	info  lipgloss.Style
}

func newStyles(w io.Writer, noColor bool) styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		plain := r.NewStyle()
		return styles{title: plain, ok: plain, warn: plain, fail: plain, info: plain}
	}
	return styles{
		title: r.NewStyle().Bold(true),
		ok:    r.NewStyle().Foreground(colorSuccess),
		warn:  r.NewStyle().Foreground(colorWarning),
		fail:  r.NewStyle().Foreground(colorError),
		info:  r.NewStyle().Foreground(colorInfo),
	}
}

// status renders a message prefixed with the glyph for its severity
func (s styles) status(sev analysis.Severity, message string) string {
	switch sev {
	case analysis.SeverityOK:
		return s.ok.Render(GlyphOK + " " + message)
	case analysis.SeverityWarning:
		return s.warn.Render(GlyphWarning + " " + message)
	case analysis.SeverityError:
		return s.fail.Render(GlyphError + " " + message)
	default:
		return s.info.Render(GlyphInfo + " " + message)
	}
}
