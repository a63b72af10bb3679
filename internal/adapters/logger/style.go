package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette used by the pretty handler.
var (
	colorMuted  = lipgloss.Color("#667085")
	colorDebug  = lipgloss.Color("#8B5CF6")
	colorWarn   = lipgloss.Color("#F59E0B")
	colorError  = lipgloss.Color("#D93025")
	iconWarning = "!"
	iconCross   = "✗"
)

// colorProfile honours NO_COLOR and otherwise detects the terminal.
func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

func newOutput(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(colorProfile()))
}
