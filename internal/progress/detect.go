package progress

import (
	"os"

	"golang.org/x/term"
)

// Mode represents whether progress is drawn.
type Mode int

const (
	// ModeQuiet is used for CI/CD pipelines, scripts and redirected output.
	ModeQuiet Mode = iota
	// ModeBar is used when a human is watching stderr.
	ModeBar
)

// DetectMode determines whether progress bars should be drawn.
//
// Returns ModeQuiet if:
//   - SRAQS_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - stderr is not a terminal
//
// Returns ModeBar otherwise.
func DetectMode() Mode {
	if os.Getenv("SRAQS_NON_INTERACTIVE") == "1" {
		return ModeQuiet
	}
	if os.Getenv("CI") != "" {
		return ModeQuiet
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeQuiet
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return ModeQuiet
	}
	return ModeBar
}
