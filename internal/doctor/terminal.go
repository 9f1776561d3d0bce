package doctor

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// MinWidth is the narrowest terminal the full layout is designed for.
// Narrower terminals get the compact layout.
const MinWidth = 80

// TerminalCheck verifies stdout is an interactive terminal and reports
// its size.
type TerminalCheck struct {
	FD int

	// Overridable for tests.
	IsTerminal func(fd int) bool
	GetSize    func(fd int) (width, height int, err error)
}

// NewTerminalCheck checks the process's stdout.
func NewTerminalCheck() *TerminalCheck {
	return &TerminalCheck{
		FD:         int(os.Stdout.Fd()),
		IsTerminal: term.IsTerminal,
		GetSize:    term.GetSize,
	}
}

func (c *TerminalCheck) Name() string     { return "terminal" }
func (c *TerminalCheck) Category() string { return CategoryTerminal }

func (c *TerminalCheck) Run() CheckResult {
	if !c.IsTerminal(c.FD) {
		return CheckResult{
			Status:     StatusFail,
			Message:    "stdout is not a terminal",
			Suggestion: "The dashboard needs an interactive terminal. Use 'sysdash snapshot' for piped output.",
		}
	}

	w, h, err := c.GetSize(c.FD)
	if err != nil {
		return CheckResult{
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Couldn't read terminal size: %v", err),
			Suggestion: "The dashboard will assume a 100 column terminal",
		}
	}

	if w < MinWidth {
		return CheckResult{
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Terminal is %dx%d", w, h),
			Suggestion: fmt.Sprintf("Widen to at least %d columns for the side-by-side layout", MinWidth),
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("Terminal is %dx%d", w, h),
	}
}

// ColorCheck reports the color profile lipgloss will render with.
type ColorCheck struct {
	Profile termenv.Profile
}

// NewColorCheck inspects the environment's color support.
func NewColorCheck() *ColorCheck {
	return &ColorCheck{Profile: termenv.EnvColorProfile()}
}

func (c *ColorCheck) Name() string     { return "color" }
func (c *ColorCheck) Category() string { return CategoryTerminal }

func (c *ColorCheck) Run() CheckResult {
	switch c.Profile {
	case termenv.TrueColor:
		return CheckResult{Status: StatusPass, Message: "True color supported"}
	case termenv.ANSI256:
		return CheckResult{Status: StatusPass, Message: "256 colors supported"}
	case termenv.ANSI:
		return CheckResult{Status: StatusPass, Message: "16 colors supported"}
	default:
		return CheckResult{
			Status:     StatusWarn,
			Message:    "No color support detected",
			Suggestion: "Gauges will render without threshold colors. Set output.color: always to force color.",
		}
	}
}

// NewTerminalChecks creates all terminal-related checks.
func NewTerminalChecks() []Check {
	return []Check{NewTerminalCheck(), NewColorCheck()}
}
