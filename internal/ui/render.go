// Package ui renders qc's terminal output.
package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qc/internal/credentials"
	"qc/internal/models"
)

var (
	green = lipgloss.AdaptiveColor{Light: "28", Dark: "78"}
	amber = lipgloss.AdaptiveColor{Light: "130", Dark: "220"}
	red   = lipgloss.AdaptiveColor{Light: "160", Dark: "210"}
	slate = lipgloss.AdaptiveColor{Light: "240", Dark: "248"}
)

var (
	Spinner = lipgloss.NewStyle().Foreground(green)
	Muted   = lipgloss.NewStyle().Foreground(slate).Italic(true)
	Hint    = lipgloss.NewStyle().Foreground(slate).PaddingLeft(2)
	Warn    = lipgloss.NewStyle().Foreground(amber).Bold(true)

	outcome = lipgloss.NewStyle().Foreground(green).Bold(true)
	failure = lipgloss.NewStyle().Foreground(red).Bold(true)
)

// Outcome renders a confirmation message.
func Outcome(msg string) string {
	return outcome.Render("✓ " + msg)
}

// Failure renders err with a hint on how to fix it when one is known.
func Failure(err error) string {
	var b strings.Builder
	b.WriteString(failure.Render("Error: " + err.Error()))
	if hint := hintFor(err); hint != "" {
		b.WriteString("\n")
		b.WriteString(Hint.Render(hint))
	}
	return b.String()
}

func hintFor(err error) string {
	var e *models.Error
	if !errors.As(err, &e) {
		return ""
	}
	switch e.Kind {
	case models.KindPasswordNotSet:
		return "Set it with: qc password <password>  (or run qc setup)"
	case models.KindNetworkNotSet:
		return "Set it with: qc network <name>  (or run qc setup)"
	case models.KindStorage:
		if errors.Is(err, credentials.ErrReadOnly) {
			return "The env backend is read-only. Export QC_PASSWORD and QC_NETWORK, or set backend: keyring in the config."
		}
		return "The system keychain could not be used. Unlock it, allow access when prompted, and retry."
	case models.KindAutomation:
		if e.Failure != nil && e.Failure.Code == -1743 {
			return "Allow your terminal to control System Events in System Settings > Privacy & Security > Automation."
		}
		if e.Failure != nil && e.Failure.Code == -25211 {
			return "Allow your terminal in System Settings > Privacy & Security > Accessibility."
		}
	case models.KindCouldNotBuildScript:
		return "The stored password or network contains characters that cannot be typed. Update it and retry."
	}
	return ""
}
