// Package pretty provides Lipgloss-based styled output for the CLI.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the renderers used by CLI output.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Border lipgloss.Style

	Kind  lipgloss.Style
	Range lipgloss.Style
	Text  lipgloss.Style
	Path  lipgloss.Style
	Value lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when colorEnabled is
// false.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			Title: plain, Header: plain, Border: plain,
			Kind: plain, Range: plain, Text: plain, Path: plain, Value: plain,
			Success: plain, Error: plain,
			Dim: plain, Bold: plain,
		}
	}

	return &Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Kind:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Range: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Text:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Path:  lipgloss.NewStyle().Bold(true),
		Value: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// IsColorEnabled decides whether to color output written to writer.
// Mode is "always", "never" or "auto" (the default). Auto enables color
// for terminals unless NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
