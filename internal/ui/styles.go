// Package ui holds terminal styles for marc output.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	// Accent style for hashes and highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))

	// Muted style for tags and secondary info
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Struck renders completed descriptions
	Struck = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("#6C7086"))

	Bold = lipgloss.NewStyle().Bold(true)
)

const (
	SymbolDone = "✓"
	SymbolOpen = "·"
	SymbolFail = "✗"
)

var enabled = true

// Configure turns styling on or off. mode is auto, always or never; auto
// styles only when out is a terminal.
func Configure(mode string, out *os.File) {
	switch mode {
	case "always":
		enabled = true
	case "never":
		enabled = false
	default:
		enabled = out != nil && (isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()))
	}
}

func Enabled() bool {
	return enabled
}

func render(style lipgloss.Style, s string) string {
	if !enabled {
		return s
	}
	return style.Render(s)
}

func Hash(s string) string { return render(Accent, s) }
func Tag(s string) string  { return render(Muted, "["+s+"]") }
func Hint(s string) string { return render(Muted, s) }
func Title(s string) string {
	return render(Bold, s)
}

// Description renders an item description, struck through once completed.
func Description(s string, completed bool) string {
	if completed {
		return render(Struck, s)
	}
	return s
}

func Status(completed bool) string {
	if completed {
		return SymbolDone
	}
	return SymbolOpen
}
