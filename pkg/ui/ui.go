// Package ui provides terminal output and interactive prompts. Styled
// output is used only when stdout is a capable terminal; pipes,
// redirects, and NO_COLOR environments get plain text.
package ui

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// UI writes user-facing messages and runs interactive prompts
type UI struct {
	interactive bool
}

// New creates a UI, detecting terminal capabilities from stdout
func New() *UI {
	return &UI{interactive: DetectInteractive(os.Stdout)}
}

// DetectInteractive reports whether output supports styled, interactive use
func DetectInteractive(output *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return false
	}

	return termenv.ColorProfile() != termenv.Ascii
}

// Interactive reports whether prompts can be shown
func (u *UI) Interactive() bool {
	return u.interactive
}

// Success prints a bold green message
func (u *UI) Success(format string, args ...interface{}) {
	u.println(successStyle, fmt.Sprintf(format, args...))
}

// Info prints an informational message
func (u *UI) Info(format string, args ...interface{}) {
	u.println(infoStyle, fmt.Sprintf(format, args...))
}

// Warn prints a warning message
func (u *UI) Warn(format string, args ...interface{}) {
	u.println(warningStyle, fmt.Sprintf(format, args...))
}

// Error prints an error message to stderr
func (u *UI) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if u.interactive {
		msg = errorStyle.Render(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}

func (u *UI) println(style lipglossStyle, msg string) {
	if u.interactive {
		msg = style.Render(msg)
	}
	fmt.Println(msg)
}

// lipglossStyle is the subset of lipgloss.Style the printers need
type lipglossStyle interface {
	Render(...string) string
}

// Select prompts the user to choose one of the given options
func (u *UI) Select(prompt string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText(prompt).
		Show()
}

// MultiSelect prompts the user to choose any number of the given options.
// Entries listed in defaults start out selected.
func (u *UI) MultiSelect(prompt string, options, defaults []string) ([]string, error) {
	return pterm.DefaultInteractiveMultiselect.
		WithOptions(options).
		WithDefaultOptions(defaults).
		WithDefaultText(prompt).
		Show()
}

// Confirm asks a yes/no question
func (u *UI) Confirm(prompt string, defaultYes bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(defaultYes).
		WithDefaultText(prompt).
		Show()
}

// Input prompts for a free-form line of text
func (u *UI) Input(prompt string) (string, error) {
	return pterm.DefaultInteractiveTextInput.
		WithDefaultText(prompt).
		Show()
}
