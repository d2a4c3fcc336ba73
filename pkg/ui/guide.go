package ui

import (
	_ "embed"

	"github.com/charmbracelet/glamour"
)

//go:embed guide.md
var presetGuide string

// PresetGuide returns the GShade preset walkthrough, rendered for the
// terminal when possible. Rendering failures fall back to the raw
// markdown so the guide is always readable.
func (u *UI) PresetGuide() string {
	if !u.interactive {
		return presetGuide
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return presetGuide
	}

	rendered, err := renderer.Render(presetGuide)
	if err != nil {
		return presetGuide
	}
	return rendered
}
