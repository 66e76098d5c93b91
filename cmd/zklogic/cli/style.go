// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme is the color palette for terminal output. Colors are lipgloss
// ANSI 256-color codes.
type Theme struct {
	OK       lipgloss.Color
	Mismatch lipgloss.Color
	Faint    lipgloss.Color
}

// DefaultTheme targets 256-color terminals with a dark background.
var DefaultTheme = Theme{
	OK:       lipgloss.Color("114"), // green
	Mismatch: lipgloss.Color("196"), // red
	Faint:    lipgloss.Color("245"), // gray
}

// Styler decorates output bound for a terminal. A nil *Styler is valid
// and passes text through unchanged, which is what every non-terminal
// writer gets.
type Styler struct {
	renderer *lipgloss.Renderer
	theme    Theme
}

// NewStyler returns a Styler that renders for w with a forced ANSI256
// profile. lipgloss would otherwise re-detect the profile from w and
// drop all color for anything that is not a TTY.
func NewStyler(w io.Writer) *Styler {
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)
	return &Styler{renderer: renderer, theme: DefaultTheme}
}

// Verdict returns "ok" or "mismatch", colored when styling is on.
func (s *Styler) Verdict(ok bool) string {
	text := "ok"
	if !ok {
		text = "mismatch"
	}
	if s == nil {
		return text
	}
	color := s.theme.OK
	if !ok {
		color = s.theme.Mismatch
	}
	return s.renderer.NewStyle().Foreground(color).Bold(true).Render(text)
}

// Faint dims labels in text output.
func (s *Styler) Faint(text string) string {
	if s == nil {
		return text
	}
	return s.renderer.NewStyle().Foreground(s.theme.Faint).Render(text)
}

// WriteJSON writes already-encoded JSON to w, syntax highlighted when
// styling is on. A highlighting failure falls back to the plain bytes.
func (s *Styler) WriteJSON(w io.Writer, data []byte) error {
	if s != nil {
		var buffer strings.Builder
		if err := quick.Highlight(&buffer, string(data), "json", "terminal256", "monokai"); err == nil {
			_, err := io.WriteString(w, buffer.String())
			return err
		}
	}
	_, err := w.Write(data)
	return err
}
