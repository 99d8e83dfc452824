package tui

import (
	"io"

	"github.com/muesli/termenv"
)

// Styles colours REPL output for the terminal behind w.
// On a non-terminal writer every method returns its input unchanged.
type Styles struct {
	out *termenv.Output
}

// NewStyles detects the colour profile of w.
func NewStyles(w io.Writer) *Styles {
	return &Styles{out: termenv.NewOutput(w)}
}

// Prompt is the input prompt.
func (s *Styles) Prompt(str string) string {
	return s.out.String(str).Foreground(s.out.Color("#a78bfa")).Bold().String()
}

// State highlights a state identifier.
func (s *Styles) State(str string) string {
	return s.out.String(str).Foreground(s.out.Color("#fbc02d")).Bold().String()
}

// Muted is for secondary information.
func (s *Styles) Muted(str string) string {
	return s.out.String(str).Faint().String()
}

// Error is for rejected commands.
func (s *Styles) Error(str string) string {
	return s.out.String(str).Foreground(s.out.Color("#fb7185")).String()
}
