// Package output provides styling helpers for terminal output.
// Colours are only emitted when the writer is a terminal that supports them,
// so output written to files, pipes and test buffers stays plain text.
package output

import (
	"io"

	"github.com/muesli/termenv"
)

// Styles provides styled output helpers for the CLI.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates a new Styles instance for the given writer.
func NewStyles(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w),
	}
}

// Heading returns a section heading (bold + underline).
func (s *Styles) Heading(text string) string {
	return s.output.String(text).
		Bold().
		Underline().
		String()
}

// Income returns a styled income figure (green).
func (s *Styles) Income(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("2")).
		String()
}

// Expense returns a styled expense figure (red).
func (s *Styles) Expense(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("1")).
		String()
}

// Savings returns a styled savings figure, green when positive or zero and
// red + bold when overspent.
func (s *Styles) Savings(text string, negative bool) string {
	if negative {
		return s.output.String(text).
			Foreground(s.output.Color("1")).
			Bold().
			String()
	}
	return s.output.String(text).
		Foreground(s.output.Color("2")).
		Bold().
		String()
}

// Category returns a styled category name (yellow).
func (s *Styles) Category(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("3")).
		String()
}

// Amount returns a styled neutral amount (magenta).
func (s *Styles) Amount(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("5")).
		String()
}

// FilePath returns a styled file path (cyan).
func (s *Styles) FilePath(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("6")).
		String()
}

// Keyword returns a styled keyword (bold).
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).
		Bold().
		String()
}

// Dim returns dimmed text (for secondary information).
func (s *Styles) Dim(text string) string {
	return s.output.String(text).
		Faint().
		String()
}

// Warning returns a styled warning (yellow + bold).
func (s *Styles) Warning(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("3")).
		Bold().
		String()
}

// Timing returns a styled duration: red for slow operations, dimmed otherwise.
func (s *Styles) Timing(text string, isSlowOperation bool) string {
	if isSlowOperation {
		return s.output.String(text).
			Foreground(s.output.Color("1")).
			String()
	}
	return s.Dim(text)
}
