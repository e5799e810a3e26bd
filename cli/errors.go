package cli

import (
	stdErrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/finance/ledger"
	"github.com/robinvdvleuten/finance/output"
	"github.com/robinvdvleuten/finance/store"
)

var (
	errBulletStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
)

// ErrorRenderer renders load and validation errors with terminal styling.
type ErrorRenderer struct {
	styles *output.Styles
}

// NewErrorRenderer creates a renderer colouring paths and hints with styles.
func NewErrorRenderer(styles *output.Styles) *ErrorRenderer {
	return &ErrorRenderer{styles: styles}
}

// renderError writes err to w, styled for w.
func renderError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, NewErrorRenderer(output.NewStyles(w)).Render(err))
}

// Render formats a single error. Data file problems get the offending path,
// one line per invariant violation and a hint on how to recover.
func (r *ErrorRenderer) Render(err error) string {
	var corrupt *store.CorruptFileError
	if !stdErrors.As(err, &corrupt) {
		return err.Error()
	}

	var buf strings.Builder
	buf.WriteString(errorStyle.Render("Cannot load saved data from "))
	buf.WriteString(r.styles.FilePath(corrupt.Path))
	buf.WriteString("\n\n")

	var inconsistent *ledger.InconsistentSnapshotError
	if stdErrors.As(err, &inconsistent) {
		for _, problem := range inconsistent.Problems {
			buf.WriteString("   ")
			buf.WriteString(errBulletStyle.Render("•"))
			buf.WriteString(" ")
			buf.WriteString(problem)
			buf.WriteByte('\n')
		}
	} else {
		buf.WriteString("   ")
		buf.WriteString(corrupt.Err.Error())
		buf.WriteByte('\n')
	}

	buf.WriteByte('\n')
	buf.WriteString(r.styles.Dim("The file was left untouched. Fix it by hand or move it away to start fresh."))

	return buf.String()
}
