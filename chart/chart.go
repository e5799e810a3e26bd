// Package chart draws the share of each expense category.
//
// The drawing itself sits behind the Renderer interface so the rest of the
// program never depends on a particular charting backend. Pie is the built-in
// renderer and draws a text chart suitable for any terminal.
package chart

import (
	"errors"
	"io"

	"github.com/shopspring/decimal"
)

// ErrNoData is returned by Plot when there is nothing to draw.
var ErrNoData = errors.New("no expense data available to plot")

// Renderer draws category totals.
type Renderer interface {
	Render(w io.Writer, totals map[string]decimal.Decimal) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(w io.Writer, totals map[string]decimal.Decimal) error

// Render calls f.
func (f RendererFunc) Render(w io.Writer, totals map[string]decimal.Decimal) error {
	return f(w, totals)
}

// Plot hands totals to r. Empty totals, or totals that add up to zero,
// return ErrNoData without calling the renderer.
func Plot(w io.Writer, r Renderer, totals map[string]decimal.Decimal) error {
	if len(totals) == 0 || sum(totals).IsZero() {
		return ErrNoData
	}
	return r.Render(w, totals)
}

func sum(totals map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range totals {
		total = total.Add(amount)
	}
	return total
}
