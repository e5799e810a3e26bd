// Package report renders the textual summary of a ledger.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/finance/ledger"
	"github.com/robinvdvleuten/finance/output"
)

// Heading is printed at the top of every report.
const Heading = "--- Financial Report ---"

// Options configures Display.
type Options struct {
	// Currency is the prefix put before every amount.
	Currency string
}

// Option configures Display.
type Option func(*Options)

// WithCurrency sets the currency prefix, "$" by default.
func WithCurrency(prefix string) Option {
	return func(o *Options) {
		o.Currency = prefix
	}
}

// Display writes the totals of snapshot followed by the expenses per
// category, ordered by category name.
func Display(w io.Writer, snapshot ledger.Snapshot, opts ...Option) error {
	o := Options{Currency: "$"}
	for _, opt := range opts {
		opt(&o)
	}

	styles := output.NewStyles(w)
	money := func(d decimal.Decimal) string {
		return ledger.FormatAmount(o.Currency, d)
	}

	var buf strings.Builder
	buf.WriteString("\n")
	buf.WriteString(styles.Heading(Heading))
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "Total Income: %s\n", styles.Income(money(snapshot.Income)))
	fmt.Fprintf(&buf, "Total Expenses: %s\n", styles.Expense(money(snapshot.Expenses)))
	fmt.Fprintf(&buf, "Total Savings: %s\n", styles.Savings(money(snapshot.Savings), snapshot.Savings.IsNegative()))

	buf.WriteString("\nExpenses by Category:\n")
	if len(snapshot.Categories) == 0 {
		buf.WriteString(styles.Dim("No expenses recorded."))
		buf.WriteString("\n")
	} else {
		buf.WriteString(categoryTable(w, snapshot, money))
		buf.WriteString("\n")
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

func categoryTable(w io.Writer, snapshot ledger.Snapshot, money func(decimal.Decimal) string) string {
	renderer := lipgloss.NewRenderer(w)

	names := maps.Keys(snapshot.Categories)
	slices.Sort(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		amount := snapshot.Categories[name]
		rows = append(rows, []string{name, money(amount), share(amount, snapshot.Expenses)})
	}

	headerStyle := renderer.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := renderer.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(renderer.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("Category", "Amount", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cellStyle
			if row == table.HeaderRow {
				style = headerStyle
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	return t.String()
}

// share returns amount as a percentage of total with one decimal.
func share(amount, total decimal.Decimal) string {
	if total.IsZero() {
		return "-"
	}
	return amount.Mul(decimal.NewFromInt(100)).Div(total).StringFixed(1) + "%"
}
