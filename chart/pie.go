package chart

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/finance/ledger"
	"github.com/robinvdvleuten/finance/output"
)

// Title is printed above every chart.
const Title = "Expense Distribution by Category"

const (
	defaultWidth = 30
	barCell      = "█"
)

// Pie renders category shares as labelled horizontal bars, largest share first.
//
//	Expense Distribution by Category
//
//	Food       ███████████████████████        $200.00  76.9%
//	Transport  ███████                         $60.00  23.1%
type Pie struct {
	// Width is the number of cells a 100% share occupies.
	Width int
	// Currency is the prefix put before amounts.
	Currency string
	// Styles colours the output, nil for plain text.
	Styles *output.Styles
}

// Option configures a Pie.
type Option func(*Pie)

// WithWidth sets the width of a full bar.
func WithWidth(width int) Option {
	return func(p *Pie) {
		if width > 0 {
			p.Width = width
		}
	}
}

// WithCurrency sets the currency prefix.
func WithCurrency(prefix string) Option {
	return func(p *Pie) {
		p.Currency = prefix
	}
}

// WithStyles enables coloured output.
func WithStyles(styles *output.Styles) Option {
	return func(p *Pie) {
		p.Styles = styles
	}
}

// NewPie creates a Pie renderer.
func NewPie(opts ...Option) *Pie {
	p := &Pie{
		Width:    defaultWidth,
		Currency: "$",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Slice is one category of the chart.
type Slice struct {
	Label   string
	Amount  decimal.Decimal
	Percent decimal.Decimal
}

// Slices computes the share of every category, largest first and by name
// for equal amounts. Percentages are rounded to one decimal.
func Slices(totals map[string]decimal.Decimal) []Slice {
	total := sum(totals)
	names := maps.Keys(totals)
	slices.SortFunc(names, func(a, b string) int {
		if c := totals[b].Cmp(totals[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	result := make([]Slice, 0, len(names))
	for _, name := range names {
		percent := decimal.Zero
		if !total.IsZero() {
			percent = totals[name].Mul(decimal.NewFromInt(100)).Div(total).Round(1)
		}
		result = append(result, Slice{Label: name, Amount: totals[name], Percent: percent})
	}
	return result
}

// Render implements Renderer.
func (p *Pie) Render(w io.Writer, totals map[string]decimal.Decimal) error {
	parts := Slices(totals)

	labelWidth := 0
	amountWidth := 0
	amounts := make([]string, len(parts))
	for i, part := range parts {
		labelWidth = max(labelWidth, runewidth.StringWidth(part.Label))
		amounts[i] = ledger.FormatAmount(p.Currency, part.Amount)
		amountWidth = max(amountWidth, runewidth.StringWidth(amounts[i]))
	}

	var buf strings.Builder
	buf.WriteString(p.heading(Title))
	buf.WriteString("\n\n")

	for i, part := range parts {
		cells := int(part.Percent.Mul(decimal.NewFromInt(int64(p.Width))).Div(decimal.NewFromInt(100)).Round(0).IntPart())
		if cells == 0 && part.Amount.IsPositive() {
			cells = 1
		}
		bar := strings.Repeat(barCell, cells) + strings.Repeat(" ", p.Width-cells)

		label := runewidth.FillRight(part.Label, labelWidth)
		amount := runewidth.FillLeft(amounts[i], amountWidth)
		percent := fmt.Sprintf("%5s%%", part.Percent.StringFixed(1))

		buf.WriteString(p.category(label))
		buf.WriteString("  ")
		buf.WriteString(p.bar(bar))
		buf.WriteString("  ")
		buf.WriteString(amount)
		buf.WriteString("  ")
		buf.WriteString(percent)
		buf.WriteByte('\n')
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

func (p *Pie) heading(text string) string {
	if p.Styles == nil {
		return text
	}
	return p.Styles.Heading(text)
}

func (p *Pie) category(text string) string {
	if p.Styles == nil {
		return text
	}
	return p.Styles.Category(text)
}

func (p *Pie) bar(text string) string {
	if p.Styles == nil {
		return text
	}
	return p.Styles.Amount(text)
}
