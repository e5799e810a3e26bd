package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finance/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func scenario(t *testing.T) *ledger.Ledger {
	t.Helper()
	l := ledger.New()
	assert.NoError(t, l.AddIncome(dec("1000.00")))
	assert.NoError(t, l.AddExpense(dec("150.25"), "Food"))
	assert.NoError(t, l.AddExpense(dec("49.75"), "Food"))
	assert.NoError(t, l.AddExpense(dec("60.00"), "Transport"))
	return l
}

func TestDisplayScenario(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Display(&buf, scenario(t).Snapshot()))

	out := buf.String()
	assert.Contains(t, out, Heading)
	assert.Contains(t, out, "Total Income: $1000.00\n")
	assert.Contains(t, out, "Total Expenses: $260.00\n")
	assert.Contains(t, out, "Total Savings: $740.00\n")
	assert.Contains(t, out, "Expenses by Category:")
	assert.Contains(t, out, "$200.00")
	assert.Contains(t, out, "$60.00")
	assert.Contains(t, out, "76.9%")
	assert.Contains(t, out, "23.1%")

	// Categories are listed by name.
	assert.True(t, strings.Index(out, "Food") < strings.Index(out, "Transport"))
}

func TestDisplayEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Display(&buf, ledger.New().Snapshot()))

	out := buf.String()
	assert.Contains(t, out, "Total Income: $0.00")
	assert.Contains(t, out, "Total Expenses: $0.00")
	assert.Contains(t, out, "Total Savings: $0.00")
	assert.Contains(t, out, "No expenses recorded.")
}

func TestDisplayNegativeSavings(t *testing.T) {
	l := ledger.New()
	assert.NoError(t, l.AddIncome(dec("10")))
	assert.NoError(t, l.AddExpense(dec("25.5"), "Rent"))

	var buf bytes.Buffer
	assert.NoError(t, Display(&buf, l.Snapshot()))
	assert.Contains(t, buf.String(), "Total Savings: -$15.50")
}

func TestDisplayCurrency(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Display(&buf, scenario(t).Snapshot(), WithCurrency("€")))

	assert.Contains(t, buf.String(), "Total Income: €1000.00")
	assert.Contains(t, buf.String(), "€200.00")
}

func TestDisplayIsStable(t *testing.T) {
	l := scenario(t)
	assert.NoError(t, l.AddExpense(dec("5"), "Books"))
	assert.NoError(t, l.AddExpense(dec("5"), "Utilities"))

	var first bytes.Buffer
	assert.NoError(t, Display(&first, l.Snapshot()))
	for i := 0; i < 10; i++ {
		var again bytes.Buffer
		assert.NoError(t, Display(&again, l.Snapshot()))
		assert.Equal(t, first.String(), again.String())
	}
}

func TestShare(t *testing.T) {
	assert.Equal(t, "50.0%", share(dec("1"), dec("2")))
	assert.Equal(t, "33.3%", share(dec("1"), dec("3")))
	assert.Equal(t, "-", share(dec("1"), decimal.Zero))
}
