package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finance/ledger"
	"github.com/robinvdvleuten/finance/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testGlobals(t *testing.T) *Globals {
	t.Helper()
	return &Globals{
		File:     filepath.Join(t.TempDir(), store.DefaultPath),
		Currency: "$",
		LogLevel: "warn",
	}
}

// seed saves a ledger with the given income and expenses per category.
func seed(t *testing.T, globals *Globals, income string, expenses map[string]string) {
	t.Helper()
	l := ledger.New()
	if income != "" {
		assert.NoError(t, l.AddIncome(dec(income)))
	}
	for category, amount := range expenses {
		assert.NoError(t, l.AddExpense(dec(amount), category))
	}
	assert.NoError(t, globals.openStore().Save(context.Background(), l))
}

func loadSaved(t *testing.T, globals *Globals) *ledger.Ledger {
	t.Helper()
	l, err := globals.openStore().Load(context.Background())
	assert.NoError(t, err)
	return l
}

func writeFile(t *testing.T, globals *Globals, content string) {
	t.Helper()
	assert.NoError(t, os.WriteFile(globals.File, []byte(content), 0600))
}

func assertExitCode(t *testing.T, err error, code int) {
	t.Helper()
	var cmdErr *CommandError
	assert.True(t, errors.As(err, &cmdErr), "expected CommandError, got %v", err)
	assert.Equal(t, code, cmdErr.ExitCode())
}
