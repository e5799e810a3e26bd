package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finance/ledger"
)

// Amount is a positive money amount given on the command line.
type Amount struct {
	Value decimal.Decimal
}

// Decode implements kong.MapperValue.
func (a *Amount) Decode(ctx *kong.DecodeContext) error {
	var raw string
	if err := ctx.Scan.PopValueInto("amount", &raw); err != nil {
		return err
	}

	value, err := ledger.ParseAmount(raw)
	if err != nil {
		return err
	}
	a.Value = value

	return nil
}

// AddCmd records a single transaction and saves the ledger.
type AddCmd struct {
	Income  AddIncomeCmd  `cmd:"" help:"Add income."`
	Expense AddExpenseCmd `cmd:"" help:"Add an expense under a category."`
}

type AddIncomeCmd struct {
	Amount Amount `arg:"" help:"Income amount, e.g. 1000 or 12.50."`
}

func (cmd *AddIncomeCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, done := globals.runContext(ctx, "add income")
	defer done()

	return updateLedger(runCtx, globals, ctx.Stdout, ctx.Stderr, func(l *ledger.Ledger) (string, error) {
		if err := l.AddIncome(cmd.Amount.Value); err != nil {
			return "", err
		}
		return fmt.Sprintf("Income added: %s", ledger.FormatAmount(globals.Currency, cmd.Amount.Value)), nil
	})
}

type AddExpenseCmd struct {
	Amount      Amount `arg:"" help:"Expense amount, e.g. 49.75."`
	Category    string `arg:"" help:"Expense category, e.g. Food."`
	Description string `help:"Free text describing the expense." short:"d"`
}

func (cmd *AddExpenseCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, done := globals.runContext(ctx, "add expense")
	defer done()

	txn := ledger.Transaction{
		Description: cmd.Description,
		Amount:      cmd.Amount.Value,
		Category:    strings.TrimSpace(cmd.Category),
	}

	return updateLedger(runCtx, globals, ctx.Stdout, ctx.Stderr, func(l *ledger.Ledger) (string, error) {
		if err := l.Record(txn); err != nil {
			return "", err
		}
		category, _ := l.Category(txn.Category)
		return fmt.Sprintf("Expense added: %s under category %s (total %s)",
			ledger.FormatAmount(globals.Currency, txn.Amount),
			txn.Category,
			ledger.FormatAmount(globals.Currency, category),
		), nil
	})
}

// updateLedger loads the ledger, applies fn and saves the result. Nothing
// is written when fn fails.
func updateLedger(ctx context.Context, globals *Globals, stdout, stderr io.Writer, fn func(*ledger.Ledger) (string, error)) error {
	st := globals.openStore()

	l, err := st.Load(ctx)
	if err != nil {
		renderError(stderr, err)
		return NewCommandError(1)
	}

	message, err := fn(l)
	if err != nil {
		printError(stderr, err.Error())
		return NewCommandError(1)
	}

	if err := st.Save(ctx, l); err != nil {
		printError(stderr, fmt.Sprintf("failed to save data: %v", err))
		return NewCommandError(1)
	}

	printSuccess(stdout, message)
	return nil
}
