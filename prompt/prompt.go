// Package prompt reads validated values from the user.
//
// Two implementations of Prompter exist: Forms draws interactive huh forms
// and is used when stdin is a terminal, Lines reads plain lines from any
// reader and is used for pipes, scripts and tests. Both keep asking until the
// input is valid, so callers never see malformed values.
package prompt

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"github.com/robinvdvleuten/finance/ledger"
)

// ErrAborted is returned when the user cancels a prompt, e.g. with Ctrl-C.
var ErrAborted = errors.New("aborted by user")

// Choice is one option of ReadChoice.
type Choice struct {
	Key   string
	Label string
}

// Prompter asks the user for input.
type Prompter interface {
	// ReadLine asks for free text. When validate is not nil the prompt is
	// repeated until validate accepts the input.
	ReadLine(ctx context.Context, prompt string, validate func(string) error) (string, error)

	// ReadAmount asks until the input parses as a positive decimal.
	ReadAmount(ctx context.Context, prompt string) (decimal.Decimal, error)

	// ReadChoice asks until the input matches the key of one of choices and
	// returns that key.
	ReadChoice(ctx context.Context, prompt string, choices []Choice) (string, error)
}

// New returns Forms when in and out are both terminals, Lines otherwise.
func New(in *os.File, out io.Writer) Prompter {
	if f, ok := out.(*os.File); ok && IsTerminal(in) && IsTerminal(f) {
		return NewForms()
	}
	return NewLines(in, out)
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ReadTransaction asks for the description, amount and category of an expense.
func ReadTransaction(ctx context.Context, p Prompter) (ledger.Transaction, error) {
	var txn ledger.Transaction
	var err error

	if txn.Description, err = p.ReadLine(ctx, "Enter the description of the transaction: ", nil); err != nil {
		return ledger.Transaction{}, err
	}
	if txn.Amount, err = p.ReadAmount(ctx, "Enter the amount: "); err != nil {
		return ledger.Transaction{}, err
	}
	if txn.Category, err = p.ReadLine(ctx, "Enter the category: ", ValidateCategory); err != nil {
		return ledger.Transaction{}, err
	}

	txn.Description = strings.TrimSpace(txn.Description)
	txn.Category = strings.TrimSpace(txn.Category)

	return txn, nil
}

// ValidateCategory rejects blank category names.
func ValidateCategory(s string) error {
	if strings.TrimSpace(s) == "" {
		return ledger.ErrEmptyCategory
	}
	return nil
}

func keys(choices []Choice) []string {
	result := make([]string, len(choices))
	for i, c := range choices {
		result[i] = c.Key
	}
	return result
}
