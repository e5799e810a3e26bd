// Package ledger holds the in-memory state of a personal finance ledger: the
// running income and expense totals and the accumulated expenses per category.
//
// Savings are never stored. They are derived from income and expenses each
// time they are read, so the identity savings == income - expenses holds after
// every operation.
//
// All amounts use decimal arithmetic to avoid floating point drift when many
// small expenses are accumulated.
//
// Example usage:
//
//	l := ledger.New()
//	if err := l.AddIncome(decimal.RequireFromString("1000")); err != nil {
//	    log.Fatal(err)
//	}
//	_ = l.AddExpense(decimal.RequireFromString("150.25"), "Food")
//	fmt.Println(l.Savings()) // 849.75
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Ledger is the running financial position of a single user.
// The zero value is not usable, create one with New or FromSnapshot.
type Ledger struct {
	income     decimal.Decimal
	expenses   decimal.Decimal
	categories map[string]decimal.Decimal
}

// Transaction is a single expense as entered by the user. Only its amount and
// category survive, the ledger keeps aggregates.
type Transaction struct {
	Description string
	Amount      decimal.Decimal
	Category    string
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		income:     decimal.Zero,
		expenses:   decimal.Zero,
		categories: make(map[string]decimal.Decimal),
	}
}

// AddIncome adds amount to the income total.
func (l *Ledger) AddIncome(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	l.income = l.income.Add(amount)
	return nil
}

// AddExpense adds amount to the expense total and to the given category.
// The category is created on first use.
func (l *Ledger) AddExpense(amount decimal.Decimal, category string) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrEmptyCategory
	}

	l.expenses = l.expenses.Add(amount)
	if current, ok := l.categories[category]; ok {
		l.categories[category] = current.Add(amount)
	} else {
		l.categories[category] = amount
	}
	return nil
}

// Record books an expense transaction.
func (l *Ledger) Record(txn Transaction) error {
	return l.AddExpense(txn.Amount, txn.Category)
}

// Income returns the total income.
func (l *Ledger) Income() decimal.Decimal {
	return l.income
}

// Expenses returns the total of all expenses.
func (l *Ledger) Expenses() decimal.Decimal {
	return l.expenses
}

// Savings returns income minus expenses.
func (l *Ledger) Savings() decimal.Decimal {
	return l.income.Sub(l.expenses)
}

// Category returns the accumulated expenses for a category.
func (l *Ledger) Category(name string) (decimal.Decimal, bool) {
	amount, ok := l.categories[name]
	return amount, ok
}

// Categories returns a copy of the per-category totals.
func (l *Ledger) Categories() map[string]decimal.Decimal {
	return maps.Clone(l.categories)
}

// CategoryNames returns the category names in ascending order.
func (l *Ledger) CategoryNames() []string {
	return sortedKeys(l.categories)
}

// IsEmpty reports whether nothing has been recorded yet.
func (l *Ledger) IsEmpty() bool {
	return l.income.IsZero() && l.expenses.IsZero() && len(l.categories) == 0
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
