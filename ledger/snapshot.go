package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
)

// Snapshot is the plain value form of a ledger, as persisted and reported.
type Snapshot struct {
	Income     decimal.Decimal
	Expenses   decimal.Decimal
	Savings    decimal.Decimal
	Categories map[string]decimal.Decimal
}

// Snapshot captures the current state of the ledger.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		Income:     l.income,
		Expenses:   l.expenses,
		Savings:    l.Savings(),
		Categories: maps.Clone(l.categories),
	}
}

// Repairs describes the corrections FromSnapshot applied to a snapshot.
type Repairs struct {
	// StoredSavings is the savings value found in the snapshot when it did
	// not match income minus expenses.
	StoredSavings *decimal.Decimal
}

// Repaired reports whether any correction was applied.
func (r Repairs) Repaired() bool {
	return r.StoredSavings != nil
}

// FromSnapshot rebuilds a ledger from a snapshot after validating it.
//
// Savings are derived, so a stored savings value that disagrees with income
// minus expenses is dropped and reported in Repairs. Negative totals, blank
// or untrimmed category names and category totals that do not add up to the
// expense total cannot be repaired and produce an *InconsistentSnapshotError.
func FromSnapshot(s Snapshot) (*Ledger, Repairs, error) {
	var repairs Repairs
	var problems []string

	if s.Income.IsNegative() {
		problems = append(problems, fmt.Sprintf("income is negative (%s)", s.Income))
	}
	if s.Expenses.IsNegative() {
		problems = append(problems, fmt.Sprintf("expenses are negative (%s)", s.Expenses))
	}

	sum := decimal.Zero
	categories := make(map[string]decimal.Decimal, len(s.Categories))
	for _, name := range sortedKeys(s.Categories) {
		amount := s.Categories[name]
		switch trimmed := strings.TrimSpace(name); {
		case trimmed == "":
			problems = append(problems, "category with empty name")
		case trimmed != name:
			problems = append(problems, fmt.Sprintf("category %q has surrounding whitespace", name))
		}
		if amount.IsNegative() {
			problems = append(problems, fmt.Sprintf("category %q is negative (%s)", name, amount))
		}
		sum = sum.Add(amount)
		categories[name] = amount
	}
	if !sum.Equal(s.Expenses) {
		problems = append(problems, fmt.Sprintf("categories add up to %s but expenses are %s", sum, s.Expenses))
	}

	if len(problems) > 0 {
		return nil, repairs, &InconsistentSnapshotError{Problems: problems}
	}

	if derived := s.Income.Sub(s.Expenses); !s.Savings.Equal(derived) {
		stored := s.Savings
		repairs.StoredSavings = &stored
	}

	return &Ledger{
		income:     s.Income,
		expenses:   s.Expenses,
		categories: categories,
	}, repairs, nil
}

// Equal reports whether two snapshots hold the same numbers, regardless of
// category order or decimal exponent.
func (s Snapshot) Equal(other Snapshot) bool {
	if !s.Income.Equal(other.Income) || !s.Expenses.Equal(other.Expenses) || !s.Savings.Equal(other.Savings) {
		return false
	}
	if len(s.Categories) != len(other.Categories) {
		return false
	}
	for name, amount := range s.Categories {
		o, ok := other.Categories[name]
		if !ok || !amount.Equal(o) {
			return false
		}
	}
	return true
}
