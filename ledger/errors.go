package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCategory is returned when an expense is recorded without a category.
var ErrEmptyCategory = errors.New("category must not be empty")

// InvalidAmountError is returned when input does not describe a usable amount
type InvalidAmountError struct {
	Input  string
	Reason string
	Err    error
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount %q: %s", e.Input, e.Reason)
}

func (e *InvalidAmountError) Unwrap() error {
	return e.Err
}

// InconsistentSnapshotError is returned when a snapshot violates the ledger
// invariants and cannot be repaired. Problems lists every violation found.
type InconsistentSnapshotError struct {
	Problems []string
}

func (e *InconsistentSnapshotError) Error() string {
	if len(e.Problems) == 1 {
		return "inconsistent ledger data: " + e.Problems[0]
	}
	return fmt.Sprintf("inconsistent ledger data (%d problems): %s",
		len(e.Problems), strings.Join(e.Problems, "; "))
}
