package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finance/ledger"
	"github.com/robinvdvleuten/finance/logger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tempStore(t *testing.T) *Store {
	t.Helper()
	return New(WithPath(filepath.Join(t.TempDir(), "finance_data.json")))
}

func TestNew(t *testing.T) {
	t.Run("default path", func(t *testing.T) {
		assert.Equal(t, DefaultPath, New().Path)
	})

	t.Run("empty path keeps default", func(t *testing.T) {
		assert.Equal(t, DefaultPath, New(WithPath("")).Path)
	})

	t.Run("custom path", func(t *testing.T) {
		assert.Equal(t, "/tmp/x.json", New(WithPath("/tmp/x.json")).Path)
	})
}

func TestLoadMissingFile(t *testing.T) {
	var buf bytes.Buffer
	ctx := logger.WithContext(context.Background(), logger.NewWithWriter(&buf, zerolog.InfoLevel))

	s := tempStore(t)
	assert.False(t, s.Exists())

	l, err := s.Load(ctx)
	assert.NoError(t, err)
	assert.True(t, l.IsEmpty())
	assert.True(t, l.Savings().IsZero())
	assert.Equal(t, 0, len(l.Categories()))
	assert.Contains(t, buf.String(), "No saved data found, starting fresh")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		build func(l *ledger.Ledger)
	}{
		{
			name:  "empty ledger",
			build: func(l *ledger.Ledger) {},
		},
		{
			name: "scenario",
			build: func(l *ledger.Ledger) {
				assert.NoError(t, l.AddIncome(dec("1000.00")))
				assert.NoError(t, l.AddExpense(dec("150.25"), "Food"))
				assert.NoError(t, l.AddExpense(dec("49.75"), "Food"))
				assert.NoError(t, l.AddExpense(dec("60.00"), "Transport"))
			},
		},
		{
			name: "overspent with odd precision and unicode categories",
			build: func(l *ledger.Ledger) {
				assert.NoError(t, l.AddIncome(dec("0.1")))
				assert.NoError(t, l.AddExpense(dec("0.333333333333"), "Café ☕"))
				assert.NoError(t, l.AddExpense(dec("12345678901234567890.01"), "Huis \"en\" tuin"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tempStore(t)

			original := ledger.New()
			tt.build(original)

			assert.NoError(t, s.Save(ctx, original))
			assert.True(t, s.Exists())

			loaded, err := s.Load(ctx)
			assert.NoError(t, err)
			assert.True(t, original.Snapshot().Equal(loaded.Snapshot()),
				"round trip mismatch:\n%#v\n%#v", original.Snapshot(), loaded.Snapshot())
		})
	}
}

func TestSaveWritesJSONNumbers(t *testing.T) {
	s := tempStore(t)

	l := ledger.New()
	assert.NoError(t, l.AddIncome(dec("1000")))
	assert.NoError(t, l.AddExpense(dec("260.5"), "Food"))
	assert.NoError(t, s.Save(context.Background(), l))

	raw, err := os.ReadFile(s.Path)
	assert.NoError(t, err)

	var generic map[string]any
	assert.NoError(t, json.Unmarshal(raw, &generic))
	assert.Equal(t, float64(1000), generic["income"].(float64))
	assert.Equal(t, 260.5, generic["expenses"].(float64))
	assert.Equal(t, 739.5, generic["savings"].(float64))

	categories := generic["categories"].(map[string]any)
	assert.Equal(t, 260.5, categories["Food"].(float64))
}

func TestSaveOverwritesAndCleansUp(t *testing.T) {
	ctx := context.Background()
	s := tempStore(t)

	first := ledger.New()
	assert.NoError(t, first.AddIncome(dec("1")))
	assert.NoError(t, s.Save(ctx, first))

	second := ledger.New()
	assert.NoError(t, second.AddIncome(dec("2")))
	assert.NoError(t, s.Save(ctx, second))

	loaded, err := s.Load(ctx)
	assert.NoError(t, err)
	assert.True(t, loaded.Income().Equal(dec("2")))

	_, err = os.Stat(s.Path + ".tmp")
	assert.True(t, errors.Is(err, os.ErrNotExist), "temporary file should be gone")
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	s := New(WithPath(filepath.Join(t.TempDir(), "nested", "dir", "ledger.json")))
	assert.NoError(t, s.Save(context.Background(), ledger.New()))
	assert.True(t, s.Exists())
}

func TestLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{name: "not json", content: "this is not json", errText: "invalid JSON"},
		{name: "truncated", content: `{"income": 10, "expenses"`, errText: "invalid JSON"},
		{name: "wrong type", content: `{"income": "lots"}`, errText: "invalid JSON"},
		{name: "unknown field", content: `{"income": 1, "debts": 2}`, errText: "invalid JSON"},
		{
			name:    "trailing garbage",
			content: `{"income": 10, "expenses": 0, "savings": 10, "categories": {}} this is garbage {{{`,
			errText: "unexpected data after document",
		},
		{
			name:    "second document",
			content: `{"income": 10} {"income": 20}`,
			errText: "unexpected data after document",
		},
		{
			name:    "untrimmed category",
			content: `{"income": 10, "expenses": 3, "savings": 7, "categories": {" Food": 3}}`,
			errText: "surrounding whitespace",
		},
		{
			name:    "categories do not match expenses",
			content: `{"income": 100, "expenses": 50, "savings": 50, "categories": {"Food": 10}}`,
			errText: "categories add up to 10 but expenses are 50",
		},
		{
			name:    "negative income",
			content: `{"income": -100, "expenses": 0, "savings": -100, "categories": {}}`,
			errText: "income is negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tempStore(t)
			assert.NoError(t, os.WriteFile(s.Path, []byte(tt.content), 0600))

			l, err := s.Load(context.Background())
			assert.Zero(t, l)

			var corrupt *CorruptFileError
			assert.True(t, errors.As(err, &corrupt), "expected CorruptFileError, got %v", err)
			assert.Equal(t, s.Path, corrupt.Path)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadRepairsSavings(t *testing.T) {
	var buf bytes.Buffer
	ctx := logger.WithContext(context.Background(), logger.NewWithWriter(&buf, zerolog.DebugLevel))

	s := tempStore(t)
	content := `{"income": 100, "expenses": 30, "savings": 99, "categories": {"Food": 30}}`
	assert.NoError(t, os.WriteFile(s.Path, []byte(content), 0600))

	l, err := s.Load(ctx)
	assert.NoError(t, err)
	assert.True(t, l.Savings().Equal(dec("70")))
	assert.Contains(t, buf.String(), "Stored savings did not match")
}

func TestLoadAcceptsTrailingWhitespace(t *testing.T) {
	s := tempStore(t)
	assert.NoError(t, os.WriteFile(s.Path, []byte("{\"income\": 5}\n\n  \t\n"), 0600))

	l, err := s.Load(context.Background())
	assert.NoError(t, err)
	assert.True(t, l.Income().Equal(dec("5")))
}

func TestLoadMissingFieldsDefaultToZero(t *testing.T) {
	s := tempStore(t)
	assert.NoError(t, os.WriteFile(s.Path, []byte(`{"income": 5}`), 0600))

	l, err := s.Load(context.Background())
	assert.NoError(t, err)
	assert.True(t, l.Income().Equal(dec("5")))
	assert.True(t, l.Expenses().IsZero())
}

func TestReadSnapshotDoesNotValidate(t *testing.T) {
	s := tempStore(t)
	content := `{"income": 100, "expenses": 50, "savings": 1, "categories": {"Food": 10}}`
	assert.NoError(t, os.WriteFile(s.Path, []byte(content), 0600))

	snapshot, err := s.ReadSnapshot(context.Background())
	assert.NoError(t, err)
	assert.True(t, snapshot.Expenses.Equal(dec("50")))
	assert.True(t, snapshot.Categories["Food"].Equal(dec("10")))
}

func TestCorruptFileErrorMessage(t *testing.T) {
	err := &CorruptFileError{Path: "data.json", Err: errors.New("boom")}
	assert.Equal(t, "data.json: cannot load saved data: boom", err.Error())
	assert.True(t, strings.HasPrefix(err.Error(), "data.json"))
	assert.EqualError(t, errors.Unwrap(err), "boom")
}
