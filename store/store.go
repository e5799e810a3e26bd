// Package store persists a ledger to a single JSON document on disk and
// restores it on the next run.
//
// The document holds only aggregates:
//
//	{
//	  "income": 1000,
//	  "expenses": 260,
//	  "savings": 740,
//	  "categories": {"Food": 200, "Transport": 60}
//	}
//
// Loading a missing file is not an error: it is treated as a first run and
// yields an empty ledger. A file that cannot be read or decoded fails fast
// with a *CorruptFileError so that it is never silently overwritten.
//
// Example usage:
//
//	s := store.New(store.WithPath("finance_data.json"))
//	l, err := s.Load(ctx)
//	if err != nil {
//	    return err
//	}
//	defer s.Save(ctx, l)
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finance/ledger"
	"github.com/robinvdvleuten/finance/logger"
	"github.com/robinvdvleuten/finance/telemetry"
)

// DefaultPath is the file used when no path is configured.
const DefaultPath = "finance_data.json"

// Store reads and writes the ledger document.
//
// Configure the store using functional options passed to New:
//
//	s := New(WithPath("/tmp/ledger.json"))
type Store struct {
	// Path is the location of the JSON document.
	Path string
}

// Option configures a Store.
type Option func(*Store)

// WithPath sets the document location. An empty path keeps DefaultPath.
func WithPath(path string) Option {
	return func(s *Store) {
		if path != "" {
			s.Path = path
		}
	}
}

// New creates a Store with the given options.
func New(opts ...Option) *Store {
	s := &Store{
		Path: DefaultPath,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// document is the on-disk shape. Numbers are kept as json.Number so amounts
// round-trip with full decimal precision.
type document struct {
	Income     json.Number            `json:"income"`
	Expenses   json.Number            `json:"expenses"`
	Savings    json.Number            `json:"savings"`
	Categories map[string]json.Number `json:"categories"`
}

// Exists reports whether the document is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Load reads the document and rebuilds the ledger from it.
func (s *Store) Load(ctx context.Context) (*ledger.Ledger, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("store.load %s", filepath.Base(s.Path)))
	defer timer.End()

	log := logger.FromContext(ctx)

	snapshot, err := s.ReadSnapshot(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Str("path", s.Path).Msg("No saved data found, starting fresh")
		return ledger.New(), nil
	}
	if err != nil {
		return nil, err
	}

	l, repairs, err := ledger.FromSnapshot(snapshot)
	if err != nil {
		return nil, &CorruptFileError{Path: s.Path, Err: err}
	}
	if repairs.Repaired() {
		log.Warn().
			Str("path", s.Path).
			Str("stored", repairs.StoredSavings.String()).
			Str("derived", l.Savings().String()).
			Msg("Stored savings did not match income minus expenses, using derived value")
	}

	log.Debug().
		Str("path", s.Path).
		Int("categories", len(snapshot.Categories)).
		Msg("Loaded saved data")

	return l, nil
}

// ReadSnapshot decodes the document without validating it against the
// ledger invariants. A missing file is returned as an error wrapping
// fs.ErrNotExist.
func (s *Store) ReadSnapshot(ctx context.Context) (ledger.Snapshot, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ledger.Snapshot{}, err
		}
		return ledger.Snapshot{}, &CorruptFileError{Path: s.Path, Err: err}
	}
	defer func() { _ = f.Close() }()

	snapshot, err := decode(f)
	if err != nil {
		return ledger.Snapshot{}, &CorruptFileError{Path: s.Path, Err: err}
	}

	return snapshot, nil
}

// Save writes the ledger to disk, replacing any previous document.
// The document is written to a temporary file first and renamed into place.
func (s *Store) Save(ctx context.Context, l *ledger.Ledger) error {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("store.save %s", filepath.Base(s.Path)))
	defer timer.End()

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	tmp := s.Path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}

	if err := encode(f, l.Snapshot()); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, s.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", s.Path, err)
	}

	logger.FromContext(ctx).Debug().Str("path", s.Path).Msg("Saved data")

	return nil
}

func encode(w io.Writer, snapshot ledger.Snapshot) error {
	doc := document{
		Income:     json.Number(snapshot.Income.String()),
		Expenses:   json.Number(snapshot.Expenses.String()),
		Savings:    json.Number(snapshot.Savings.String()),
		Categories: make(map[string]json.Number, len(snapshot.Categories)),
	}
	for name, amount := range snapshot.Categories {
		doc.Categories[name] = json.Number(amount.String())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func decode(r io.Reader) (ledger.Snapshot, error) {
	var doc document

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return ledger.Snapshot{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ledger.Snapshot{}, errors.New("invalid JSON: unexpected data after document")
	}

	var snapshot ledger.Snapshot
	var err error

	if snapshot.Income, err = parseNumber("income", doc.Income); err != nil {
		return ledger.Snapshot{}, err
	}
	if snapshot.Expenses, err = parseNumber("expenses", doc.Expenses); err != nil {
		return ledger.Snapshot{}, err
	}
	if snapshot.Savings, err = parseNumber("savings", doc.Savings); err != nil {
		return ledger.Snapshot{}, err
	}

	snapshot.Categories = make(map[string]decimal.Decimal, len(doc.Categories))
	for name, value := range doc.Categories {
		amount, err := parseNumber(fmt.Sprintf("categories[%q]", name), value)
		if err != nil {
			return ledger.Snapshot{}, err
		}
		snapshot.Categories[name] = amount
	}

	return snapshot, nil
}

// parseNumber converts a JSON number to a decimal. Missing fields count as zero.
func parseNumber(field string, n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("field %s: %w", field, err)
	}
	return d, nil
}
