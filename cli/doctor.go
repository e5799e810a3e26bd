package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/finance/ledger"
	"github.com/robinvdvleuten/finance/output"
	"github.com/robinvdvleuten/finance/store"
)

// DoctorCmd provides doctor utilities for inspecting the data file.
type DoctorCmd struct {
	Check CheckCmd `cmd:"" help:"Validate the data file without changing it."`
	Dump  DumpCmd  `cmd:"" help:"Print the raw decoded contents of the data file."`
}

// CheckCmd validates the data file.
type CheckCmd struct{}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, done := globals.runContext(ctx, "doctor check")
	defer done()

	return checkFile(runCtx, globals, ctx.Stdout, ctx.Stderr)
}

func checkFile(ctx context.Context, globals *Globals, stdout, stderr io.Writer) error {
	st := globals.openStore()
	styles := output.NewStyles(stdout)

	if !st.Exists() {
		printInfof(stdout, "No data file at %s, the next run starts fresh", styles.FilePath(st.Path))
		return nil
	}

	snapshot, err := st.ReadSnapshot(ctx)
	if err != nil {
		renderError(stderr, err)
		return NewCommandError(1)
	}

	l, repairs, err := ledger.FromSnapshot(snapshot)
	if err != nil {
		renderError(stderr, &store.CorruptFileError{Path: st.Path, Err: err})
		return NewCommandError(1)
	}

	if repairs.Repaired() {
		printWarning(stdout, styles.Warning(fmt.Sprintf("Stored savings %s do not match income minus expenses %s, the next save fixes this",
			ledger.FormatAmount(globals.Currency, *repairs.StoredSavings),
			ledger.FormatAmount(globals.Currency, l.Savings()),
		)))
	}

	printSuccess(stdout, fmt.Sprintf("Check passed: %s", styles.FilePath(st.Path)))
	return nil
}

// DumpCmd prints the decoded data file.
type DumpCmd struct{}

func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, done := globals.runContext(ctx, "doctor dump")
	defer done()

	return dumpFile(runCtx, globals, ctx.Stdout, ctx.Stderr)
}

// dumpView holds amounts as exact decimal strings so the dump shows what
// is stored rather than the internals of the decimal type.
type dumpView struct {
	Path       string
	Income     string
	Expenses   string
	Savings    string
	Categories map[string]string
}

func dumpFile(ctx context.Context, globals *Globals, stdout, stderr io.Writer) error {
	st := globals.openStore()

	if !st.Exists() {
		printError(stderr, fmt.Sprintf("no data file at %s", st.Path))
		return NewCommandError(1)
	}

	snapshot, err := st.ReadSnapshot(ctx)
	if err != nil {
		renderError(stderr, err)
		return NewCommandError(1)
	}

	view := dumpView{
		Path:       st.Path,
		Income:     snapshot.Income.String(),
		Expenses:   snapshot.Expenses.String(),
		Savings:    snapshot.Savings.String(),
		Categories: make(map[string]string, len(snapshot.Categories)),
	}
	for name, amount := range snapshot.Categories {
		view.Categories[name] = amount.String()
	}

	_, err = fmt.Fprintln(stdout, repr.String(view, repr.Indent("  ")))
	return err
}
