package cli

import (
	"context"
	stdErrors "errors"
	"io"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/finance/chart"
	"github.com/robinvdvleuten/finance/output"
	"github.com/robinvdvleuten/finance/report"
)

// ReportCmd prints the financial report of the saved ledger.
type ReportCmd struct{}

func (cmd *ReportCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, done := globals.runContext(ctx, "report")
	defer done()

	return printReport(runCtx, globals, ctx.Stdout, ctx.Stderr)
}

func printReport(ctx context.Context, globals *Globals, stdout, stderr io.Writer) error {
	st := globals.openStore()

	l, err := st.Load(ctx)
	if err != nil {
		renderError(stderr, err)
		return NewCommandError(1)
	}

	if err := report.Display(stdout, l.Snapshot(), report.WithCurrency(globals.Currency)); err != nil {
		return err
	}

	if l.IsEmpty() {
		printInfof(stderr, "Nothing recorded in %s yet, use the menu or add to get started",
			output.NewStyles(stderr).FilePath(st.Path))
	}
	return nil
}

// PlotCmd charts the expense share of each category.
type PlotCmd struct {
	Width int `help:"Width of the chart bars in cells." default:"30"`
}

func (cmd *PlotCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, done := globals.runContext(ctx, "plot")
	defer done()

	return cmd.plot(runCtx, globals, ctx.Stdout, ctx.Stderr)
}

func (cmd *PlotCmd) plot(ctx context.Context, globals *Globals, stdout, stderr io.Writer) error {
	l, err := globals.openStore().Load(ctx)
	if err != nil {
		renderError(stderr, err)
		return NewCommandError(1)
	}

	pie := chart.NewPie(
		chart.WithWidth(cmd.Width),
		chart.WithCurrency(globals.Currency),
		chart.WithStyles(output.NewStyles(stdout)),
	)

	err = chart.Plot(stdout, pie, l.Categories())
	if stdErrors.Is(err, chart.ErrNoData) {
		printInfof(stdout, noChartData)
		return nil
	}
	return err
}
