package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/finance/logger"
	"github.com/robinvdvleuten/finance/output"
	"github.com/robinvdvleuten/finance/store"
	"github.com/robinvdvleuten/finance/telemetry"
)

// Globals defines global flags available to all commands.
type Globals struct {
	File      string `help:"Ledger data file." default:"${default_file}" type:"path" short:"f"`
	Currency  string `help:"Currency prefix used when printing amounts." default:"$"`
	LogLevel  string `help:"Diagnostic log level." enum:"debug,info,warn,error" default:"warn"`
	Telemetry bool   `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Menu   MenuCmd   `cmd:"" default:"1" help:"Interactive menu to record income and expenses (default)."`
	Add    AddCmd    `cmd:"" help:"Record income or an expense without the menu."`
	Report ReportCmd `cmd:"" help:"Print income, expenses, savings and expenses per category."`
	Plot   PlotCmd   `cmd:"" help:"Chart the share of each expense category."`
	Watch  WatchCmd  `cmd:"" help:"Print the report again whenever the data file changes."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for inspecting the data file."`
}

// Vars returns the kong variables referenced by the command tags.
func Vars() kong.Vars {
	return kong.Vars{
		"default_file": store.DefaultPath,
	}
}

// openStore returns the store for the configured data file.
func (g *Globals) openStore() *store.Store {
	return store.New(store.WithPath(g.File))
}

// runContext prepares the context a command runs in: diagnostic logger,
// optional telemetry and cancellation on SIGINT/SIGTERM. The returned
// function must be called when the command finishes.
func (g *Globals) runContext(ctx *kong.Context, command string) (context.Context, func()) {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	level, err := logger.ParseLevel(g.LogLevel)
	if err != nil {
		level = logger.DefaultLevel
	}
	runCtx = logger.WithContext(runCtx, logger.New(ctx.Stderr, level))

	if !g.Telemetry {
		return runCtx, stop
	}

	collector := telemetry.NewTimingCollector()
	runCtx = telemetry.WithCollector(runCtx, collector)

	root := collector.Start(command)
	runCtx = telemetry.WithRootTimer(runCtx, root)

	return runCtx, func() {
		stop()
		root.End()
		_, _ = fmt.Fprintln(ctx.Stderr)
		collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
	}
}
