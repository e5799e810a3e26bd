package cli

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/finance/chart"
	"github.com/robinvdvleuten/finance/ledger"
	"github.com/robinvdvleuten/finance/output"
	"github.com/robinvdvleuten/finance/prompt"
	"github.com/robinvdvleuten/finance/report"
)

// Action is a menu entry.
type Action string

const (
	ActionAddIncome  Action = "1"
	ActionAddExpense Action = "2"
	ActionReport     Action = "3"
	ActionPlot       Action = "4"
	ActionExit       Action = "5"
)

var menuChoices = []prompt.Choice{
	{Key: string(ActionAddIncome), Label: "Add Income"},
	{Key: string(ActionAddExpense), Label: "Add Expense"},
	{Key: string(ActionReport), Label: "View Report"},
	{Key: string(ActionPlot), Label: "Plot Expense Data"},
	{Key: string(ActionExit), Label: "Exit"},
}

const (
	welcomeMessage = `Welcome to the Personal Finance Tracker!
You can add income, record expenses, and view your savings.
Select an option from the menu below to get started.`

	farewellMessage = "Thank you for using the Personal Finance Tracker!"

	noChartData = "No expense data available to plot."
)

// Session is one run of the interactive menu over a ledger.
type Session struct {
	Ledger   *ledger.Ledger
	Prompter prompt.Prompter
	Out      io.Writer
	Chart    chart.Renderer
	Currency string

	handlers map[Action]func(ctx context.Context) error
}

// NewSession creates a session printing to out.
func NewSession(l *ledger.Ledger, p prompt.Prompter, out io.Writer, currency string) *Session {
	s := &Session{
		Ledger:   l,
		Prompter: p,
		Out:      out,
		Currency: currency,
		Chart: chart.NewPie(
			chart.WithCurrency(currency),
			chart.WithStyles(output.NewStyles(out)),
		),
	}
	s.handlers = map[Action]func(ctx context.Context) error{
		ActionAddIncome:  s.addIncome,
		ActionAddExpense: s.addExpense,
		ActionReport:     s.viewReport,
		ActionPlot:       s.plot,
	}
	return s
}

// Run shows the menu until the user picks Exit, which returns nil. Any
// other way out, such as the end of input or an interrupt, returns the
// error that ended the session. Saving is left to the caller.
func (s *Session) Run(ctx context.Context) error {
	for {
		_, _ = fmt.Fprintln(s.Out, "\n--- Main Menu ---")

		choice, err := s.Prompter.ReadChoice(ctx, "Choose an option: ", menuChoices)
		if err != nil {
			return err
		}

		action := Action(choice)
		if action == ActionExit {
			_, _ = fmt.Fprintln(s.Out, farewellMessage)
			return nil
		}

		if err := s.handlers[action](ctx); err != nil {
			return err
		}
	}
}

func (s *Session) addIncome(ctx context.Context) error {
	amount, err := s.Prompter.ReadAmount(ctx, "Enter income amount: ")
	if err != nil {
		return err
	}
	if err := s.Ledger.AddIncome(amount); err != nil {
		return err
	}
	printSuccess(s.Out, fmt.Sprintf("Income added: %s", ledger.FormatAmount(s.Currency, amount)))
	return nil
}

func (s *Session) addExpense(ctx context.Context) error {
	txn, err := prompt.ReadTransaction(ctx, s.Prompter)
	if err != nil {
		return err
	}
	if err := s.Ledger.Record(txn); err != nil {
		return err
	}
	printSuccess(s.Out, fmt.Sprintf("Expense added: %s under category %s",
		ledger.FormatAmount(s.Currency, txn.Amount), txn.Category))
	return nil
}

func (s *Session) viewReport(ctx context.Context) error {
	return report.Display(s.Out, s.Ledger.Snapshot(), report.WithCurrency(s.Currency))
}

func (s *Session) plot(ctx context.Context) error {
	err := chart.Plot(s.Out, s.Chart, s.Ledger.Categories())
	if stdErrors.Is(err, chart.ErrNoData) {
		printInfof(s.Out, noChartData)
		return nil
	}
	return err
}

// MenuCmd runs the interactive menu.
type MenuCmd struct{}

func (cmd *MenuCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, done := globals.runContext(ctx, "menu")
	defer done()

	p := prompt.New(os.Stdin, ctx.Stdout)
	return runMenu(runCtx, globals, p, ctx.Stdout, ctx.Stderr)
}

// runMenu loads the ledger, runs a session and saves the ledger on every
// way out of the session: Exit, end of input, interrupt or panic.
func runMenu(ctx context.Context, globals *Globals, p prompt.Prompter, stdout, stderr io.Writer) (err error) {
	st := globals.openStore()

	l, err := st.Load(ctx)
	if err != nil {
		renderError(stderr, err)
		_, _ = fmt.Fprintln(stderr)
		printError(stderr, "load failed")
		return NewCommandError(1)
	}

	_, _ = fmt.Fprintln(stdout, welcomeMessage)

	saved := false
	save := func() error {
		saved = true
		// The run context may already be cancelled by a signal, saving must
		// still happen.
		return st.Save(context.WithoutCancel(ctx), l)
	}
	defer func() {
		if r := recover(); r != nil {
			if !saved {
				_ = save()
			}
			panic(r)
		}
	}()

	session := NewSession(l, p, stdout, globals.Currency)
	runErr := session.Run(ctx)

	if err := save(); err != nil {
		printError(stderr, fmt.Sprintf("failed to save data: %v", err))
		return NewCommandError(1)
	}

	switch {
	case runErr == nil:
		return nil
	case stdErrors.Is(runErr, io.EOF):
		printWarning(stderr, fmt.Sprintf("Input ended before Exit was chosen, data saved to %s", output.NewStyles(stderr).FilePath(st.Path)))
		return NewCommandError(1)
	case stdErrors.Is(runErr, prompt.ErrAborted), stdErrors.Is(runErr, context.Canceled):
		printWarning(stderr, fmt.Sprintf("Interrupted, data saved to %s", output.NewStyles(stderr).FilePath(st.Path)))
		return NewCommandError(1)
	default:
		return runErr
	}
}
