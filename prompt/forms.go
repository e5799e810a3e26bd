package prompt

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finance/ledger"
)

// Forms asks through interactive huh fields.
type Forms struct{}

// NewForms creates a Forms prompter.
func NewForms() *Forms {
	return &Forms{}
}

func run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).WithShowHelp(false)

	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// ReadLine implements Prompter.
func (f *Forms) ReadLine(ctx context.Context, prompt string, validate func(string) error) (string, error) {
	var value string

	input := huh.NewInput().
		Title(strings.TrimSpace(prompt)).
		Value(&value)
	if validate != nil {
		input = input.Validate(validate)
	}

	if err := run(ctx, input); err != nil {
		return "", err
	}
	return value, nil
}

// ReadAmount implements Prompter.
func (f *Forms) ReadAmount(ctx context.Context, prompt string) (decimal.Decimal, error) {
	var value string

	input := huh.NewInput().
		Title(strings.TrimSpace(prompt)).
		Placeholder("0.00").
		Value(&value).
		Validate(func(s string) error {
			_, err := ledger.ParseAmount(s)
			return err
		})

	if err := run(ctx, input); err != nil {
		return decimal.Zero, err
	}
	return ledger.ParseAmount(value)
}

// ReadChoice implements Prompter.
func (f *Forms) ReadChoice(ctx context.Context, prompt string, choices []Choice) (string, error) {
	var value string

	options := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		options[i] = huh.NewOption(c.Label, c.Key)
	}

	sel := huh.NewSelect[string]().
		Title(strings.TrimSpace(prompt)).
		Options(options...).
		Value(&value)

	if err := run(ctx, sel); err != nil {
		return "", err
	}
	return value, nil
}
