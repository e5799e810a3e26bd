package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/finance/ledger"
)

// Lines reads one answer per line.
//
// Input is read on a separate goroutine so that a blocked read can be
// abandoned when ctx is cancelled, for example on SIGINT.
type Lines struct {
	in  io.Reader
	out io.Writer

	once  sync.Once
	lines chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// NewLines creates a Lines prompter reading from in and writing prompts to out.
func NewLines(in io.Reader, out io.Writer) *Lines {
	return &Lines{
		in:    in,
		out:   out,
		lines: make(chan lineResult),
	}
}

func (l *Lines) pump() {
	scanner := bufio.NewScanner(l.in)
	for scanner.Scan() {
		l.lines <- lineResult{text: scanner.Text()}
	}
	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	l.lines <- lineResult{err: err}
	close(l.lines)
}

func (l *Lines) read(ctx context.Context, prompt string) (string, error) {
	l.once.Do(func() { go l.pump() })

	_, _ = fmt.Fprint(l.out, prompt)

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(l.out)
		return "", ctx.Err()
	case res, ok := <-l.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			_, _ = fmt.Fprintln(l.out)
			return "", res.err
		}
		return strings.TrimRight(res.text, "\r"), nil
	}
}

// ReadLine implements Prompter.
func (l *Lines) ReadLine(ctx context.Context, prompt string, validate func(string) error) (string, error) {
	for {
		text, err := l.read(ctx, prompt)
		if err != nil {
			return "", err
		}
		if validate == nil {
			return text, nil
		}
		if err := validate(text); err != nil {
			_, _ = fmt.Fprintf(l.out, "Invalid input: %v.\n", err)
			continue
		}
		return text, nil
	}
}

// ReadAmount implements Prompter.
func (l *Lines) ReadAmount(ctx context.Context, prompt string) (decimal.Decimal, error) {
	for {
		text, err := l.read(ctx, prompt)
		if err != nil {
			return decimal.Zero, err
		}
		amount, err := ledger.ParseAmount(text)
		if err != nil {
			_, _ = fmt.Fprintln(l.out, "Invalid input. Please enter a positive numeric value.")
			continue
		}
		return amount, nil
	}
}

// ReadChoice implements Prompter. The choices are listed once, invalid
// answers only repeat the prompt.
func (l *Lines) ReadChoice(ctx context.Context, prompt string, choices []Choice) (string, error) {
	for _, c := range choices {
		_, _ = fmt.Fprintf(l.out, "%s. %s\n", c.Key, c.Label)
	}

	allowed := keys(choices)
	for {
		text, err := l.read(ctx, prompt)
		if err != nil {
			return "", err
		}
		choice := strings.TrimSpace(text)
		for _, key := range allowed {
			if choice == key {
				return key, nil
			}
		}
		_, _ = fmt.Fprintf(l.out, "Invalid choice. Please choose from %v.\n", allowed)
	}
}
