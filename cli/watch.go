package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/finance/logger"
	"github.com/robinvdvleuten/finance/output"
)

// Editors and the store itself write files in multiple steps.
const debounceDelay = 100 * time.Millisecond

// WatchCmd prints the report and prints it again every time the data file
// changes, until interrupted.
type WatchCmd struct{}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, done := globals.runContext(ctx, "watch")
	defer done()

	return watchReport(runCtx, globals, ctx.Stdout, ctx.Stderr, nil)
}

// watchReport blocks until ctx is done. ready, when not nil, is called once
// the watcher is in place.
func watchReport(ctx context.Context, globals *Globals, stdout, stderr io.Writer, ready func()) error {
	path, err := filepath.Abs(globals.openStore().Path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// The store replaces the file by renaming, which drops a watch on the
	// file itself. Watching the directory survives that.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	show := func() {
		// A broken file is reported but does not stop the watch, the next
		// save may fix it.
		_ = printReport(ctx, globals, stdout, stderr)
	}

	show()
	printInfof(stderr, "Watching %s for changes, press Ctrl-C to stop", output.NewStyles(stderr).FilePath(path))
	if ready != nil {
		ready()
	}

	log := logger.FromContext(ctx)

	debounce := time.NewTimer(debounceDelay)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Data file changed")
			debounce.Reset(debounceDelay)

		case <-debounce.C:
			show()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("File watcher error")
		}
	}
}
