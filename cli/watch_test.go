package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

// syncBuffer is a bytes.Buffer safe for the watcher goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, buf *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(buf.String(), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q, got:\n%s", want, buf.String())
}

func TestWatchReprintsOnChange(t *testing.T) {
	globals := testGlobals(t)
	seed(t, globals, "100", nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr syncBuffer
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- watchReport(ctx, globals, &stdout, &stderr, func() { close(ready) })
	}()

	<-ready
	assert.Contains(t, stdout.String(), "Total Income: $100.00")
	assert.Contains(t, stderr.String(), "Watching")

	seed(t, globals, "250", map[string]string{"Food": "50"})
	waitFor(t, &stdout, "Total Income: $250.00")
	waitFor(t, &stdout, "Total Savings: $200.00")

	// A broken file is reported and the watch goes on.
	writeFile(t, globals, "garbage")
	waitFor(t, &stderr, "invalid JSON")

	seed(t, globals, "300", nil)
	waitFor(t, &stdout, "Total Income: $300.00")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	globals := testGlobals(t)
	seed(t, globals, "100", nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr syncBuffer
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- watchReport(ctx, globals, &stdout, &stderr, func() { close(ready) })
	}()
	<-ready

	other := &Globals{File: globals.File + ".other", Currency: "$"}
	seed(t, other, "1", nil)
	time.Sleep(4 * debounceDelay)

	assert.Equal(t, 1, strings.Count(stdout.String(), "--- Financial Report ---"))

	cancel()
	<-done
}
