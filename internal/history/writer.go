package history

import (
	"bufio"
	"context"
	"os"

	"golang.org/x/sync/errgroup"
)

// Writer is the background persistence worker backing HISTFILE: a
// buffered channel drained by a single goroutine, with CommitAndJoin
// built on errgroup so a flush failure surfaces as an error instead of
// being silently swallowed (spec §5).
type Writer struct {
	queue chan string
	group *errgroup.Group
}

// NewWriter opens path for appending and starts the drain goroutine.
func NewWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	w := &Writer{queue: make(chan string, 256)}
	group, _ := errgroup.WithContext(context.Background())
	group.Go(func() error {
		defer f.Close()
		buf := bufio.NewWriter(f)
		for line := range w.queue {
			if _, err := buf.WriteString(line + "\n"); err != nil {
				return err
			}
		}
		return buf.Flush()
	})
	w.group = group
	return w, nil
}

// Push enqueues line for persistence. It does not block on disk I/O.
func (w *Writer) Push(line string) {
	w.queue <- line
}

// CommitAndJoin closes the queue -- establishing happens-before with every
// prior Push -- and blocks until the drain goroutine has flushed and
// exited, returning its error if the write failed.
func (w *Writer) CommitAndJoin() error {
	close(w.queue)
	return w.group.Wait()
}
