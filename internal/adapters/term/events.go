package term

import (
	"bufio"
	"io"
	"sync"
)

// defaultLineBuffer bounds how many unread lines queue up before the
// reader goroutine blocks.
const defaultLineBuffer = 16

// lineQueue turns a blocking reader into channel-based line delivery so
// the UI loop can select over input, timers, and cancellation.
type lineQueue struct {
	lines chan string
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

// newLineQueue starts a goroutine scanning r line by line. The lines
// channel closes when r reaches EOF or the queue is closed.
func newLineQueue(r io.Reader) *lineQueue {
	q := &lineQueue{
		lines: make(chan string, defaultLineBuffer),
		done:  make(chan struct{}),
	}

	go func() {
		defer close(q.lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case q.lines <- scanner.Text():
			case <-q.done:
				return
			}
		}
	}()

	return q
}

// C returns the channel lines arrive on.
func (q *lineQueue) C() <-chan string {
	return q.lines
}

// Close stops line delivery. A reader blocked mid-Scan keeps its
// goroutine until the next line or EOF; the underlying reader belongs
// to the caller.
func (q *lineQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil // already closed
	}
	close(q.done)
	q.closed = true
	return nil
}
