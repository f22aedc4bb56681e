// Package notify delivers engine notices to the user. Delivery is
// fire-and-forget: a reminder that cannot be shown is dropped, never an
// error the tick loop has to handle.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier receives notices produced by the engines.
type Notifier interface {
	Notify(title, body string)
}

// WriterNotifier prints notices to a writer, one per line, for terminal
// sessions. Safe for concurrent use.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s: %s\n", title, body)
}

// Noop discards all notices.
type Noop struct{}

func (Noop) Notify(string, string) {}

// Recorder captures notices for tests.
type Recorder struct {
	mu      sync.Mutex
	Notices []string
}

func (r *Recorder) Notify(title, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notices = append(r.Notices, title+": "+body)
}
