// Package notify delivers user-visible, one-shot notifications. The request
// pipeline and the route guard surface every failure exactly once through a
// Notifier before propagating the error to the caller.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier surfaces a message to the user. Implementations must be safe for
// concurrent use: multiple in-flight requests may report at once.
type Notifier interface {
	// Info reports a neutral message.
	Info(msg string)
	// Warn reports a recoverable condition (e.g. "please log in").
	Warn(msg string)
	// Error reports a failure.
	Error(msg string)
}

// Terminal writes notifications as single prefixed lines, normally to stderr
// so they never mix with rendered command output on stdout.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminal creates a Terminal notifier writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) Info(msg string)  { t.write("info", msg) }
func (t *Terminal) Warn(msg string)  { t.write("warn", msg) }
func (t *Terminal) Error(msg string) { t.write("error", msg) }

func (t *Terminal) write(level, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "[%s] %s\n", level, msg)
}

// Entry is a recorded notification.
type Entry struct {
	Level   string
	Message string
}

// Recorder captures notifications in order for test assertions.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Info(msg string)  { r.record("info", msg) }
func (r *Recorder) Warn(msg string)  { r.record("warn", msg) }
func (r *Recorder) Error(msg string) { r.record("error", msg) }

func (r *Recorder) record(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg})
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Discard drops all notifications. Useful for commands that render errors
// themselves.
type Discard struct{}

func (Discard) Info(string)  {}
func (Discard) Warn(string)  {}
func (Discard) Error(string) {}

// Compile-time interface checks.
var (
	_ Notifier = (*Terminal)(nil)
	_ Notifier = (*Recorder)(nil)
	_ Notifier = Discard{}
)
