package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Notification is a transient, user-facing message.
type Notification struct {
	Timestamp time.Time  `json:"timestamp"`
	Level     slog.Level `json:"level"`
	Source    string     `json:"source"`
	Message   string     `json:"message"`
}

// Notifier delivers notifications to the user.
// Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Writer prints one line per notification.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (n *Writer) Notify(_ context.Context, note Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintln(n.w, note.Message)
	return err
}

// Logger forwards notifications to slog.
type Logger struct {
	logger *slog.Logger
}

// NewLogger returns a Logger notifier; a nil logger means slog.Default().
func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

func (n *Logger) Notify(ctx context.Context, note Notification) error {
	n.logger.Log(ctx, note.Level, note.Message, "source", note.Source)
	return nil
}

// Recorder buffers notifications until they are drained.
type Recorder struct {
	mu    sync.Mutex
	notes []Notification
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(_ context.Context, note Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note)
	return nil
}

// Drain returns the buffered notifications in arrival order and clears the buffer.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	notes := r.notes
	r.notes = nil
	if notes == nil {
		return []Notification{}
	}
	return notes
}

// Multi delivers to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, note Notification) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, note); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Notify(context.Context, Notification) error { return nil }
