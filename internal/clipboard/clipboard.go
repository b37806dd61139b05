package clipboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sysclip "github.com/atotto/clipboard"
)

// ErrUnavailable is returned when the clipboard is absent or the write failed.
var ErrUnavailable = errors.New("clipboard unavailable")

// ErrUnknownClipboard is returned by ByName.
var ErrUnknownClipboard = errors.New("unknown clipboard")

// Clipboard receives copied text.
type Clipboard interface {
	CopyText(ctx context.Context, text string) error
}

// System writes to the host clipboard (xclip/xsel/wl-copy on Linux, pbcopy on
// macOS, the Win32 API on Windows).
type System struct{}

func (System) CopyText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sysclip.Unsupported {
		return ErrUnavailable
	}
	if err := sysclip.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Memory keeps the last copied text in process.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) CopyText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Text returns the last copied text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// None always fails with ErrUnavailable.
type None struct{}

func (None) CopyText(context.Context, string) error {
	return ErrUnavailable
}

// ByName resolves "system", "memory" or "none".
func ByName(name string) (Clipboard, error) {
	switch name {
	case "system":
		return System{}, nil
	case "memory":
		return &Memory{}, nil
	case "none":
		return None{}, nil
	default:
		return nil, ErrUnknownClipboard
	}
}
