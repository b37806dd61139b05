package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vaultpass/passgen/internal/clipboard"
	"github.com/vaultpass/passgen/internal/generator"
	"github.com/vaultpass/passgen/internal/metrics"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/notify"
)

const (
	msgNoClassSelected = "Please select at least one character type"
	msgCopied          = "Password copied successfully."
	msgCopyFailed      = "Failed to copy password to clipboard."

	notifySource = "generator"
)

// GeneratorService owns one generator's configuration and its last password.
type GeneratorService struct {
	mu       sync.Mutex
	opts     generator.Options
	password string

	source    generator.Source
	clipboard clipboard.Clipboard
	notifier  notify.Notifier
}

// NewGeneratorService creates a GeneratorService with default options.
// Nil dependencies fall back to the math source, an unavailable clipboard and
// a notifier that discards everything.
func NewGeneratorService(src generator.Source, cb clipboard.Clipboard, n notify.Notifier) *GeneratorService {
	if src == nil {
		src = generator.NewMathSource()
	}
	if cb == nil {
		cb = clipboard.None{}
	}
	if n == nil {
		n = notify.Nop{}
	}
	return &GeneratorService{
		opts:      generator.DefaultOptions(),
		source:    src,
		clipboard: cb,
		notifier:  n,
	}
}

// SetLength clamps raw to the allowed range, stores it and returns the stored value.
func (s *GeneratorService) SetLength(raw int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.SetLength(raw)
}

// SetFlag enables or disables a single character class.
func (s *GeneratorService) SetFlag(c generator.Class, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.SetClass(c, enabled)
}

// Options returns a copy of the current configuration.
func (s *GeneratorService) Options() generator.Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// Password returns the last generated password, or "" before the first one.
func (s *GeneratorService) Password() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.password
}

// Apply updates the configuration from a request. Nil fields are left
// unchanged. A length that is not a number leaves the configuration untouched.
func (s *GeneratorService) Apply(req model.GenerateRequest) error {
	length := -1
	if req.Length != nil {
		n, err := generator.ParseLength(req.Length.String())
		if err != nil {
			return err
		}
		length = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if length >= 0 {
		s.opts.SetLength(length)
	}
	applyFlag(&s.opts, generator.Uppercase, req.Uppercase)
	applyFlag(&s.opts, generator.Lowercase, req.Lowercase)
	applyFlag(&s.opts, generator.Digits, req.Numbers)
	applyFlag(&s.opts, generator.Symbols, req.Symbols)
	return nil
}

// Generate replaces the current password with a new one. When no class is
// selected it notifies the user, returns generator.ErrNoCharacterClassSelected
// and keeps the previous password.
func (s *GeneratorService) Generate(ctx context.Context) (string, error) {
	s.mu.Lock()
	opts := s.opts
	password, err := generator.Generate(opts, s.source)
	if err == nil {
		s.password = password
	}
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, generator.ErrNoCharacterClassSelected) {
			metrics.GenerateFailures.WithLabelValues("no_character_class").Inc()
			s.notify(ctx, slog.LevelWarn, msgNoClassSelected)
		}
		return "", err
	}

	metrics.PasswordsGenerated.WithLabelValues(metrics.ClassesLabel(opts.Classes())).Inc()
	slog.Debug("password generated", "length", opts.Length, "classes", metrics.ClassesLabel(opts.Classes()))
	return password, nil
}

// CopyToClipboard copies the current password. Failures are reported to the
// notifier and returned wrapped around clipboard.ErrUnavailable; no state changes either way.
func (s *GeneratorService) CopyToClipboard(ctx context.Context) error {
	password := s.Password()

	if err := s.clipboard.CopyText(ctx, password); err != nil {
		metrics.ClipboardCopies.WithLabelValues("failure").Inc()
		s.notify(ctx, slog.LevelError, msgCopyFailed)
		if errors.Is(err, clipboard.ErrUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", clipboard.ErrUnavailable, err)
	}

	metrics.ClipboardCopies.WithLabelValues("success").Inc()
	s.notify(ctx, slog.LevelInfo, msgCopied)
	return nil
}

// State returns a snapshot for adapters.
func (s *GeneratorService) State() model.StateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.StateResponse{
		Length:    s.opts.Length,
		Uppercase: s.opts.Uppercase,
		Lowercase: s.opts.Lowercase,
		Numbers:   s.opts.Digits,
		Symbols:   s.opts.Symbols,
		Password:  s.password,
	}
}

func (s *GeneratorService) notify(ctx context.Context, level slog.Level, msg string) {
	err := s.notifier.Notify(ctx, notify.Notification{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Source:    notifySource,
		Message:   msg,
	})
	if err != nil {
		slog.Warn("notification delivery failed", "message", msg, "error", err)
	}
}

// applyFlag sets class c from p when p is non-nil.
func applyFlag(opts *generator.Options, c generator.Class, p *bool) {
	if p != nil {
		opts.SetClass(c, *p)
	}
}
