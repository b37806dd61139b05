package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/vaultpass/passgen/internal/clipboard"
	"github.com/vaultpass/passgen/internal/generator"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/notify"
)

func boolPtr(b bool) *bool { return &b }
func numPtr(s string) *json.Number { n := json.Number(s); return &n }

func newTestService(cb clipboard.Clipboard) (*GeneratorService, *notify.Recorder) {
	rec := notify.NewRecorder()
	return NewGeneratorService(generator.NewSeededSource(1), cb, rec), rec
}

func TestGenerate_Defaults(t *testing.T) {
	svc, _ := newTestService(nil)

	password, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(password) != 16 {
		t.Errorf("expected password length 16, got %d", len(password))
	}
	if svc.Password() != password {
		t.Errorf("expected stored password %q, got %q", password, svc.Password())
	}
}

func TestGenerate_ReplacesPreviousPassword(t *testing.T) {
	svc, _ := newTestService(nil)

	first, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Errorf("expected a new password, got %q twice", first)
	}
	if svc.Password() != second {
		t.Errorf("expected stored password %q, got %q", second, svc.Password())
	}
}

func TestGenerate_CustomOptions(t *testing.T) {
	svc, _ := newTestService(nil)
	err := svc.Apply(model.GenerateRequest{
		Length:    numPtr("32"),
		Uppercase: boolPtr(true),
		Lowercase: boolPtr(true),
		Numbers:   boolPtr(false),
		Symbols:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	password, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(password) != 32 {
		t.Errorf("expected length 32, got %d", len(password))
	}
	for _, c := range password {
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			t.Errorf("unexpected character %q in password with only uppercase+lowercase", c)
		}
	}
}

func TestApply_NilFieldsKeepCurrent(t *testing.T) {
	svc, _ := newTestService(nil)
	svc.SetLength(20)
	svc.SetFlag(generator.Symbols, false)

	if err := svc.Apply(model.GenerateRequest{Numbers: boolPtr(false)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts := svc.Options()
	if opts.Length != 20 {
		t.Errorf("expected length 20, got %d", opts.Length)
	}
	if opts.Symbols || opts.Digits {
		t.Errorf("expected symbols and digits off, got %+v", opts)
	}
	if !opts.Uppercase || !opts.Lowercase {
		t.Errorf("expected letters on, got %+v", opts)
	}
}

func TestApply_LengthBeyondIntRangeIsClamped(t *testing.T) {
	svc, _ := newTestService(nil)

	tests := []struct {
		raw  string
		want int
	}{
		{"1e20", 32},
		{"99999999999999999999", 32},
		{"-99999999999999999999", 8},
		{"0", 8},
	}
	for _, tt := range tests {
		if err := svc.Apply(model.GenerateRequest{Length: numPtr(tt.raw)}); err != nil {
			t.Fatalf("Apply(length %s) unexpected error: %v", tt.raw, err)
		}
		if got := svc.Options().Length; got != tt.want {
			t.Errorf("Apply(length %s) stored %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestApply_InvalidLengthChangesNothing(t *testing.T) {
	svc, _ := newTestService(nil)

	err := svc.Apply(model.GenerateRequest{Length: numPtr("twelve"), Symbols: boolPtr(false)})
	if !errors.Is(err, generator.ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
	if svc.Options() != generator.DefaultOptions() {
		t.Errorf("expected default options, got %+v", svc.Options())
	}
}

func TestSetLength_Clamps(t *testing.T) {
	svc, _ := newTestService(nil)

	tests := []struct{ raw, want int }{
		{3, 8},
		{100, 32},
		{20, 20},
	}
	for _, tt := range tests {
		if got := svc.SetLength(tt.raw); got != tt.want {
			t.Errorf("SetLength(%d) = %d, want %d", tt.raw, got, tt.want)
		}
		if got := svc.Options().Length; got != tt.want {
			t.Errorf("stored length after SetLength(%d) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestGenerate_NoCharacterClassKeepsPreviousPassword(t *testing.T) {
	svc, rec := newTestService(nil)

	previous, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec.Drain()

	for _, c := range generator.AllClasses {
		svc.SetFlag(c, false)
	}

	password, err := svc.Generate(context.Background())
	if !errors.Is(err, generator.ErrNoCharacterClassSelected) {
		t.Fatalf("expected ErrNoCharacterClassSelected, got %v", err)
	}
	if password != "" {
		t.Errorf("expected empty password on error, got %q", password)
	}
	if svc.Password() != previous {
		t.Errorf("expected previous password %q to be kept, got %q", previous, svc.Password())
	}

	notes := rec.Drain()
	if len(notes) != 1 || notes[0].Message != msgNoClassSelected {
		t.Errorf("expected one %q notification, got %+v", msgNoClassSelected, notes)
	}
}

func TestCopyToClipboard_Success(t *testing.T) {
	cb := &clipboard.Memory{}
	svc, rec := newTestService(cb)

	password, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.CopyToClipboard(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cb.Text() != password {
		t.Errorf("expected clipboard %q, got %q", password, cb.Text())
	}

	notes := rec.Drain()
	if len(notes) != 1 || notes[0].Message != msgCopied {
		t.Errorf("expected one %q notification, got %+v", msgCopied, notes)
	}
}

func TestCopyToClipboard_Unavailable(t *testing.T) {
	svc, rec := newTestService(clipboard.None{})

	if _, err := svc.Generate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := svc.State()

	err := svc.CopyToClipboard(context.Background())
	if !errors.Is(err, clipboard.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if svc.State() != before {
		t.Error("expected state to be unchanged after failed copy")
	}

	notes := rec.Drain()
	if len(notes) != 1 || !strings.Contains(notes[0].Message, "Failed to copy") {
		t.Errorf("expected one failure notification, got %+v", notes)
	}
}

type brokenClipboard struct{}

func (brokenClipboard) CopyText(context.Context, string) error { return errors.New("no display") }

func TestCopyToClipboard_WrapsForeignErrors(t *testing.T) {
	svc, _ := newTestService(brokenClipboard{})

	err := svc.CopyToClipboard(context.Background())
	if !errors.Is(err, clipboard.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestState(t *testing.T) {
	svc, _ := newTestService(nil)
	svc.SetLength(12)
	svc.SetFlag(generator.Digits, false)

	state := svc.State()
	want := model.StateResponse{Length: 12, Uppercase: true, Lowercase: true, Numbers: false, Symbols: true}
	if state != want {
		t.Errorf("State() = %+v, want %+v", state, want)
	}
}
