package generator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MinLength     = 8
	MaxLength     = 32
	DefaultLength = 16
)

// Options configures the password generator.
type Options struct {
	Length    int
	Uppercase bool
	Lowercase bool
	Digits    bool
	Symbols   bool
}

// DefaultOptions returns 16 characters with all classes enabled.
func DefaultOptions() Options {
	return Options{
		Length:    DefaultLength,
		Uppercase: true,
		Lowercase: true,
		Digits:    true,
		Symbols:   true,
	}
}

// ClampLength constrains raw to [MinLength, MaxLength]. Out-of-range values are
// replaced by the nearest bound rather than rejected.
func ClampLength(raw int) int {
	return max(MinLength, min(MaxLength, raw))
}

var ErrInvalidLength = errors.New("invalid length")

// ParseLength reads a decimal length of any magnitude and clamps it like
// ClampLength. Values beyond the range of int clamp to the nearest bound, and
// a fractional length rounds up. Only text that is not a number is an error.
func ParseLength(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		// On overflow ParseFloat still returns a signed infinity.
		if !errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w %q", ErrInvalidLength, s)
		}
	}
	if math.IsNaN(f) {
		return 0, fmt.Errorf("%w %q", ErrInvalidLength, s)
	}
	return int(math.Ceil(max(MinLength, min(MaxLength, f)))), nil
}

// SetLength stores the clamped length and returns the stored value.
func (o *Options) SetLength(raw int) int {
	o.Length = ClampLength(raw)
	return o.Length
}

// SetClass toggles a single class.
func (o *Options) SetClass(c Class, enabled bool) {
	switch c {
	case Uppercase:
		o.Uppercase = enabled
	case Lowercase:
		o.Lowercase = enabled
	case Digits:
		o.Digits = enabled
	case Symbols:
		o.Symbols = enabled
	}
}

// Enabled reports whether class c is selected.
func (o Options) Enabled(c Class) bool {
	switch c {
	case Uppercase:
		return o.Uppercase
	case Lowercase:
		return o.Lowercase
	case Digits:
		return o.Digits
	case Symbols:
		return o.Symbols
	default:
		return false
	}
}

// Classes returns the enabled classes in alphabet order.
func (o Options) Classes() []Class {
	var classes []Class
	for _, c := range AllClasses {
		if o.Enabled(c) {
			classes = append(classes, c)
		}
	}
	return classes
}

// Alphabet concatenates the character sets of the enabled classes, in class order.
// The result is empty when no class is enabled.
func (o Options) Alphabet() string {
	var sb strings.Builder
	for _, c := range o.Classes() {
		sb.WriteString(c.Charset())
	}
	return sb.String()
}
