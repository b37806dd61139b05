package generator

import (
	"errors"
	"strings"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	digitChars     = "0123456789"
	symbolChars    = "!@#$%^&*()_+[]{}|;:,.<>?"
)

// ErrUnknownClass is returned by ParseClass for names it does not recognise.
var ErrUnknownClass = errors.New("unknown character class")

// Class identifies one of the fixed character sets that can contribute to the alphabet.
type Class int

const (
	Uppercase Class = iota
	Lowercase
	Digits
	Symbols
)

// AllClasses lists every class in alphabet order.
var AllClasses = []Class{Uppercase, Lowercase, Digits, Symbols}

func (c Class) String() string {
	switch c {
	case Uppercase:
		return "uppercase"
	case Lowercase:
		return "lowercase"
	case Digits:
		return "digits"
	case Symbols:
		return "symbols"
	default:
		return "unknown"
	}
}

// Charset returns the fixed characters of the class.
func (c Class) Charset() string {
	switch c {
	case Uppercase:
		return uppercaseChars
	case Lowercase:
		return lowercaseChars
	case Digits:
		return digitChars
	case Symbols:
		return symbolChars
	default:
		return ""
	}
}

// ParseClass maps a user-supplied name (case-insensitive, singular or plural) to a Class.
func ParseClass(name string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "upper", "uppercase":
		return Uppercase, nil
	case "lower", "lowercase":
		return Lowercase, nil
	case "digit", "digits", "number", "numbers":
		return Digits, nil
	case "symbol", "symbols":
		return Symbols, nil
	default:
		return 0, ErrUnknownClass
	}
}
