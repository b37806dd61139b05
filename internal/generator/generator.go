package generator

import "errors"

// ErrNoCharacterClassSelected is returned when every class is disabled.
var ErrNoCharacterClassSelected = errors.New("please select at least one character type")

// Generate draws opts.Length characters independently, with replacement, from the
// alphabet of the enabled classes. A nil src falls back to the math source.
func Generate(opts Options, src Source) (string, error) {
	alphabet := opts.Alphabet()
	if alphabet == "" {
		return "", ErrNoCharacterClassSelected
	}
	if src == nil {
		src = NewMathSource()
	}

	result := make([]byte, ClampLength(opts.Length))
	for i := range result {
		result[i] = alphabet[src.IntN(len(alphabet))]
	}

	return string(result), nil
}
