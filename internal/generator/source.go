package generator

import (
	"crypto/rand"
	"errors"
	"math/big"
	mrand "math/rand/v2"
)

// ErrUnknownSource is returned by SourceByName.
var ErrUnknownSource = errors.New("unknown random source")

// Source picks uniformly random indexes. IntN returns a value in [0, n) and
// must only be called with n > 0.
type Source interface {
	IntN(n int) int
}

type mathSource struct {
	r *mrand.Rand
}

// NewMathSource returns a fast, non-cryptographic source backed by math/rand/v2.
func NewMathSource() Source {
	return mathSource{}
}

// NewSeededSource returns a deterministic source, mainly for tests.
func NewSeededSource(seed uint64) Source {
	return mathSource{r: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s mathSource) IntN(n int) int {
	if s.r == nil {
		return mrand.IntN(n)
	}
	return s.r.IntN(n)
}

type cryptoSource struct{}

// NewCryptoSource returns a source backed by crypto/rand.
func NewCryptoSource() Source {
	return cryptoSource{}
}

// IntN panics if the system random reader fails, which crypto/rand documents
// as not happening on supported platforms.
func (cryptoSource) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}
	return int(v.Int64())
}

// SourceByName resolves "math" (the default when empty) or "crypto".
func SourceByName(name string) (Source, error) {
	switch name {
	case "", "math":
		return NewMathSource(), nil
	case "crypto":
		return NewCryptoSource(), nil
	default:
		return nil, ErrUnknownSource
	}
}
