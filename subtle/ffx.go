// Package subtle implements the NIST SP 800-38G format-preserving
// encryption modes FF1 and FF3-1 over raw AES keys. It is the
// low-level core of this module; most users should prefer the
// high-level APIs in the parent package, which layer format handling
// and key management on top.
package subtle

import (
	"fmt"
	"math"
)

// ffx carries the state shared by the FF1 and FF3-1 Feistel engines: a
// keyed AES block, the default tweak, the alphabet, and the text and
// tweak length limits. It is immutable after construction, so an
// engine can be used concurrently.
type ffx struct {
	cipher *aesCipher

	// twk is the default tweak, used whenever a call does not carry
	// its own. nil means no default was configured.
	twk []byte

	alpha *Alphabet

	minTxt, maxTxt int
	minTwk, maxTwk int
}

func newFFX(key, twk []byte, maxTxt, minTwk, maxTwk, radix int, alphabet string) (*ffx, error) {
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	if radix < 2 || radix > len([]rune(alphabet)) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRadix, radix)
	}

	alpha, err := NewAlphabet(alphabet, radix)
	if err != nil {
		return nil, err
	}

	// The minimum text length enforces radix^minTxt >= 10^6.
	minTxt := int(math.Ceil(6 / math.Log10(float64(radix))))
	if minTxt < 2 || minTxt > maxTxt {
		return nil, fmt.Errorf("%w: text length [%d..%d]", ErrUnsupportedTextBounds, minTxt, maxTxt)
	}

	// A maximum of 0 leaves the tweak length unbounded above.
	if maxTwk > 0 && minTwk > maxTwk {
		return nil, fmt.Errorf("%w: [%d..%d]", ErrInvalidTweakBounds, minTwk, maxTwk)
	}

	f := &ffx{
		alpha:  alpha,
		minTxt: minTxt,
		maxTxt: maxTxt,
		minTwk: minTwk,
		maxTwk: maxTwk,
	}

	if twk != nil {
		if err := f.validateTweakLength(len(twk)); err != nil {
			return nil, err
		}
		f.twk = append([]byte(nil), twk...)
	}

	f.cipher, err = newAESCipher(key)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// tweak resolves the effective tweak for a call: the caller-supplied
// one when non-nil, else the configured default.
func (f *ffx) tweak(t []byte) []byte {
	if t == nil {
		return f.twk
	}
	return t
}

func (f *ffx) radix() int {
	return f.alpha.Len()
}

func (f *ffx) validateTextLength(n int) error {
	if n < f.minTxt || n > f.maxTxt {
		return fmt.Errorf("%w: %d not in [%d..%d]", ErrInvalidTextLength, n, f.minTxt, f.maxTxt)
	}
	return nil
}

func (f *ffx) validateTweakLength(n int) error {
	if n < f.minTwk || (f.maxTwk > 0 && n > f.maxTwk) {
		return fmt.Errorf("%w: %d bytes", ErrInvalidTweakLength, n)
	}
	return nil
}

// prf writes the AES-CBC-MAC of src into dst[0:16]: the last block of
// an AES-CBC encryption of src under a zero IV. src must be a positive
// multiple of the block size. The chaining state lives only within
// this call, keeping the engine free of shared mutable cipher state.
func (f *ffx) prf(dst, src []byte) error {
	if len(src) == 0 || len(src)%blockSize != 0 {
		return fmt.Errorf("%w: source length %d", ErrPRFInput, len(src))
	}
	if len(dst) < blockSize {
		return fmt.Errorf("%w: destination shorter than %d bytes", ErrPRFInput, blockSize)
	}

	var y, x [blockSize]byte
	for i := 0; i < len(src); i += blockSize {
		for j := 0; j < blockSize; j++ {
			x[j] = src[i+j] ^ y[j]
		}
		f.cipher.encryptBlock(y[:], x[:])
	}
	copy(dst[:blockSize], y[:])

	return nil
}

// ciph writes AES_Enc(key, src[0:16]) into dst[0:16].
func (f *ffx) ciph(dst, src []byte) error {
	return f.prf(dst, src[:blockSize])
}
