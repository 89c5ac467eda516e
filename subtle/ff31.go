package subtle

import (
	"fmt"
	"math"
	"math/big"
)

// FF31 implements the FF3-1 mode of NIST SP 800-38G Revision 1: an
// eight-round Feistel network over single AES blocks with a 56-bit
// tweak. FF3-1 operates on reversed numeral strings and reversed AES
// blocks (the REVB convention), and keys the cipher with the
// byte-reversed user key.
type FF31 struct {
	ffx *ffx
}

// ff31TweakLen is the fixed FF3-1 tweak length in bytes.
const ff31TweakLen = 7

// NewFF31 creates an FF3-1 instance. The key must be 16, 24, or 32
// bytes. tweak is the default 7-byte tweak; nil configures no default,
// in which case every call must supply its own. An empty alphabet
// string selects DefaultAlphabet, truncated to radix.
func NewFF31(key, tweak []byte, radix int, alphabet string) (*FF31, error) {
	k := make([]byte, len(key))
	for i, c := range key {
		k[len(key)-1-i] = c
	}

	maxTxt := int(math.Floor(192 / math.Log2(float64(radix))))

	f, err := newFFX(k, tweak, maxTxt, ff31TweakLen, ff31TweakLen, radix, alphabet)
	if err != nil {
		return nil, err
	}
	return &FF31{ffx: f}, nil
}

// Encrypt encrypts plaintext with the default tweak. The ciphertext
// has the same length as the plaintext and stays within the alphabet.
func (c *FF31) Encrypt(plaintext string) (string, error) {
	return c.cipher(plaintext, nil, true)
}

// EncryptWithTweak is the same as Encrypt except it uses the given
// tweak instead of the default.
func (c *FF31) EncryptWithTweak(plaintext string, tweak []byte) (string, error) {
	return c.cipher(plaintext, tweak, true)
}

// Decrypt decrypts ciphertext with the default tweak.
func (c *FF31) Decrypt(ciphertext string) (string, error) {
	return c.cipher(ciphertext, nil, false)
}

// DecryptWithTweak is the same as Decrypt except it uses the given
// tweak instead of the default.
func (c *FF31) DecryptWithTweak(ciphertext string, tweak []byte) (string, error) {
	return c.cipher(ciphertext, tweak, false)
}

func (c *FF31) cipher(inp string, tweak []byte, encrypt bool) (string, error) {
	f := c.ffx
	alpha := f.alpha
	radix := f.radix()

	X := []rune(inp)
	n := len(X)

	if err := f.validateTextLength(n); err != nil {
		return "", err
	}

	T := f.tweak(tweak)
	if err := f.validateTweakLength(len(T)); err != nil {
		return "", err
	}

	v := n / 2
	u := n - v

	// The 56-bit tweak splits into two 32-bit halves, the nibbles of
	// the middle byte going one to each.
	var Tw [2][4]byte
	copy(Tw[0][:3], T[0:3])
	Tw[0][3] = T[3] & 0xf0
	copy(Tw[1][:3], T[4:7])
	Tw[1][3] = (T[3] & 0x0f) << 4

	bigRadix := big.NewInt(int64(radix))
	mV := new(big.Int).Exp(bigRadix, big.NewInt(int64(v)), nil)
	mU := new(big.Int).Set(mV)
	if v != u {
		mU.Mul(mU, bigRadix)
	}

	// FF3-1 interprets both halves as reversed numeral strings.
	A := reverseRunes(X[:u])
	B := reverseRunes(X[u:])

	nA, err := charsToNum(A, alpha)
	if err != nil {
		return "", err
	}
	nB, err := charsToNum(B, alpha)
	if err != nil {
		return "", err
	}

	if !encrypt {
		nA, nB = nB, nA
		mU, mV = mV, mU
		Tw[0], Tw[1] = Tw[1], Tw[0]
	}

	y := new(big.Int)
	var P, C [blockSize]byte

	for i := 1; i <= 8; i++ {
		copy(P[:4], Tw[i%2][:])
		if encrypt {
			P[3] ^= byte(i - 1)
		} else {
			P[3] ^= byte(8 - i)
		}

		// The numeral value of B occupies the remaining 12 bytes.
		if nB.BitLen() > 96 {
			return "", fmt.Errorf("%w: half does not fit in 96 bits", ErrInvalidTextLength)
		}
		nB.FillBytes(P[4:blockSize])

		reverseBytes(P[:])
		if err := f.ciph(C[:], P[:]); err != nil {
			return "", err
		}
		reverseBytes(C[:])

		y.SetBytes(C[:])

		if encrypt {
			nA.Add(nA, y)
		} else {
			nA.Sub(nA, y)
		}

		nA, nB = nB, nA
		nB.Mod(nB, mU)
		mU, mV = mV, mU
	}

	if !encrypt {
		nA, nB = nB, nA
	}

	A, err = numToChars(nA, alpha, u)
	if err != nil {
		return "", err
	}
	B, err = numToChars(nB, alpha, v)
	if err != nil {
		return "", err
	}

	return string(reverseRunes(A)) + string(reverseRunes(B)), nil
}

// reverseRunes returns a reversed copy of s.
func reverseRunes(s []rune) []rune {
	out := make([]rune, len(s))
	for i, c := range s {
		out[len(s)-1-i] = c
	}
	return out
}

// reverseBytes reverses s in place.
func reverseBytes(s []byte) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
