package subtle

import (
	"fmt"
	"math/big"
)

// numRadix interprets x as a big-endian numeral string in base radix
// and returns the number it represents. Each numeral must be less than
// the radix.
func numRadix(x []uint16, radix int) *big.Int {
	out := new(big.Int)
	r := big.NewInt(int64(radix))
	d := new(big.Int)

	for _, v := range x {
		out.Mul(out, r)
		out.Add(out, d.SetInt64(int64(v)))
	}

	return out
}

// strRadix returns the base-radix numeral string of x in decreasing
// order of significance, left-padded with zeros to at least m numerals.
// When x >= radix^m the high numerals are retained rather than
// truncated; callers that need a reduced value take the modulus first.
func strRadix(x *big.Int, radix, m int) []uint16 {
	if x.Sign() < 0 {
		panic("strRadix: negative value")
	}

	r := big.NewInt(int64(radix))
	q := new(big.Int).Set(x)
	rem := new(big.Int)

	digits := make([]uint16, 0, m)
	for q.Sign() != 0 {
		q.DivMod(q, r, rem)
		digits = append(digits, uint16(rem.Uint64()))
	}
	for len(digits) < m {
		digits = append(digits, 0)
	}

	// digits were produced least-significant first
	out := make([]uint16, len(digits))
	for i, d := range digits {
		out[len(digits)-1-i] = d
	}
	return out
}

// charsToNum converts a character string into the number its digits
// represent in the alphabet's base.
func charsToNum(x []rune, alpha *Alphabet) (*big.Int, error) {
	digits := make([]uint16, len(x))
	for i, c := range x {
		d, err := alpha.Index(c)
		if err != nil {
			return nil, err
		}
		digits[i] = uint16(d)
	}
	return numRadix(digits, alpha.Len()), nil
}

// numToChars renders x as a character string of at least m characters
// over the alphabet.
func numToChars(x *big.Int, alpha *Alphabet, m int) ([]rune, error) {
	digits := strRadix(x, alpha.Len(), m)
	out := make([]rune, len(digits))
	for i, d := range digits {
		if int(d) >= alpha.Len() {
			return nil, fmt.Errorf("%w: digit %d out of range", ErrInvalidCharacter, d)
		}
		out[i] = alpha.Char(int(d))
	}
	return out, nil
}
