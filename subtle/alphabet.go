package subtle

import "fmt"

// DefaultAlphabet is used when an engine is constructed with an empty
// alphabet string. It is truncated to the radix, so radix 10 yields the
// decimal digits and radix 36 the full lowercase alphanumerics.
const DefaultAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Alphabet is an ordered set of radix distinct characters mapping
// between code points and digit values in [0, radix). It is immutable
// after construction.
type Alphabet struct {
	byPos []rune
	byLtr map[rune]int
}

// NewAlphabet builds an Alphabet from the first radix characters of
// source. It fails if source has fewer than radix characters or if any
// two of the chosen characters are equal.
func NewAlphabet(source string, radix int) (*Alphabet, error) {
	byPos := make([]rune, 0, radix)
	for _, c := range source {
		if len(byPos) == radix {
			break
		}
		byPos = append(byPos, c)
	}
	if len(byPos) < radix {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrAlphabetTooShort, radix, len(byPos))
	}

	byLtr := make(map[rune]int, radix)
	for i, c := range byPos {
		if _, ok := byLtr[c]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAlphabet, c)
		}
		byLtr[c] = i
	}

	return &Alphabet{byPos: byPos, byLtr: byLtr}, nil
}

// Len returns the radix of the alphabet.
func (a *Alphabet) Len() int {
	return len(a.byPos)
}

// Index returns the digit value of c.
func (a *Alphabet) Index(c rune) (int, error) {
	i, ok := a.byLtr[c]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCharacter, c)
	}
	return i, nil
}

// Char returns the character at digit value i.
func (a *Alphabet) Char(i int) rune {
	return a.byPos[i]
}
