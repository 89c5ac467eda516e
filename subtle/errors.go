package subtle

import "errors"

var (
	// ErrInvalidKeyLength is returned when the key is not 16, 24, or 32 bytes.
	ErrInvalidKeyLength = errors.New("key length must be 16, 24, or 32 bytes")

	// ErrInvalidRadix is returned when the radix is less than 2 or exceeds
	// the number of characters in the alphabet.
	ErrInvalidRadix = errors.New("invalid radix")

	// ErrUnsupportedTextBounds is returned when the minimum text length
	// derived from the radix is below 2 or exceeds the maximum text length.
	ErrUnsupportedTextBounds = errors.New("unsupported radix/maximum text length")

	// ErrInvalidTweakBounds is returned when the minimum tweak length
	// exceeds a bounded maximum.
	ErrInvalidTweakBounds = errors.New("minimum tweak length greater than maximum")

	// ErrInvalidTweakLength is returned when a tweak falls outside the
	// configured bounds.
	ErrInvalidTweakLength = errors.New("invalid tweak length")

	// ErrInvalidTextLength is returned when the input length falls outside
	// the supported bounds.
	ErrInvalidTextLength = errors.New("invalid text length")

	// ErrInvalidCharacter is returned when an input character is not part
	// of the alphabet.
	ErrInvalidCharacter = errors.New("character not in alphabet")

	// ErrAlphabetTooShort is returned when the alphabet has fewer
	// characters than the radix requires.
	ErrAlphabetTooShort = errors.New("not enough characters in alphabet")

	// ErrDuplicateAlphabet is returned when the alphabet contains the same
	// character more than once.
	ErrDuplicateAlphabet = errors.New("duplicate character(s) in alphabet")

	// ErrPRFInput is returned when a PRF source is not a positive multiple
	// of the block size or the destination is shorter than one block.
	ErrPRFInput = errors.New("prf length misalignment")

	// ErrCryptoBackend wraps failures propagated from the AES primitive.
	ErrCryptoBackend = errors.New("crypto backend failure")
)
