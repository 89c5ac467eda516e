package ffx

// SeparateFormatAndData separates format characters (hyphens, dots,
// etc.) from data characters. Returns a format mask (true = format
// char, false = data char) and the data characters only. Anything
// outside the ASCII alphanumerics counts as format.
func SeparateFormatAndData(s string) ([]bool, string) {
	formatMask := make([]bool, len(s))
	dataChars := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') ||
			(c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') {
			dataChars = append(dataChars, c)
		} else {
			formatMask[i] = true
		}
	}

	return formatMask, string(dataChars)
}

// ReconstructWithFormat reinserts format characters from the original
// string into their positions around the transformed data characters.
func ReconstructWithFormat(data string, formatMask []bool, original string) string {
	result := make([]byte, len(formatMask))
	dataIdx := 0

	for i := 0; i < len(formatMask); i++ {
		if formatMask[i] {
			result[i] = original[i]
		} else {
			result[i] = data[dataIdx]
			dataIdx++
		}
	}

	return string(result)
}

// DetermineAlphabet determines the alphabet (character set) from the
// data characters of a plaintext. Only alphanumeric characters are
// considered; format characters are handled separately.
func DetermineAlphabet(dataChars string) string {
	hasLetters := false
	hasDigits := false

	for i := 0; i < len(dataChars); i++ {
		c := dataChars[i]
		switch {
		case c >= '0' && c <= '9':
			hasDigits = true
		case (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
			hasLetters = true
		}
	}

	alphabet := ""
	if hasDigits {
		alphabet += "0123456789"
	}
	if hasLetters {
		alphabet += "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	}

	// Default: numeric
	if alphabet == "" {
		alphabet = "0123456789"
	}

	return alphabet
}
