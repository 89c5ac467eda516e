package ffx

// FPE is a Tink-compatible interface for Format-Preserving Encryption
// operations. This follows Tink's primitive pattern, similar to
// tink.DeterministicAEAD. FPE is deterministic: the same plaintext,
// tweak, and key always produce the same ciphertext.
type FPE interface {
	// Tokenize encrypts plaintext using format-preserving encryption.
	// The tokenized value preserves the length and format of the input.
	Tokenize(plaintext string) (string, error)

	// Detokenize decrypts a tokenized value. The originalPlaintext
	// parameter supplies the alphabet used during tokenization; see
	// FF1.Detokenize.
	Detokenize(tokenized string, originalPlaintext string) (string, error)
}

// Interface guards.
var (
	_ FPE = (*FF1)(nil)
	_ FPE = (*FF31)(nil)
)
