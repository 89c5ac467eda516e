// Package ffx implements Format-Preserving Encryption (FPE) using the
// NIST SP 800-38G algorithms FF1 and FF3-1.
//
// This package provides a provider-agnostic implementation that can be
// used with any key management system. It preserves the format of
// input data (e.g., SSN format XXX-XX-XXXX, credit card numbers,
// account codes) while encrypting the actual data characters, and the
// underlying ciphers match the NIST known-answer samples byte for
// byte.
//
// The package includes both the standalone NIST engines (see the
// subtle subpackage) and Tink-compatible primitives. While Tink
// doesn't natively support FPE, the tinkfpe subpackage provides a
// Tink-compatible interface that follows Tink's design patterns and
// integrates with Tink's key management system.
//
// Example usage:
//
//	key := make([]byte, 32) // from your KMS
//	tweak := []byte("tenant-1234|customer.ssn")
//
//	f, err := ffx.NewFF1(key, tweak)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Tokenize (encrypt) while preserving format
//	tokenized, err := f.Tokenize("123-45-6789")
//	if err != nil {
//		log.Fatal(err)
//	}
//	// tokenized might be "987-65-4321" (same format, different data)
//
//	// Detokenize (decrypt) to recover the original
//	plaintext, err := f.Detokenize(tokenized, "123-45-6789")
package ffx

import (
	"fmt"

	"github.com/vdparikh/ffx/subtle"
)

// FF1 is a format-aware tokenizer over the FF1 cipher. Format
// characters (hyphens, dots, separators) pass through unchanged; the
// data characters are encrypted over the alphabet detected from the
// input. The zero value is not usable; construct with NewFF1.
type FF1 struct {
	key   []byte
	tweak []byte
}

// NewFF1 creates a format-aware FF1 tokenizer with the given key and
// default tweak. The key must be 16, 24, or 32 bytes (AES-128/192/256).
// The tweak is a public, non-secret value that diversifies ciphertexts
// for the same plaintext; nil is accepted and is equivalent to an
// empty tweak for FF1.
func NewFF1(key, tweak []byte) (*FF1, error) {
	if err := checkKeyLength(key); err != nil {
		return nil, err
	}
	return &FF1{
		key:   append([]byte(nil), key...),
		tweak: dupTweak(tweak),
	}, nil
}

// Tokenize encrypts plaintext using format-preserving encryption. It
// preserves format characters (hyphens, dots, colons, @ signs, etc.)
// and only encrypts the alphanumeric data characters.
func (f *FF1) Tokenize(plaintext string) (string, error) {
	return tokenize(plaintext, func(alphabet string) (engine, error) {
		return subtle.NewFF1(f.key, f.tweak, 0, 0, len(alphabet), alphabet)
	})
}

// Detokenize decrypts a tokenized value. originalPlaintext, when
// non-empty, supplies the alphabet: the ciphertext's detected
// character class can be narrower than the plaintext's (an
// alphanumeric token may come out all digits), so detokenizing with
// the ciphertext-derived alphabet would not invert Tokenize.
func (f *FF1) Detokenize(tokenized, originalPlaintext string) (string, error) {
	return detokenize(tokenized, originalPlaintext, func(alphabet string) (engine, error) {
		return subtle.NewFF1(f.key, f.tweak, 0, 0, len(alphabet), alphabet)
	})
}

// FF31 is a format-aware tokenizer over the FF3-1 cipher. FF3-1
// requires a 7-byte tweak on every operation.
type FF31 struct {
	key   []byte
	tweak []byte
}

// NewFF31 creates a format-aware FF3-1 tokenizer with the given key
// and default 7-byte tweak. The key must be 16, 24, or 32 bytes.
func NewFF31(key, tweak []byte) (*FF31, error) {
	if err := checkKeyLength(key); err != nil {
		return nil, err
	}
	return &FF31{
		key:   append([]byte(nil), key...),
		tweak: dupTweak(tweak),
	}, nil
}

// Tokenize encrypts plaintext using format-preserving encryption,
// preserving format characters and encrypting the data characters.
func (f *FF31) Tokenize(plaintext string) (string, error) {
	return tokenize(plaintext, func(alphabet string) (engine, error) {
		return subtle.NewFF31(f.key, f.tweak, len(alphabet), alphabet)
	})
}

// Detokenize decrypts a tokenized value. See FF1.Detokenize for the
// role of originalPlaintext.
func (f *FF31) Detokenize(tokenized, originalPlaintext string) (string, error) {
	return detokenize(tokenized, originalPlaintext, func(alphabet string) (engine, error) {
		return subtle.NewFF31(f.key, f.tweak, len(alphabet), alphabet)
	})
}

// engine is the per-alphabet cipher surface shared by FF1 and FF3-1.
type engine interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

func tokenize(plaintext string, build func(alphabet string) (engine, error)) (string, error) {
	formatMask, dataChars := SeparateFormatAndData(plaintext)

	alphabet := DetermineAlphabet(dataChars)
	eng, err := build(alphabet)
	if err != nil {
		return "", err
	}

	tokenizedData, err := eng.Encrypt(dataChars)
	if err != nil {
		return "", fmt.Errorf("failed to tokenize: %w", err)
	}

	return ReconstructWithFormat(tokenizedData, formatMask, plaintext), nil
}

func detokenize(tokenized, originalPlaintext string, build func(alphabet string) (engine, error)) (string, error) {
	formatMask, dataChars := SeparateFormatAndData(tokenized)

	var alphabet string
	if originalPlaintext != "" {
		_, originalDataChars := SeparateFormatAndData(originalPlaintext)
		alphabet = DetermineAlphabet(originalDataChars)
	} else {
		alphabet = DetermineAlphabet(dataChars)
	}

	eng, err := build(alphabet)
	if err != nil {
		return "", err
	}

	plaintextData, err := eng.Decrypt(dataChars)
	if err != nil {
		return "", fmt.Errorf("failed to detokenize: %w", err)
	}

	return ReconstructWithFormat(plaintextData, formatMask, tokenized), nil
}

func checkKeyLength(key []byte) error {
	switch len(key) {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: got %d bytes", subtle.ErrInvalidKeyLength, len(key))
	}
}

// dupTweak copies a tweak, preserving the nil/empty distinction: nil
// means no default tweak was configured.
func dupTweak(t []byte) []byte {
	if t == nil {
		return nil
	}
	return append([]byte(nil), t...)
}
