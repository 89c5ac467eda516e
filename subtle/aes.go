package subtle

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// blockSize is the AES block size in bytes. Both FF1 and FF3-1 are
// defined only over a 128-bit block cipher.
const blockSize = aes.BlockSize

// aesCipher is a keyed single-block AES-ECB encryptor. aes.NewCipher
// selects the AES-128/192/256 variant from the key length; the wrapper
// adds up-front key validation so callers see ErrInvalidKeyLength
// instead of a backend-specific error. The embedded cipher.Block is
// immutable after construction and safe for concurrent use.
type aesCipher struct {
	block cipher.Block
}

func newAESCipher(key []byte) (*aesCipher, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoBackend, err)
	}

	return &aesCipher{block: block}, nil
}

// encryptBlock writes AES_Enc(key, src[0:16]) into dst[0:16].
func (c *aesCipher) encryptBlock(dst, src []byte) {
	c.block.Encrypt(dst, src)
}
