// Package tinkfpe provides Tink integration for Format-Preserving
// Encryption. This file contains the factory functions for creating
// FPE primitives from Tink keyset handles.
package tinkfpe

import (
	"fmt"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"

	"github.com/vdparikh/ffx"
)

// New creates a new FF1 FPE primitive from a Tink keyset handle. This
// is the main entry point for users following Tink's pattern.
//
// Example:
//
//	handle, err := keyset.NewHandle(tinkfpe.KeyTemplate())
//	if err != nil {
//	    return err
//	}
//	primitive, err := tinkfpe.New(handle, []byte("tweak"))
//	if err != nil {
//	    return err
//	}
//	tokenized, err := primitive.Tokenize("123-45-6789")
func New(handle *keyset.Handle, tweak []byte) (ffx.FPE, error) {
	key, err := primaryKeyMaterial(handle)
	if err != nil {
		return nil, err
	}
	return ffx.NewFF1(key, tweak)
}

// NewFF31 creates a new FF3-1 FPE primitive from a Tink keyset handle.
// FF3-1 requires a 7-byte tweak on every operation; the tweak given
// here is the default applied by Tokenize and Detokenize.
func NewFF31(handle *keyset.Handle, tweak []byte) (ffx.FPE, error) {
	key, err := primaryKeyMaterial(handle)
	if err != nil {
		return nil, err
	}
	return ffx.NewFF31(key, tweak)
}

// primaryKeyMaterial extracts the raw AES key bytes of the handle's
// primary key. Only cleartext symmetric keysets are supported; keys
// encrypted via a KMS must be decrypted into a handle first.
func primaryKeyMaterial(handle *keyset.Handle) ([]byte, error) {
	if handle == nil {
		return nil, fmt.Errorf("keyset handle cannot be nil")
	}

	primitives, err := handle.Primitives()
	if err != nil {
		return nil, fmt.Errorf("failed to get primitives from handle: %w", err)
	}

	primary := primitives.Primary
	if primary == nil {
		return nil, fmt.Errorf("no primary key found in keyset")
	}

	ks := insecurecleartextkeyset.KeysetMaterial(handle)
	for _, key := range ks.GetKey() {
		if key.GetKeyId() != primary.KeyID {
			continue
		}

		keyData := key.GetKeyData()
		if keyData == nil {
			continue
		}
		if keyData.GetTypeUrl() != FPEKeyTypeURL {
			return nil, fmt.Errorf("primary key has unexpected type URL %q", keyData.GetTypeUrl())
		}
		switch keyData.GetKeyMaterialType() {
		case tink_go_proto.KeyData_SYMMETRIC:
			return keyData.GetValue(), nil
		default:
			return nil, fmt.Errorf("unsupported key material type %v", keyData.GetKeyMaterialType())
		}
	}

	return nil, fmt.Errorf("key with ID %d not found in keyset", primary.KeyID)
}
