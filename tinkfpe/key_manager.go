// Package tinkfpe provides Tink integration for Format-Preserving
// Encryption. This file contains the KeyManager implementation that
// registers FF1 with Tink's registry.
package tinkfpe

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"
	"google.golang.org/protobuf/proto"

	"github.com/vdparikh/ffx"
)

const (
	// FPEKeyTypeURL is the type URL for FPE FF1 keys in Tink's registry.
	FPEKeyTypeURL = "type.googleapis.com/google.crypto.tink.FpeFf1Key"
)

// KeyManager implements registry.KeyManager for FPE keys. This allows
// FPE to be registered with Tink's registry and used with keyset
// handles. The key material is the raw AES key (16, 24, or 32 bytes).
type KeyManager struct {
	typeURL string
}

// NewKeyManager creates a new FPE key manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{
		typeURL: FPEKeyTypeURL,
	}
}

// Primitive creates an FPE primitive from the given serialized key.
// The primitive carries no default tweak; use the tinkfpe.New factory
// to bind a tweak to a keyset handle.
func (km *KeyManager) Primitive(serializedKey []byte) (interface{}, error) {
	if err := validKeySize(len(serializedKey)); err != nil {
		return nil, err
	}

	f, err := ffx.NewFF1(serializedKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create FF1: %w", err)
	}

	return f, nil
}

// DoesSupport returns true if this KeyManager supports the given key
// type URL.
func (km *KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == km.typeURL
}

// TypeURL returns the type URL of the keys managed by this KeyManager.
func (km *KeyManager) TypeURL() string {
	return km.typeURL
}

// NewKey is not supported and always returns an error. FPE keys are
// raw AES keys rather than protobuf messages; use NewKeyData.
func (km *KeyManager) NewKey(serializedKeyTemplate []byte) (proto.Message, error) {
	return nil, fmt.Errorf("tinkfpe: NewKey is unsupported, use NewKeyData")
}

// NewKeyData creates a new KeyData from the given key template. The
// template value carries the key size as a single byte.
func (km *KeyManager) NewKeyData(serializedKeyTemplate []byte) (*tink_go_proto.KeyData, error) {
	keySize := 32
	if len(serializedKeyTemplate) > 0 {
		keySize = int(serializedKeyTemplate[0])
		if err := validKeySize(keySize); err != nil {
			return nil, err
		}
	}

	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate random key: %w", err)
	}

	return &tink_go_proto.KeyData{
		TypeUrl:         km.typeURL,
		Value:           key,
		KeyMaterialType: tink_go_proto.KeyData_SYMMETRIC,
	}, nil
}

func validKeySize(n int) error {
	if n != 16 && n != 24 && n != 32 {
		return fmt.Errorf("invalid key size: %d bytes (must be 16, 24, or 32)", n)
	}
	return nil
}

// Verify that KeyManager implements registry.KeyManager
var _ registry.KeyManager = (*KeyManager)(nil)

// KeyTemplate creates a key template for FPE FF1 keys. This allows
// users to generate keys with a single line:
//
//	handle, err := keyset.NewHandle(tinkfpe.KeyTemplate())
//
// The template generates AES-256 keys (32 bytes). For other key sizes,
// use KeyTemplateAES128() or KeyTemplateAES192().
func KeyTemplate() *tink_go_proto.KeyTemplate {
	return KeyTemplateAES256()
}

// KeyTemplateAES128 creates a key template for FPE FF1 with AES-128 (16 bytes).
func KeyTemplateAES128() *tink_go_proto.KeyTemplate {
	return keyTemplate(16)
}

// KeyTemplateAES192 creates a key template for FPE FF1 with AES-192 (24 bytes).
func KeyTemplateAES192() *tink_go_proto.KeyTemplate {
	return keyTemplate(24)
}

// KeyTemplateAES256 creates a key template for FPE FF1 with AES-256 (32 bytes).
func KeyTemplateAES256() *tink_go_proto.KeyTemplate {
	return keyTemplate(32)
}

func keyTemplate(keySize byte) *tink_go_proto.KeyTemplate {
	return &tink_go_proto.KeyTemplate{
		TypeUrl:          FPEKeyTypeURL,
		Value:            []byte{keySize},
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}
}

// NewKeysetHandleFromKey creates a keyset handle from a raw key (e.g.,
// from an HSM). This is useful when you have a key from a custom HSM
// or key management system that isn't a standard Tink KMS client.
//
// The key must be 16, 24, or 32 bytes (AES-128, AES-192, or AES-256).
//
// Example:
//
//	hsmKey := []byte{...} // 32-byte key from your HSM
//	handle, err := tinkfpe.NewKeysetHandleFromKey(hsmKey)
//	if err != nil {
//		log.Fatal(err)
//	}
//	primitive, err := tinkfpe.New(handle, []byte("tweak"))
//
// Note: This creates an unencrypted keyset. In production, consider
// encrypting the keyset before storing it using keyset.Write() with an
// AEAD.
func NewKeysetHandleFromKey(key []byte) (*keyset.Handle, error) {
	if err := validKeySize(len(key)); err != nil {
		return nil, err
	}

	keyIDBytes := make([]byte, 4)
	if _, err := rand.Read(keyIDBytes); err != nil {
		return nil, fmt.Errorf("failed to generate key ID: %w", err)
	}
	keyID := binary.BigEndian.Uint32(keyIDBytes)

	ks := &tink_go_proto.Keyset{
		PrimaryKeyId: keyID,
		Key: []*tink_go_proto.Keyset_Key{{
			KeyData: &tink_go_proto.KeyData{
				TypeUrl:         FPEKeyTypeURL,
				Value:           key,
				KeyMaterialType: tink_go_proto.KeyData_SYMMETRIC,
			},
			KeyId:            keyID,
			Status:           tink_go_proto.KeyStatusType_ENABLED,
			OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
		}},
	}

	buf := &keyset.MemReaderWriter{Keyset: ks}
	return insecurecleartextkeyset.Read(buf)
}
