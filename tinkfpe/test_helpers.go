package tinkfpe

import (
	"github.com/google/tink/go/core/registry"
)

// getOrRegisterKeyManager returns a KeyManager, registering one with
// Tink's registry if the FPE type URL is not yet known. Safe to call
// from multiple test files; KeyManagers are stateless.
func getOrRegisterKeyManager() (*KeyManager, error) {
	keyManager := NewKeyManager()

	if _, err := registry.GetKeyManager(FPEKeyTypeURL); err == nil {
		return keyManager, nil
	}

	if err := registry.RegisterKeyManager(keyManager); err != nil {
		return nil, err
	}

	return keyManager, nil
}
