package tinkfpe

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/tink/go/keyset"

	"github.com/vdparikh/ffx"
)

// TestCollisionResistance checks that distinct inputs produce distinct
// outputs for a given key/tweak pair. FPE is a bijection per length,
// so any collision is an implementation bug, not bad luck.
func TestCollisionResistance(t *testing.T) {
	primitive := newTestPrimitive(t, []byte("test-tweak"))

	seen := make(map[string]string) // ciphertext -> plaintext
	testCases := []string{
		"1234567890",
		"9876543210",
		"0000000000",
		"1111111111",
		"9999999999",
		"0123456789",
	}

	for _, plaintext := range testCases {
		ciphertext, err := primitive.Tokenize(plaintext)
		if err != nil {
			t.Errorf("Failed to tokenize %s: %v", plaintext, err)
			continue
		}

		if existing, exists := seen[ciphertext]; exists {
			t.Errorf("collision: %s and %s both produce %s", existing, plaintext, ciphertext)
		} else {
			seen[ciphertext] = plaintext
		}

		decrypted, err := primitive.Detokenize(ciphertext, plaintext)
		if err != nil {
			t.Errorf("Failed to detokenize %s: %v", ciphertext, err)
			continue
		}
		if decrypted != plaintext {
			t.Errorf("Round trip failed: expected %s, got %s", plaintext, decrypted)
		}
	}
}

// TestTweakIsolation checks that the same plaintext under different
// tweaks yields different ciphertexts, and that the wrong tweak does
// not decrypt.
func TestTweakIsolation(t *testing.T) {
	if _, err := getOrRegisterKeyManager(); err != nil {
		t.Fatalf("Failed to register KeyManager: %v", err)
	}

	handle, err := keyset.NewHandle(KeyTemplate())
	if err != nil {
		t.Fatalf("Failed to create keyset handle: %v", err)
	}

	p1, err := New(handle, []byte("tenant-1"))
	if err != nil {
		t.Fatalf("Failed to create FPE primitive: %v", err)
	}
	p2, err := New(handle, []byte("tenant-2"))
	if err != nil {
		t.Fatalf("Failed to create FPE primitive: %v", err)
	}

	plaintext := "4111111111111111"
	ct1, err := p1.Tokenize(plaintext)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	ct2, err := p2.Tokenize(plaintext)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	if ct1 == ct2 {
		t.Errorf("Tweaks did not diversify ciphertexts: both %s", ct1)
	}

	wrong, err := p2.Detokenize(ct1, plaintext)
	if err == nil && wrong == plaintext {
		t.Error("Detokenize under wrong tweak recovered the plaintext")
	}
}

// TestConcurrentUse exercises a single primitive from many goroutines;
// results must be deterministic and error-free.
func TestConcurrentUse(t *testing.T) {
	primitive := newTestPrimitive(t, []byte("concurrent"))

	want, err := primitive.Tokenize("123-45-6789")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				got, err := primitive.Tokenize("123-45-6789")
				if err != nil {
					errs <- err
					return
				}
				if got != want {
					errs <- fmt.Errorf("nondeterministic result: %s != %s", got, want)
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

// TestKeyIsolation checks that independent keysets produce different
// ciphertexts for the same plaintext and tweak.
func TestKeyIsolation(t *testing.T) {
	if _, err := getOrRegisterKeyManager(); err != nil {
		t.Fatalf("Failed to register KeyManager: %v", err)
	}

	tweak := []byte("same-tweak")
	plaintext := "1234567890"

	h1, err := keyset.NewHandle(KeyTemplate())
	if err != nil {
		t.Fatalf("Failed to create keyset handle: %v", err)
	}
	h2, err := keyset.NewHandle(KeyTemplate())
	if err != nil {
		t.Fatalf("Failed to create keyset handle: %v", err)
	}

	p1, err := New(h1, tweak)
	if err != nil {
		t.Fatalf("Failed to create FPE primitive: %v", err)
	}
	p2, err := New(h2, tweak)
	if err != nil {
		t.Fatalf("Failed to create FPE primitive: %v", err)
	}

	ct1, err := p1.Tokenize(plaintext)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	ct2, err := p2.Tokenize(plaintext)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	if ct1 == ct2 {
		t.Errorf("Independent keys produced identical ciphertexts: %s", ct1)
	}
}

func newTestPrimitive(t *testing.T, tweak []byte) ffx.FPE {
	t.Helper()

	if _, err := getOrRegisterKeyManager(); err != nil {
		t.Fatalf("Failed to register KeyManager: %v", err)
	}

	handle, err := keyset.NewHandle(KeyTemplate())
	if err != nil {
		t.Fatalf("Failed to create keyset handle: %v", err)
	}

	primitive, err := New(handle, tweak)
	if err != nil {
		t.Fatalf("Failed to create FPE primitive: %v", err)
	}

	return primitive
}
