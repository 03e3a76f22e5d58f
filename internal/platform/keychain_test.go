package platform

import (
	"bytes"
	"testing"
)

func TestKeychainWrapUnwrapRoundTrip(t *testing.T) {
	kc, err := NewKeychain([]byte("os-keychain-local-secret"))
	if err != nil {
		t.Fatalf("new keychain: %v", err)
	}
	defer kc.Close()

	key := []byte("0123456789abcdef0123456789abcdef")
	wrapped, err := kc.Wrap(key)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}

	unwrapped, err := kc.Unwrap(wrapped)
	if err != nil {
		t.Fatalf("unwrap: %v", err)
	}
	if !bytes.Equal(key, unwrapped) {
		t.Fatal("unwrapped key does not match original")
	}
}

func TestKeychainUnwrapRejectsTamperedBytes(t *testing.T) {
	kc, err := NewKeychain([]byte("secret"))
	if err != nil {
		t.Fatalf("new keychain: %v", err)
	}
	defer kc.Close()

	wrapped, err := kc.Wrap([]byte("a-derived-key"))
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	wrapped[len(wrapped)-1] ^= 0xFF

	if _, err := kc.Unwrap(wrapped); err == nil {
		t.Fatal("expected tamper detection")
	}
}

func TestLockUnlockMemoryDoesNotPanic(t *testing.T) {
	b := make([]byte, 32)
	_ = LockMemory(b)
	_ = UnlockMemory(b)
}
