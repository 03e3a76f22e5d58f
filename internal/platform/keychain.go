package platform

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"

	cr "github.com/r4gus/tresor/internal/crypto"
)

// Keychain wraps a derived AEAD key for storage outside the sealed blob
// (e.g. an OS credential store), so a host can offer "unlock without
// retyping the password" without weakening the blob format itself. It is
// pure convenience: Seal/Open never call it, and never need to.
//
// The wrapping key is derived from a keychain-local secret via
// HKDF-SHA256 rather than used directly, so the raw local secret is never
// itself an AEAD key. Every Wrap with the same Keychain uses the same
// wrapping key, with a fresh random IV each time.
type Keychain struct {
	wrapKey [32]byte
}

// NewKeychain derives a wrapping key from localSecret, which a host
// obtains from its own OS keychain/credential store. localSecret is not
// retained; only the derived wrapKey is.
func NewKeychain(localSecret []byte) (*Keychain, error) {
	h := hkdf.New(sha256.New, localSecret, nil, []byte("tresor/keychain/v1"))
	var wk [32]byte
	if _, err := io.ReadFull(h, wk[:]); err != nil {
		return nil, err
	}
	return &Keychain{wrapKey: wk}, nil
}

const keychainAAD = "tresor-keychain-wrap"

// Wrap seals key under the keychain's wrapping key, producing
// iv||tag||ciphertext suitable for storage by the host.
func (k *Keychain) Wrap(key []byte) ([]byte, error) {
	suite, ok := cr.LookupCipher(cr.CipherChaCha20Poly1305)
	if !ok {
		return nil, errors.New("platform: chacha20poly1305 not registered")
	}
	iv := make([]byte, suite.IVLen())
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}
	ct, tag, err := suite.Seal(k.wrapKey[:], iv, key, []byte(keychainAAD))
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(iv)+len(tag)+len(ct))
	out = append(out, iv...)
	out = append(out, tag...)
	out = append(out, ct...)
	return out, nil
}

// Unwrap reverses Wrap.
func (k *Keychain) Unwrap(wrapped []byte) ([]byte, error) {
	suite, ok := cr.LookupCipher(cr.CipherChaCha20Poly1305)
	if !ok {
		return nil, errors.New("platform: chacha20poly1305 not registered")
	}
	ivLen, tagLen := suite.IVLen(), suite.TagLen()
	if len(wrapped) < ivLen+tagLen {
		return nil, errors.New("platform: wrapped key truncated")
	}
	iv := wrapped[:ivLen]
	tag := wrapped[ivLen : ivLen+tagLen]
	ct := wrapped[ivLen+tagLen:]
	return suite.Open(k.wrapKey[:], iv, ct, tag, []byte(keychainAAD))
}

// Close zeroes the keychain's wrapping key.
func (k *Keychain) Close() {
	cr.Zero32(&k.wrapKey)
}
