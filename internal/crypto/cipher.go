// Package crypto wraps the concrete AEAD cipher and KDF primitives. Ciphers
// sit behind a small registry, so the outer store selects one by its
// numeric id and a new cipher is a pure addition here. The KDF has no
// registry: Argon2id is the only KDF, and the seal/open code checks for
// its id and uses Argon2idParams directly.
package crypto

import (
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// CipherID identifies an AEAD cipher suite in the on-disk header.
type CipherID uint8

const (
	// CipherChaCha20Poly1305 is the only registered cipher: a 12-byte IV,
	// 32-byte key, 16-byte tag.
	CipherChaCha20Poly1305 CipherID = 1
)

func (id CipherID) String() string {
	switch id {
	case CipherChaCha20Poly1305:
		return "chacha20poly1305"
	default:
		return fmt.Sprintf("cipher(%d)", uint8(id))
	}
}

// AEADSuite is the contract a registered cipher must satisfy. Seal and Open
// return/accept the tag separately from the ciphertext so the caller can
// place the tag before the ciphertext on the wire, per the blob layout.
type AEADSuite interface {
	IVLen() int
	KeyLen() int
	TagLen() int
	Seal(key, iv, plaintext, aad []byte) (ciphertext, tag []byte, err error)
	Open(key, iv, ciphertext, tag, aad []byte) (plaintext []byte, err error)
}

var cipherRegistry = map[CipherID]AEADSuite{
	CipherChaCha20Poly1305: chachaPoly1305Suite{},
}

// RegisterCipher adds or replaces a cipher suite under id. It exists so a
// future algorithm can be wired in without touching the seal/open engine.
func RegisterCipher(id CipherID, suite AEADSuite) {
	cipherRegistry[id] = suite
}

// LookupCipher returns the suite registered under id, if any.
func LookupCipher(id CipherID) (AEADSuite, bool) {
	s, ok := cipherRegistry[id]
	return s, ok
}

type chachaPoly1305Suite struct{}

func (chachaPoly1305Suite) IVLen() int  { return chacha20poly1305.NonceSize }
func (chachaPoly1305Suite) KeyLen() int { return chacha20poly1305.KeySize }
func (chachaPoly1305Suite) TagLen() int { return chacha20poly1305.Overhead }

func (chachaPoly1305Suite) newAEAD(key []byte) (cipher.AEAD, error) {
	return chacha20poly1305.New(key)
}

func (s chachaPoly1305Suite) Seal(key, iv, plaintext, aad []byte) (ciphertext, tag []byte, err error) {
	aead, err := s.newAEAD(key)
	if err != nil {
		return nil, nil, err
	}
	if len(iv) != aead.NonceSize() {
		return nil, nil, fmt.Errorf("crypto: bad iv length %d, want %d", len(iv), aead.NonceSize())
	}
	sealed := aead.Seal(nil, iv, plaintext, aad)
	tagLen := aead.Overhead()
	ct := sealed[:len(sealed)-tagLen]
	t := sealed[len(sealed)-tagLen:]
	return ct, t, nil
}

func (s chachaPoly1305Suite) Open(key, iv, ciphertext, tag, aad []byte) ([]byte, error) {
	aead, err := s.newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != aead.NonceSize() {
		return nil, fmt.Errorf("crypto: bad iv length %d, want %d", len(iv), aead.NonceSize())
	}
	combined := make([]byte, 0, len(ciphertext)+len(tag))
	combined = append(combined, ciphertext...)
	combined = append(combined, tag...)
	return aead.Open(nil, iv, combined, aad)
}
