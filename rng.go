package tresor

import (
	"crypto/rand"
	"fmt"
)

// RNG is a source of cryptographically meaningful random bytes: KDF salts,
// cipher IVs, and generated entry ids. It is injected so that seals can be
// made deterministic in tests.
type RNG interface {
	// Read fills b entirely with random bytes or returns an error.
	Read(b []byte) error
}

// CryptoRNG is the default RNG, backed by crypto/rand.
type CryptoRNG struct{}

// Read implements RNG using crypto/rand.Read.
func (CryptoRNG) Read(b []byte) error {
	if _, err := rand.Read(b); err != nil {
		return fmt.Errorf("tresor: read random bytes: %w", err)
	}
	return nil
}
