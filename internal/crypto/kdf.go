package crypto

import (
	"fmt"

	"golang.org/x/crypto/argon2"
)

// KDFID identifies a key-derivation function in the on-disk header.
type KDFID uint8

const (
	// KDFArgon2id is the only registered KDF.
	KDFArgon2id KDFID = 1
)

func (id KDFID) String() string {
	switch id {
	case KDFArgon2id:
		return "argon2id"
	default:
		return fmt.Sprintf("kdf(%d)", uint8(id))
	}
}

// DerivedKeyLen is the fixed output size of every registered KDF: a
// ChaCha20-Poly1305 key.
const DerivedKeyLen = 32

// MinSaltLen is the minimum salt length seeded by Seed.
const MinSaltLen = 16

// Argon2idParams are the parameters recorded in the OuterHeader and
// replayed on Open so the same key is re-derived from the same password.
type Argon2idParams struct {
	Salt        []byte
	Iterations  uint32
	MemoryKiB   uint32
	Parallelism uint8
}

// DefaultArgon2idParams returns cost parameters tuned for interactive
// desktop authentication: a few hundred milliseconds on commodity
// hardware, tens of MiB of memory.
func DefaultArgon2idParams() Argon2idParams {
	return Argon2idParams{
		Iterations:  3,
		MemoryKiB:   64 * 1024,
		Parallelism: 4,
	}
}

// Seed fills Salt with MinSaltLen fresh random bytes read through randRead.
// Called exactly once per seal.
func (p *Argon2idParams) Seed(randRead func([]byte) error) error {
	salt := make([]byte, MinSaltLen)
	if err := randRead(salt); err != nil {
		return fmt.Errorf("crypto: seed salt: %w", err)
	}
	p.Salt = salt
	return nil
}

// Derive runs Argon2id over password with these parameters, producing a
// DerivedKeyLen-byte key. The caller owns zeroing the result.
func (p Argon2idParams) Derive(password []byte) ([]byte, error) {
	if len(p.Salt) < MinSaltLen {
		return nil, fmt.Errorf("crypto: salt too short: %d bytes, want >= %d", len(p.Salt), MinSaltLen)
	}
	if p.Iterations == 0 || p.Parallelism == 0 {
		return nil, fmt.Errorf("crypto: invalid argon2id parameters")
	}
	return argon2.IDKey(password, p.Salt, p.Iterations, p.MemoryKiB, p.Parallelism, DerivedKeyLen), nil
}

// WeakerThan reports whether p is weaker than target on any cost axis,
// used to decide whether a store's KDF parameters should be upgraded the
// next time it is resealed.
func (p Argon2idParams) WeakerThan(target Argon2idParams) bool {
	return p.Iterations < target.Iterations ||
		p.MemoryKiB < target.MemoryKiB ||
		p.Parallelism < target.Parallelism
}
