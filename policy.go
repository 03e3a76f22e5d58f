package tresor

import cr "github.com/r4gus/tresor/internal/crypto"

// RehashPolicy names the Argon2id cost parameters a Store should be
// resealed with once the parameters recorded in an opened blob's header
// fall below this target. It is a standalone, optional check a caller
// runs explicitly (Store.NeedsRehash, then Store.UpgradeKDF to actually
// apply it) rather than one this library applies automatically on Open —
// an embeddable library should not decide on its host's behalf that a
// blob gets silently rewritten.
type RehashPolicy struct {
	Iterations  uint32
	MemoryKiB   uint32
	Parallelism uint8
}

// DefaultRehashPolicy mirrors DefaultArgon2idParams: a caller opening a
// store sealed under weaker, older parameters can upgrade to this target
// on next Seal.
func DefaultRehashPolicy() RehashPolicy {
	d := cr.DefaultArgon2idParams()
	return RehashPolicy{Iterations: d.Iterations, MemoryKiB: d.MemoryKiB, Parallelism: d.Parallelism}
}

func (p RehashPolicy) toArgon2id() cr.Argon2idParams {
	return cr.Argon2idParams{Iterations: p.Iterations, MemoryKiB: p.MemoryKiB, Parallelism: p.Parallelism}
}
