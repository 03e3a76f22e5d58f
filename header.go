package tresor

import cr "github.com/r4gus/tresor/internal/crypto"

// CipherID identifies the AEAD cipher used to seal Data.
type CipherID = cr.CipherID

// KDFID identifies the key-derivation function used to derive the AEAD
// key from the password.
type KDFID = cr.KDFID

// CompressionID identifies the compression applied to Data before
// encryption. Only CompressionNone is implemented; the field exists so a
// future compression scheme does not require a header format change.
type CompressionID uint8

const (
	// ChaCha20Poly1305 is the only registered cipher.
	ChaCha20Poly1305 = cr.CipherChaCha20Poly1305
	// Argon2id is the only registered KDF.
	Argon2id = cr.KDFArgon2id

	// CompressionNone disables compression. It is the only implemented
	// value; the id is reserved in the format for future use.
	CompressionNone CompressionID = 0
)

// CurrentVersionMajor/CurrentVersionMinor are written into every header
// sealed by this version of the library. Open refuses any blob whose
// VersionMajor exceeds CurrentVersionMajor.
const (
	CurrentVersionMajor uint16 = 1
	CurrentVersionMinor uint16 = 0
)

// KDFParams carries the Argon2id cost parameters and salt recorded in the
// header so Open re-derives the identical key.
type KDFParams struct {
	Salt        []byte `cbor:"salt"`
	Iterations  uint32 `cbor:"iterations"`
	MemoryKiB   uint32 `cbor:"memory_kib"`
	Parallelism uint8  `cbor:"parallelism"`
}

func kdfParamsFromArgon2id(p cr.Argon2idParams) KDFParams {
	return KDFParams{Salt: p.Salt, Iterations: p.Iterations, MemoryKiB: p.MemoryKiB, Parallelism: p.Parallelism}
}

func (p KDFParams) toArgon2id() cr.Argon2idParams {
	return cr.Argon2idParams{Salt: p.Salt, Iterations: p.Iterations, MemoryKiB: p.MemoryKiB, Parallelism: p.Parallelism}
}

// KDFHeader names which KDF produced the key and carries its parameters.
type KDFHeader struct {
	Type   KDFID     `cbor:"type"`
	Params KDFParams `cbor:"params"`
}

// CipherHeader names which AEAD cipher was used and carries its IV. IV is
// present and correctly sized on every sealed blob.
type CipherHeader struct {
	Type CipherID `cbor:"type"`
	IV   []byte   `cbor:"iv,omitempty"`
}

// OuterHeader is the authenticated, unencrypted metadata block describing
// how to decrypt the payload. Its serialized bytes are the AEAD
// associated data on both Seal and Open.
type OuterHeader struct {
	VersionMajor uint16        `cbor:"version_major"`
	VersionMinor uint16        `cbor:"version_minor"`
	Cipher       CipherHeader  `cbor:"cipher"`
	Compression  CompressionID `cbor:"compression"`
	KDF          KDFHeader     `cbor:"kdf"`
}

func newOuterHeader(cipher CipherID, compression CompressionID, kdf KDFID) OuterHeader {
	return OuterHeader{
		VersionMajor: CurrentVersionMajor,
		VersionMinor: CurrentVersionMinor,
		Cipher:       CipherHeader{Type: cipher},
		Compression:  compression,
		KDF:          KDFHeader{Type: kdf},
	}
}
