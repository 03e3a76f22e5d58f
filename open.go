package tresor

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/r4gus/tresor/internal/codec"
	cr "github.com/r4gus/tresor/internal/crypto"
	"github.com/r4gus/tresor/internal/platform"
)

// Open parses a sealed blob previously produced by Seal, authenticates it
// against password, and returns the Store it describes. Every
// structural, authentication, and decode failure collapses to
// ErrCannotOpen at this boundary (errors.Is still reaches the precise
// internal cause, for tests); a caller must not be able to distinguish a
// wrong password from a corrupted blob, since doing so would leak
// information about which is more likely.
func Open(r io.Reader, password []byte, opts ...Option) (*Store, error) {
	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.openLimiter != nil && !cfg.openLimiter.Allow() {
		return nil, fmt.Errorf("tresor: open: %w", ErrRateLimited)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("tresor: open: %w: %v", ErrIO, err)
	}

	store, err := openBytes(raw, password, cfg)
	if err != nil {
		cfg.logger.Warn(context.Background(), "tresor: open failed", "err", err)
		return nil, &cannotOpenError{cause: err}
	}
	cfg.logger.Info(context.Background(), "tresor: store opened", "entries", store.EntryCount())
	return store, nil
}

// cannotOpenError is the error Open returns for every structural,
// authentication, and decode failure. Its message is the same for every
// cause; the cause itself is reachable only through errors.Is.
type cannotOpenError struct{ cause error }

func (e *cannotOpenError) Error() string   { return "tresor: open: " + ErrCannotOpen.Error() }
func (e *cannotOpenError) Unwrap() []error { return []error{ErrCannotOpen, e.cause} }

func openBytes(raw []byte, password []byte, cfg storeConfig) (*Store, error) {
	if len(raw) < len(magic)+4 {
		return nil, ErrTruncated
	}
	if !bytesEqual(raw[:len(magic)], magic[:]) {
		return nil, ErrBadMagic
	}
	off := len(magic)

	hlen := binary.LittleEndian.Uint32(raw[off : off+4])
	off += 4
	if uint64(off)+uint64(hlen) > uint64(len(raw)) {
		return nil, ErrTruncated
	}

	// headerBytes is the exact byte range parsed from the input, never a
	// re-serialization of the decoded header: it is the AEAD associated
	// data, and re-encoding it could silently diverge from what was
	// actually authenticated at Seal time (different map key order,
	// different optional-field omission, a future codec version).
	headerBytes := raw[off : off+int(hlen)]
	off += int(hlen)

	var header OuterHeader
	if err := codec.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if header.VersionMajor > CurrentVersionMajor {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, header.VersionMajor)
	}

	suite, ok := cr.LookupCipher(header.Cipher.Type)
	if !ok {
		return nil, fmt.Errorf("%w: cipher %v", ErrUnsupportedAlgorithm, header.Cipher.Type)
	}
	if header.KDF.Type != Argon2id {
		return nil, fmt.Errorf("%w: kdf %v", ErrUnsupportedAlgorithm, header.KDF.Type)
	}

	tagLen := suite.TagLen()
	if off+tagLen > len(raw) {
		return nil, ErrTruncated
	}
	tag := raw[off : off+tagLen]
	off += tagLen
	ciphertext := raw[off:]

	kdfParams := header.KDF.Params.toArgon2id()
	key, err := kdfParams.Derive(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if cfg.keyLockMem {
		if lockErr := platform.LockMemory(key); lockErr != nil {
			cfg.logger.Warn(context.Background(), "tresor: could not lock key memory", "err", lockErr)
		} else {
			defer platform.UnlockMemory(key)
		}
	}
	defer cr.Zero(key)

	plaintext, err := suite.Open(key, header.Cipher.IV, ciphertext, tag, headerBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFail, err)
	}
	defer cr.Zero(plaintext)

	var data Data
	if err := codec.Unmarshal(plaintext, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	return &Store{header: header, data: &data, cfg: cfg}, nil
}
