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

// magic is the fixed 6-byte prefix of every sealed blob: ASCII "SECRET".
var magic = [6]byte{0x53, 0x45, 0x43, 0x52, 0x45, 0x54}

// Seal derives a fresh key from password, encrypts the Store's Data, and
// writes magic || hlen || header || tag || ciphertext to w. A failure
// aborts with the key and plaintext zeroized; no partial success is
// reported, though bytes already handed to w before the failure must be
// treated as garbage by the caller.
func (s *Store) Seal(w io.Writer, password []byte) error {
	suite, ok := cr.LookupCipher(s.header.Cipher.Type)
	if !ok {
		return fmt.Errorf("tresor: seal: %w: cipher %v", ErrUnsupportedAlgorithm, s.header.Cipher.Type)
	}

	// 1. Seed a fresh KDF salt.
	kdfParams := cr.Argon2idParams{
		Iterations:  s.header.KDF.Params.Iterations,
		MemoryKiB:   s.header.KDF.Params.MemoryKiB,
		Parallelism: s.header.KDF.Params.Parallelism,
	}
	if kdfParams.Iterations == 0 {
		kdfParams = s.cfg.kdfParams
	}
	if err := kdfParams.Seed(s.cfg.rng.Read); err != nil {
		return fmt.Errorf("tresor: seal: %w", err)
	}

	// 2. Derive the AEAD key; zeroed on every exit path.
	key, err := kdfParams.Derive(password)
	if err != nil {
		return fmt.Errorf("tresor: seal: %w", err)
	}
	if s.cfg.keyLockMem {
		if lockErr := platform.LockMemory(key); lockErr != nil {
			s.cfg.logger.Warn(context.Background(), "tresor: could not lock key memory", "err", lockErr)
		} else {
			defer platform.UnlockMemory(key)
		}
	}
	defer cr.Zero(key)

	// 3. Fresh IV of the cipher's required length.
	iv := make([]byte, suite.IVLen())
	if err := s.cfg.rng.Read(iv); err != nil {
		return fmt.Errorf("tresor: seal: generate iv: %w", err)
	}

	s.header.KDF.Params = kdfParamsFromArgon2id(kdfParams)
	s.header.Cipher.IV = iv

	// 4. Serialize the header; its bytes are the AEAD associated data.
	headerBytes, err := codec.Marshal(s.header)
	if err != nil {
		return fmt.Errorf("tresor: seal: encode header: %w", err)
	}

	// 5. Serialize Data; zeroed on every exit path.
	plaintext, err := codec.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("tresor: seal: encode payload: %w", err)
	}
	defer cr.Zero(plaintext)

	// 6. AEAD-encrypt, AAD = the exact serialized header bytes.
	ciphertext, tag, err := suite.Seal(key, iv, plaintext, headerBytes)
	if err != nil {
		return fmt.Errorf("tresor: seal: encrypt: %w", err)
	}

	// 7. Emit magic || hlen || header || tag || ciphertext.
	if err := writeAll(w, magic[:]); err != nil {
		return err
	}
	var hlen [4]byte
	binary.LittleEndian.PutUint32(hlen[:], uint32(len(headerBytes)))
	if err := writeAll(w, hlen[:]); err != nil {
		return err
	}
	if err := writeAll(w, headerBytes); err != nil {
		return err
	}
	if err := writeAll(w, tag); err != nil {
		return err
	}
	if err := writeAll(w, ciphertext); err != nil {
		return err
	}

	s.cfg.logger.Info(context.Background(), "tresor: store sealed", "entries", len(s.data.Entries), "header_bytes", len(headerBytes), "ciphertext_bytes", len(ciphertext))
	return nil
}

func writeAll(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
