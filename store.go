package tresor

import (
	"context"
	"fmt"

	cr "github.com/r4gus/tresor/internal/crypto"
)

// Store (Tresor) is the top-level container of Entries together with its
// cryptographic metadata. A Store is not safe for concurrent mutation; the
// injected RNG and clock make its behavior deterministic under test.
type Store struct {
	header OuterHeader
	data   *Data
	cfg    storeConfig
}

// New constructs a fresh, empty Store. cipher, compression, and kdf select
// the algorithms recorded in the header on the first Seal; generator
// identifies the producing library (e.g. "tresor-go/0.1") and name is the
// store's human-readable name.
func New(generator, name string, cipher CipherID, compression CompressionID, kdf KDFID, opts ...Option) (*Store, error) {
	if _, ok := cr.LookupCipher(cipher); !ok {
		return nil, fmt.Errorf("tresor: new store: %w: cipher %v", ErrUnsupportedAlgorithm, cipher)
	}
	if kdf != Argon2id {
		return nil, fmt.Errorf("tresor: new store: %w: kdf %v", ErrUnsupportedAlgorithm, kdf)
	}
	if compression != CompressionNone {
		return nil, fmt.Errorf("tresor: new store: %w: compression %v", ErrUnsupportedAlgorithm, compression)
	}

	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	now := cfg.clock()
	s := &Store{
		header: newOuterHeader(cipher, compression, kdf),
		data:   newData(generator, name, now),
		cfg:    cfg,
	}
	s.cfg.logger.Info(context.Background(), "tresor: store created", "name", name, "cipher", cipher.String(), "kdf", kdf.String())
	return s, nil
}

// Name returns the store's name.
func (s *Store) Name() string { return s.data.Name }

// CreateEntry constructs a detached Entry with CreatedAt, ModifiedAt, and
// AccessedAt all set to now(). It is not inserted into the Store; call
// AddEntry to insert it.
func (s *Store) CreateEntry(id []byte) *Entry {
	return newEntry(id, s.cfg.clock())
}

// AddEntry inserts entry into the Store. It fails with ErrDuplicate when
// an Entry with an identical id already exists, in which case the caller
// retains ownership and the Store is unchanged. On success ownership
// transfers to the Store and Data.ModifiedAt advances to now().
func (s *Store) AddEntry(entry *Entry) error {
	if s.data.indexOf(entry.id) >= 0 {
		return fmt.Errorf("tresor: add entry: %w", ErrDuplicate)
	}
	s.data.Entries = append(s.data.Entries, entry)
	s.data.ModifiedAt = s.cfg.clock()
	s.cfg.logger.Info(context.Background(), "tresor: entry added", "fields", len(entry.fields))
	return nil
}

// GetEntry returns a mutable handle to the Entry with matching id, or
// ErrNotFound. It does not update any timestamp.
func (s *Store) GetEntry(id []byte) (*Entry, error) {
	idx := s.data.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("tresor: get entry: %w", ErrNotFound)
	}
	return s.data.Entries[idx], nil
}

// RemoveEntry removes and destroys the Entry with matching id, zeroing
// every field value it owned. ErrNotFound if absent. On success
// Data.ModifiedAt advances to now().
func (s *Store) RemoveEntry(id []byte) error {
	idx := s.data.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("tresor: remove entry: %w", ErrNotFound)
	}
	s.data.Entries[idx].zero()
	s.data.Entries = append(s.data.Entries[:idx], s.data.Entries[idx+1:]...)
	s.data.ModifiedAt = s.cfg.clock()
	s.cfg.logger.Info(context.Background(), "tresor: entry removed")
	return nil
}

// GetEntries returns, in insertion order, every Entry whose fields
// satisfy all of filters. An empty filter slice returns every Entry.
func (s *Store) GetEntries(filters []Filter) []*Entry {
	if len(filters) == 0 {
		out := make([]*Entry, len(s.data.Entries))
		copy(out, s.data.Entries)
		return out
	}
	var out []*Entry
	for _, e := range s.data.Entries {
		matchAll := true
		for _, f := range filters {
			if !f.matches(e) {
				matchAll = false
				break
			}
		}
		if matchAll {
			out = append(out, e)
		}
	}
	return out
}

// EntryCount returns the number of entries currently in the Store.
func (s *Store) EntryCount() int { return len(s.data.Entries) }

// NeedsRehash reports whether the Argon2id parameters currently recorded
// in the header (i.e. the ones this Store was opened or last sealed with)
// fall below the Store's configured RehashPolicy target. A caller can use
// this after Open to decide whether to immediately reseal with stronger
// parameters.
func (s *Store) NeedsRehash() bool {
	if s.header.KDF.Type != Argon2id {
		return false
	}
	current := s.header.KDF.Params.toArgon2id()
	return current.WeakerThan(s.cfg.rehash.toArgon2id())
}

// UpgradeKDF resets the Store's recorded KDF cost parameters to its
// configured RehashPolicy target, so the next Seal call reseeds a fresh
// salt and re-derives the key under the stronger parameters instead of
// replaying the ones the Store was opened with. A caller typically calls
// this right after NeedsRehash reports true.
func (s *Store) UpgradeKDF() {
	s.header.KDF.Params = kdfParamsFromArgon2id(s.cfg.rehash.toArgon2id())
	s.header.KDF.Params.Salt = nil
	s.cfg.logger.Info(context.Background(), "tresor: kdf parameters upgraded")
}

// Close zeroes every entry's field value this Store holds. Go's GC would
// reclaim the memory itself, but a caller done with a Store (after a
// final Seal, or after deciding not to persist it at all) should call
// Close so the plaintext does not linger in memory until the next GC
// cycle. Close leaves the Store unusable; calling any other method on it
// afterward is a programmer error.
func (s *Store) Close() {
	s.data.zero()
}
