package tresor

import "github.com/google/uuid"

// NewRandomID returns a fresh n-byte random entry id read through rng. n
// is the caller's choice; 16 bytes is a reasonable default for a store
// that does not need ids to be globally unique outside itself.
func NewRandomID(rng RNG, n int) ([]byte, error) {
	id := make([]byte, n)
	if err := rng.Read(id); err != nil {
		return nil, err
	}
	return id, nil
}

// NewUUIDID returns a fresh random (v4) UUID's 16 raw bytes as an entry
// id, for callers that want ids to double as UUIDs outside the store
// (e.g. surfaced to a host's own database).
func NewUUIDID() ([]byte, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	b := id[:]
	return append([]byte(nil), b...), nil
}
