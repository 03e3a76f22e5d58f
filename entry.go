package tresor

import (
	"fmt"

	"github.com/r4gus/tresor/internal/codec"
	cr "github.com/r4gus/tresor/internal/crypto"
)

// Entry is a named collection of Fields, addressed by a stable id that
// must be unique within the Store that owns it. An Entry owns every byte
// of its id, keys, and values; it is mutated only through these methods.
type Entry struct {
	id         []byte
	createdAt  int64
	modifiedAt int64
	accessedAt int64

	fields     []Field
	fieldIndex map[string]int
}

// newEntry constructs a detached Entry with all three timestamps set to
// now. It is not inserted into any Store.
func newEntry(id []byte, now int64) *Entry {
	return &Entry{
		id:         append([]byte(nil), id...),
		createdAt:  now,
		modifiedAt: now,
		accessedAt: now,
		fieldIndex: make(map[string]int),
	}
}

// ID returns a copy of the entry's id.
func (e *Entry) ID() []byte {
	id := make([]byte, len(e.id))
	copy(id, e.id)
	return id
}

// CreatedAt returns the creation timestamp in epoch milliseconds.
func (e *Entry) CreatedAt() int64 { return e.createdAt }

// ModifiedAt returns the last-modification timestamp in epoch milliseconds.
func (e *Entry) ModifiedAt() int64 { return e.modifiedAt }

// AccessedAt returns the last-access timestamp in epoch milliseconds,
// updated on every successful GetField call; see the note there.
func (e *Entry) AccessedAt() int64 { return e.accessedAt }

// Fields returns a copy of the entry's fields in insertion order.
func (e *Entry) Fields() []Field {
	out := make([]Field, len(e.fields))
	copy(out, e.fields)
	return out
}

// AddField appends a new Field with the given key and value, copying value
// into Entry-owned storage. It fails with ErrDuplicate if key is already
// present. On success it sets ModifiedAt to now.
func (e *Entry) AddField(key string, value []byte, now int64) error {
	if _, exists := e.fieldIndex[key]; exists {
		return fmt.Errorf("tresor: add field %q: %w", key, ErrDuplicate)
	}
	v := make([]byte, len(value))
	copy(v, value)
	e.fieldIndex[key] = len(e.fields)
	e.fields = append(e.fields, Field{key: key, value: v})
	e.modifiedAt = now
	return nil
}

// GetField returns a copy of the value stored under key, or ErrNotFound.
// AccessedAt is advanced to now by this method on every successful read.
// Values read through Fields() do not update AccessedAt. See DESIGN.md for
// the reasoning.
func (e *Entry) GetField(key string, now int64) ([]byte, error) {
	idx, ok := e.fieldIndex[key]
	if !ok {
		return nil, fmt.Errorf("tresor: get field %q: %w", key, ErrNotFound)
	}
	if now > e.accessedAt {
		e.accessedAt = now
	}
	return e.fields[idx].Value(), nil
}

// UpdateField replaces the value of an existing field, zeroing the prior
// value before it is released. Fails with ErrNotFound if key is absent.
// On success it sets ModifiedAt to now.
func (e *Entry) UpdateField(key string, value []byte, now int64) error {
	idx, ok := e.fieldIndex[key]
	if !ok {
		return fmt.Errorf("tresor: update field %q: %w", key, ErrNotFound)
	}
	cr.Zero(e.fields[idx].value)
	v := make([]byte, len(value))
	copy(v, value)
	e.fields[idx].value = v
	e.modifiedAt = now
	return nil
}

// RemoveField removes the field under key, zeroing its value before
// release. Fails with ErrNotFound if absent.
func (e *Entry) RemoveField(key string) error {
	idx, ok := e.fieldIndex[key]
	if !ok {
		return fmt.Errorf("tresor: remove field %q: %w", key, ErrNotFound)
	}
	cr.Zero(e.fields[idx].value)

	e.fields = append(e.fields[:idx], e.fields[idx+1:]...)
	delete(e.fieldIndex, key)
	for k, i := range e.fieldIndex {
		if i > idx {
			e.fieldIndex[k] = i - 1
		}
	}
	return nil
}

// zero overwrites every field value owned by this entry, used when the
// entry is removed from a Store or the Store is destroyed.
func (e *Entry) zero() {
	for i := range e.fields {
		cr.Zero(e.fields[i].value)
	}
}

// entryWire is the CBOR wire shape of an Entry: a map keyed by attribute
// name, with fields as an ordered array of {key, value} maps.
type entryWire struct {
	ID         []byte      `cbor:"id"`
	CreatedAt  int64       `cbor:"created_at"`
	ModifiedAt int64       `cbor:"modified_at"`
	AccessedAt int64       `cbor:"accessed_at"`
	Fields     []fieldWire `cbor:"fields"`
}

type fieldWire struct {
	Key   string `cbor:"key"`
	Value []byte `cbor:"value"`
}

// MarshalCBOR implements cbor.Marshaler so Entry's private fields are
// serialized in a stable, explicit shape rather than via reflection over
// unexported struct fields (which would serialize nothing).
func (e *Entry) MarshalCBOR() ([]byte, error) {
	w := entryWire{
		ID:         e.id,
		CreatedAt:  e.createdAt,
		ModifiedAt: e.modifiedAt,
		AccessedAt: e.accessedAt,
		Fields:     make([]fieldWire, len(e.fields)),
	}
	for i, f := range e.fields {
		w.Fields[i] = fieldWire{Key: f.key, Value: f.value}
	}
	return codec.Marshal(w)
}

// UnmarshalCBOR implements cbor.Unmarshaler, the mirror of MarshalCBOR.
func (e *Entry) UnmarshalCBOR(data []byte) error {
	var w entryWire
	if err := codec.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("tresor: decode entry: %w", err)
	}
	e.id = w.ID
	e.createdAt = w.CreatedAt
	e.modifiedAt = w.ModifiedAt
	e.accessedAt = w.AccessedAt
	e.fields = make([]Field, len(w.Fields))
	e.fieldIndex = make(map[string]int, len(w.Fields))
	for i, wf := range w.Fields {
		if _, dup := e.fieldIndex[wf.Key]; dup {
			return fmt.Errorf("tresor: decode entry: %w: duplicate field key %q", ErrBadPayload, wf.Key)
		}
		e.fields[i] = Field{key: wf.Key, value: wf.Value}
		e.fieldIndex[wf.Key] = i
	}
	return nil
}
