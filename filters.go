package tresor

import "bytes"

// Filter selects Entries that contain a Field with the exact Key and
// exact Value. GetEntries returns Entries satisfying every Filter in the
// slice; an empty slice matches every Entry.
type Filter struct {
	Key   string
	Value []byte
}

// matches reports whether e has a field equal to f, using e's own
// key index for an O(1) lookup rather than a linear scan of its fields.
func (f Filter) matches(e *Entry) bool {
	idx, ok := e.fieldIndex[f.Key]
	if !ok {
		return false
	}
	return bytes.Equal(e.fields[idx].value, f.Value)
}
