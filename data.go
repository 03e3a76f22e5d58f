package tresor

// Data is the secret payload encrypted inside a sealed blob: a generator
// tag, the store's name, its timestamps, and its ordered list of Entries.
// Entry ids within Data are pairwise distinct; the Store enforces this on
// every insertion.
type Data struct {
	Generator  string   `cbor:"generator"`
	Name       string   `cbor:"name"`
	CreatedAt  int64    `cbor:"created_at"`
	ModifiedAt int64    `cbor:"modified_at"`
	Entries    []*Entry `cbor:"entries"`
}

func newData(generator, name string, now int64) *Data {
	return &Data{
		Generator:  generator,
		Name:       name,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

func (d *Data) indexOf(id []byte) int {
	for i, e := range d.Entries {
		if bytesEqual(e.id, id) {
			return i
		}
	}
	return -1
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// zero wipes every field value of every entry, used when the Data a Store
// owns is discarded.
func (d *Data) zero() {
	for _, e := range d.Entries {
		e.zero()
	}
}
