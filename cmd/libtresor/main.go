// Command libtresor exports a C ABI mirroring tresor.h: opaque
// Tresor/Entry handles backed by runtime/cgo.Handle, and the same integer
// error codes. Tresor_seal and Tresor_open take a file path and do the
// file I/O themselves — a C caller expects the shared library to take a
// path string, not a byte buffer.
// Build with `go build -buildmode=c-shared` (or c-archive) to produce a
// linkable library alongside a generated header.
package main

/*
#include <stdlib.h>

typedef enum {
	ERR_SUCCESS = 0,
	ERR_AOM     = -1,
	ERR_DNE     = -2,
	ERR_DE      = -3,
	ERR_FILE    = -4,
	ERR_SEAL    = -5,
	ERR_FAIL    = -6,
} TresorError;
*/
import "C"

import (
	"errors"
	"os"
	"runtime/cgo"
	"unsafe"

	"github.com/r4gus/tresor"
)

// storeHandle wraps a *tresor.Store so it can cross the cgo boundary as
// an opaque pointer-sized value.
type storeHandle struct{ store *tresor.Store }

// entryHandle wraps a *tresor.Entry the same way.
type entryHandle struct{ entry *tresor.Entry }

func errCode(err error) C.TresorError {
	switch {
	case err == nil:
		return C.ERR_SUCCESS
	case errors.Is(err, tresor.ErrOOM):
		return C.ERR_AOM
	case errors.Is(err, tresor.ErrNotFound):
		return C.ERR_DNE
	case errors.Is(err, tresor.ErrDuplicate):
		return C.ERR_DE
	case errors.Is(err, tresor.ErrIO):
		return C.ERR_FILE
	case errors.Is(err, tresor.ErrAuthFail),
		errors.Is(err, tresor.ErrBadPayload),
		errors.Is(err, tresor.ErrBadMagic),
		errors.Is(err, tresor.ErrTruncated),
		errors.Is(err, tresor.ErrBadHeader),
		errors.Is(err, tresor.ErrUnsupportedAlgorithm),
		errors.Is(err, tresor.ErrUnsupportedVersion):
		return C.ERR_SEAL
	default:
		return C.ERR_FAIL
	}
}

//export Tresor_new
func Tresor_new(name *C.char) unsafe.Pointer {
	s, err := tresor.New("libtresor/0.1", C.GoString(name), tresor.ChaCha20Poly1305, tresor.CompressionNone, tresor.Argon2id)
	if err != nil {
		return nil
	}
	h := cgo.NewHandle(&storeHandle{store: s})
	return unsafe.Pointer(h)
}

//export Tresor_deinit
func Tresor_deinit(self unsafe.Pointer) {
	if self == nil {
		return
	}
	if s := storeFromHandle(self); s != nil {
		s.Close()
	}
	cgo.Handle(self).Delete()
}

func storeFromHandle(self unsafe.Pointer) *tresor.Store {
	if self == nil {
		return nil
	}
	sh, ok := cgo.Handle(self).Value().(*storeHandle)
	if !ok {
		return nil
	}
	return sh.store
}

func entryFromHandle(self unsafe.Pointer) *tresor.Entry {
	if self == nil {
		return nil
	}
	eh, ok := cgo.Handle(self).Value().(*entryHandle)
	if !ok {
		return nil
	}
	return eh.entry
}

//export Tresor_entry_create
func Tresor_entry_create(self unsafe.Pointer, id *C.char) C.TresorError {
	s := storeFromHandle(self)
	if s == nil {
		return C.ERR_FAIL
	}
	idBytes := []byte(C.GoString(id))
	entry := s.CreateEntry(idBytes)
	err := s.AddEntry(entry)
	return errCode(err)
}

//export Tresor_entry_get
func Tresor_entry_get(self unsafe.Pointer, id *C.char) unsafe.Pointer {
	s := storeFromHandle(self)
	if s == nil {
		return nil
	}
	e, err := s.GetEntry([]byte(C.GoString(id)))
	if err != nil {
		return nil
	}
	h := cgo.NewHandle(&entryHandle{entry: e})
	return unsafe.Pointer(h)
}

//export Tresor_entry_remove
func Tresor_entry_remove(self unsafe.Pointer, id *C.char) C.TresorError {
	s := storeFromHandle(self)
	if s == nil {
		return C.ERR_FAIL
	}
	return errCode(s.RemoveEntry([]byte(C.GoString(id))))
}

// Tresor_entry_get_many returns a NULL-terminated array of malloc'd
// C strings, one per matching entry id, for a filter string of the
// form "KEY:VALUE(,KEY:VALUE)*". Malformed "KEY:VALUE" pairs are skipped
// silently, matching the original adapter's leniency; the core
// tresor.GetEntries itself only ever takes a typed []tresor.Filter.
//
//export Tresor_entry_get_many
func Tresor_entry_get_many(self unsafe.Pointer, filter *C.char) **C.char {
	s := storeFromHandle(self)
	if s == nil {
		return nil
	}
	filters := parseFilterString(C.GoString(filter))
	entries := s.GetEntries(filters)

	arr := C.malloc(C.size_t(len(entries)+1) * C.size_t(unsafe.Sizeof(uintptr(0))))
	out := (*[1 << 28]*C.char)(arr)
	for i, e := range entries {
		out[i] = C.CString(string(e.ID()))
	}
	out[len(entries)] = nil
	return (**C.char)(arr)
}

func parseFilterString(s string) []tresor.Filter {
	if s == "" {
		return nil
	}
	var filters []tresor.Filter
	for _, pair := range splitComma(s) {
		key, value, ok := splitOnce(pair, ':')
		if !ok {
			continue
		}
		filters = append(filters, tresor.Filter{Key: key, Value: []byte(value)})
	}
	return filters
}

func splitComma(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func splitOnce(s string, sep byte) (string, string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

//export Tresor_entry_field_add
func Tresor_entry_field_add(entry unsafe.Pointer, key, value *C.char) C.TresorError {
	e := entryFromHandle(entry)
	if e == nil {
		return C.ERR_FAIL
	}
	now := tresor.SystemClock()
	return errCode(e.AddField(C.GoString(key), []byte(C.GoString(value)), now))
}

//export Tresor_entry_field_get
func Tresor_entry_field_get(entry unsafe.Pointer, key *C.char) *C.char {
	e := entryFromHandle(entry)
	if e == nil {
		return nil
	}
	now := tresor.SystemClock()
	v, err := e.GetField(C.GoString(key), now)
	if err != nil {
		return nil
	}
	return C.CString(string(v))
}

//export Tresor_entry_field_update
func Tresor_entry_field_update(entry unsafe.Pointer, key, value *C.char) C.TresorError {
	e := entryFromHandle(entry)
	if e == nil {
		return C.ERR_FAIL
	}
	now := tresor.SystemClock()
	return errCode(e.UpdateField(C.GoString(key), []byte(C.GoString(value)), now))
}

//export Tresor_seal
func Tresor_seal(self unsafe.Pointer, path, pw *C.char) C.TresorError {
	s := storeFromHandle(self)
	if s == nil {
		return C.ERR_FAIL
	}
	f, err := os.Create(C.GoString(path))
	if err != nil {
		return C.ERR_FILE
	}
	defer f.Close()
	return errCode(s.Seal(f, []byte(C.GoString(pw))))
}

//export Tresor_open
func Tresor_open(path, pw *C.char) unsafe.Pointer {
	f, err := os.Open(C.GoString(path))
	if err != nil {
		return nil
	}
	defer f.Close()
	s, err := tresor.Open(f, []byte(C.GoString(pw)))
	if err != nil {
		return nil
	}
	h := cgo.NewHandle(&storeHandle{store: s})
	return unsafe.Pointer(h)
}

func main() {}
