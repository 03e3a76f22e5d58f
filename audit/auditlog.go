// Package audit provides a hash-chained, append-only record of store
// lifecycle events: created, sealed, opened, entries added or removed.
// Nothing in this package sees field values or key material, only event
// text and timestamps; a Store emits into it through the same Logger
// injection point every other lifecycle event uses.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrChainBroken is returned by Verify when an entry's hash does not
// match its predecessor's, meaning the log was truncated, reordered, or
// tampered with.
var ErrChainBroken = errors.New("audit: chain broken")

// Entry is one hash-chained record: a Unix millisecond timestamp, the
// event text, and the hash covering both the text and the previous
// entry's hash.
type Entry struct {
	At   int64
	What string
	Hash string
}

// Log is an in-memory hash-chained event log. It is not safe for
// concurrent use; a caller sharing one Log across goroutines must
// serialize its own calls to Append.
type Log struct {
	lastHash []byte
	entries  []Entry
}

// New returns an empty Log.
func New() *Log { return &Log{} }

// Append records what at timestamp at (epoch milliseconds, typically
// from the same Clock a Store uses) and returns the recorded Entry.
func (l *Log) Append(at int64, what string) Entry {
	h := sha256.New()
	h.Write(l.lastHash)
	h.Write([]byte(what))
	sum := h.Sum(nil)
	l.lastHash = sum

	e := Entry{At: at, What: what, Hash: hex.EncodeToString(sum)}
	l.entries = append(l.entries, e)
	return e
}

// Verify recomputes the hash chain over every recorded Entry and reports
// ErrChainBroken on the first mismatch.
func (l *Log) Verify() error {
	var prev []byte
	for _, e := range l.entries {
		h := sha256.New()
		h.Write(prev)
		h.Write([]byte(e.What))
		sum := h.Sum(nil)
		if hex.EncodeToString(sum) != e.Hash {
			return ErrChainBroken
		}
		prev = sum
	}
	return nil
}

// Entries returns a copy of every recorded Entry in append order.
func (l *Log) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}
