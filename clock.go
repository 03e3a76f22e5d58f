package tresor

import "time"

// Clock returns the current time as signed milliseconds since the Unix
// epoch. It is a first-class, injectable dependency so that sealing and
// timestamping are deterministic under test.
type Clock func() int64

// SystemClock is the default Clock, backed by time.Now.
func SystemClock() int64 {
	return time.Now().UnixMilli()
}
