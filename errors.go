package tresor

import "errors"

// Sentinel errors returned by Store and Entry operations. Wrap with
// fmt.Errorf("...: %w", err) at call sites that add context; test and
// caller code should compare with errors.Is against these values, never
// against error strings.
var (
	// ErrDuplicate is returned when inserting an entry id or field key
	// that already exists.
	ErrDuplicate = errors.New("tresor: already exists")

	// ErrNotFound is returned when looking up, updating, or removing an
	// absent entry id or field key.
	ErrNotFound = errors.New("tresor: not found")

	// ErrOOM is returned when an allocation needed to satisfy a request
	// fails. Never recoverable inside the library.
	ErrOOM = errors.New("tresor: out of memory")

	// ErrIO wraps a failure from a caller-supplied io.Writer/io.Reader.
	ErrIO = errors.New("tresor: io error")

	// ErrRateLimited is returned by Open when a caller-supplied rate
	// limiter denies the attempt before the KDF runs.
	ErrRateLimited = errors.New("tresor: too many open attempts")

	// ErrCannotOpen is the single error every envelope/structural/auth
	// failure during Open collapses to at the public API, so a wrong
	// password is indistinguishable from a corrupted blob. The precise
	// cause is still wrapped underneath and reachable with errors.Is
	// against the internal sentinels below, for tests.
	ErrCannotOpen = errors.New("tresor: cannot open store")

	// ErrBadMagic, ErrTruncated, ErrBadHeader, ErrBadPayload,
	// ErrUnsupportedAlgorithm, ErrAuthFail, and ErrUnsupportedVersion are
	// the precise causes ErrCannotOpen collapses to at the Open boundary.
	// They stay reachable with errors.Is for tests and for adapters (like
	// the C ABI bindings) that need a finer-grained mapping than the
	// public API exposes.
	ErrBadMagic             = errors.New("tresor: bad magic")
	ErrTruncated            = errors.New("tresor: truncated blob")
	ErrBadHeader            = errors.New("tresor: malformed header")
	ErrBadPayload           = errors.New("tresor: malformed payload")
	ErrUnsupportedAlgorithm = errors.New("tresor: unsupported algorithm")
	ErrAuthFail             = errors.New("tresor: authentication failed")
	ErrUnsupportedVersion   = errors.New("tresor: unsupported major version")
)
