//go:build linux || darwin

package platform

import "golang.org/x/sys/unix"

// DisableCoreDumps sets RLIMIT_CORE to zero so a crash never writes
// decrypted Data or a derived key to a core file. A host calls this once
// at startup if it wants the protection; Tresor never calls it on its
// own, since changing a process-wide resource limit behind the caller's
// back is not this library's call to make.
func DisableCoreDumps() error {
	rlim := unix.Rlimit{Cur: 0, Max: 0}
	return unix.Setrlimit(unix.RLIMIT_CORE, &rlim)
}
