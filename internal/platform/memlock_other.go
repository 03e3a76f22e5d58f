//go:build !linux && !darwin

package platform

// LockMemory is a no-op on platforms without mlock(2); the derived key is
// still zeroed by the caller on every exit path, just not pinned out of
// swap.
func LockMemory(b []byte) error { return nil }

// UnlockMemory is a no-op on platforms without munlock(2).
func UnlockMemory(b []byte) error { return nil }
