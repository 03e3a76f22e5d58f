//go:build linux || darwin

// Package platform collects small OS-hardening helpers the core seal/open
// engine and an embedding host can opt into: pinning sensitive buffers out
// of swap, disabling core dumps, and wrapping a derived key through an OS
// credential store. None of it is required by Seal/Open.
package platform

import "golang.org/x/sys/unix"

// LockMemory pins b so the kernel never writes it to swap. Best effort:
// it commonly fails without CAP_IPC_LOCK or a raised RLIMIT_MEMLOCK, and
// callers should treat a non-nil error as "not pinned", not as fatal.
func LockMemory(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return unix.Mlock(b)
}

// UnlockMemory reverses LockMemory.
func UnlockMemory(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return unix.Munlock(b)
}
