package platform

import (
	"time"

	"github.com/atotto/clipboard"
)

// Clipboard copies text to the system clipboard, clearing it again after
// ttl if the clipboard still holds what was copied. It exists for the CLI
// (cmd/tresorctl), never for the core library — Seal/Open/Store never
// touch the clipboard.
type Clipboard interface {
	Set(text string, ttl time.Duration) error
}

type noopClipboard struct{}

func (noopClipboard) Set(string, time.Duration) error { return nil }

// NewClipboard returns a no-op Clipboard, safe to use as a default when a
// caller has not opted into real clipboard access.
func NewClipboard() Clipboard { return noopClipboard{} }

type systemClipboard struct{}

// NewSystemClipboard returns a Clipboard backed by the OS clipboard via
// github.com/atotto/clipboard.
func NewSystemClipboard() Clipboard { return systemClipboard{} }

func (systemClipboard) Set(text string, ttl time.Duration) error {
	if err := clipboard.WriteAll(text); err != nil {
		return err
	}
	if ttl <= 0 {
		return nil
	}
	go func() {
		time.Sleep(ttl)
		if cur, err := clipboard.ReadAll(); err == nil && cur == text {
			_ = clipboard.WriteAll("")
		}
	}()
	return nil
}
