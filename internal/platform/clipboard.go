package platform

import "github.com/atotto/clipboard"

// ClipboardGuard snapshots and restores the user's clipboard around the
// keyboard-simulation technique, which transiently overwrites it. The
// contract is restore-on-every-exit-path, including failures, so a
// half-finished extraction never corrupts user clipboard state.
type ClipboardGuard interface {
	Snapshot() (string, error)
	Restore(content string) error
}

// SystemClipboard is the real clipboard.
type SystemClipboard struct{}

// Snapshot reads the current clipboard text.
func (SystemClipboard) Snapshot() (string, error) {
	return clipboard.ReadAll()
}

// Restore writes the saved text back.
func (SystemClipboard) Restore(content string) error {
	return clipboard.WriteAll(content)
}
