package domain

import "context"

// WindowProbe returns the OS's notion of the current foreground window.
// Implementations shell out to platform tooling (System Events, xprop,
// PowerShell) and resolve process identity via gopsutil.
type WindowProbe interface {
	// ActiveWindow takes a fresh snapshot of the foreground window.
	// Failure here is terminal for the whole extraction call.
	ActiveWindow(ctx context.Context) (*WindowSnapshot, error)
}

// URLStrategy is one platform's ordered fallback chain of native
// extraction techniques. Implementations: Windows, macOS, Linux (stub).
type URLStrategy interface {
	// Name identifies the strategy (e.g. "windows", "macos").
	Name() string

	// ExtractURL runs the fallback chain and returns the first URL that
	// passes the scheme invariant. The last stage's failure is returned
	// verbatim when the chain is exhausted.
	ExtractURL(ctx context.Context, snapshot *WindowSnapshot, browser BrowserType) (string, error)
}

// DebugClient talks to a locally running browser's remote-debugging
// HTTP endpoint. It is the only component with network I/O.
type DebugClient interface {
	// Available probes the endpoint; it never propagates network errors.
	Available(ctx context.Context) bool

	// ExtractInfo builds a BrowserInfo from the foreground page. Fields
	// the debugging API cannot supply (process id, geometry, metadata)
	// are left at their zero values.
	ExtractInfo(ctx context.Context) (*BrowserInfo, error)
}
