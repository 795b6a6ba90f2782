// Package domain contains core business entities and interfaces.
// This is the innermost layer in Clean Architecture - no external dependencies.
package domain

import "strings"

// WindowSnapshot is a point-in-time observation of the foreground window.
// It is never mutated after the probe returns it; every extraction call
// works from a fresh snapshot.
type WindowSnapshot struct {
	AppName     string
	ProcessPath string
	ProcessID   int32
	Title       string
	Position    WindowPosition
}

// WindowPosition holds the window rectangle in screen coordinates.
type WindowPosition struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BrowserKind enumerates the browsers the classifier recognizes.
type BrowserKind string

const (
	BrowserChrome  BrowserKind = "chrome"
	BrowserFirefox BrowserKind = "firefox"
	BrowserEdge    BrowserKind = "edge"
	BrowserSafari  BrowserKind = "safari"
	BrowserBrave   BrowserKind = "brave"
	BrowserOpera   BrowserKind = "opera"
	BrowserVivaldi BrowserKind = "vivaldi"
	BrowserUnknown BrowserKind = "unknown"
)

// BrowserType is the classifier's verdict for a snapshot. Label is only
// populated for the Unknown kind and records the detection origin
// (e.g. "detected_from_path").
type BrowserType struct {
	Kind  BrowserKind `json:"kind"`
	Label string      `json:"label,omitempty"`
}

// Unknown builds an Unknown browser type tagged with its origin.
func Unknown(label string) BrowserType {
	return BrowserType{Kind: BrowserUnknown, Label: label}
}

func (b BrowserType) String() string {
	if b.Kind == BrowserUnknown && b.Label != "" {
		return string(b.Kind) + "(" + b.Label + ")"
	}
	return string(b.Kind)
}

// BrowserMetadata carries best-effort side data about the browser session.
// Version and TabsCount have no reliable source of truth and may stay unset.
type BrowserMetadata struct {
	Version     *string `json:"version,omitempty"`
	TabsCount   *int    `json:"tabs_count,omitempty"`
	IsIncognito bool    `json:"is_incognito"`
}

// ExtractionMethod selects how the orchestrator obtains the URL.
type ExtractionMethod string

const (
	// MethodAuto prefers native automation and falls back to remote debugging.
	MethodAuto ExtractionMethod = "auto"
	// MethodRemoteDebugging uses only the browser's debugging HTTP endpoint.
	MethodRemoteDebugging ExtractionMethod = "devtools"
	// MethodNativeAutomation uses only the OS-level script strategy.
	MethodNativeAutomation ExtractionMethod = "native"
)

// ParseMethod maps a CLI flag value to an ExtractionMethod.
func ParseMethod(s string) (ExtractionMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return MethodAuto, nil
	case "devtools", "remote-debugging", "remote":
		return MethodRemoteDebugging, nil
	case "native", "script":
		return MethodNativeAutomation, nil
	default:
		return "", E(KindOther, "unknown extraction method: "+s)
	}
}

// BrowserInfo is the final result record for one extraction call.
type BrowserInfo struct {
	URL         string         `json:"url"`
	Title       string         `json:"title"`
	BrowserName string         `json:"browser_name"`
	BrowserType BrowserType    `json:"browser_type"`
	Version     *string        `json:"version,omitempty"`
	TabsCount   *int           `json:"tabs_count,omitempty"`
	IsIncognito bool           `json:"is_incognito"`
	ProcessID   int32          `json:"process_id"`
	Position    WindowPosition `json:"window_position"`
}

// ValidURL reports whether a URL satisfies the scheme invariant.
// Every extraction path must reject values that fail this check.
func ValidURL(url string) bool {
	return strings.HasPrefix(url, "http://") ||
		strings.HasPrefix(url, "https://") ||
		strings.HasPrefix(url, "file://")
}
