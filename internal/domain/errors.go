package domain

import (
	"errors"
	"fmt"
)

// ErrorKind identifies a failure class. The set is closed; every error
// surfaced by this module carries exactly one kind.
type ErrorKind string

const (
	KindWindowNotFound         ErrorKind = "window_not_found"
	KindNotABrowser            ErrorKind = "not_a_browser"
	KindUrlExtractionFailed    ErrorKind = "url_extraction_failed"
	KindBrowserDetectionFailed ErrorKind = "browser_detection_failed"
	KindPlatformError          ErrorKind = "platform_error"
	KindInvalidUrl             ErrorKind = "invalid_url"
	KindTimeout                ErrorKind = "timeout"
	KindPermissionDenied       ErrorKind = "permission_denied"
	KindNetworkError           ErrorKind = "network_error"
	KindParseError             ErrorKind = "parse_error"
	KindNoActiveTabs           ErrorKind = "no_active_tabs"
	KindCapabilityUnavailable  ErrorKind = "capability_unavailable"
	KindOther                  ErrorKind = "other"
)

// Error is the single error type used across the module. Two Errors are
// considered equivalent by errors.Is when their kinds match, so sentinels
// below can be used as match targets regardless of the reason text.
type Error struct {
	Kind   ErrorKind
	Reason string
	cause  error
}

// E builds an error of the given kind with a human-readable reason.
func E(kind ErrorKind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// Ef builds an error with a formatted reason.
func Ef(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Wrap builds an error of the given kind around an underlying cause.
func Wrap(kind ErrorKind, reason string, cause error) *Error {
	return &Error{Kind: kind, Reason: reason, cause: cause}
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error of the same kind, enabling errors.Is against the
// kind sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Kind sentinels for errors.Is matching.
var (
	ErrWindowNotFound        = E(KindWindowNotFound, "")
	ErrNotABrowser           = E(KindNotABrowser, "")
	ErrUrlExtractionFailed   = E(KindUrlExtractionFailed, "")
	ErrInvalidUrl            = E(KindInvalidUrl, "")
	ErrTimeout               = E(KindTimeout, "")
	ErrNetworkError          = E(KindNetworkError, "")
	ErrParseError            = E(KindParseError, "")
	ErrNoActiveTabs          = E(KindNoActiveTabs, "")
	ErrCapabilityUnavailable = E(KindCapabilityUnavailable, "")
)

// KindOf returns the kind carried by err, or KindOther for foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}
