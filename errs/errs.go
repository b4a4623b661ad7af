// Package errs defines the error taxonomy shared across the installer.
// Every fatal condition maps to one of a small set of kinds so callers can
// branch on the failure class without string matching.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an installer error.
type Kind int

const (
	// KindDownload covers non-success HTTP statuses and stalled connections.
	KindDownload Kind = iota
	// KindNotFound covers a missing archive entry, manifest field or
	// processor main class.
	KindNotFound
	// KindUnknownVersion covers a game or loader version absent from a
	// remote catalog.
	KindUnknownVersion
	// KindUnsupportedArchitecture covers hosts with no Java runtime build.
	KindUnsupportedArchitecture
	// KindParse covers malformed artifact coordinates and malformed JSON.
	KindParse
	// KindFail covers a processor step that exited non-zero.
	KindFail
)

func (k Kind) String() string {
	switch k {
	case KindDownload:
		return "download"
	case KindNotFound:
		return "not found"
	case KindUnknownVersion:
		return "unknown version"
	case KindUnsupportedArchitecture:
		return "unsupported architecture"
	case KindParse:
		return "parse"
	case KindFail:
		return "fail"
	}
	return "unknown"
}

// Error is a classified installer error, optionally wrapping a cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err or any error it wraps has the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// Downloadf returns a KindDownload error.
func Downloadf(format string, a ...any) error {
	return &Error{Kind: KindDownload, Msg: fmt.Sprintf(format, a...)}
}

// NotFoundf returns a KindNotFound error.
func NotFoundf(format string, a ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, a...)}
}

// UnknownVersionf returns a KindUnknownVersion error.
func UnknownVersionf(format string, a ...any) error {
	return &Error{Kind: KindUnknownVersion, Msg: fmt.Sprintf(format, a...)}
}

// UnsupportedArchitecture returns a KindUnsupportedArchitecture error for
// the current host.
func UnsupportedArchitecture(os, arch string) error {
	return &Error{Kind: KindUnsupportedArchitecture, Msg: fmt.Sprintf("%s/%s", os, arch)}
}

// Parsef returns a KindParse error.
func Parsef(format string, a ...any) error {
	return &Error{Kind: KindParse, Msg: fmt.Sprintf(format, a...)}
}

// Failf returns a KindFail error.
func Failf(format string, a ...any) error {
	return &Error{Kind: KindFail, Msg: fmt.Sprintf(format, a...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(k Kind, err error, format string, a ...any) error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, a...), Err: err}
}
