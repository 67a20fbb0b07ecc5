// pkg/printer/errors.go
package printer

import (
	"errors"
	"fmt"
)

// Kind classifies a printing failure by the phase that produced it
type Kind string

const (
	KindDiscovery           Kind = "DISCOVERY"
	KindPlatformUnsupported Kind = "PLATFORM_UNSUPPORTED"
	KindOpen                Kind = "OPEN"
	KindJobStart            Kind = "JOB_START"
	KindWrite               Kind = "WRITE"
	KindPartialWrite        Kind = "PARTIAL_WRITE"
	KindShellInvocation     Kind = "SHELL_INVOCATION"
)

// Sentinel errors for errors.Is matching against a Kind
var (
	ErrDiscovery           = &Error{Kind: KindDiscovery}
	ErrPlatformUnsupported = &Error{Kind: KindPlatformUnsupported}
	ErrOpen                = &Error{Kind: KindOpen}
	ErrJobStart            = &Error{Kind: KindJobStart}
	ErrWrite               = &Error{Kind: KindWrite}
	ErrPartialWrite        = &Error{Kind: KindPartialWrite}
	ErrShellInvocation     = &Error{Kind: KindShellInvocation}
)

// Error is the error type returned by every backend operation.
// Op names the failing call, Detail carries the OS-reported diagnostic.
type Error struct {
	Kind    Kind
	Op      string
	Printer string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Printer != "" {
		msg += fmt.Sprintf(" (printer %q)", e.Printer)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind only. A partial write also counts as a write failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind == t.Kind {
		return true
	}
	return e.Kind == KindPartialWrite && t.Kind == KindWrite
}

// NewError builds a printer error of the given kind
func NewError(kind Kind, op, printerName, detail string, err error) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Printer: printerName,
		Detail:  detail,
		Err:     err,
	}
}

// PartialWrite reports that the OS accepted fewer bytes than were supplied
func PartialWrite(printerName string, written, expected int) *Error {
	return &Error{
		Kind:    KindPartialWrite,
		Op:      "write",
		Printer: printerName,
		Detail:  fmt.Sprintf("wrote %d of %d bytes", written, expected),
	}
}

// Unsupported reports that no backend exists for the running OS family
func Unsupported(op, goos string) *Error {
	return &Error{
		Kind:   KindPlatformUnsupported,
		Op:     op,
		Detail: fmt.Sprintf("no printer backend for OS %q", goos),
	}
}

// KindOf returns the Kind of the first printer error in err's chain, or "" if none
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return ""
}
