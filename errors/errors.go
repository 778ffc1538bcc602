package errors

import (
	"fmt"
	"strings"

	"github.com/wippyai/devtable/device"
)

// Phase indicates which operation produced the error
type Phase string

const (
	PhaseAllocate Phase = "allocate"
	PhaseSet      Phase = "set"
	PhaseGet      Phase = "get"
	PhaseFind     Phase = "find"
	PhaseRemove   Phase = "remove"
	PhaseRelease  Phase = "release"
	PhaseThread   Phase = "thread" // current device slot
	PhaseHost     Phase = "host"   // guest-facing host module
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfRange      Kind = "out_of_range"
	KindInvalidArgument Kind = "invalid_argument"
	KindAddressInUse    Kind = "address_in_use"
	KindNotFound        Kind = "not_found"
	KindShutdownFailed  Kind = "shutdown_failed"
	KindClosed          Kind = "closed"
	KindFailure         Kind = "failure"
)

// Sentinels for matching on kind alone with errors.Is.
var (
	ErrOutOfRange      = &Error{Kind: KindOutOfRange, ID: device.None}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument, ID: device.None}
	ErrAddressInUse    = &Error{Kind: KindAddressInUse, ID: device.None}
	ErrNotFound        = &Error{Kind: KindNotFound, ID: device.None}
	ErrShutdownFailed  = &Error{Kind: KindShutdownFailed, ID: device.None}
	ErrClosed          = &Error{Kind: KindClosed, ID: device.None}
	ErrFailure         = &Error{Kind: KindFailure, ID: device.None}
)

// Error is the structured error type used throughout the module
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	ID     device.ID
	Code   int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.ID != device.None {
		b.WriteString(" devid=")
		b.WriteString(e.ID.String())
	}

	if e.Kind == KindShutdownFailed {
		fmt.Fprintf(&b, " retval=%d", e.Code)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target without a phase
// matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
			ID:    device.None,
		},
	}
}

// ID sets the device id the error refers to
func (b *Builder) ID(id device.ID) *Builder {
	b.err.ID = id
	return b
}

// Code sets the device status code
func (b *Builder) Code(code int) *Builder {
	b.err.Code = code
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// OutOfRange creates an error for an id at or beyond the table capacity
func OutOfRange(phase Phase, id device.ID, capacity int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		ID:     id,
		Detail: fmt.Sprintf("id out of range (capacity %d)", capacity),
	}
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(phase Phase, id device.ID, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		ID:     id,
		Detail: detail,
	}
}

// AddressInUse creates an error for an occupied slot
func AddressInUse(phase Phase, id device.ID) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAddressInUse,
		ID:     id,
		Detail: "slot in use",
	}
}

// NotFound creates a not-found error for a lookup by id
func NotFound(phase Phase, id device.ID) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		ID:     id,
		Detail: "no device",
	}
}

// NameNotFound creates a not-found error for a lookup by name
func NameNotFound(name string, typ device.Type) *Error {
	return &Error{
		Phase:  PhaseFind,
		Kind:   KindNotFound,
		ID:     device.None,
		Detail: fmt.Sprintf("no %s device named %q", typ, name),
	}
}

// ShutdownFailed creates an error for a device whose shutdown returned non-zero
func ShutdownFailed(id device.ID, code int) *Error {
	return &Error{
		Phase:  PhaseRemove,
		Kind:   KindShutdownFailed,
		ID:     id,
		Code:   code,
		Detail: "device shutdown failed",
	}
}

// Closed creates an error for an operation on a closed table
func Closed(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		ID:     device.None,
		Detail: "device table closed",
	}
}

// Failure creates an internal failure error
func Failure(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFailure,
		ID:     device.None,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		ID:     device.None,
		Detail: detail,
		Cause:  cause,
	}
}
