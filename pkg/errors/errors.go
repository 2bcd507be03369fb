// Package errors provides structured error reporting for the escapement
// motion core. Nothing in the core itself is fatal; errors surface from the
// surrounding machinery (schedulers, emit listeners, diagnostic servers) and
// are routed through a replaceable global handler.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a configuration loading or validation error.
	KindConfig
	// KindScheduler indicates a frame scheduler error.
	KindScheduler
	// KindEmit indicates a failure while delivering a frame to a listener.
	KindEmit
	// KindStream indicates a diagnostic server or stream transport error.
	KindStream
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindScheduler:
		return "scheduler"
	case KindEmit:
		return "emit"
	case KindStream:
		return "stream"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// EscapementError represents a structured error in the motion core.
type EscapementError struct {
	// Op is the operation that failed (e.g., "engine.Controller.Start").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *EscapementError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *EscapementError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.Controller.emit").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the motion core.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *EscapementError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
