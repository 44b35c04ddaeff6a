package jsonrepair

import (
	"errors"
	"fmt"
)

// Error is the sentinel that every error returned by this package satisfies,
// so callers can test provenance with errors.Is(err, jsonrepair.Error)
// without caring which concrete kind was returned.
const Error = sentinelError("jsonrepair error")

type sentinelError string

func (e sentinelError) Error() string { return string(e) }
func (e sentinelError) Is(target error) bool {
	return e == target || target == error(Error)
}

// Kind identifies which of the small, closed set of unrecoverable error
// conditions a *RepairError value represents. Recoverable malformations never
// produce an error value; they produce a Log entry instead.
type Kind int

const (
	// KindInputTooLarge reports that the input exceeded an
	// implementation-defined size cap.
	KindInputTooLarge Kind = iota
	// KindDepthExceeded reports that nesting exceeded Options.MaxDepth.
	KindDepthExceeded
	// KindUnrecoverableSyntax reports a parser state with no local
	// recovery rule. Rare: almost every malformation recovers.
	KindUnrecoverableSyntax
	// KindInvalidEscape reports a \uXXXX escape that referenced an
	// isolated surrogate half that could not be paired.
	KindInvalidEscape
	// KindWriterFailure reports that the caller-supplied writer failed.
	KindWriterFailure
)

func (k Kind) String() string {
	switch k {
	case KindInputTooLarge:
		return "InputTooLarge"
	case KindDepthExceeded:
		return "DepthExceeded"
	case KindUnrecoverableSyntax:
		return "UnrecoverableSyntax"
	case KindInvalidEscape:
		return "InvalidEscape"
	case KindWriterFailure:
		return "WriterFailure"
	default:
		return "Unknown"
	}
}

// RepairError is returned for the handful of conditions §7 of the spec
// classifies as real errors rather than local repairs.
type RepairError struct {
	kind Kind
	off  int
	msg  string
	err  error // underlying cause, e.g. a writer error
}

// ByteOffset is the position in the original input where the condition
// was detected.
func (e *RepairError) ByteOffset() int { return e.off }

// ErrKind reports which of the closed Kind set this error represents.
func (e *RepairError) ErrKind() Kind { return e.kind }

func (e *RepairError) Error() string {
	if e.msg != "" {
		return fmt.Sprintf("jsonrepair: %s at byte %d: %s", e.kind, e.off, e.msg)
	}
	return fmt.Sprintf("jsonrepair: %s at byte %d", e.kind, e.off)
}

func (e *RepairError) Unwrap() error { return e.err }

func (e *RepairError) Is(target error) bool {
	return target == error(Error) || errors.Is(e.err, target)
}

func newError(kind Kind, off int, msg string) *RepairError {
	return &RepairError{kind: kind, off: off, msg: msg}
}

func wrapWriterError(off int, err error) *RepairError {
	return &RepairError{kind: KindWriterFailure, off: off, msg: "write failed", err: err}
}

// errNeedMoreData is never returned to callers. It unwinds a non-final
// parse attempt (Streamer.Push, not Flush) back to the driver when a
// scalar or container is truncated mid-construct, so the driver can
// preserve the buffer untouched and wait for the next chunk.
var errNeedMoreData = errors.New("jsonrepair: need more data")

