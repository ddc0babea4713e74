package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the parsing pipeline can report.
type ErrorKind int

const (
	KindIO ErrorKind = iota + 1
	KindParse
	KindInvalidFormat
)

// Sentinels for errors.Is. A *ParserError matches the sentinel of its kind.
var (
	ErrIO            = errors.New("io error")
	ErrParse         = errors.New("parse error")
	ErrInvalidFormat = errors.New("invalid format")

	// ErrSkipped marks a batch item that never ran because a lower-index item
	// had already failed.
	ErrSkipped = errors.New("skipped after earlier failure")
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io_error"
	case KindParse:
		return "parse_error"
	case KindInvalidFormat:
		return "invalid_format"
	default:
		return "unknown"
	}
}

// ParserError is the single error type surfaced by extractors, the dispatcher
// and the batch processor.
type ParserError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *ParserError) Error() string {
	var prefix string
	switch e.Kind {
	case KindIO:
		prefix = "IO error"
	case KindParse:
		prefix = "Parse error"
	case KindInvalidFormat:
		prefix = "Invalid format"
	default:
		prefix = "error"
	}
	if e.Err != nil && e.Msg != "" {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Msg, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Msg)
}

func (e *ParserError) Unwrap() error { return e.Err }

func (e *ParserError) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrParse:
		return e.Kind == KindParse
	case ErrInvalidFormat:
		return e.Kind == KindInvalidFormat
	}
	return false
}

// IOError wraps err as an I/O failure.
func IOError(msg string, err error) *ParserError {
	return &ParserError{Kind: KindIO, Msg: msg, Err: err}
}

// ParseError wraps err as a decode failure of a recognised format.
func ParseError(msg string, err error) *ParserError {
	return &ParserError{Kind: KindParse, Msg: msg, Err: err}
}

// InvalidFormatf reports input that could not be classified or has no extractor.
func InvalidFormatf(format string, args ...any) *ParserError {
	return &ParserError{Kind: KindInvalidFormat, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or 0 when err is not a ParserError.
func KindOf(err error) ErrorKind {
	var pe *ParserError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
