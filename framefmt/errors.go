// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package framefmt

import (
	"errors"
	"fmt"
)

// A Kind classifies why a capture could not be read.
type Kind int

const (
	// UnknownKind is returned by KindOf for errors that did not
	// come from this package.
	UnknownKind Kind = iota

	// UnsupportedFormat means the file extension selects no
	// ingestion path.
	UnsupportedFormat

	// EmptyCapture means no valid frame survived filtering.
	EmptyCapture

	// MissingColumn means a CSV capture has no frame-time column.
	MissingColumn

	// UnrecognizedSchema means a JSON capture matches none of the
	// known document shapes.
	UnrecognizedSchema

	// IOError means the capture file could not be read.
	IOError

	// SyntaxError means a JSON capture is not well-formed.
	SyntaxError
)

var kindNames = [...]string{
	UnknownKind:        "unknown",
	UnsupportedFormat:  "unsupported format",
	EmptyCapture:       "empty capture",
	MissingColumn:      "missing column",
	UnrecognizedSchema: "unrecognized schema",
	IOError:            "I/O error",
	SyntaxError:        "syntax error",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// An Error describes a failure to read one capture.
type Error struct {
	Kind     Kind
	FileName string
	Msg      string

	// Err is the underlying error, if any. It is nil for errors
	// detected by the ingestors themselves.
	Err error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.FileName == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.FileName, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind. This
// allows callers to write errors.Is(err, &Error{Kind: EmptyCapture}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or
// UnknownKind if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return UnknownKind
}

func newError(kind Kind, fileName, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, FileName: fileName, Msg: fmt.Sprintf(format, args...)}
}
