// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package try provides small helpers for error handling in deferred calls.
package try

import (
	"errors"
	"fmt"
	"io"
)

// CloseError occurs when an [io.Closer] fails to close.
type CloseError struct {
	Cause error
}

// Error implements the error interface.
func (e CloseError) Error() string {
	return fmt.Sprintf("failed to close: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e CloseError) Unwrap() error {
	return e.Cause
}

// Close closes v, if it implements [io.Closer], and joins any close
// failure into the error pointed to by err. It is meant to be deferred
// with a named return error:
//
//	func load(r io.Reader) (err error) {
//	    defer try.Close(&err, r)
//	    ...
//	}
func Close(err *error, v any) {
	c, ok := v.(io.Closer)
	if !ok {
		return
	}

	cerr := c.Close()
	if cerr == nil {
		return
	}

	cerr = CloseError{Cause: cerr}
	if *err == nil {
		*err = cerr
		return
	}
	*err = errors.Join(*err, cerr)
}
