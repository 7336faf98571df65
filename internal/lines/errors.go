package lines

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes document assembly failures.
type ErrorCode string

const (
	// ErrCodeMarkerNotFound indicates no line contains the requested marker.
	ErrCodeMarkerNotFound ErrorCode = "MARKER_NOT_FOUND"

	// ErrCodeBoundsNotFound indicates a start or end marker of a
	// marker-bounded fragment is missing.
	ErrCodeBoundsNotFound ErrorCode = "FRAGMENT_BOUNDS_NOT_FOUND"

	// ErrCodeRangeOutOfBounds indicates a line range outside the document.
	ErrCodeRangeOutOfBounds ErrorCode = "RANGE_OUT_OF_BOUNDS"

	// ErrCodeUnbalancedBlock indicates a code block whose braces never
	// balance before the fragment ends.
	ErrCodeUnbalancedBlock ErrorCode = "UNBALANCED_BLOCK"

	// ErrCodeAnchorNotFound indicates the injection anchor is missing.
	ErrCodeAnchorNotFound ErrorCode = "ANCHOR_NOT_FOUND"

	// ErrCodeIOFailure indicates a missing or unreadable input, or an
	// unwritable output.
	ErrCodeIOFailure ErrorCode = "IO_FAILURE"
)

// Error describes a failed lookup, extraction, filter or I/O step.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Marker is the marker, anchor or range that could not be resolved.
	Marker string

	// Line is the 1-indexed line the failure refers to, or 0.
	Line int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Marker != "" {
		msg += fmt.Sprintf(" (marker=%q)", e.Marker)
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line=%d)", e.Line)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsCode reports whether any *Error in err's chain carries code.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		var le *Error
		if !errors.As(err, &le) {
			return false
		}
		if le.Code == code {
			return true
		}
		err = le.Err
	}
	return false
}

// CodeOf returns the code of the outermost *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var le *Error
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}
