package diff

import (
	"errors"
	"fmt"
)

// ErrMalformed is the category of every diff parse failure
var ErrMalformed = errors.New("malformed diff")

// ParseError reports a malformed header or hunk; it aborts the whole run
// since a diff cannot be partially trusted.
type ParseError struct {
	// Line is the 1-based line of the diff text where parsing failed
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse diff: line %d: %s", e.Line, e.Message)
	}
	return "failed to parse diff: " + e.Message
}

func (e *ParseError) Unwrap() error {
	return ErrMalformed
}
