package info

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedLanguage indicates that no inspector handles the file extension
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrParseFailed indicates the source could not be parsed into a unit forest.
	// Files that fail to parse are skipped, never approximated.
	ErrParseFailed = errors.New("parse failed")
)

// ParseError reports where a source file failed to parse
type ParseError struct {
	// FilePath is the path to the file, may be empty for in-memory sources
	FilePath string
	// Line is the 1-based line of the first syntax error, 0 when unknown
	Line    int
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	location := e.FilePath
	if location == "" {
		location = "source"
	}
	if e.Line > 0 {
		location = fmt.Sprintf("%s:%d", location, e.Line)
	}
	if e.Cause != nil && !errors.Is(e.Cause, ErrParseFailed) {
		return fmt.Sprintf("%s: %s: %v", location, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", location, e.Message)
}

// Unwrap returns the cause, or ErrParseFailed when none was recorded
func (e *ParseError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrParseFailed}
	}
	return []error{ErrParseFailed, e.Cause}
}
