package analyzer

import "fmt"

// SourceAccessError reports that the post-change content of a file could not be read
type SourceAccessError struct {
	Path string
	Err  error
}

func (e *SourceAccessError) Error() string {
	return fmt.Sprintf("failed to access source %s: %v", e.Path, e.Err)
}

func (e *SourceAccessError) Unwrap() error {
	return e.Err
}
