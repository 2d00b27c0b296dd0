package config

import "fmt"

// Error reports an invalid configuration value
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Message)
}
