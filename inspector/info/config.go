package info

// Config controls unit extraction
type Config struct {
	// NestedItems extracts items declared inside function bodies as children of the function
	NestedItems bool
}

func DefaultConfig() *Config {
	return &Config{
		NestedItems: true,
	}
}
