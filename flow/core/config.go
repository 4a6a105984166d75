package core

// DefaultCapacity is the initial capacity of the buffer used by ToArray.
const DefaultCapacity = 16

// ArrayConfig holds configuration options for collecting terminals.
type ArrayConfig struct {
	Capacity int
}

// ArrayOption is a functional option for configuring collecting terminals.
type ArrayOption func(*ArrayConfig)

// WithCapacity sets the initial capacity of the collecting buffer.
// Use it when the number of values is known up front to avoid regrowth.
// Negative values are treated as 0.
func WithCapacity(n int) ArrayOption {
	return func(c *ArrayConfig) {
		c.Capacity = max(n, 0)
	}
}

// defaultArrayConfig returns an ArrayConfig with default values.
func defaultArrayConfig() ArrayConfig {
	return ArrayConfig{
		Capacity: DefaultCapacity,
	}
}

// applyArrayOptions applies functional options to a config.
func applyArrayOptions(opts ...ArrayOption) ArrayConfig {
	cfg := defaultArrayConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
