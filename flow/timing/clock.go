package timing

import "time"

// Clock is the time source used by the timing transformers.
// Sleep blocks the calling goroutine, which is the one pushing values.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock is the real wall clock.
var SystemClock Clock = systemClock{}

// TimingConfig provides configuration for timing transformers.
type TimingConfig struct {
	// Clock is the time source. Nil means SystemClock.
	Clock Clock
}

// Option configures a timing transformer.
type Option func(*TimingConfig)

// WithClock returns an Option that replaces the time source.
func WithClock(c Clock) Option {
	return func(cfg *TimingConfig) {
		cfg.Clock = c
	}
}

func newConfig(opts []Option) TimingConfig {
	var cfg TimingConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock
	}
	return cfg
}

// ClockFrom returns the Clock selected by opts, or SystemClock.
func ClockFrom(opts ...Option) Clock {
	return newConfig(opts).Clock
}
