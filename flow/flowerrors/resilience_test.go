package flowerrors_test

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/lguimbarda/pushflow/flow"
	"github.com/lguimbarda/pushflow/flow/core"
	"github.com/lguimbarda/pushflow/flow/flowerrors"
	"github.com/lguimbarda/pushflow/flow/timing"
)

var errTransient = errors.New("transient")

// manualClock only moves when slept on or advanced.
type manualClock struct {
	now   time.Time
	slept []time.Duration
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

// flaky fails the first failures calls for every distinct value.
func flaky(failures int) (func(int) (int, error), map[int]int) {
	attempts := make(map[int]int)
	return func(v int) (int, error) {
		attempts[v]++
		if attempts[v] <= failures {
			return 0, errTransient
		}
		return v * 2, nil
	}, attempts
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name       string
		maxRetries int
		failures   int
		wantValues []int
		wantErrs   int
	}{
		{"succeeds first time", 3, 0, []int{2, 4}, 0},
		{"succeeds after retries", 3, 2, []int{2, 4}, 0},
		{"exhausts retries", 1, 2, nil, 2},
		{"negative retries means one attempt", -1, 1, nil, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, _ := flaky(tt.failures)
			input := flow.Of(flow.Ok(1), flow.Ok(2))

			values, errs := split(flowerrors.Retry(tt.maxRetries, op).Apply(input).ToArray())

			if !slices.Equal(values, tt.wantValues) {
				t.Errorf("expected values %v, got %v", tt.wantValues, values)
			}
			if len(errs) != tt.wantErrs {
				t.Fatalf("expected %d errors, got %d", tt.wantErrs, len(errs))
			}
			for _, err := range errs {
				if !errors.Is(err, flowerrors.ErrMaxRetries) || !errors.Is(err, errTransient) {
					t.Errorf("expected ErrMaxRetries wrapping transient, got %v", err)
				}
			}
		})
	}
}

func TestRetry_PassesUpstreamErrors(t *testing.T) {
	calls := 0
	op := func(v int) (int, error) {
		calls++
		return v, nil
	}

	_, errs := split(flowerrors.Retry(3, op).Apply(mixed()).ToArray())

	if len(errs) != 2 {
		t.Errorf("expected 2 errors passed through, got %d", len(errs))
	}
	if calls != 2 {
		t.Errorf("expected operation to run for values only, got %d calls", calls)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	op, attempts := flaky(2)
	var delays []int
	backoff := func(attempt int) time.Duration {
		delays = append(delays, attempt)
		return flowerrors.LinearBackoff(time.Second)(attempt)
	}
	clock := &manualClock{}

	retry := flowerrors.RetryWithBackoff(3, backoff, op, timing.WithClock(clock))
	values, errs := split(retry.Apply(flow.Of(flow.Ok(5))).ToArray())

	if !slices.Equal(values, []int{10}) || len(errs) != 0 {
		t.Errorf("expected ([10], []), got (%v, %v)", values, errs)
	}
	if attempts[5] != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts[5])
	}
	if !slices.Equal(delays, []int{0, 1}) {
		t.Errorf("expected backoff for attempts [0 1], got %v", delays)
	}
	if want := []time.Duration{time.Second, 2 * time.Second}; !slices.Equal(clock.slept, want) {
		t.Errorf("expected sleeps %v, got %v", want, clock.slept)
	}
}

func TestRetryWithBackoff_NoSleepOnSuccess(t *testing.T) {
	clock := &manualClock{}
	op := func(v int) (int, error) { return v, nil }

	flowerrors.RetryWithBackoff(3, flowerrors.ConstantBackoff(time.Hour), op, timing.WithClock(clock)).
		Apply(flow.Of(flow.Ok(1), flow.Ok(2))).ToArray()

	if len(clock.slept) != 0 {
		t.Errorf("expected no sleeps, got %v", clock.slept)
	}
}

func TestRetryWhen(t *testing.T) {
	errFatal := errors.New("fatal")
	calls := 0
	op := func(v int) (int, error) {
		calls++
		return 0, errFatal
	}
	onlyTransient := func(err error, _ int) bool { return errors.Is(err, errTransient) }

	_, errs := split(flowerrors.RetryWhen(5, onlyTransient, op).Apply(flow.Of(flow.Ok(1))).ToArray())

	if calls != 1 {
		t.Errorf("expected no retries for a fatal error, got %d calls", calls)
	}
	if len(errs) != 1 || !errors.Is(errs[0], errFatal) || errors.Is(errs[0], flowerrors.ErrMaxRetries) {
		t.Errorf("expected the fatal error unwrapped, got %v", errs)
	}
}

func TestBackoffStrategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy flowerrors.BackoffStrategy
		attempt  int
		expected time.Duration
	}{
		{"constant", flowerrors.ConstantBackoff(10 * time.Millisecond), 3, 10 * time.Millisecond},
		{"linear first", flowerrors.LinearBackoff(10 * time.Millisecond), 0, 10 * time.Millisecond},
		{"linear third", flowerrors.LinearBackoff(10 * time.Millisecond), 2, 30 * time.Millisecond},
		{"exponential", flowerrors.ExponentialBackoff(10*time.Millisecond, 0), 3, 80 * time.Millisecond},
		{"exponential capped", flowerrors.ExponentialBackoff(10*time.Millisecond, 50*time.Millisecond), 3, 50 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.strategy(tt.attempt); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCircuitBreaker(t *testing.T) {
	failing := true
	op := func(v int) (int, error) {
		if failing {
			return 0, errTransient
		}
		return v, nil
	}
	clock := &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := flowerrors.NewCircuitBreaker(op, 2, 20*time.Millisecond, 1, timing.WithClock(clock))

	for i := 0; i < 2; i++ {
		if _, err := cb.Execute(i); !errors.Is(err, errTransient) {
			t.Fatalf("attempt %d: expected transient error, got %v", i, err)
		}
	}
	if cb.State() != flowerrors.CircuitOpen {
		t.Fatalf("expected open circuit, got %v", cb.State())
	}
	if _, err := cb.Execute(0); !errors.Is(err, flowerrors.ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}

	clock.now = clock.now.Add(10 * time.Millisecond)
	if _, err := cb.Execute(0); !errors.Is(err, flowerrors.ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen before reset timeout, got %v", err)
	}

	clock.now = clock.now.Add(10 * time.Millisecond)
	failing = false

	if v, err := cb.Execute(7); err != nil || v != 7 {
		t.Errorf("expected (7, nil) in half-open, got (%d, %v)", v, err)
	}
	if cb.State() != flowerrors.CircuitClosed {
		t.Errorf("expected closed circuit, got %v", cb.State())
	}
}

func TestWithCircuitBreaker(t *testing.T) {
	op := func(int) (int, error) { return 0, errTransient }
	cb := flowerrors.NewCircuitBreaker(op, 1, time.Hour, 1)

	input := flow.Of(flow.Ok(1), flow.Ok(2), flow.Ok(3))
	_, errs := split(flowerrors.WithCircuitBreaker(cb).Apply(input).ToArray())

	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d", len(errs))
	}
	if !errors.Is(errs[0], errTransient) {
		t.Errorf("expected first call to reach the operation, got %v", errs[0])
	}
	if !errors.Is(errs[1], flowerrors.ErrCircuitOpen) || !errors.Is(errs[2], flowerrors.ErrCircuitOpen) {
		t.Errorf("expected later calls to be rejected, got %v", errs[1:])
	}
}

func TestFallback(t *testing.T) {
	input := flow.Of(flow.Err[int](errOne), flow.Ok(3), flow.Err[int](errTwo), flow.Ok(4))
	s := flowerrors.Fallback(func(last int, _ error) int { return -last }).Apply(input)

	for run := 0; run < 2; run++ {
		values, errs := split(s.ToArray())
		if !slices.Equal(values, []int{3, -3, 4}) {
			t.Errorf("run %d: expected [3 -3 4], got %v", run, values)
		}
		if len(errs) != 1 || !errors.Is(errs[0], errOne) {
			t.Errorf("run %d: expected leading error to pass through, got %v", run, errs)
		}
	}
}

func TestFallbackValue(t *testing.T) {
	values, errs := split(flowerrors.FallbackValue(0).Apply(mixed()).ToArray())

	if !slices.Equal(values, []int{1, 0, 2, 0}) || len(errs) != 0 {
		t.Errorf("expected ([1 0 2 0], []), got (%v, %v)", values, errs)
	}
}

func TestRecover(t *testing.T) {
	recoverFn := func(err error) (int, error) {
		if errors.Is(err, errOne) {
			return 99, nil
		}
		return 0, err
	}

	values, errs := split(flowerrors.Recover(recoverFn).Apply(mixed()).ToArray())

	if !slices.Equal(values, []int{1, 99, 2}) {
		t.Errorf("expected [1 99 2], got %v", values)
	}
	if len(errs) != 1 || !errors.Is(errs[0], errTwo) {
		t.Errorf("expected [error2], got %v", errs)
	}
}

func TestRecoverPanic(t *testing.T) {
	input := flow.Of(flow.Err[int](core.NewPanicError("bad")), flow.Err[int](errOne))
	recoverFn := func(v any) (int, error) { return len(v.(string)), nil }

	values, errs := split(flowerrors.RecoverPanic(recoverFn).Apply(input).ToArray())

	if !slices.Equal(values, []int{3}) {
		t.Errorf("expected [3], got %v", values)
	}
	if len(errs) != 1 || !errors.Is(errs[0], errOne) {
		t.Errorf("expected non-panic error to pass through, got %v", errs)
	}
}
