package observe

import (
	"testing"

	"github.com/lguimbarda/pushflow/flow/core"
)

// Benchmarks comparing a bare pipeline with observed ones.

func rangeOf(n int) core.Stream[int] {
	return func(r core.Consumer[int]) bool {
		for i := 0; i < n; i++ {
			if !r(i) {
				return false
			}
		}
		return true
	}
}

func double(v int) int { return v * 2 }

func BenchmarkSelectNoObservation(b *testing.B) {
	s := core.Select(rangeOf(1000), double)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = core.Count(s)
	}
}

func BenchmarkSelectWithHooks(b *testing.B) {
	hooks, _ := WithCounter[int]()
	s := core.Observe(core.Select(rangeOf(1000), double), hooks)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = core.Count(s)
	}
}

func BenchmarkSelectWithMeter(b *testing.B) {
	s := Meter[int](nil).Apply(core.Select(rangeOf(1000), double))

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = core.Count(s)
	}
}

func BenchmarkSelectWithEmptyHooks(b *testing.B) {
	s := core.Observe(core.Select(rangeOf(1000), double), core.Hooks[int]{})

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = core.Count(s)
	}
}
