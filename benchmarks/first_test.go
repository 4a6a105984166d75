package benchmarks

import (
	"testing"

	"github.com/ahmetb/go-linq/v3"
	"github.com/destel/rill"
	"github.com/lguimbarda/pushflow/flow"
	"github.com/lguimbarda/pushflow/flow/filter"
	"github.com/samber/lo"
)

// =============================================================================
// Early Exit Benchmarks
// Find the first string longer than three characters; the match sits near
// the start, so libraries that stop early do almost no work.
// =============================================================================

func longString(s string) bool {
	return stringLen(s) > 3
}

func BenchmarkFirst_PushFlow(b *testing.B) {
	data := generateStrings(LargeSize)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = flow.First(flow.FromSlice(data).Where(longString))
	}
}

func BenchmarkFirst_PushFlowTake(b *testing.B) {
	data := generateStrings(LargeSize)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		taken := filter.Take[string](1).Apply(filter.Where(longString).Apply(flow.FromSlice(data)))
		_ = taken.ToArray()
	}
}

func BenchmarkFirst_Rill(b *testing.B) {
	data := generateStrings(LargeSize)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		stream := rill.FromSlice(data, nil)
		_, _, _ = rill.First(rill.Filter(stream, 1, func(s string) (bool, error) {
			return longString(s), nil
		}))
	}
}

func BenchmarkFirst_Lo(b *testing.B) {
	data := generateStrings(LargeSize)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = lo.Find(data, longString)
	}
}

func BenchmarkFirst_GoLinq(b *testing.B) {
	data := generateStrings(LargeSize)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = linq.From(data).FirstWithT(longString)
	}
}

func BenchmarkFirst_RawLoop(b *testing.B) {
	data := generateStrings(LargeSize)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for _, s := range data {
			if longString(s) {
				break
			}
		}
	}
}
