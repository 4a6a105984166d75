package benchmarks

import (
	"testing"

	"github.com/ahmetb/go-linq/v3"
	"github.com/destel/rill"
	"github.com/lguimbarda/pushflow/flow"
	"github.com/samber/lo"
)

// =============================================================================
// Memory Allocation Benchmarks
// Run with: go test -bench=BenchmarkAlloc -benchmem
// =============================================================================

const AllocSize = 10_000

// allocBench reports allocations for one run of fn per iteration.
func allocBench(b *testing.B, fn func(data []int)) {
	data := generateInts(AllocSize)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		fn(data)
	}
}

// ToArray grows its buffer from the default capacity
func BenchmarkAlloc_ToArray_PushFlow(b *testing.B) {
	allocBench(b, func(data []int) {
		_ = flow.Select(flow.FromArray(data), square).ToArray()
	})
}

// Presized buffer: a single allocation for the result
func BenchmarkAlloc_ToArray_PushFlowPresized(b *testing.B) {
	allocBench(b, func(data []int) {
		_ = flow.ToArrayWith(flow.Select(flow.FromArray(data), square), flow.WithCapacity(len(data)))
	})
}

// Aggregate materializes nothing
func BenchmarkAlloc_Aggregate_PushFlow(b *testing.B) {
	allocBench(b, func(data []int) {
		_ = flow.Aggregate(flow.Select(flow.FromArray(data).Where(isEven), square), add, 0)
	})
}

func BenchmarkAlloc_ToArray_Rill(b *testing.B) {
	allocBench(b, func(data []int) {
		mapped := rill.Map(rill.FromSlice(data, nil), 1, func(x int) (int, error) {
			return square(x), nil
		})
		_, _ = rill.ToSlice(mapped)
	})
}

func BenchmarkAlloc_ToArray_Lo(b *testing.B) {
	allocBench(b, func(data []int) {
		_ = lo.Map(data, func(x int, _ int) int { return square(x) })
	})
}

func BenchmarkAlloc_ToArray_GoLinq(b *testing.B) {
	allocBench(b, func(data []int) {
		var result []int
		linq.From(data).SelectT(square).ToSlice(&result)
	})
}

// =============================================================================
// Chained Selects: intermediate results per stage
// =============================================================================

func BenchmarkAlloc_Chain_PushFlow(b *testing.B) {
	allocBench(b, func(data []int) {
		s := flow.Select(flow.Select(flow.Select(flow.FromArray(data), square), square), square)
		_ = flow.ToArrayWith(s, flow.WithCapacity(len(data)))
	})
}

func BenchmarkAlloc_Chain_Rill(b *testing.B) {
	sq := func(x int) (int, error) { return square(x), nil }
	allocBench(b, func(data []int) {
		s := rill.Map(rill.Map(rill.Map(rill.FromSlice(data, nil), 1, sq), 1, sq), 1, sq)
		_, _ = rill.ToSlice(s)
	})
}

func BenchmarkAlloc_Chain_Lo(b *testing.B) {
	sq := func(x int, _ int) int { return square(x) }
	allocBench(b, func(data []int) {
		_ = lo.Map(lo.Map(lo.Map(data, sq), sq), sq)
	})
}

func BenchmarkAlloc_Chain_GoLinq(b *testing.B) {
	allocBench(b, func(data []int) {
		var result []int
		linq.From(data).SelectT(square).SelectT(square).SelectT(square).ToSlice(&result)
	})
}

func BenchmarkAlloc_Chain_RawLoop(b *testing.B) {
	allocBench(b, func(data []int) {
		result := make([]int, len(data))
		for j, x := range data {
			result[j] = square(square(square(x)))
		}
		_ = result
	})
}
