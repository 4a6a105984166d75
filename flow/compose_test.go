package flow_test

import (
	"slices"
	"testing"

	"github.com/lguimbarda/pushflow/flow"
)

func TestThrough(t *testing.T) {
	double := flow.Map(func(x int) int { return x * 2 })
	addOne := flow.Map(func(x int) int { return x + 1 })

	// Chain them: first double, then add 1
	combined := flow.Through[int, int, int](double, addOne)

	result := combined.Apply(flow.FromSlice([]int{1, 2, 3})).ToArray()

	// Expected: (1*2)+1=3, (2*2)+1=5, (3*2)+1=7
	expected := []int{3, 5, 7}
	if !slices.Equal(result, expected) {
		t.Errorf("expected %v, got %v", expected, result)
	}
}

func TestChain(t *testing.T) {
	tests := []struct {
		name         string
		transformers []flow.Transformer[int, int]
		expected     []int
	}{
		{
			name:         "no transformers is identity",
			transformers: nil,
			expected:     []int{1, 2, 3},
		},
		{
			name: "applied left to right",
			transformers: []flow.Transformer[int, int]{
				flow.Map(func(x int) int { return x + 1 }),
				flow.Map(func(x int) int { return x * 10 }),
			},
			expected: []int{20, 30, 40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := flow.Chain(tt.transformers...).Apply(flow.Of(1, 2, 3)).ToArray()
			if !slices.Equal(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestPipe(t *testing.T) {
	result := flow.Pipe[int](flow.Range(0, 5),
		flow.Map(func(x int) int { return x * x }),
		flow.FlatMap(func(x int) []int { return []int{x, -x} }),
	).ToArray()

	expected := []int{0, 0, 1, -1, 4, -4, 9, -9, 16, -16}
	if !slices.Equal(result, expected) {
		t.Errorf("expected %v, got %v", expected, result)
	}
}

func TestApply(t *testing.T) {
	length := flow.Map(func(s string) int { return len(s) })

	result := flow.Apply[string, int](flow.Of("a", "bb", "ccc"), length).ToArray()

	if !slices.Equal(result, []int{1, 2, 3}) {
		t.Errorf("expected [1 2 3], got %v", result)
	}
}
