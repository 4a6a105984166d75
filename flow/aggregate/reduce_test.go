package aggregate_test

import (
	"slices"
	"testing"

	"github.com/lguimbarda/pushflow/flow"
	"github.com/lguimbarda/pushflow/flow/aggregate"
	"github.com/samber/lo"
)

func TestReduce(t *testing.T) {
	tests := []struct {
		name   string
		input  []int
		want   int
		wantOK bool
	}{
		{"sum", []int{1, 2, 3, 4, 5}, 15, true},
		{"single item", []int{42}, 42, true},
		{"empty", []int{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := aggregate.Reduce(flow.FromSlice(tt.input), func(a, b int) int { return a + b })
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("expected (%d, %v), got (%d, %v)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}

func TestFold(t *testing.T) {
	got := aggregate.Fold(10, flow.FromSlice([]int{1, 2, 3, 4, 5}), func(acc, v int) int { return acc + v })
	if got != 25 { // 10 + 1+2+3+4+5
		t.Errorf("expected 25, got %d", got)
	}
}

func TestScan(t *testing.T) {
	running := aggregate.Scan(0, func(acc, v int) int { return acc + v }).Apply(flow.Range(1, 5))

	want := []int{1, 3, 6, 10, 15}
	for run := 0; run < 2; run++ {
		if got := running.ToArray(); !slices.Equal(got, want) {
			t.Errorf("run %d: expected %v, got %v", run, want, got)
		}
	}
}

func TestCount(t *testing.T) {
	if c := aggregate.Count(flow.Range(0, 7)); c != 7 {
		t.Errorf("expected 7, got %d", c)
	}
	if c := aggregate.CountIf(flow.Range(0, 7), func(v int) bool { return v%3 == 0 }); c != 3 {
		t.Errorf("expected 3, got %d", c)
	}
}

func TestSum(t *testing.T) {
	in := []int{4, -2, 9, 11}
	if got := aggregate.Sum(flow.FromSlice(in)); got != lo.Sum(in) {
		t.Errorf("expected %d, got %d", lo.Sum(in), got)
	}
	if got := aggregate.Sum(flow.Empty[int]()); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestSumFloats(t *testing.T) {
	got := aggregate.Sum(flow.Of(0.5, 1.25, 2.25))
	if got != 4.0 {
		t.Errorf("expected 4.0, got %v", got)
	}
}

func TestAverage(t *testing.T) {
	if got := aggregate.Average(flow.Of(1, 2, 3, 4)); got != 2.5 {
		t.Errorf("expected 2.5, got %v", got)
	}
	if got := aggregate.Average(flow.Empty[int]()); got != 0 {
		t.Errorf("expected 0 for empty stream, got %v", got)
	}
}

func TestMinMax(t *testing.T) {
	in := []int{5, 3, 9, 3, 9, 1, 7}
	less := func(a, b int) bool { return a < b }

	if got, ok := aggregate.Min(flow.FromSlice(in), less); !ok || got != lo.Min(in) {
		t.Errorf("expected (%d, true), got (%d, %v)", lo.Min(in), got, ok)
	}
	if got, ok := aggregate.Max(flow.FromSlice(in), less); !ok || got != lo.Max(in) {
		t.Errorf("expected (%d, true), got (%d, %v)", lo.Max(in), got, ok)
	}
	if _, ok := aggregate.Min(flow.Empty[int](), less); ok {
		t.Error("expected false for empty stream")
	}
}

func TestMinKeepsFirstOfEquals(t *testing.T) {
	type item struct {
		key  int
		name string
	}
	s := flow.Of(item{2, "a"}, item{1, "b"}, item{1, "c"})

	got, _ := aggregate.Min(s, func(a, b item) bool { return a.key < b.key })
	if got.name != "b" {
		t.Errorf("expected b, got %s", got.name)
	}
}

func TestAllAnyNone(t *testing.T) {
	isPositive := func(v int) bool { return v > 0 }

	tests := []struct {
		name     string
		input    []int
		wantAll  bool
		wantAny  bool
		wantNone bool
	}{
		{"all positive", []int{1, 2}, true, true, false},
		{"mixed", []int{-1, 2}, false, true, false},
		{"none positive", []int{-1, 0}, false, false, true},
		{"empty", []int{}, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := flow.FromSlice(tt.input)
			if got := aggregate.All(s, isPositive); got != tt.wantAll {
				t.Errorf("All: expected %v, got %v", tt.wantAll, got)
			}
			if got := aggregate.Any(s, isPositive); got != tt.wantAny {
				t.Errorf("Any: expected %v, got %v", tt.wantAny, got)
			}
			if got := aggregate.None(s, isPositive); got != tt.wantNone {
				t.Errorf("None: expected %v, got %v", tt.wantNone, got)
			}
		})
	}
}
