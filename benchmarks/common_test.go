// Package benchmarks provides comparative benchmarks of pushflow against
// popular Go stream processing libraries.
package benchmarks

import (
	"strconv"
	"testing"
)

// Test data sizes
const (
	SmallSize  = 100
	MediumSize = 1_000
	LargeSize  = 10_000
)

var sizes = []struct {
	name string
	n    int
}{
	{"Small", SmallSize},
	{"Medium", MediumSize},
	{"Large", LargeSize},
}

// runSizes runs bench once per input size as a sub-benchmark.
// The timer is reset after the input is generated.
func runSizes(b *testing.B, bench func(b *testing.B, data []int)) {
	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			data := generateInts(size.n)
			b.ResetTimer()
			bench(b, data)
		})
	}
}

// generateInts creates a slice of integers for benchmarking.
func generateInts(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}
	return data
}

// generateStrings creates a slice of strings for benchmarking.
func generateStrings(n int) []string {
	data := make([]string, n)
	for i := range data {
		data[i] = strconv.Itoa(i)
	}
	return data
}

// square returns the square of an integer.
func square(x int) int {
	return x * x
}

// isEven returns true if the number is even.
func isEven(x int) bool {
	return x%2 == 0
}

// add returns the sum of two integers.
func add(a, b int) int {
	return a + b
}

// stringLen returns the length of a string.
func stringLen(s string) int {
	return len(s)
}
