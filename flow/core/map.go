package core

// Where returns a Stream that delivers only the values of s for which
// predicate returns true.
//
// A rejected value never stops iteration: only the downstream consumer can
// do that. The returned stream reports exactly what s reports.
func Where[T any](s Stream[T], predicate func(T) bool) Stream[T] {
	return func(r Consumer[T]) bool {
		return s(func(v T) bool {
			if predicate(v) {
				return r(v)
			}
			return true
		})
	}
}

// Select returns a Stream that delivers mapper(v) for every value v of s.
// The consumer's answer is passed straight back to s.
func Select[IN, OUT any](s Stream[IN], mapper func(IN) OUT) Stream[OUT] {
	return func(r Consumer[OUT]) bool {
		return s(func(v IN) bool {
			return r(mapper(v))
		})
	}
}

// SelectMany maps every value of s to a Stream and delivers the values of
// each inner stream in turn. A stop from the consumer ends both the inner
// and the outer stream.
func SelectMany[IN, OUT any](s Stream[IN], project func(IN) Stream[OUT]) Stream[OUT] {
	return func(r Consumer[OUT]) bool {
		return s(func(v IN) bool {
			return project(v)(r)
		})
	}
}

// Tap calls fn for every value before passing it on unchanged.
func Tap[T any](s Stream[T], fn func(T)) Stream[T] {
	return func(r Consumer[T]) bool {
		return s(func(v T) bool {
			fn(v)
			return r(v)
		})
	}
}

// Mapper is a 1:1 transformation. It implements Transformer so it can be
// used as a pipeline stage.
// It answers the question: "What is done to each item in the flow?"
type Mapper[IN, OUT any] func(IN) OUT

// Map creates a Mapper from a function.
func Map[IN, OUT any](fn func(IN) OUT) Mapper[IN, OUT] {
	return fn
}

// Apply implements Transformer.
func (m Mapper[IN, OUT]) Apply(s Stream[IN]) Stream[OUT] {
	return Select[IN, OUT](s, m)
}

// FlatMapper is a 1:N transformation producing a slice per input value.
type FlatMapper[IN, OUT any] func(IN) []OUT

// FlatMap creates a FlatMapper from a function.
func FlatMap[IN, OUT any](fn func(IN) []OUT) FlatMapper[IN, OUT] {
	return fn
}

// Apply implements Transformer.
func (m FlatMapper[IN, OUT]) Apply(s Stream[IN]) Stream[OUT] {
	return func(r Consumer[OUT]) bool {
		return s(func(v IN) bool {
			for _, out := range m(v) {
				if !r(out) {
					return false
				}
			}
			return true
		})
	}
}

// Fuse combines two Mappers into one, avoiding a second wrapper per element.
func Fuse[IN, MID, OUT any](first Mapper[IN, MID], second Mapper[MID, OUT]) Mapper[IN, OUT] {
	return func(in IN) OUT {
		return second(first(in))
	}
}

// Predicate is a filter function. It implements Transformer.
type Predicate[T any] func(T) bool

// Apply implements Transformer.
func (p Predicate[T]) Apply(s Stream[T]) Stream[T] {
	return Where[T](s, p)
}
