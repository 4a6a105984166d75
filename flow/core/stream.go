// package core defines the push stream abstraction: a producer that drives
// iteration by calling a consumer, and a consumer that can ask the producer
// to stop by returning false.
//
// It provides the foundational building blocks (the Stream and Consumer
// contracts, the core combinators and terminal consumers) used by every
// other flow package.
//
// NOTE: this package should have no dependencies outside the standard
// library, including other flow packages.
package core

// Consumer receives the values of a Stream one at a time.
// Returning true asks for more values; returning false tells the producer
// to stop. A Consumer must accept any value the stream can produce.
type Consumer[T any] func(T) bool

// Stream produces values by calling the given Consumer once per element,
// synchronously and in a fixed order.
// It returns true when every element was delivered without the consumer
// asking to stop, and false when iteration ended early.
//
// A Stream holds no cursor: invoking it again replays the whole sequence.
// Stream answers the question: "What operations will produce the stream's data?".
type Stream[T any] func(Consumer[T]) bool

// Run invokes the stream with c and reports whether it ran to completion.
func (s Stream[T]) Run(c Consumer[T]) bool {
	return s(c)
}

// Where is the method form of the package-level Where.
func (s Stream[T]) Where(predicate func(T) bool) Stream[T] {
	return Where(s, predicate)
}

// ToArray is the method form of the package-level ToArray.
func (s Stream[T]) ToArray() []T {
	return ToArray(s)
}

// Transformer represents a reusable pipeline stage that turns a Stream of
// type IN into a Stream of type OUT. Transformers can be composed to build
// larger pipelines.
// They answer the question: "What operations are being applied to the stream's data?".
type Transformer[IN, OUT any] interface {
	Apply(Stream[IN]) Stream[OUT]
}

// TransformerFunc adapts an ordinary function to the Transformer interface.
type TransformerFunc[IN, OUT any] func(Stream[IN]) Stream[OUT]

// Apply implements Transformer.
func (f TransformerFunc[IN, OUT]) Apply(s Stream[IN]) Stream[OUT] {
	return f(s)
}
