package flow

// Through chains two transformers together, creating a new transformer
// that first applies t1 and then t2 to the stream.
func Through[IN, MID, OUT any](t1 Transformer[IN, MID], t2 Transformer[MID, OUT]) Transformer[IN, OUT] {
	return TransformerFunc[IN, OUT](func(s Stream[IN]) Stream[OUT] {
		return t2.Apply(t1.Apply(s))
	})
}

// Chain composes multiple transformers of the same type into a single transformer.
// Transformers are applied in order from left to right.
// If no transformers are provided, returns an identity transformer.
func Chain[T any](transformers ...Transformer[T, T]) Transformer[T, T] {
	return TransformerFunc[T, T](func(s Stream[T]) Stream[T] {
		return Pipe(s, transformers...)
	})
}

// Pipe applies a series of transformers to a stream, returning the final stream.
// This is a convenience function for applying multiple transformations inline.
func Pipe[T any](source Stream[T], transformers ...Transformer[T, T]) Stream[T] {
	result := source
	for _, t := range transformers {
		result = t.Apply(result)
	}
	return result
}

// Apply is a helper to apply a single transformer to a stream.
// Equivalent to transformer.Apply(stream) but reads left-to-right.
func Apply[IN, OUT any](stream Stream[IN], transformer Transformer[IN, OUT]) Stream[OUT] {
	return transformer.Apply(stream)
}
