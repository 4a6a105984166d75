package observe

import (
	"context"
	"log/slog"
	"time"

	"github.com/lguimbarda/pushflow/flow/core"
)

// Log returns a stream that reports every invocation of s to logger:
// a debug record when it starts, a debug record when the consumer stops it,
// and an info record when it returns with the item count and duration.
// A nil logger uses slog.Default().
func Log[T any](s core.Stream[T], logger *slog.Logger, name string) core.Stream[T] {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("stream", name))

	return func(r core.Consumer[T]) bool {
		ctx := context.Background()
		var items int64
		start := time.Now()

		done := core.Observe(s, core.Hooks[T]{
			OnStart: func() {
				logger.DebugContext(ctx, "stream started")
			},
			OnValue: func(T) { items++ },
			OnStop: func(v T) {
				logger.DebugContext(ctx, "stream stopped by consumer", slog.Any("last", v))
			},
		})(r)

		logger.InfoContext(ctx, "stream finished",
			slog.Int64("items", items),
			slog.Bool("completed", done),
			slog.Duration("elapsed", time.Since(start)),
		)
		return done
	}
}

// Logged creates a Transformer applying Log.
func Logged[T any](logger *slog.Logger, name string) core.Transformer[T, T] {
	return core.TransformerFunc[T, T](func(s core.Stream[T]) core.Stream[T] {
		return Log(s, logger, name)
	})
}
