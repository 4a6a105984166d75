package observe

import (
	"github.com/lguimbarda/pushflow/flow/core"
)

// Notification represents a materialized stream event.
// This allows downstream operators to treat values and completion uniformly.
type Notification[T any] struct {
	Kind  NotificationKind
	Value T
}

// NotificationKind indicates the type of notification.
type NotificationKind int

const (
	NotificationValue NotificationKind = iota
	NotificationComplete
)

// MaterializeNotification converts a stream of T into a stream of Notification[T].
// A NotificationComplete is appended only if the source ran to completion, so
// a stopped or truncated run is distinguishable from a finished one.
func MaterializeNotification[T any]() core.Transformer[T, Notification[T]] {
	return core.TransformerFunc[T, Notification[T]](func(s core.Stream[T]) core.Stream[Notification[T]] {
		return func(r core.Consumer[Notification[T]]) bool {
			if !s(func(v T) bool {
				return r(Notification[T]{Kind: NotificationValue, Value: v})
			}) {
				return false
			}
			return r(Notification[T]{Kind: NotificationComplete})
		}
	})
}

// DematerializeNotification converts a stream of Notification[T] back into a stream of T.
// It reports completion when it meets a NotificationComplete, and stops the
// notification stream there.
func DematerializeNotification[T any]() core.Transformer[Notification[T], T] {
	return core.TransformerFunc[Notification[T], T](func(s core.Stream[Notification[T]]) core.Stream[T] {
		return func(r core.Consumer[T]) bool {
			completed := false
			done := s(func(n Notification[T]) bool {
				if n.Kind == NotificationComplete {
					completed = true
					return false
				}
				return r(n.Value)
			})
			return done || completed
		}
	})
}
