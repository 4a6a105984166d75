package core

// Hooks holds typed observation callbacks for a stream.
// All fields are optional - nil means no observation for that event.
// Hooks run synchronously on the invoking goroutine, so they should be
// fast.
type Hooks[T any] struct {
	OnStart    func()          // Invocation begins
	OnValue    func(T)         // Value about to be delivered downstream
	OnStop     func(T)         // Downstream refused more input after this value
	OnComplete func(done bool) // Upstream returned; done is its result
}

// Observe returns a Stream that reports the lifecycle of every invocation of
// s to hooks while delivering its values unchanged. Several Hooks may be
// given; they are invoked in order.
func Observe[T any](s Stream[T], hooks ...Hooks[T]) Stream[T] {
	inv := newHookInvoker(hooks)
	if !inv.active() {
		return s
	}
	return func(r Consumer[T]) bool {
		inv.invokeStart()
		done := s(func(v T) bool {
			inv.invokeValue(v)
			if !r(v) {
				inv.invokeStop(v)
				return false
			}
			return true
		})
		inv.invokeComplete(done)
		return done
	}
}

// hookInvoker caches which hook types exist to avoid repeated nil checks
// on the per-element path.
type hookInvoker[T any] struct {
	hookSets    []Hooks[T]
	hasStart    bool
	hasValue    bool
	hasStop     bool
	hasComplete bool
}

func newHookInvoker[T any](hooks []Hooks[T]) *hookInvoker[T] {
	inv := &hookInvoker[T]{hookSets: hooks}
	for _, h := range hooks {
		inv.hasStart = inv.hasStart || h.OnStart != nil
		inv.hasValue = inv.hasValue || h.OnValue != nil
		inv.hasStop = inv.hasStop || h.OnStop != nil
		inv.hasComplete = inv.hasComplete || h.OnComplete != nil
	}
	return inv
}

func (h *hookInvoker[T]) active() bool {
	return h.hasStart || h.hasValue || h.hasStop || h.hasComplete
}

func (h *hookInvoker[T]) invokeStart() {
	if !h.hasStart {
		return
	}
	for _, hooks := range h.hookSets {
		if hooks.OnStart != nil {
			hooks.OnStart()
		}
	}
}

func (h *hookInvoker[T]) invokeValue(v T) {
	if !h.hasValue {
		return
	}
	for _, hooks := range h.hookSets {
		if hooks.OnValue != nil {
			hooks.OnValue(v)
		}
	}
}

func (h *hookInvoker[T]) invokeStop(v T) {
	if !h.hasStop {
		return
	}
	for _, hooks := range h.hookSets {
		if hooks.OnStop != nil {
			hooks.OnStop(v)
		}
	}
}

func (h *hookInvoker[T]) invokeComplete(done bool) {
	if !h.hasComplete {
		return
	}
	for _, hooks := range h.hookSets {
		if hooks.OnComplete != nil {
			hooks.OnComplete(done)
		}
	}
}
