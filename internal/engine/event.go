package engine

// EventWithArg fans a value out to its listeners in the order they were
// added. Physics raises the safety net signals through it and Scene raises
// attach and detach.
type EventWithArg[T any] struct {
	listeners []func(T)
}

// AddListener subscribes fn. A nil fn is ignored.
func (e *EventWithArg[T]) AddListener(fn func(T)) {
	if fn != nil {
		e.listeners = append(e.listeners, fn)
	}
}

// Invoke calls the listeners subscribed before the call started, so a
// listener that subscribes another does not see it fire this round.
func (e *EventWithArg[T]) Invoke(arg T) {
	for _, fn := range e.listeners[:len(e.listeners):len(e.listeners)] {
		fn(arg)
	}
}

func (e *EventWithArg[T]) Clear() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Len() int {
	return len(e.listeners)
}

// Event is an EventWithArg that carries nothing, used for per-body signals
// such as a RigidBody's safety net start and end.
type Event struct {
	sig EventWithArg[struct{}]
}

func (e *Event) AddListener(fn func()) {
	if fn != nil {
		e.sig.AddListener(func(struct{}) { fn() })
	}
}

func (e *Event) Invoke() {
	e.sig.Invoke(struct{}{})
}

func (e *Event) Clear() {
	e.sig.Clear()
}

func (e *Event) Len() int {
	return e.sig.Len()
}
