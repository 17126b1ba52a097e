package viewport

import (
	"fmt"
	"runtime/debug"
)

// ListenerFault describes a panic raised by a listener and contained by the
// dispatcher. It is delivered to the fault handler; it is never re-raised.
type ListenerFault struct {
	// Listener is the listener's Name() if it implements Named, otherwise its
	// dynamic type.
	Listener string
	// Kind is the event being delivered, or EventUpdateFrame for ticks.
	Kind EventKind
	// Frame is the tick number for EventUpdateFrame faults.
	Frame int64
	// Err is the panic value, wrapped in an error when it was not one.
	Err error
	// Stack is the goroutine stack captured inside the recover boundary.
	Stack []byte
}

func (f ListenerFault) Error() string {
	return fmt.Sprintf("viewport: listener %s failed on %s: %v", f.Listener, f.Kind, f.Err)
}

func (f ListenerFault) Unwrap() error { return f.Err }

func newListenerFault(l Listener, kind EventKind, recovered any) ListenerFault {
	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", recovered)
	}
	return ListenerFault{
		Listener: listenerName(l),
		Kind:     kind,
		Err:      err,
		Stack:    debug.Stack(),
	}
}

func listenerName(l Listener) string {
	if n, ok := l.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", l)
}
