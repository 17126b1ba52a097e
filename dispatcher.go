package viewport

import "log/slog"

// --- Listener registry ---

type listenerEntry struct {
	id uint32
	l  Listener
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	id uint32
	d  *Dispatcher
}

// Remove unregisters the listener. It takes effect from the next dispatched
// event; a dispatch already in progress still reaches the listener.
func (h ListenerHandle) Remove() {
	if h.d == nil {
		return
	}
	h.d.removeID(h.id)
}

// Dispatcher turns raw device callbacks into Events and runs them through an
// ordered chain of listeners. It owns the gesture state and the input lock.
//
// A Dispatcher is not safe for concurrent use; every method must be called
// from the goroutine that delivers host input.
type Dispatcher struct {
	sender *Viewport

	// listeners is replaced, never mutated in place, so a dispatch loop
	// ranging over the old slice is unaffected by registration changes.
	listeners []listenerEntry
	nextID    uint32

	gesture gestureState
	lock    InputLock

	onFault func(ListenerFault)
	logger  *slog.Logger
	debug   bool
	stats   dispatchStats
}

// NewDispatcher creates a dispatcher with no listeners and no tracked
// pointer position.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{logger: defaultLogger()}
	d.gesture.reset()
	return d
}

// Register appends l to the chain, giving it the lowest priority.
func (d *Dispatcher) Register(l Listener) ListenerHandle {
	return d.Insert(len(d.listeners), l)
}

// Insert places l at index in the chain. Index 0 is the highest priority.
// Out-of-range indexes are clamped.
func (d *Dispatcher) Insert(index int, l Listener) ListenerHandle {
	if index < 0 {
		index = 0
	}
	if index > len(d.listeners) {
		index = len(d.listeners)
	}
	d.nextID++
	next := make([]listenerEntry, 0, len(d.listeners)+1)
	next = append(next, d.listeners[:index]...)
	next = append(next, listenerEntry{id: d.nextID, l: l})
	next = append(next, d.listeners[index:]...)
	d.listeners = next
	return ListenerHandle{id: d.nextID, d: d}
}

// Unregister removes the first registration of l. Listeners are compared
// with ==, so their dynamic type must be comparable (pointer listeners
// always are). It reports whether l was registered.
func (d *Dispatcher) Unregister(l Listener) bool {
	for _, ent := range d.listeners {
		if ent.l == l {
			d.removeID(ent.id)
			return true
		}
	}
	return false
}

func (d *Dispatcher) removeID(id uint32) {
	for i := range d.listeners {
		if d.listeners[i].id == id {
			next := make([]listenerEntry, 0, len(d.listeners)-1)
			next = append(next, d.listeners[:i]...)
			next = append(next, d.listeners[i+1:]...)
			d.listeners = next
			return
		}
	}
}

// Listeners returns the registered listeners in priority order.
func (d *Dispatcher) Listeners() []Listener {
	out := make([]Listener, len(d.listeners))
	for i, ent := range d.listeners {
		out[i] = ent.l
	}
	return out
}

// SetFaultHandler sets the function that receives contained listener
// failures. Faults are logged whether or not a handler is set.
func (d *Dispatcher) SetFaultHandler(fn func(ListenerFault)) {
	d.onFault = fn
}

// SetLogger replaces the dispatcher's logger. A nil logger restores the default.
func (d *Dispatcher) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = defaultLogger()
	}
	d.logger = logger
}

// SetDebugMode enables per-event and per-frame debug logging.
func (d *Dispatcher) SetDebugMode(enabled bool) {
	d.debug = enabled
}

// Gesture returns a copy of the current gesture state.
func (d *Dispatcher) Gesture() GestureState {
	return d.gesture.snapshot()
}

// --- Input lock ---

// IsUnlocked reports whether tok may act on input: the lock is free or tok
// holds it.
func (d *Dispatcher) IsUnlocked(tok LockToken) bool {
	return d.lock.IsUnlocked(tok)
}

// AcquireInputLock claims exclusive input for tok. See InputLock.Acquire.
func (d *Dispatcher) AcquireInputLock(tok LockToken) bool {
	return d.lock.Acquire(tok)
}

// ReleaseInputLock releases the lock if tok holds it. See InputLock.Release.
func (d *Dispatcher) ReleaseInputLock(tok LockToken) bool {
	return d.lock.Release(tok)
}

// InputLockOwner returns the current lock owner, if any.
func (d *Dispatcher) InputLockOwner() (LockToken, bool) {
	return d.lock.Owner()
}

// --- Dispatch ---

// Dispatch converts one raw device callback into events and delivers them.
// Mouse down, move, and up run through the gesture detector and may produce
// drag and click events around the raw one. Synthetic-only kinds (drag and
// camera events) are ignored.
func (d *Dispatcher) Dispatch(raw RawEvent) {
	if d.debug {
		d.logger.Debug("raw event", "kind", raw.Kind.String(), "x", raw.X, "y", raw.Y,
			"button", raw.Button.String())
	}
	switch raw.Kind {
	case EventMouseDown:
		d.mouseDown(raw)
	case EventMouseUp:
		d.mouseUp(raw)
	case EventMouseMove:
		d.mouseMove(raw)
	case EventMouseLeave:
		d.mouseLeave(raw)
	case EventMouseWheel, EventMouseClick, EventMouseDoubleClick, EventMouseEnter,
		EventKeyDown, EventKeyUp:
		d.deliver(d.newEvent(raw.Kind, raw))
	default:
		d.logger.Warn("ignoring raw event of synthetic kind", "kind", raw.Kind.String())
	}
}

// Tick delivers UpdateFrame to every active listener. Ticks are never
// short-circuited.
func (d *Dispatcher) Tick(frame int64) {
	for _, ent := range d.listeners {
		if !d.isActive(ent.l, EventUpdateFrame) {
			continue
		}
		d.callTick(ent.l, frame)
	}
	if d.debug {
		d.debugLog(frame)
	}
	d.stats = dispatchStats{}
}

// NotifyCamera broadcasts a camera change to every active listener. kind must
// be EventCameraPositionChanged or EventCameraZoomChanged. Like ticks, camera
// notifications ignore Consumed.
func (d *Dispatcher) NotifyCamera(kind EventKind) {
	if kind != EventCameraPositionChanged && kind != EventCameraZoomChanged {
		return
	}
	fn := handlerFor(kind)
	for _, ent := range d.listeners {
		if !d.isActive(ent.l, kind) {
			continue
		}
		e := d.newEvent(kind, RawEvent{X: d.gesture.last.X, Y: d.gesture.last.Y})
		d.call(ent.l, fn, e)
	}
}

// deliver runs e through the active listeners in order until one consumes it.
func (d *Dispatcher) deliver(e *Event) {
	d.stats.events++
	fn := handlerFor(e.Kind)
	for _, ent := range d.listeners {
		if !d.isActive(ent.l, e.Kind) {
			continue
		}
		d.call(ent.l, fn, e)
		if e.Consumed {
			d.stats.consumed++
			return
		}
	}
}

// newEvent builds an Event for kind from raw plus the current gesture context.
func (d *Dispatcher) newEvent(kind EventKind, raw RawEvent) *Event {
	g := &d.gesture
	e := &Event{
		Kind:      kind,
		Sender:    d.sender,
		X:         raw.X,
		Y:         raw.Y,
		Button:    raw.Button,
		Key:       raw.Key,
		Modifiers: raw.Modifiers,
		Delta:     raw.Delta,
		Dragging:  g.dragging,
		StartX:    -1,
		StartY:    -1,
		LastX:     g.last.X,
		LastY:     g.last.Y,
	}
	if g.downKnown {
		e.StartX, e.StartY = g.down.X, g.down.Y
	}
	return e
}

// --- Failure boundary ---

func (d *Dispatcher) call(l Listener, fn func(Listener, *Event), e *Event) {
	defer d.recoverFault(l, e.Kind, 0)
	fn(l, e)
}

func (d *Dispatcher) callTick(l Listener, frame int64) {
	defer d.recoverFault(l, EventUpdateFrame, frame)
	l.UpdateFrame(frame)
}

// isActive evaluates l.IsActive inside the failure boundary. A panicking
// predicate counts as inactive.
func (d *Dispatcher) isActive(l Listener, kind EventKind) (active bool) {
	defer func() {
		if r := recover(); r != nil {
			d.report(newListenerFault(l, kind, r))
			active = false
		}
	}()
	return l.IsActive()
}

func (d *Dispatcher) recoverFault(l Listener, kind EventKind, frame int64) {
	if r := recover(); r != nil {
		f := newListenerFault(l, kind, r)
		f.Frame = frame
		d.report(f)
	}
}

// report sends f down the diagnostic channel. A panicking fault handler is
// logged and otherwise ignored so that it cannot break the event stream.
func (d *Dispatcher) report(f ListenerFault) {
	d.stats.faults++
	attrs := []any{"listener", f.Listener, "event", f.Kind.String(), "err", f.Err}
	if d.debug {
		attrs = append(attrs, "stack", string(f.Stack))
	}
	d.logger.Error("listener fault", attrs...)

	if d.onFault == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("fault handler panicked", "panic", r)
		}
	}()
	d.onFault(f)
}
