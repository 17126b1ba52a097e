package viewport

import "math"

// clickTolerance is the per-axis movement, in screen units, that a press may
// drift and still count as a click. Movement strictly greater than this on
// either axis starts a drag.
const clickTolerance = 1.0

// gestureState tracks one pointer's press, drag, and position history.
type gestureState struct {
	dragging   bool
	dragButton MouseButton // button captured at press time; None when no press is tracked
	down       Vec2
	downKnown  bool
	last       Vec2
	lastKnown  bool
}

// GestureState is a snapshot of the dispatcher's gesture tracking.
type GestureState struct {
	Dragging       bool
	DragButton     MouseButton
	MouseDown      Vec2
	MouseDownKnown bool
	Last           Vec2
	LastKnown      bool
}

func (g *gestureState) snapshot() GestureState {
	return GestureState{
		Dragging:       g.dragging,
		DragButton:     g.dragButton,
		MouseDown:      g.down,
		MouseDownKnown: g.downKnown,
		Last:           g.last,
		LastKnown:      g.lastKnown,
	}
}

func (g *gestureState) reset() {
	*g = gestureState{
		down: Vec2{-1, -1},
		last: Vec2{-1, -1},
	}
}

// seed makes pos the previous position when tracking was lost, so the first
// event after a leave reports a zero delta instead of a jump.
func (g *gestureState) seed(pos Vec2) {
	if !g.lastKnown {
		g.last = pos
	}
}

func (g *gestureState) track(pos Vec2) {
	g.last = pos
	g.lastKnown = true
}

func (g *gestureState) clearDown() {
	g.down = Vec2{-1, -1}
	g.downKnown = false
	g.dragButton = MouseButtonNone
}

// exceedsTolerance reports whether to is more than clickTolerance away from
// from on either axis.
func exceedsTolerance(from, to Vec2) bool {
	return math.Abs(to.X-from.X) > clickTolerance || math.Abs(to.Y-from.Y) > clickTolerance
}

// --- Pointer state machine ---

// mouseDown records the press position and button unless a drag is already
// running, then delivers the raw down event.
func (d *Dispatcher) mouseDown(raw RawEvent) {
	g := &d.gesture
	pos := Vec2{raw.X, raw.Y}
	g.seed(pos)

	if !g.dragging {
		g.down = pos
		g.downKnown = true
		g.dragButton = raw.Button
	}
	d.deliver(d.newEvent(EventMouseDown, raw))

	g.track(pos)
}

// mouseMove delivers drag-start (on the transition frame), the raw move, and
// drag-move (on every later move of the drag), in that order.
func (d *Dispatcher) mouseMove(raw RawEvent) {
	g := &d.gesture
	pos := Vec2{raw.X, raw.Y}
	g.seed(pos)

	wasDragging := g.dragging
	if !g.dragging && g.downKnown && exceedsTolerance(g.down, pos) {
		g.dragging = true
		start := d.newEvent(EventDragStart, raw)
		start.Button = g.dragButton
		d.deliver(start)
	}

	d.deliver(d.newEvent(EventMouseMove, raw))

	if wasDragging {
		move := d.newEvent(EventDragMove, raw)
		move.Button = g.dragButton
		d.deliver(move)
	}

	g.track(pos)
}

// mouseUp delivers drag-end (if the drag button was released), the raw up,
// and a click when the press never left the tolerance box.
//
// A release of a different button while dragging leaves the drag running and
// keeps the press position; it can still produce a click if the pointer is
// back within tolerance of the press.
func (d *Dispatcher) mouseUp(raw RawEvent) {
	g := &d.gesture
	pos := Vec2{raw.X, raw.Y}
	g.seed(pos)

	endsDrag := g.dragging && raw.Button == g.dragButton
	if endsDrag {
		d.deliver(d.newEvent(EventDragEnd, raw))
	}

	d.deliver(d.newEvent(EventMouseUp, raw))

	if !endsDrag && g.downKnown && !exceedsTolerance(g.down, pos) {
		d.deliver(d.newEvent(EventMouseClick, raw))
	}

	if endsDrag {
		g.dragging = false
	}
	if !g.dragging {
		g.clearDown()
	}

	g.track(pos)
}

// mouseLeave delivers the leave event and forgets the last position. Drag
// and press state survive a leave.
func (d *Dispatcher) mouseLeave(raw RawEvent) {
	d.deliver(d.newEvent(EventMouseLeave, raw))
	d.gesture.last = Vec2{-1, -1}
	d.gesture.lastKnown = false
}
