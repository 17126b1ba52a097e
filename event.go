package viewport

import "fmt"

// EventKind identifies the kind of a dispatched Event.
type EventKind uint8

const (
	EventMouseDown             EventKind = iota // a mouse button was pressed
	EventMouseUp                                // a mouse button was released
	EventMouseMove                              // the pointer moved
	EventMouseWheel                             // the wheel scrolled; Delta holds the notches
	EventMouseClick                             // press and release without leaving the click tolerance
	EventMouseDoubleClick                       // host-reported double click
	EventMouseEnter                             // the pointer entered the surface
	EventMouseLeave                             // the pointer left the surface
	EventKeyDown                                // a key was pressed
	EventKeyUp                                  // a key was released
	EventDragStart                              // movement with a button held exceeded the click tolerance
	EventDragMove                               // the pointer moved while dragging
	EventDragEnd                                // the drag button was released
	EventCameraPositionChanged                  // the camera position changed
	EventCameraZoomChanged                      // the camera zoom changed
	EventUpdateFrame                            // per-frame tick; never carried by an Event, used in fault reports
	eventKindCount
)

var eventKindNames = [eventKindCount]string{
	"mouse-down", "mouse-up", "mouse-move", "mouse-wheel", "mouse-click",
	"mouse-double-click", "mouse-enter", "mouse-leave", "key-down", "key-up",
	"drag-start", "drag-move", "drag-end", "camera-position-changed",
	"camera-zoom-changed", "update-frame",
}

func (k EventKind) String() string {
	if k < eventKindCount {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is one dispatched input occurrence enriched with gesture context.
// Everything except Consumed is fixed once the dispatcher builds it.
type Event struct {
	Kind EventKind

	// Sender is the viewport that produced the event. Nil when a Dispatcher
	// is driven directly.
	Sender *Viewport

	// X and Y are the pointer position in screen coordinates.
	X, Y float64

	Button    MouseButton
	Key       Key
	Modifiers KeyModifiers
	// Delta is the wheel movement in notches (positive = away from the user).
	Delta float64

	// Dragging reports whether a drag was in progress when the event was built.
	Dragging bool
	// StartX and StartY are the mouse-down position of the current gesture,
	// or -1 when no button press is being tracked.
	StartX, StartY float64
	// LastX and LastY are the previous known pointer position.
	LastX, LastY float64

	// Consumed stops delivery of this event to later listeners.
	Consumed bool
}

// Consume marks the event as handled.
func (e *Event) Consume() { e.Consumed = true }

// Location returns the pointer position.
func (e *Event) Location() Vec2 { return Vec2{e.X, e.Y} }

// DeltaX returns the horizontal movement since the previous pointer event.
func (e *Event) DeltaX() float64 { return e.X - e.LastX }

// DeltaY returns the vertical movement since the previous pointer event.
func (e *Event) DeltaY() float64 { return e.Y - e.LastY }

func (e *Event) String() string {
	switch e.Kind {
	case EventKeyDown, EventKeyUp:
		return fmt.Sprintf("%s key=%s", e.Kind, e.Key)
	case EventMouseWheel:
		return fmt.Sprintf("%s (%g,%g) delta=%g", e.Kind, e.X, e.Y, e.Delta)
	}
	return fmt.Sprintf("%s (%g,%g) button=%s dragging=%t", e.Kind, e.X, e.Y, e.Button, e.Dragging)
}

// RawEvent is an uninterpreted device callback from a host surface or the
// injection queue. Only the fields relevant to Kind are read.
type RawEvent struct {
	Kind      EventKind
	X, Y      float64
	Button    MouseButton
	Key       Key
	Delta     float64
	Modifiers KeyModifiers
}
