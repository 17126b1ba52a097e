package viewport

// Listener is implemented by tools and other components that receive viewport
// input. The dispatcher calls IsActive before every delivery and skips the
// listener entirely when it returns false.
//
// Listeners run on the host's update goroutine and must return before the
// next listener in the chain is invoked. A listener stops further delivery of
// an event by calling Event.Consume.
type Listener interface {
	IsActive() bool

	MouseDown(e *Event)
	MouseUp(e *Event)
	MouseMove(e *Event)
	MouseWheel(e *Event)
	MouseClick(e *Event)
	MouseDoubleClick(e *Event)
	MouseEnter(e *Event)
	MouseLeave(e *Event)

	KeyDown(e *Event)
	KeyUp(e *Event)

	DragStart(e *Event)
	DragMove(e *Event)
	DragEnd(e *Event)

	// UpdateFrame is called once per frame. Ticks cannot be consumed.
	UpdateFrame(frame int64)

	PositionChanged(e *Event)
	ZoomChanged(e *Event)
}

// NopListener implements every Listener method as a no-op and reports itself
// active. Embed it to implement only the handlers a tool cares about.
type NopListener struct{}

func (NopListener) IsActive() bool { return true }
func (NopListener) MouseDown(*Event) {}
func (NopListener) MouseUp(*Event) {}
func (NopListener) MouseMove(*Event) {}
func (NopListener) MouseWheel(*Event) {}
func (NopListener) MouseClick(*Event) {}
func (NopListener) MouseDoubleClick(*Event) {}
func (NopListener) MouseEnter(*Event) {}
func (NopListener) MouseLeave(*Event) {}
func (NopListener) KeyDown(*Event) {}
func (NopListener) KeyUp(*Event) {}
func (NopListener) DragStart(*Event) {}
func (NopListener) DragMove(*Event) {}
func (NopListener) DragEnd(*Event) {}
func (NopListener) UpdateFrame(int64) {}
func (NopListener) PositionChanged(*Event) {}
func (NopListener) ZoomChanged(*Event) {}

// Named is an optional interface used to label a listener in fault reports.
type Named interface {
	Name() string
}

// handlerFor returns the Listener method that receives events of kind k.
func handlerFor(k EventKind) func(Listener, *Event) {
	switch k {
	case EventMouseDown:
		return Listener.MouseDown
	case EventMouseUp:
		return Listener.MouseUp
	case EventMouseMove:
		return Listener.MouseMove
	case EventMouseWheel:
		return Listener.MouseWheel
	case EventMouseClick:
		return Listener.MouseClick
	case EventMouseDoubleClick:
		return Listener.MouseDoubleClick
	case EventMouseEnter:
		return Listener.MouseEnter
	case EventMouseLeave:
		return Listener.MouseLeave
	case EventKeyDown:
		return Listener.KeyDown
	case EventKeyUp:
		return Listener.KeyUp
	case EventDragStart:
		return Listener.DragStart
	case EventDragMove:
		return Listener.DragMove
	case EventDragEnd:
		return Listener.DragEnd
	case EventCameraPositionChanged:
		return Listener.PositionChanged
	case EventCameraZoomChanged:
		return Listener.ZoomChanged
	}
	return nil
}
