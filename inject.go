package viewport

// InjectPress queues a left-button press at the given screen coordinates.
// Injected events are dispatched one per frame in place of host input, so
// scripted input goes through the same gesture detection as the mouse.
func (vp *Viewport) InjectPress(x, y float64) {
	vp.InjectButtonPress(x, y, MouseButtonLeft)
}

// InjectButtonPress queues a press of button at the given screen coordinates.
func (vp *Viewport) InjectButtonPress(x, y float64, button MouseButton) {
	vp.injectQueue = append(vp.injectQueue, RawEvent{
		Kind:   EventMouseDown,
		X:      x,
		Y:      y,
		Button: button,
	})
}

// InjectMove queues a pointer move to the given screen coordinates. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (vp *Viewport) InjectMove(x, y float64) {
	vp.injectQueue = append(vp.injectQueue, RawEvent{
		Kind: EventMouseMove,
		X:    x,
		Y:    y,
	})
}

// InjectRelease queues a left-button release at the given screen coordinates.
func (vp *Viewport) InjectRelease(x, y float64) {
	vp.InjectButtonRelease(x, y, MouseButtonLeft)
}

// InjectButtonRelease queues a release of button at the given screen
// coordinates.
func (vp *Viewport) InjectButtonRelease(x, y float64, button MouseButton) {
	vp.injectQueue = append(vp.injectQueue, RawEvent{
		Kind:   EventMouseUp,
		X:      x,
		Y:      y,
		Button: button,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (vp *Viewport) InjectClick(x, y float64) {
	vp.InjectPress(x, y)
	vp.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (vp *Viewport) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	vp.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		vp.InjectMove(x, y)
	}
	vp.InjectRelease(toX, toY)
}

// InjectKey queues a key press followed by its release.
func (vp *Viewport) InjectKey(key Key, mods KeyModifiers) {
	vp.injectQueue = append(vp.injectQueue,
		RawEvent{Kind: EventKeyDown, Key: key, Modifiers: mods},
		RawEvent{Kind: EventKeyUp, Key: key, Modifiers: mods},
	)
}

// InjectKeyDown queues a key press without a release, for held keys such as
// the pan modifier.
func (vp *Viewport) InjectKeyDown(key Key) {
	vp.injectQueue = append(vp.injectQueue, RawEvent{Kind: EventKeyDown, Key: key})
}

// InjectKeyUp queues a key release.
func (vp *Viewport) InjectKeyUp(key Key) {
	vp.injectQueue = append(vp.injectQueue, RawEvent{Kind: EventKeyUp, Key: key})
}

// InjectWheel queues a wheel step at the given screen coordinates. Positive
// delta scrolls up.
func (vp *Viewport) InjectWheel(x, y, delta float64) {
	vp.injectQueue = append(vp.injectQueue, RawEvent{
		Kind:  EventMouseWheel,
		X:     x,
		Y:     y,
		Delta: delta,
	})
}

// InjectLeave queues the pointer leaving the surface.
func (vp *Viewport) InjectLeave() {
	vp.injectQueue = append(vp.injectQueue, RawEvent{Kind: EventMouseLeave})
}

// Pending returns the number of injected events not yet dispatched.
func (vp *Viewport) Pending() int { return len(vp.injectQueue) }

// processInjectedInput pops one event from the inject queue and dispatches
// it. Returns true if an event was consumed (host input should be skipped).
func (vp *Viewport) processInjectedInput() bool {
	if len(vp.injectQueue) == 0 {
		return false
	}
	raw := vp.injectQueue[0]
	copy(vp.injectQueue, vp.injectQueue[1:])
	vp.injectQueue = vp.injectQueue[:len(vp.injectQueue)-1]

	vp.dispatcher.Dispatch(raw)
	return true
}
