package viewport

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Edge scrolling: while the left button is held near the surface edge the
// camera scrolls by (start + increment*min(max, depth))^2 + start pixels per
// frame, where depth is how far the pointer is inside the padding band.
const (
	edgeScrollStart     = 1.0
	edgeScrollIncrement = 0.025
	edgeScrollMaximum   = 200.0
	edgeScrollPadding   = 40.0
)

// presetKeys maps digit keys to zoom presets. 0 counts as 10.
var presetKeys = map[Key]int{
	ebiten.KeyDigit0: 10, ebiten.KeyNumpad0: 10,
	ebiten.KeyDigit1: 1, ebiten.KeyNumpad1: 1,
	ebiten.KeyDigit2: 2, ebiten.KeyNumpad2: 2,
	ebiten.KeyDigit3: 3, ebiten.KeyNumpad3: 3,
	ebiten.KeyDigit4: 4, ebiten.KeyNumpad4: 4,
	ebiten.KeyDigit5: 5, ebiten.KeyNumpad5: 5,
	ebiten.KeyDigit6: 6, ebiten.KeyNumpad6: 6,
	ebiten.KeyDigit7: 7, ebiten.KeyNumpad7: 7,
	ebiten.KeyDigit8: 8, ebiten.KeyNumpad8: 8,
	ebiten.KeyDigit9: 9, ebiten.KeyNumpad9: 9,
}

// presetZoom returns the zoom for digit preset press (1..10): 1 at 6,
// doubling per step above and halving per step below.
func presetZoom(press int) float64 {
	num := max(press-6, 6-press)
	pow := math.Pow(2, float64(num))
	if press < 6 {
		return 1 / pow
	}
	return pow
}

// CameraNavigator is the standard 2D camera control for a viewport:
//
//   - space+left drag or middle drag pans
//   - the wheel zooms around the cursor
//   - digit keys jump to zoom presets
//   - arrow keys pan a quarter screen (NavigationConfig.ArrowKeysPan)
//   - holding left near an edge scrolls (NavigationConfig.EdgeScroll)
//
// Register it ahead of editing tools so it can consume pan gestures before
// they see them. It holds the input lock for the duration of a pan and does
// not start one while another owner holds the lock.
type CameraNavigator struct {
	NopListener

	vp    *Viewport
	cfg   NavigationConfig
	token LockToken

	space     bool
	panning   bool
	panButton MouseButton
	panLast   Vec2

	leftHeld     bool
	pointer      Vec2
	pointerKnown bool
}

// NewCameraNavigator creates a navigator for vp. Register it with
// vp.Register or vp.Dispatcher().Insert.
func NewCameraNavigator(vp *Viewport, cfg NavigationConfig) *CameraNavigator {
	if cfg.WheelZoomMultiplier <= 1 {
		cfg.WheelZoomMultiplier = DefaultConfig().Navigation.WheelZoomMultiplier
	}
	return &CameraNavigator{
		vp:    vp,
		cfg:   cfg,
		token: NewLockToken("camera-navigator"),
	}
}

func (n *CameraNavigator) Name() string { return "camera-navigator" }

func (n *CameraNavigator) IsActive() bool { return n.vp != nil }

// Panning reports whether a pan gesture is in progress.
func (n *CameraNavigator) Panning() bool { return n.panning }

// --- Pan ---

func (n *CameraNavigator) startPan(button MouseButton, at Vec2) bool {
	if !n.vp.AcquireInputLock(n.token) {
		return false
	}
	n.panning = true
	n.panButton = button
	n.panLast = at
	n.vp.SetCursor(CursorMove)
	n.vp.SetCapture(true)
	return true
}

func (n *CameraNavigator) endPan() {
	n.panning = false
	n.panButton = MouseButtonNone
	n.vp.ReleaseInputLock(n.token)
	n.vp.SetCapture(false)
	if n.space {
		n.vp.SetCursor(CursorMove)
	} else {
		n.vp.SetCursor(CursorDefault)
	}
}

// panTo moves the camera so the world point under panLast follows the
// pointer to at. Screen Y grows downward and world Y upward.
func (n *CameraNavigator) panTo(at Vec2) {
	cam := n.vp.Camera()
	z := cam.Zoom()
	shift := Vec2{(n.panLast.X - at.X) / z, (at.Y - n.panLast.Y) / z}
	cam.SetPosition(cam.Position().Add(shift))
	n.panLast = at
}

func (n *CameraNavigator) startsPan(button MouseButton) bool {
	if button == MouseButtonMiddle {
		return true
	}
	return n.space && (button == MouseButtonLeft || !n.cfg.PanRequiresClick)
}

func (n *CameraNavigator) MouseDown(e *Event) {
	if e.Button == MouseButtonLeft {
		n.leftHeld = true
	}
	n.track(e)
	if n.panning || !n.startsPan(e.Button) {
		return
	}
	if n.startPan(e.Button, e.Location()) {
		e.Consume()
	}
}

func (n *CameraNavigator) MouseUp(e *Event) {
	if e.Button == MouseButtonLeft {
		n.leftHeld = false
	}
	n.track(e)
	if n.panning && e.Button == n.panButton {
		n.endPan()
		e.Consume()
	}
}

func (n *CameraNavigator) MouseMove(e *Event) {
	n.track(e)
	if n.space && !n.panning && !n.cfg.PanRequiresClick {
		n.startPan(MouseButtonNone, e.Location())
	}
	if !n.panning {
		return
	}
	n.panTo(e.Location())
	e.Consume()
}

// Drag gestures that started as pans belong to the navigator.

func (n *CameraNavigator) DragStart(e *Event) { n.consumeWhilePanning(e) }
func (n *CameraNavigator) DragMove(e *Event) { n.consumeWhilePanning(e) }
func (n *CameraNavigator) DragEnd(e *Event) { n.consumeWhilePanning(e) }

func (n *CameraNavigator) consumeWhilePanning(e *Event) {
	if n.panning {
		e.Consume()
	}
}

func (n *CameraNavigator) track(e *Event) {
	n.pointer = e.Location()
	n.pointerKnown = true
}

// --- Zoom ---

// MouseWheel zooms by the configured multiplier per notch, keeping the world
// point under the cursor fixed.
func (n *CameraNavigator) MouseWheel(e *Event) {
	if e.Delta == 0 {
		return
	}
	cam := n.vp.Camera()
	cam.StopAnimation()
	before := cam.ScreenToFlat(e.X, e.Y)
	if e.Delta < 0 {
		cam.SetZoom(cam.Zoom() / n.cfg.WheelZoomMultiplier)
	} else {
		cam.SetZoom(cam.Zoom() * n.cfg.WheelZoomMultiplier)
	}
	after := cam.ScreenToFlat(e.X, e.Y)
	cam.SetPosition(cam.Position().Sub(after.Sub(before)))
}

// --- Keyboard ---

func (n *CameraNavigator) KeyDown(e *Event) {
	if e.Key == ebiten.KeySpace {
		n.space = true
		n.vp.SetCursor(CursorMove)
		e.Consume()
		return
	}

	if n.cfg.ArrowKeysPan {
		cam := n.vp.Camera()
		w, h := cam.Size()
		qx, qy := w/cam.Zoom()/4, h/cam.Zoom()/4
		var shift Vec2
		switch e.Key {
		case ebiten.KeyArrowLeft:
			shift.X = -qx
		case ebiten.KeyArrowRight:
			shift.X = qx
		case ebiten.KeyArrowUp:
			shift.Y = qy
		case ebiten.KeyArrowDown:
			shift.Y = -qy
		}
		if shift != (Vec2{}) {
			cam.SetPosition(cam.Position().Add(shift))
		}
	}

	if press, ok := presetKeys[e.Key]; ok {
		z := presetZoom(press)
		cam := n.vp.Camera()
		if n.cfg.ZoomTweenSeconds > 0 {
			cam.ZoomTo(z, float32(n.cfg.ZoomTweenSeconds), ease.OutQuad)
		} else {
			cam.SetZoom(z)
		}
	}
}

func (n *CameraNavigator) KeyUp(e *Event) {
	if e.Key != ebiten.KeySpace {
		return
	}
	n.space = false
	if n.panning && n.panButton == MouseButtonNone {
		n.endPan()
	} else if !n.panning {
		n.vp.SetCursor(CursorDefault)
	}
	e.Consume()
}

func (n *CameraNavigator) MouseEnter(e *Event) {
	n.track(e)
	if n.space {
		n.vp.SetCursor(CursorMove)
	}
}

func (n *CameraNavigator) MouseLeave(e *Event) {
	n.pointerKnown = false
	if !n.panning {
		n.vp.SetCursor(CursorDefault)
	}
}

// --- Edge scroll ---

func edgeScrollStep(depth float64) float64 {
	m := edgeScrollStart + edgeScrollIncrement*math.Min(edgeScrollMaximum, depth)
	return m*m + edgeScrollStart
}

// UpdateFrame scrolls the camera while the left button is held near an edge.
func (n *CameraNavigator) UpdateFrame(frame int64) {
	if !n.cfg.EdgeScroll || !n.leftHeld || n.space || n.panning || !n.pointerKnown {
		return
	}
	cam := n.vp.Camera()
	w, h := cam.Size()
	p := n.pointer

	var shift Vec2
	if p.X < edgeScrollPadding {
		shift.X = -edgeScrollStep(edgeScrollPadding - p.X)
	} else if p.X > w-edgeScrollPadding {
		shift.X = edgeScrollStep(p.X - (w - edgeScrollPadding))
	}
	if p.Y < edgeScrollPadding {
		shift.Y = edgeScrollStep(edgeScrollPadding - p.Y)
	} else if p.Y > h-edgeScrollPadding {
		shift.Y = -edgeScrollStep(p.Y - (h - edgeScrollPadding))
	}
	if shift == (Vec2{}) {
		return
	}
	cam.SetPosition(cam.Position().Add(shift.Scale(1 / cam.Zoom())))
}
