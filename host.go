package viewport

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Host is the surface a Viewport is attached to. It is the source of raw
// device callbacks and the sink for cursor and pointer-capture requests.
type Host interface {
	// Poll reads the device state for this frame and emits one RawEvent per
	// change, in the order the viewport should dispatch them.
	Poll(emit func(RawEvent))
	// Size returns the surface size in pixels.
	Size() (width, height int)
	SetCursor(shape CursorShape)
	// SetCapture keeps pointer events flowing while the cursor is outside
	// the surface, and suppresses leave events until released.
	SetCapture(capture bool)
}

const (
	defaultDoubleClickInterval = 500 * time.Millisecond
	doubleClickSlop            = 4.0 // pixels
)

// hostButtons lists the buttons polled each frame, in dispatch order.
var hostButtons = [...]struct {
	button MouseButton
	ebiten ebiten.MouseButton
}{
	{MouseButtonLeft, ebiten.MouseButtonLeft},
	{MouseButtonRight, ebiten.MouseButtonRight},
	{MouseButtonMiddle, ebiten.MouseButtonMiddle},
}

// hostFrame is one frame of polled device state.
type hostFrame struct {
	x, y      float64
	pressed   [len(hostButtons)]bool // just pressed this frame
	released  [len(hostButtons)]bool // just released this frame
	wheel     float64
	keysDown  []Key
	keysUp    []Key
	modifiers KeyModifiers
	now       time.Time
}

// hostState turns per-frame device snapshots into raw callbacks. It holds no
// Ebitengine state so the translation can be exercised without a window.
type hostState struct {
	width, height int

	lastX, lastY float64
	posKnown     bool
	inside       bool
	capture      bool
	held         [len(hostButtons)]bool

	doubleClick     time.Duration
	lastPress       time.Time
	lastPressPos    Vec2
	lastPressButton MouseButton
}

func (h *hostState) anyHeld() bool {
	for _, held := range h.held {
		if held {
			return true
		}
	}
	return false
}

// step emits the raw events for one frame: enter, move, button presses and
// releases (with synthesized double clicks), wheel, keys, then leave.
func (h *hostState) step(f hostFrame, emit func(RawEvent)) {
	inside := f.x >= 0 && f.y >= 0 && f.x < float64(h.width) && f.y < float64(h.height)
	tracking := inside || h.capture || h.anyHeld()
	raw := func(kind EventKind) RawEvent {
		return RawEvent{Kind: kind, X: f.x, Y: f.y, Modifiers: f.modifiers}
	}

	if inside && !h.inside {
		emit(raw(EventMouseEnter))
		h.inside = true
	}

	moved := !h.posKnown || f.x != h.lastX || f.y != h.lastY
	if moved && tracking {
		emit(raw(EventMouseMove))
	}
	h.lastX, h.lastY, h.posKnown = f.x, f.y, true

	for i, b := range hostButtons {
		if f.pressed[i] && inside && !h.held[i] {
			h.held[i] = true
			ev := raw(EventMouseDown)
			ev.Button = b.button
			emit(ev)
			if h.isDoubleClick(b.button, f) {
				ev.Kind = EventMouseDoubleClick
				emit(ev)
				h.lastPress = time.Time{}
			} else {
				h.lastPress = f.now
				h.lastPressPos = Vec2{f.x, f.y}
				h.lastPressButton = b.button
			}
		}
		if f.released[i] && h.held[i] {
			h.held[i] = false
			ev := raw(EventMouseUp)
			ev.Button = b.button
			emit(ev)
		}
	}

	if f.wheel != 0 && inside {
		ev := raw(EventMouseWheel)
		ev.Delta = f.wheel
		emit(ev)
	}

	for _, k := range f.keysDown {
		ev := raw(EventKeyDown)
		ev.Key = k
		emit(ev)
	}
	for _, k := range f.keysUp {
		ev := raw(EventKeyUp)
		ev.Key = k
		emit(ev)
	}

	if !inside && h.inside && !h.capture && !h.anyHeld() {
		emit(raw(EventMouseLeave))
		h.inside = false
	}
}

func (h *hostState) isDoubleClick(b MouseButton, f hostFrame) bool {
	if h.lastPress.IsZero() || b != h.lastPressButton {
		return false
	}
	if f.now.Sub(h.lastPress) > h.doubleClick {
		return false
	}
	dx := f.x - h.lastPressPos.X
	dy := f.y - h.lastPressPos.Y
	return dx >= -doubleClickSlop && dx <= doubleClickSlop &&
		dy >= -doubleClickSlop && dy <= doubleClickSlop
}

// --- Ebitengine host ---

type ebitenHost struct {
	state  hostState
	keyBuf []ebiten.Key
	cursor CursorShape
}

// NewEbitenHost returns a Host that polls Ebitengine's input state. It must
// be polled from the game's Update. A zero doubleClick uses 500ms.
func NewEbitenHost(width, height int, doubleClick time.Duration) Host {
	if doubleClick <= 0 {
		doubleClick = defaultDoubleClickInterval
	}
	return &ebitenHost{state: hostState{width: width, height: height, doubleClick: doubleClick}}
}

func (h *ebitenHost) Poll(emit func(RawEvent)) {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	f := hostFrame{
		x:         float64(mx),
		y:         float64(my),
		wheel:     wy,
		modifiers: readModifiers(),
		now:       time.Now(),
	}
	for i, b := range hostButtons {
		f.pressed[i] = inpututil.IsMouseButtonJustPressed(b.ebiten)
		f.released[i] = inpututil.IsMouseButtonJustReleased(b.ebiten)
	}
	h.keyBuf = inpututil.AppendJustPressedKeys(h.keyBuf[:0])
	f.keysDown = append([]Key(nil), h.keyBuf...)
	h.keyBuf = inpututil.AppendJustReleasedKeys(h.keyBuf[:0])
	f.keysUp = append([]Key(nil), h.keyBuf...)

	h.state.step(f, emit)
}

func (h *ebitenHost) Size() (int, int) { return h.state.width, h.state.height }

func (h *ebitenHost) SetCursor(shape CursorShape) {
	if shape == h.cursor {
		return
	}
	h.cursor = shape
	ebiten.SetCursorShape(shape.ebitenShape())
}

func (h *ebitenHost) SetCapture(capture bool) { h.state.capture = capture }

// resize is called from the game's Layout.
func (h *ebitenHost) resize(width, height int) {
	h.state.width, h.state.height = width, height
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}
