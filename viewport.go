package viewport

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Viewport is one editor view: a camera over the level, a host surface that
// supplies input, and the dispatcher that routes that input to tools.
type Viewport struct {
	config     Config
	dispatcher *Dispatcher
	camera     *Camera
	host       Host
	cursor     CursorShape
	capture    bool

	logger *slog.Logger
	debug  bool
	frame  int64
	tps    int

	drawFn func(screen *ebiten.Image, vp *Viewport)

	// Input injection and scripted testing
	injectQueue []RawEvent
	testRunner  *TestRunner

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewViewport creates a viewport from cfg. No host is attached; input arrives
// only through injection until SetHost is called (Run attaches an
// Ebitengine host automatically).
func NewViewport(cfg Config) (*Viewport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	view, _ := ParseView(cfg.View) // checked by Validate

	vp := &Viewport{
		config:        cfg,
		dispatcher:    NewDispatcher(),
		camera:        NewCamera(view, float64(cfg.Width), float64(cfg.Height)),
		logger:        newLogger(parseLevel(cfg.LogLevel)),
		tps:           ebiten.DefaultTPS,
		ScreenshotDir: cfg.ScreenshotDir,
	}
	vp.camera.MinZoom = cfg.MinZoom
	vp.camera.MaxZoom = cfg.MaxZoom
	vp.dispatcher.sender = vp
	vp.dispatcher.SetLogger(vp.logger)
	vp.camera.onChange = vp.dispatcher.NotifyCamera
	vp.SetDebugMode(cfg.Debug)
	return vp, nil
}

// Config returns the config the viewport was created with.
func (vp *Viewport) Config() Config { return vp.config }

// Dispatcher returns the viewport's event dispatcher.
func (vp *Viewport) Dispatcher() *Dispatcher { return vp.dispatcher }

// Camera returns the viewport's camera.
func (vp *Viewport) Camera() *Camera { return vp.camera }

// Register appends a listener to the dispatch chain.
func (vp *Viewport) Register(l Listener) ListenerHandle { return vp.dispatcher.Register(l) }

// Unregister removes a listener from the dispatch chain.
func (vp *Viewport) Unregister(l Listener) bool { return vp.dispatcher.Unregister(l) }

// SetFaultHandler sets the receiver of contained listener failures.
func (vp *Viewport) SetFaultHandler(fn func(ListenerFault)) { vp.dispatcher.SetFaultHandler(fn) }

// SetLogger replaces the logger used by the viewport and its dispatcher.
func (vp *Viewport) SetLogger(logger *slog.Logger) {
	vp.dispatcher.SetLogger(logger)
	vp.logger = vp.dispatcher.logger
}

// SetDebugMode enables or disables debug logging of raw events and
// per-frame dispatch counts.
func (vp *Viewport) SetDebugMode(enabled bool) {
	vp.debug = enabled
	vp.dispatcher.SetDebugMode(enabled)
}

// SetHost attaches the input surface. The camera is resized to match it.
func (vp *Viewport) SetHost(h Host) {
	vp.host = h
	if h != nil {
		w, hgt := h.Size()
		vp.camera.SetSize(float64(w), float64(hgt))
		h.SetCursor(vp.cursor)
		h.SetCapture(vp.capture)
	}
}

// SetDrawFunc sets the function that renders the viewport contents in Draw.
func (vp *Viewport) SetDrawFunc(fn func(screen *ebiten.Image, vp *Viewport)) {
	vp.drawFn = fn
}

// Frame returns the number of completed updates.
func (vp *Viewport) Frame() int64 { return vp.frame }

// Width returns the surface width in pixels.
func (vp *Viewport) Width() float64 {
	w, _ := vp.camera.Size()
	return w
}

// Height returns the surface height in pixels.
func (vp *Viewport) Height() float64 {
	_, h := vp.camera.Size()
	return h
}

// --- Host requests ---

// SetCursor asks the host to show the given cursor shape.
func (vp *Viewport) SetCursor(shape CursorShape) {
	vp.cursor = shape
	if vp.host != nil {
		vp.host.SetCursor(shape)
	}
}

// Cursor returns the last requested cursor shape.
func (vp *Viewport) Cursor() CursorShape { return vp.cursor }

// SetCapture asks the host to keep delivering pointer events outside the
// surface.
func (vp *Viewport) SetCapture(capture bool) {
	vp.capture = capture
	if vp.host != nil {
		vp.host.SetCapture(capture)
	}
}

// Capturing reports whether pointer capture is requested.
func (vp *Viewport) Capturing() bool { return vp.capture }

// --- Input lock ---

// IsUnlocked reports whether tok may act on input.
func (vp *Viewport) IsUnlocked(tok LockToken) bool { return vp.dispatcher.IsUnlocked(tok) }

// AcquireInputLock claims exclusive input for tok.
func (vp *Viewport) AcquireInputLock(tok LockToken) bool { return vp.dispatcher.AcquireInputLock(tok) }

// ReleaseInputLock releases the input lock if tok holds it.
func (vp *Viewport) ReleaseInputLock(tok LockToken) bool { return vp.dispatcher.ReleaseInputLock(tok) }

// --- 2D helpers ---

// ScreenToWorld converts a screen point to world space on the viewed plane.
func (vp *Viewport) ScreenToWorld(x, y float64) Vec3 { return vp.camera.ScreenToWorld(x, y) }

// WorldToScreen converts a world coordinate to screen space.
func (vp *Viewport) WorldToScreen(w Vec3) Vec2 { return vp.camera.WorldToScreen(w) }

// Flatten projects a world coordinate onto the viewed plane.
func (vp *Viewport) Flatten(w Vec3) Vec2 { return vp.camera.Flatten(w) }

// Expand lifts a flattened coordinate into world space.
func (vp *Viewport) Expand(f Vec2) Vec3 { return vp.camera.Expand(f) }

// GetUnusedCoordinate keeps only the axis the view does not show.
func (vp *Viewport) GetUnusedCoordinate(w Vec3) Vec3 { return vp.camera.UnusedCoordinate(w) }

// ZeroUnusedCoordinate clears the axis the view does not show.
func (vp *Viewport) ZeroUnusedCoordinate(w Vec3) Vec3 { return vp.camera.ZeroUnusedCoordinate(w) }

// UnitsToPixels converts a world length to screen pixels.
func (vp *Viewport) UnitsToPixels(units float64) float64 { return vp.camera.UnitsToPixels(units) }

// PixelsToUnits converts a screen length to world units.
func (vp *Viewport) PixelsToUnits(pixels float64) float64 { return vp.camera.PixelsToUnits(pixels) }

// Zoom returns the camera zoom.
func (vp *Viewport) Zoom() float64 { return vp.camera.Zoom() }

// --- Frame loop ---

// Update runs one frame: the test runner advances, camera tweens step, one
// injected event or the host's polled input is dispatched, and every
// listener receives UpdateFrame.
func (vp *Viewport) Update() {
	dt := float32(1.0 / float64(vp.tps))

	if vp.testRunner != nil {
		vp.testRunner.step(vp)
	}
	vp.camera.update(dt)

	if !vp.processInjectedInput() && vp.host != nil {
		vp.host.Poll(vp.dispatcher.Dispatch)
	}

	vp.frame++
	vp.dispatcher.Tick(vp.frame)
}

// Draw renders the viewport contents and writes any queued screenshots.
func (vp *Viewport) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if vp.debug {
		t0 = time.Now()
	}
	if vp.drawFn != nil {
		vp.drawFn(screen, vp)
	}
	if vp.debug {
		vp.logger.Debug("draw", "frame", vp.frame, "elapsed", time.Since(t0))
	}
	vp.flushScreenshots(screen)
}

// Resize updates the camera and host to a new surface size.
func (vp *Viewport) Resize(width, height int) {
	vp.camera.SetSize(float64(width), float64(height))
	if r, ok := vp.host.(interface{ resize(int, int) }); ok {
		r.resize(width, height)
	}
}
