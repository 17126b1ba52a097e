package viewport

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/tanema/gween/ease"
)

// newTestViewport returns a default viewport that logs nowhere.
func newTestViewport(t *testing.T) *Viewport {
	t.Helper()
	vp, err := NewViewport(DefaultConfig())
	if err != nil {
		t.Fatalf("NewViewport: %v", err)
	}
	vp.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return vp
}

func TestNewViewportInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinZoom = 0
	vp, err := NewViewport(cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if vp != nil {
		t.Error("expected nil viewport on error")
	}
}

func TestNewViewportAppliesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 320, 200
	cfg.View = "front"
	cfg.MinZoom, cfg.MaxZoom = 0.25, 8
	cfg.ScreenshotDir = "out"

	vp, err := NewViewport(cfg)
	if err != nil {
		t.Fatal(err)
	}
	cam := vp.Camera()
	if cam.View() != ViewFront {
		t.Errorf("view = %v, want front", cam.View())
	}
	if vp.Width() != 320 || vp.Height() != 200 {
		t.Errorf("size = %vx%v, want 320x200", vp.Width(), vp.Height())
	}
	if cam.MinZoom != 0.25 || cam.MaxZoom != 8 {
		t.Errorf("zoom range = [%v, %v], want [0.25, 8]", cam.MinZoom, cam.MaxZoom)
	}
	if vp.ScreenshotDir != "out" {
		t.Errorf("ScreenshotDir = %q, want out", vp.ScreenshotDir)
	}
	if vp.Config().View != "front" {
		t.Errorf("Config().View = %q, want front", vp.Config().View)
	}
}

func TestViewportCameraBroadcast(t *testing.T) {
	vp := newTestViewport(t)
	rec := newRecorder("r", nil)
	vp.Register(rec)

	vp.Camera().SetPosition(Vec2{5, 5})
	vp.Camera().SetZoom(2)
	vp.Camera().SetZoom(2)

	want := []EventKind{EventCameraPositionChanged, EventCameraZoomChanged}
	if got := rec.kinds(); !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for _, e := range rec.events {
		if e.Sender != vp {
			t.Errorf("%v sender = %p, want the viewport", e.Kind, e.Sender)
		}
	}
}

func TestViewportUpdateTicks(t *testing.T) {
	vp := newTestViewport(t)
	rec := newRecorder("r", nil)
	vp.Register(rec)

	for i := 0; i < 3; i++ {
		vp.Update()
	}
	if vp.Frame() != 3 {
		t.Errorf("Frame = %d, want 3", vp.Frame())
	}
	if !slices.Equal(rec.ticks, []int64{1, 2, 3}) {
		t.Errorf("ticks = %v, want [1 2 3]", rec.ticks)
	}
}

func TestViewportPollsHost(t *testing.T) {
	vp := newTestViewport(t)
	rec := newRecorder("r", nil)
	vp.Register(rec)

	host := &fakeHost{w: 800, h: 600}
	host.queued = []RawEvent{
		{Kind: EventMouseDown, X: 10, Y: 10, Button: MouseButtonLeft},
		{Kind: EventMouseUp, X: 10, Y: 10, Button: MouseButtonLeft},
	}
	vp.SetHost(host)
	vp.Update()

	if host.polls != 1 {
		t.Errorf("polls = %d, want 1", host.polls)
	}
	want := []EventKind{EventMouseDown, EventMouseUp, EventMouseClick}
	if got := rec.kinds(); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestViewportHostRequests(t *testing.T) {
	vp := newTestViewport(t)
	vp.SetCursor(CursorMove)
	vp.SetCapture(true)

	host := &fakeHost{w: 640, h: 480}
	vp.SetHost(host)
	if host.cursor != CursorMove || !host.capture {
		t.Errorf("SetHost did not push state: cursor=%v capture=%v", host.cursor, host.capture)
	}
	if vp.Width() != 640 || vp.Height() != 480 {
		t.Errorf("camera not sized to host: %vx%v", vp.Width(), vp.Height())
	}

	vp.SetCursor(CursorCrosshair)
	vp.SetCapture(false)
	if host.cursor != CursorCrosshair || host.capture {
		t.Errorf("requests not forwarded: cursor=%v capture=%v", host.cursor, host.capture)
	}
	if vp.Cursor() != CursorCrosshair || vp.Capturing() {
		t.Errorf("viewport state = %v/%v, want crosshair/false", vp.Cursor(), vp.Capturing())
	}
}

func TestViewportResize(t *testing.T) {
	vp := newTestViewport(t)
	host := &fakeHost{w: 800, h: 600}
	vp.SetHost(host)

	vp.Resize(1024, 768)
	if vp.Width() != 1024 || vp.Height() != 768 {
		t.Errorf("camera size = %vx%v, want 1024x768", vp.Width(), vp.Height())
	}
	if !host.resized || host.w != 1024 || host.h != 768 {
		t.Errorf("host not resized: %+v", host)
	}
}

func TestViewportResizeWithoutHost(t *testing.T) {
	vp := newTestViewport(t)
	vp.Resize(10, 20)
	if vp.Width() != 10 || vp.Height() != 20 {
		t.Errorf("camera size = %vx%v, want 10x20", vp.Width(), vp.Height())
	}
}

func TestViewportCoordinateHelpers(t *testing.T) {
	vp := newTestViewport(t)
	vp.Camera().SetZoom(2)

	if w := vp.ScreenToWorld(400, 300); w != (Vec3{}) {
		t.Errorf("ScreenToWorld(center) = %v, want origin", w)
	}
	if s := vp.WorldToScreen(Vec3{X: 10, Y: 10, Z: 99}); !approxEqual(s.X, 420, epsilon) || !approxEqual(s.Y, 280, epsilon) {
		t.Errorf("WorldToScreen = %v, want (420,280)", s)
	}
	w := Vec3{1, 2, 3}
	if vp.Flatten(w) != (Vec2{1, 2}) || vp.Expand(Vec2{1, 2}) != (Vec3{1, 2, 0}) {
		t.Error("Flatten/Expand do not follow the top view")
	}
	if vp.GetUnusedCoordinate(w) != (Vec3{0, 0, 3}) || vp.ZeroUnusedCoordinate(w) != (Vec3{1, 2, 0}) {
		t.Error("unused coordinate helpers do not follow the top view")
	}
	if vp.UnitsToPixels(5) != 10 || vp.PixelsToUnits(10) != 5 || vp.Zoom() != 2 {
		t.Error("unit conversions do not follow zoom")
	}
}

func TestViewportUpdateAdvancesTweens(t *testing.T) {
	vp := newTestViewport(t)
	vp.Camera().ScrollTo(Vec2{60, 0}, 1, ease.Linear)

	// Half a second at the default tick rate.
	for i := 0; i < vp.tps/2; i++ {
		vp.Update()
	}
	if x := vp.Camera().Position().X; !approxEqual(x, 30, 1.0) {
		t.Errorf("X after half the tween = %v, want ~30", x)
	}
}

func TestViewportLockPassthrough(t *testing.T) {
	vp := newTestViewport(t)
	a, b := NewLockToken("a"), NewLockToken("b")
	if !vp.AcquireInputLock(a) {
		t.Fatal("acquire a failed")
	}
	if vp.AcquireInputLock(b) || vp.IsUnlocked(b) {
		t.Error("b should be locked out")
	}
	if !vp.ReleaseInputLock(a) || !vp.IsUnlocked(b) {
		t.Error("release should unlock b")
	}
}

func TestViewportUnregister(t *testing.T) {
	vp := newTestViewport(t)
	rec := newRecorder("r", nil)
	vp.Register(rec)
	if !vp.Unregister(rec) {
		t.Fatal("Unregister returned false")
	}
	vp.Update()
	if len(rec.ticks) != 0 {
		t.Errorf("unregistered listener ticked %v", rec.ticks)
	}
}
