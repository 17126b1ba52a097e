package viewport

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera(ViewTop, 800, 600)
	if cam.Zoom() != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom())
	}
	if cam.Position() != (Vec2{}) {
		t.Errorf("Position = %v, want origin", cam.Position())
	}
	if w, h := cam.Size(); w != 800 || h != 600 {
		t.Errorf("Size = %vx%v, want 800x600", w, h)
	}
}

func TestCameraOriginAtCenter(t *testing.T) {
	cam := NewCamera(ViewTop, 800, 600)
	s := cam.WorldToScreen(Vec3{})
	if !approxEqual(s.X, 400, epsilon) || !approxEqual(s.Y, 300, epsilon) {
		t.Errorf("WorldToScreen(origin) = %v, want (400,300)", s)
	}
}

func TestCameraWorldYUp(t *testing.T) {
	cam := NewCamera(ViewTop, 800, 600)
	s := cam.WorldToScreen(Vec3{X: 10, Y: 10})
	if !approxEqual(s.X, 410, epsilon) || !approxEqual(s.Y, 290, epsilon) {
		t.Errorf("WorldToScreen(10,10) = %v, want (410,290)", s)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := NewCamera(ViewTop, 800, 600)
	cam.SetPosition(Vec2{100, 50})
	s := cam.WorldToScreen(Vec3{X: 100, Y: 50})
	if !approxEqual(s.X, 400, epsilon) || !approxEqual(s.Y, 300, epsilon) {
		t.Errorf("WorldToScreen(100,50) with cam at (100,50) = %v, want (400,300)", s)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := NewCamera(ViewTop, 800, 600)
	cam.SetZoom(2)

	// At zoom 2, a point 1 unit from camera center should appear 2 pixels away
	s1 := cam.WorldToScreen(Vec3{X: 1})
	s0 := cam.WorldToScreen(Vec3{})
	if !approxEqual(s1.X-s0.X, 2.0, epsilon) {
		t.Errorf("zoom 2x: 1 world unit = %f screen pixels, want 2.0", s1.X-s0.X)
	}
	if !approxEqual(cam.UnitsToPixels(3), 6, epsilon) || !approxEqual(cam.PixelsToUnits(6), 3, epsilon) {
		t.Error("unit/pixel conversion does not follow zoom")
	}
}

func TestCameraZoomClamped(t *testing.T) {
	cam := NewCamera(ViewTop, 800, 600)
	cam.MinZoom, cam.MaxZoom = 0.5, 4
	cam.SetZoom(100)
	if cam.Zoom() != 4 {
		t.Errorf("Zoom = %v, want clamped to 4", cam.Zoom())
	}
	cam.SetZoom(0.01)
	if cam.Zoom() != 0.5 {
		t.Errorf("Zoom = %v, want clamped to 0.5", cam.Zoom())
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	for _, view := range []OrthographicView{ViewTop, ViewFront, ViewSide} {
		t.Run(view.String(), func(t *testing.T) {
			cam := NewCamera(view, 800, 600)
			cam.SetPosition(Vec2{42, -17})
			cam.SetZoom(1.5)

			orig := cam.Expand(Vec2{123, -456})
			s := cam.WorldToScreen(orig)
			w := cam.ScreenToWorld(s.X, s.Y)

			if !approxEqual(w.X, orig.X, 1e-6) || !approxEqual(w.Y, orig.Y, 1e-6) || !approxEqual(w.Z, orig.Z, 1e-6) {
				t.Errorf("roundtrip: got %v, want %v", w, orig)
			}
		})
	}
}

func TestFlattenExpand(t *testing.T) {
	w := Vec3{1, 2, 3}
	tests := []struct {
		view   OrthographicView
		flat   Vec2
		expand Vec3
		unused Vec3
		zeroed Vec3
	}{
		{ViewTop, Vec2{1, 2}, Vec3{1, 2, 0}, Vec3{0, 0, 3}, Vec3{1, 2, 0}},
		{ViewFront, Vec2{2, 3}, Vec3{0, 2, 3}, Vec3{1, 0, 0}, Vec3{0, 2, 3}},
		{ViewSide, Vec2{1, 3}, Vec3{1, 0, 3}, Vec3{0, 2, 0}, Vec3{1, 0, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			cam := NewCamera(tt.view, 100, 100)
			if got := cam.Flatten(w); got != tt.flat {
				t.Errorf("Flatten = %v, want %v", got, tt.flat)
			}
			if got := cam.Expand(tt.flat); got != tt.expand {
				t.Errorf("Expand = %v, want %v", got, tt.expand)
			}
			if got := cam.UnusedCoordinate(w); got != tt.unused {
				t.Errorf("UnusedCoordinate = %v, want %v", got, tt.unused)
			}
			if got := cam.ZeroUnusedCoordinate(w); got != tt.zeroed {
				t.Errorf("ZeroUnusedCoordinate = %v, want %v", got, tt.zeroed)
			}
			if got := cam.UnusedCoordinate(w).Add(cam.ZeroUnusedCoordinate(w)); got != w {
				t.Errorf("unused + zeroed = %v, want %v", got, w)
			}
		})
	}
}

func TestUnknownViewPanics(t *testing.T) {
	cam := NewCamera(OrthographicView(9), 100, 100)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unknown view, got none")
		}
		if !strings.Contains(r.(string), "unknown orthographic view") {
			t.Errorf("panic message = %v", r)
		}
	}()
	cam.Flatten(Vec3{})
}

func TestNegativeCameraSizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative size")
		}
	}()
	NewCamera(ViewTop, -1, 10)
}

func TestParseView(t *testing.T) {
	tests := []struct {
		in   string
		want OrthographicView
	}{
		{"top", ViewTop},
		{"", ViewTop},
		{"Front", ViewFront},
		{" side ", ViewSide},
	}
	for _, tt := range tests {
		got, err := ParseView(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseView(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseView("iso"); !errors.Is(err, ErrUnknownView) {
		t.Errorf("ParseView(iso) err = %v, want ErrUnknownView", err)
	}
}

func TestVisibleBounds_Zoom1(t *testing.T) {
	cam := NewCamera(ViewTop, 800, 600)
	cam.SetPosition(Vec2{400, 300})
	bounds := cam.VisibleBounds()
	if !approxEqual(bounds.X, 0, 1e-6) || !approxEqual(bounds.Y, 0, 1e-6) {
		t.Errorf("VisibleBounds origin = (%f,%f), want (0,0)", bounds.X, bounds.Y)
	}
	if !approxEqual(bounds.Width, 800, 1e-6) || !approxEqual(bounds.Height, 600, 1e-6) {
		t.Errorf("VisibleBounds size = (%f,%f), want (800,600)", bounds.Width, bounds.Height)
	}
}

func TestVisibleBounds_Zoom2(t *testing.T) {
	cam := NewCamera(ViewTop, 800, 600)
	cam.SetZoom(2)
	bounds := cam.VisibleBounds()
	// Zoom 2 halves the visible area
	if !approxEqual(bounds.Width, 400, 1e-6) || !approxEqual(bounds.Height, 300, 1e-6) {
		t.Errorf("VisibleBounds size = (%f,%f), want (400,300)", bounds.Width, bounds.Height)
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := NewCamera(ViewTop, 800, 600)
	cam.ScrollTo(Vec2{100, 200}, 1.0, ease.Linear)

	// Advance halfway
	cam.update(0.5)
	if p := cam.Position(); !approxEqual(p.X, 50, 1.0) || !approxEqual(p.Y, 100, 1.0) {
		t.Errorf("scroll halfway: cam = %v, want ~(50,100)", p)
	}

	// Advance to end
	cam.update(0.5)
	if p := cam.Position(); !approxEqual(p.X, 100, 1.0) || !approxEqual(p.Y, 200, 1.0) {
		t.Errorf("scroll end: cam = %v, want ~(100,200)", p)
	}

	// Tween should be cleared
	if cam.Animating() {
		t.Error("camera still animating after completion")
	}
}

func TestCameraZoomTo(t *testing.T) {
	cam := NewCamera(ViewTop, 800, 600)
	cam.ZoomTo(4, 1.0, ease.Linear)
	cam.update(0.5)
	if !approxEqual(cam.Zoom(), 2.5, 0.01) {
		t.Errorf("zoom halfway = %v, want ~2.5", cam.Zoom())
	}
	cam.update(0.5)
	if !approxEqual(cam.Zoom(), 4, 0.01) || cam.Animating() {
		t.Errorf("zoom end = %v (animating %v), want 4", cam.Zoom(), cam.Animating())
	}
}

func TestCameraStopAnimation(t *testing.T) {
	cam := NewCamera(ViewTop, 800, 600)
	cam.ScrollTo(Vec2{100, 0}, 1.0, ease.Linear)
	cam.update(0.25)
	cam.StopAnimation()
	before := cam.Position()
	cam.update(0.5)
	if cam.Position() != before {
		t.Errorf("position moved after StopAnimation: %v -> %v", before, cam.Position())
	}
}

func TestCameraBounds(t *testing.T) {
	cam := NewCamera(ViewTop, 100, 100)
	cam.SetBounds(Rect{X: 0, Y: 0, Width: 1000, Height: 1000})

	// Camera at (0,0) with viewport 100x100: min visible center is (50,50)
	if p := cam.Position(); p.X < 50 || p.Y < 50 {
		t.Errorf("bounds clamp min: cam = %v, want >= (50,50)", p)
	}

	// Try to go past the far edge
	cam.SetPosition(Vec2{999, 999})
	if p := cam.Position(); p.X > 950 || p.Y > 950 {
		t.Errorf("bounds clamp max: cam = %v, want <= (950,950)", p)
	}
}

func TestCameraClearBounds(t *testing.T) {
	cam := NewCamera(ViewTop, 100, 100)
	cam.SetBounds(Rect{X: 0, Y: 0, Width: 1000, Height: 1000})
	cam.ClearBounds()

	cam.SetPosition(Vec2{-999, -999})
	// No clamping should occur
	if p := cam.Position(); p != (Vec2{-999, -999}) {
		t.Errorf("after ClearBounds: cam = %v, want (-999,-999)", p)
	}
}

func TestCameraBoundsSmallWorld(t *testing.T) {
	cam := NewCamera(ViewTop, 800, 600)
	// World smaller than viewport: should center
	cam.SetBounds(Rect{X: 0, Y: 0, Width: 100, Height: 100})
	if p := cam.Position(); !approxEqual(p.X, 50, epsilon) || !approxEqual(p.Y, 50, epsilon) {
		t.Errorf("small world center: cam = %v, want (50,50)", p)
	}
}

func TestCameraChangeNotifications(t *testing.T) {
	cam := NewCamera(ViewTop, 800, 600)
	var got []EventKind
	cam.onChange = func(k EventKind) { got = append(got, k) }

	cam.SetPosition(Vec2{1, 1})
	cam.SetPosition(Vec2{1, 1}) // unchanged
	cam.SetZoom(2)
	cam.SetZoom(2) // unchanged

	want := []EventKind{EventCameraPositionChanged, EventCameraZoomChanged}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("notifications = %v, want %v", got, want)
	}
}
