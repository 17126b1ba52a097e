package viewport

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// OrthographicView selects which world plane a 2D viewport looks at.
type OrthographicView uint8

const (
	ViewTop   OrthographicView = iota // looks down -Z; screen axes are world X and Y
	ViewFront                         // looks along +X; screen axes are world Y and Z
	ViewSide                          // looks along +Y; screen axes are world X and Z
)

// ErrUnknownView is returned by ParseView for names it does not recognize.
var ErrUnknownView = errors.New("viewport: unknown orthographic view")

func (v OrthographicView) String() string {
	switch v {
	case ViewTop:
		return "top"
	case ViewFront:
		return "front"
	case ViewSide:
		return "side"
	default:
		return fmt.Sprintf("OrthographicView(%d)", uint8(v))
	}
}

// ParseView parses "top", "front", or "side" (case-insensitive).
func ParseView(name string) (OrthographicView, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "top", "":
		return ViewTop, nil
	case "front":
		return ViewFront, nil
	case "side":
		return ViewSide, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// unknownView panics: a view outside the enumeration is a programming error.
func unknownView(v OrthographicView) {
	panic(fmt.Sprintf("viewport: unknown orthographic view %d", uint8(v)))
}

const (
	defaultMinZoom = 0.001
	defaultMaxZoom = 256
)

// scrollAnim holds active scroll-to tweens for the camera position.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is an orthographic camera over one world plane. Its position is the
// flattened world point shown at the center of the surface.
//
// Setting the position or zoom notifies the owning viewport, which broadcasts
// PositionChanged or ZoomChanged to listeners.
type Camera struct {
	view     OrthographicView
	position Vec2
	zoom     float64
	width    float64
	height   float64

	// MinZoom and MaxZoom bound SetZoom.
	MinZoom, MaxZoom float64

	// BoundsEnabled clamps the camera position to Bounds (flattened world units).
	BoundsEnabled bool
	Bounds        Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	scrollTween *scrollAnim
	zoomTween   *gween.Tween

	onChange func(EventKind)
}

// NewCamera creates a camera looking at view over a width×height surface,
// centered on the origin at zoom 1. Negative sizes panic.
func NewCamera(view OrthographicView, width, height float64) *Camera {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("viewport: negative camera size %gx%g", width, height))
	}
	return &Camera{
		view:    view,
		zoom:    1,
		width:   width,
		height:  height,
		MinZoom: defaultMinZoom,
		MaxZoom: defaultMaxZoom,
		dirty:   true,
	}
}

// View returns the plane the camera looks at.
func (c *Camera) View() OrthographicView { return c.view }

// SetView changes the viewed plane.
func (c *Camera) SetView(v OrthographicView) {
	c.view = v
	c.dirty = true
}

// Position returns the flattened world point at the center of the surface.
func (c *Camera) Position() Vec2 { return c.position }

// SetPosition moves the camera, clamping to Bounds when enabled.
func (c *Camera) SetPosition(p Vec2) {
	if c.BoundsEnabled {
		p = c.clamp(p)
	}
	if p == c.position {
		return
	}
	c.position = p
	c.dirty = true
	c.notify(EventCameraPositionChanged)
}

// Zoom returns the screen pixels per world unit.
func (c *Camera) Zoom() float64 { return c.zoom }

// SetZoom sets the zoom, clamped to [MinZoom, MaxZoom].
func (c *Camera) SetZoom(z float64) {
	z = math.Max(c.MinZoom, math.Min(z, c.MaxZoom))
	if z == c.zoom {
		return
	}
	c.zoom = z
	c.dirty = true
	if c.BoundsEnabled {
		c.SetPosition(c.position)
	}
	c.notify(EventCameraZoomChanged)
}

// Size returns the surface size in pixels.
func (c *Camera) Size() (width, height float64) { return c.width, c.height }

// SetSize updates the surface size, e.g. after a window resize.
func (c *Camera) SetSize(width, height float64) {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("viewport: negative camera size %gx%g", width, height))
	}
	c.width, c.height = width, height
	c.dirty = true
}

// SetBounds enables clamping of the camera position.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
	c.SetPosition(c.position)
}

// ClearBounds disables position clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// clamp restricts p so the visible area stays within Bounds. If the bounds
// are smaller than the visible area the camera is centered on them.
func (c *Camera) clamp(p Vec2) Vec2 {
	halfW := c.width / (2 * c.zoom)
	halfH := c.height / (2 * c.zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	if minX > maxX {
		p.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		p.X = math.Max(minX, math.Min(p.X, maxX))
	}
	if minY > maxY {
		p.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		p.Y = math.Max(minY, math.Min(p.Y, maxY))
	}
	return p
}

func (c *Camera) notify(kind EventKind) {
	if c.onChange != nil {
		c.onChange(kind)
	}
}

// --- Animation ---

// ScrollTo animates the camera to the given flattened position over
// duration seconds.
func (c *Camera) ScrollTo(p Vec2, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.position.X), float32(p.X), duration, easeFn),
		tweenY: gween.New(float32(c.position.Y), float32(p.Y), duration, easeFn),
	}
}

// ZoomTo animates the zoom to z over duration seconds.
func (c *Camera) ZoomTo(z float64, duration float32, easeFn ease.TweenFunc) {
	z = math.Max(c.MinZoom, math.Min(z, c.MaxZoom))
	c.zoomTween = gween.New(float32(c.zoom), float32(z), duration, easeFn)
}

// Animating reports whether a scroll or zoom tween is running.
func (c *Camera) Animating() bool {
	return c.scrollTween != nil || c.zoomTween != nil
}

// StopAnimation cancels running tweens, leaving the camera where it is.
func (c *Camera) StopAnimation() {
	c.scrollTween = nil
	c.zoomTween = nil
}

// update advances tweens by dt seconds. Called once per frame by the viewport.
func (c *Camera) update(dt float32) {
	if c.zoomTween != nil {
		val, done := c.zoomTween.Update(dt)
		c.SetZoom(float64(val))
		if done {
			c.zoomTween = nil
		}
	}

	if c.scrollTween != nil {
		p := c.position
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			p.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			p.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
		c.SetPosition(p)
	}
}

// --- Coordinate mapping ---

// computeViewMatrix recomputes the cached view matrix if dirty.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false
	c.viewMatrix = orthoViewMatrix(c.position.X, c.position.Y, c.zoom, c.width, c.height)
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// ScreenToFlat converts screen coordinates to flattened world coordinates.
func (c *Camera) ScreenToFlat(sx, sy float64) Vec2 {
	c.computeViewMatrix()
	x, y := transformPoint(c.invViewMatrix, sx, sy)
	return Vec2{x, y}
}

// ScreenToWorld converts screen coordinates to a world coordinate on the
// viewed plane. The unused axis is zero.
func (c *Camera) ScreenToWorld(sx, sy float64) Vec3 {
	return c.Expand(c.ScreenToFlat(sx, sy))
}

// WorldToScreen converts a world coordinate to screen coordinates. The
// unused axis is ignored.
func (c *Camera) WorldToScreen(w Vec3) Vec2 {
	f := c.Flatten(w)
	c.computeViewMatrix()
	x, y := transformPoint(c.viewMatrix, f.X, f.Y)
	return Vec2{x, y}
}

// Flatten projects a world coordinate onto the viewed plane.
func (c *Camera) Flatten(w Vec3) Vec2 {
	switch c.view {
	case ViewTop:
		return Vec2{w.X, w.Y}
	case ViewFront:
		return Vec2{w.Y, w.Z}
	case ViewSide:
		return Vec2{w.X, w.Z}
	}
	unknownView(c.view)
	return Vec2{}
}

// Expand lifts a flattened coordinate back into world space with the unused
// axis set to zero.
func (c *Camera) Expand(f Vec2) Vec3 {
	switch c.view {
	case ViewTop:
		return Vec3{f.X, f.Y, 0}
	case ViewFront:
		return Vec3{0, f.X, f.Y}
	case ViewSide:
		return Vec3{f.X, 0, f.Y}
	}
	unknownView(c.view)
	return Vec3{}
}

// UnusedCoordinate keeps only the axis the view does not show.
func (c *Camera) UnusedCoordinate(w Vec3) Vec3 {
	switch c.view {
	case ViewTop:
		return Vec3{0, 0, w.Z}
	case ViewFront:
		return Vec3{w.X, 0, 0}
	case ViewSide:
		return Vec3{0, w.Y, 0}
	}
	unknownView(c.view)
	return Vec3{}
}

// ZeroUnusedCoordinate clears the axis the view does not show.
func (c *Camera) ZeroUnusedCoordinate(w Vec3) Vec3 {
	switch c.view {
	case ViewTop:
		return Vec3{w.X, w.Y, 0}
	case ViewFront:
		return Vec3{0, w.Y, w.Z}
	case ViewSide:
		return Vec3{w.X, 0, w.Z}
	}
	unknownView(c.view)
	return Vec3{}
}

// UnitsToPixels converts a world length to screen pixels.
func (c *Camera) UnitsToPixels(units float64) float64 { return units * c.zoom }

// PixelsToUnits converts a screen length to world units.
func (c *Camera) PixelsToUnits(pixels float64) float64 { return pixels / c.zoom }

// VisibleBounds returns the flattened world rectangle visible on the surface.
func (c *Camera) VisibleBounds() Rect {
	c.computeViewMatrix()
	inv := c.invViewMatrix

	x0, y0 := transformPoint(inv, 0, 0)
	x1, y1 := transformPoint(inv, c.width, c.height)

	minX, maxX := math.Min(x0, x1), math.Max(x0, x1)
	minY, maxY := math.Min(y0, y1), math.Max(y0, y1)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
