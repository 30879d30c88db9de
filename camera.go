package easel

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// zoomAnim holds the active tweens of an animated zoom.
type zoomAnim struct {
	tweenX     *gween.Tween
	tweenY     *gween.Tween
	tweenScale *gween.Tween
	doneX      bool
	doneY      bool
	doneScale  bool
	target     CanvasTransform
}

// Camera animates the canvas transform between zoom targets and optionally
// keeps the viewport center inside a canvas-space rectangle.
type Camera struct {
	// Viewport is the screen-space rectangle the canvas is drawn into.
	Viewport Rect

	// BoundsEnabled clamps the pan so the viewport center stays within
	// Bounds.
	BoundsEnabled bool
	// Bounds is the canvas-space rectangle used when BoundsEnabled is true.
	Bounds Rect

	transform CanvasTransform
	anim      *zoomAnim
}

// NewCamera creates a camera at the identity transform.
func NewCamera(viewport Rect) *Camera {
	return &Camera{Viewport: viewport, transform: IdentityTransform}
}

// Transform returns the camera's current transform.
func (c *Camera) Transform() CanvasTransform { return c.transform }

// Set jumps to t and stops any animation.
func (c *Camera) Set(t CanvasTransform) {
	c.anim = nil
	c.transform = c.clamp(t)
}

// follow records a transform applied outside the camera. A transform other
// than the animated one ends the animation.
func (c *Camera) follow(t CanvasTransform) {
	if t == c.transform {
		return
	}
	c.anim = nil
	c.transform = t
}

// Animating reports whether a zoom animation is running.
func (c *Camera) Animating() bool { return c.anim != nil }

// AnimateTo tweens the transform to target over duration seconds. A
// non-positive duration jumps immediately.
func (c *Camera) AnimateTo(target CanvasTransform, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		c.Set(target)
		return
	}
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	from := c.transform
	c.anim = &zoomAnim{
		tweenX:     gween.New(float32(from.X), float32(target.X), duration, easeFn),
		tweenY:     gween.New(float32(from.Y), float32(target.Y), duration, easeFn),
		tweenScale: gween.New(float32(from.Scale), float32(target.Scale), duration, easeFn),
		target:     target,
	}
}

// SetBounds enables bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances the animation by dt seconds and reports whether the
// transform changed. The final frame lands exactly on the target.
func (c *Camera) Update(dt float32) bool {
	a := c.anim
	if a == nil {
		return false
	}
	prev := c.transform
	t := c.transform
	if !a.doneX {
		v, done := a.tweenX.Update(dt)
		t.X, a.doneX = float64(v), done
	}
	if !a.doneY {
		v, done := a.tweenY.Update(dt)
		t.Y, a.doneY = float64(v), done
	}
	if !a.doneScale {
		v, done := a.tweenScale.Update(dt)
		t.Scale, a.doneScale = ClampScale(float64(v)), done
	}
	if a.doneX && a.doneY && a.doneScale {
		t = a.target
		c.anim = nil
	}
	c.transform = c.clamp(t)
	return c.transform != prev
}

// clamp pans t so the canvas point at the viewport center lies inside
// Bounds. t is returned as is while bounds are off.
func (c *Camera) clamp(t CanvasTransform) CanvasTransform {
	if !c.BoundsEnabled || !t.valid() {
		return t
	}
	vc := c.Viewport.Center()
	p := ScreenToCanvas(vc, t)
	cx := math.Max(c.Bounds.X, math.Min(p.X, c.Bounds.Right()))
	cy := math.Max(c.Bounds.Y, math.Min(p.Y, c.Bounds.Bottom()))
	if cx == p.X && cy == p.Y {
		return t
	}
	t.X = vc.X - cx*t.Scale
	t.Y = vc.Y - cy*t.Scale
	return t
}

// VisibleBounds returns the canvas-space rectangle shown in the viewport.
func (c *Camera) VisibleBounds() Rect {
	return RectToCanvas(c.Viewport, c.transform)
}

// shouldCull reports whether a widget lies entirely outside the visible
// canvas rectangle. Rotation is accounted for by the rotated corners' AABB.
func shouldCull(w Widget, visible Rect) bool {
	return !rotatedAABB(w).Intersects(visible)
}

// rotatedAABB returns the axis-aligned box around w's rotated corners.
func rotatedAABB(w Widget) Rect {
	r := w.Rect()
	if w.Rotation == 0 {
		return r
	}
	c := r.Center()
	corners := [4]Point{
		rotatePoint(Point{r.X, r.Y}, c, w.Rotation),
		rotatePoint(Point{r.Right(), r.Y}, c, w.Rotation),
		rotatePoint(Point{r.Right(), r.Bottom()}, c, w.Rotation),
		rotatePoint(Point{r.X, r.Bottom()}, c, w.Rotation),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, p := range corners[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
