package easel

import "math"

// Zoom limits applied to every CanvasTransform the package produces.
const (
	MinScale = 0.01
	MaxScale = 100.0
)

// ClampScale restricts s to [MinScale, MaxScale]. NaN collapses to 1.
func ClampScale(s float64) float64 {
	if math.IsNaN(s) {
		return 1
	}
	return math.Max(MinScale, math.Min(s, MaxScale))
}

// valid reports whether t can be inverted. A zero-value transform means the
// host has not supplied one yet.
func (t CanvasTransform) valid() bool {
	return t.Scale > 0 && !math.IsInf(t.Scale, 0)
}

// ScreenToCanvas converts a screen point to canvas coordinates. With no valid
// transform it returns the origin.
func ScreenToCanvas(p Point, t CanvasTransform) Point {
	if !t.valid() {
		return Point{}
	}
	return Point{
		X: (p.X - t.X) / t.Scale,
		Y: (p.Y - t.Y) / t.Scale,
	}
}

// CanvasToScreen converts a canvas point to screen coordinates. It is the
// exact inverse of ScreenToCanvas.
func CanvasToScreen(p Point, t CanvasTransform) Point {
	if !t.valid() {
		return Point{}
	}
	return Point{
		X: p.X*t.Scale + t.X,
		Y: p.Y*t.Scale + t.Y,
	}
}

// RectToScreen converts a canvas rectangle to screen space.
func RectToScreen(r Rect, t CanvasTransform) Rect {
	p := CanvasToScreen(Point{r.X, r.Y}, t)
	return Rect{X: p.X, Y: p.Y, Width: r.Width * t.Scale, Height: r.Height * t.Scale}
}

// RectToCanvas converts a screen rectangle to canvas space.
func RectToCanvas(r Rect, t CanvasTransform) Rect {
	if !t.valid() {
		return Rect{}
	}
	p := ScreenToCanvas(Point{r.X, r.Y}, t)
	return Rect{X: p.X, Y: p.Y, Width: r.Width / t.Scale, Height: r.Height / t.Scale}
}

// ZoomToPoint returns t rescaled to newScale (clamped) such that the canvas
// point under anchor (screen space) stays under it.
//
//	ratio = newScale / t.Scale
//	x'    = anchor.X - (anchor.X - t.X) * ratio
func ZoomToPoint(anchor Point, newScale float64, t CanvasTransform) CanvasTransform {
	newScale = ClampScale(newScale)
	if !t.valid() {
		return CanvasTransform{X: anchor.X, Y: anchor.Y, Scale: newScale}
	}
	if newScale == t.Scale {
		return t
	}
	ratio := newScale / t.Scale
	return CanvasTransform{
		X:     anchor.X - (anchor.X-t.X)*ratio,
		Y:     anchor.Y - (anchor.Y-t.Y)*ratio,
		Scale: newScale,
	}
}

// Pan returns t translated by a screen-space delta. Scale is not applied to
// the delta.
func (t CanvasTransform) Pan(dx, dy float64) CanvasTransform {
	t.X += dx
	t.Y += dy
	return t
}

// Matrix returns the canvas-to-screen affine matrix [a, b, c, d, tx, ty].
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func (t CanvasTransform) Matrix() [6]float64 {
	return [6]float64{t.Scale, 0, 0, t.Scale, t.X, t.Y}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// FitRect returns the transform that shows bounds centered inside viewport
// with padding screen pixels on every side. Degenerate bounds keep the
// current zoom level of 1 and just center.
func FitRect(bounds, viewport Rect, padding float64) CanvasTransform {
	availW := math.Max(viewport.Width-2*padding, 1)
	availH := math.Max(viewport.Height-2*padding, 1)

	scale := 1.0
	switch {
	case bounds.Width > 0 && bounds.Height > 0:
		scale = math.Min(availW/bounds.Width, availH/bounds.Height)
	case bounds.Width > 0:
		scale = availW / bounds.Width
	case bounds.Height > 0:
		scale = availH / bounds.Height
	}
	scale = ClampScale(scale)

	c := bounds.Center()
	vc := viewport.Center()
	return CanvasTransform{
		X:     vc.X - c.X*scale,
		Y:     vc.Y - c.Y*scale,
		Scale: scale,
	}
}

const degToRad = math.Pi / 180

// rotatePoint rotates p around c by deg degrees (clockwise in screen space).
func rotatePoint(p, c Point, deg float64) Point {
	sin, cos := math.Sincos(deg * degToRad)
	dx, dy := p.X-c.X, p.Y-c.Y
	return Point{
		X: c.X + dx*cos - dy*sin,
		Y: c.Y + dx*sin + dy*cos,
	}
}

// normalizeDegrees maps an angle into [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
