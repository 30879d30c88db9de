package easel

import (
	"image/color"
	"math"
)

// Point is a 2D coordinate. Whether it lives in screen space or canvas space
// is decided by the API that takes it; the two are only converted through a
// CanvasTransform.
type Point struct {
	X, Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Contains reports whether p lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.Right(), other.Right())
	maxY := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// rectFromCorners builds a normalized rectangle spanning two corner points.
func rectFromCorners(a, b Point) Rect {
	return Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// CanvasTransform maps canvas space to screen space:
//
//	screen = canvas*Scale + (X, Y)
//
// Scale is kept within [MinScale, MaxScale] by every function that produces
// a transform.
type CanvasTransform struct {
	X, Y  float64
	Scale float64
}

// IdentityTransform is the transform with no pan and unit zoom.
var IdentityTransform = CanvasTransform{Scale: 1}

// Widget is a snapshot of one host-owned rectangle on the canvas. The engine
// never mutates a host widget; changes are reported through Host.
type Widget struct {
	ID       string
	Type     string
	X, Y     float64
	Width    float64
	Height   float64
	Rotation float64 // degrees, clockwise
	ZIndex   int
	Locked   bool
}

// Rect returns the widget's axis-aligned bounds, ignoring rotation.
func (w Widget) Rect() Rect {
	return Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}

// Position returns the widget's top-left corner.
func (w Widget) Position() Point { return Point{w.X, w.Y} }

// PatchField is a bitmask naming the fields a WidgetPatch carries.
type PatchField uint8

const (
	PatchPosition PatchField = 1 << iota // X and Y
	PatchSize                            // Width and Height
	PatchRotation                        // Rotation
	PatchZIndex                          // ZIndex
)

// WidgetPatch is a partial widget update. Only the fields named in Fields
// are meaningful.
type WidgetPatch struct {
	Fields   PatchField
	X, Y     float64
	Width    float64
	Height   float64
	Rotation float64
	ZIndex   int
}

// Has reports whether the patch carries field f.
func (p WidgetPatch) Has(f PatchField) bool { return p.Fields&f != 0 }

// Apply returns w with the patch's fields written over it.
func (p WidgetPatch) Apply(w Widget) Widget {
	if p.Has(PatchPosition) {
		w.X, w.Y = p.X, p.Y
	}
	if p.Has(PatchSize) {
		w.Width, w.Height = p.Width, p.Height
	}
	if p.Has(PatchRotation) {
		w.Rotation = p.Rotation
	}
	if p.Has(PatchZIndex) {
		w.ZIndex = p.ZIndex
	}
	return w
}

// positionPatch is shorthand for a position-only patch.
func positionPatch(p Point) WidgetPatch {
	return WidgetPatch{Fields: PatchPosition, X: p.X, Y: p.Y}
}

// WidgetUpdate pairs a widget id with a patch. Gesture-driven changes are
// always delivered as a slice of these in a single call.
type WidgetUpdate struct {
	ID    string
	Patch WidgetPatch
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Has reports whether every modifier in m2 is held in m.
func (m KeyModifiers) Has(m2 KeyModifiers) bool { return m&m2 == m2 }

// Shift reports whether Shift is held.
func (m KeyModifiers) Shift() bool { return m&ModShift != 0 }

// Ctrl reports whether Control is held.
func (m KeyModifiers) Ctrl() bool { return m&ModCtrl != 0 }

// Alt reports whether Alt is held.
func (m KeyModifiers) Alt() bool { return m&ModAlt != 0 }

// Meta reports whether Meta is held.
func (m KeyModifiers) Meta() bool { return m&ModMeta != 0 }

// CtrlOrMeta reports whether either platform command modifier is held.
func (m KeyModifiers) CtrlOrMeta() bool { return m&(ModCtrl|ModMeta) != 0 }

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// Mode is the active interaction mode. Exactly one is active at a time.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModeAreaSelect
	ModeDragging
	ModePanning
	ModeResizing
	ModeRotating
	ModeTextEditing

	modeCount
)

var modeNames = [modeCount]string{
	ModeIdle:        "idle",
	ModeAreaSelect:  "areaSelect",
	ModeDragging:    "dragging",
	ModePanning:     "panning",
	ModeResizing:    "resizing",
	ModeRotating:    "rotating",
	ModeTextEditing: "textEditing",
}

// String returns the mode name.
func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return "unknown"
}

// Handle identifies a transform handle on the selection bounds.
type Handle uint8

const (
	HandleTopLeft Handle = iota
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
	HandleRotate
)

// IsRotate reports whether h starts a rotation rather than a resize.
func (h Handle) IsRotate() bool { return h == HandleRotate }

// edges reports which bounds edges a resize handle moves.
func (h Handle) edges() (left, top, right, bottom bool) {
	switch h {
	case HandleTopLeft:
		return true, true, false, false
	case HandleTop:
		return false, true, false, false
	case HandleTopRight:
		return false, true, true, false
	case HandleRight:
		return false, false, true, false
	case HandleBottomRight:
		return false, false, true, true
	case HandleBottom:
		return false, false, false, true
	case HandleBottomLeft:
		return true, false, false, true
	case HandleLeft:
		return true, false, false, false
	}
	return false, false, false, false
}

// CursorHint suggests a pointer cursor for the host to display.
type CursorHint uint8

const (
	CursorDefault CursorHint = iota
	CursorMove
	CursorGrab
	CursorGrabbing
	CursorCrosshair
	CursorResizeNWSE
	CursorResizeNESW
	CursorResizeEW
	CursorResizeNS
	CursorRotate
	CursorText
)

// String returns a CSS-like cursor name.
func (c CursorHint) String() string {
	switch c {
	case CursorMove:
		return "move"
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	case CursorCrosshair:
		return "crosshair"
	case CursorResizeNWSE:
		return "nwse-resize"
	case CursorResizeNESW:
		return "nesw-resize"
	case CursorResizeEW:
		return "ew-resize"
	case CursorResizeNS:
		return "ns-resize"
	case CursorRotate:
		return "rotate"
	case CursorText:
		return "text"
	default:
		return "default"
	}
}

// cursorForHandle returns the resize or rotate cursor for a handle.
func cursorForHandle(h Handle) CursorHint {
	switch h {
	case HandleTopLeft, HandleBottomRight:
		return CursorResizeNWSE
	case HandleTopRight, HandleBottomLeft:
		return CursorResizeNESW
	case HandleLeft, HandleRight:
		return CursorResizeEW
	case HandleTop, HandleBottom:
		return CursorResizeNS
	default:
		return CursorRotate
	}
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R*c.A*255 + 0.5),
		G: uint8(c.G*c.A*255 + 0.5),
		B: uint8(c.B*c.A*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}
