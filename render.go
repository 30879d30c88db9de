package easel

import (
	"image/color"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// --- White pixel singleton (single-threaded, no sync.Once) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// for untextured quads.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// widgetQuad returns the four screen-space corners of w (clockwise from the
// top-left), rotated about the widget center.
func widgetQuad(w Widget, t CanvasTransform) [4]Point {
	r := w.Rect()
	c := r.Center()
	corners := [4]Point{
		{r.X, r.Y},
		{r.Right(), r.Y},
		{r.Right(), r.Bottom()},
		{r.X, r.Bottom()},
	}
	m := t.Matrix()
	for i, p := range corners {
		if w.Rotation != 0 {
			p = rotatePoint(p, c, w.Rotation)
		}
		corners[i].X, corners[i].Y = transformPoint(m, p.X, p.Y)
	}
	return corners
}

// fillQuad draws a solid convex quad.
func fillQuad(dst *ebiten.Image, q [4]Point, clr Color) {
	var verts [4]ebiten.Vertex
	for i, p := range q {
		verts[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: float32(clr.R), ColorG: float32(clr.G), ColorB: float32(clr.B), ColorA: float32(clr.A),
		}
	}
	dst.DrawTriangles(verts[:], []uint16{0, 1, 2, 0, 2, 3}, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{})
}

// strokeQuad draws the outline of a quad.
func strokeQuad(dst *ebiten.Image, q [4]Point, width float32, clr Color) {
	c := clr.toRGBA()
	for i := range q {
		a, b := q[i], q[(i+1)%4]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, c, true)
	}
}

// BoxRenderer draws a widget as a filled, outlined box with its type as a
// label.
type BoxRenderer struct {
	Fill   Color
	Stroke Color
	Label  Color
	Font   *TTFFont
}

// DrawWidget implements WidgetRenderer.
func (b *BoxRenderer) DrawWidget(dst *ebiten.Image, w Widget, t CanvasTransform, state WidgetState) {
	q := widgetQuad(w, t)
	fill := b.Fill
	if state.Editing {
		fill = Color{1, 1, 0.9, 1}
	}
	fillQuad(dst, q, fill)
	strokeQuad(dst, q, 1, b.Stroke)
	if b.Font != nil && w.Width*t.Scale > 24 {
		label := w.Type
		if label == "" {
			label = w.ID
		}
		c := CanvasToScreen(w.Rect().Center(), t)
		b.Font.drawLabel(dst, label, c, w.Rotation, b.Label)
	}
}

// drawOrder returns widgets sorted bottom to top: ascending z, slice order
// within equal z. It matches TopmostAt, which picks the last drawn widget.
func drawOrder(widgets []Widget) []Widget {
	out := append([]Widget(nil), widgets...)
	slices.SortStableFunc(out, func(a, b Widget) int { return a.ZIndex - b.ZIndex })
	return out
}

// DrawWidgets draws every visible widget through the registry.
func DrawWidgets(dst *ebiten.Image, widgets []Widget, reg *Registry, o Overlay, visible Rect) int {
	selected := setOf(o.Selected)
	drawn := 0
	for _, w := range drawOrder(widgets) {
		if visible.Width > 0 && shouldCull(w, visible) {
			continue
		}
		_, sel := selected[w.ID]
		state := WidgetState{
			Selected: sel,
			Hovered:  o.HasHovered && o.Hovered == w.ID,
			Editing:  o.EditingID == w.ID,
		}
		reg.Lookup(w.Type).DrawWidget(dst, w, o.Transform, state)
		drawn++
	}
	return drawn
}

// OverlayStyle configures overlay drawing.
type OverlayStyle struct {
	Accent     Color
	AreaFill   Color
	Snap       Color
	Hover      Color
	HandleSize float64 // screen pixels
}

// DefaultOverlayStyle returns the standard blue selection look.
func DefaultOverlayStyle() OverlayStyle {
	return OverlayStyle{
		Accent:     Color{0.16, 0.47, 0.96, 1},
		AreaFill:   Color{0.16, 0.47, 0.96, 0.12},
		Snap:       Color{0.95, 0.2, 0.55, 1},
		Hover:      Color{0.16, 0.47, 0.96, 0.5},
		HandleSize: 8,
	}
}

// DrawOverlay draws hover and selection outlines, transform handles, the
// area-selection rectangle and the active snap guide.
func DrawOverlay(dst *ebiten.Image, widgets []Widget, o Overlay, style OverlayStyle) {
	t := o.Transform
	selected := setOf(o.Selected)
	for _, w := range widgets {
		_, sel := selected[w.ID]
		switch {
		case sel:
			strokeQuad(dst, widgetQuad(w, t), 1, style.Accent)
		case o.HasHovered && o.Hovered == w.ID && o.Mode == ModeIdle:
			strokeQuad(dst, widgetQuad(w, t), 1, style.Hover)
		}
	}

	if o.HasSelection && (o.Mode == ModeIdle || o.HasHandle) {
		b := RectToScreen(o.SelectionBounds, t)
		vector.StrokeRect(dst, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), 1, style.Accent.toRGBA(), true)
		drawHandles(dst, b, style)
	}

	if o.HasArea {
		a := RectToScreen(o.AreaRect, t)
		fillQuad(dst, rectQuad(a), style.AreaFill)
		vector.StrokeRect(dst, float32(a.X), float32(a.Y), float32(a.Width), float32(a.Height), 1, style.Accent.toRGBA(), true)
	}

	b := dst.Bounds()
	for _, s := range o.Snaps {
		p := CanvasToScreen(s.Position, t)
		c := style.Snap.toRGBA()
		if s.Orientation == Vertical {
			vector.StrokeLine(dst, float32(p.X), float32(b.Min.Y), float32(p.X), float32(b.Max.Y), 1, c, true)
		} else {
			vector.StrokeLine(dst, float32(b.Min.X), float32(p.Y), float32(b.Max.X), float32(p.Y), 1, c, true)
		}
	}
}

func rectQuad(r Rect) [4]Point {
	return [4]Point{{r.X, r.Y}, {r.Right(), r.Y}, {r.Right(), r.Bottom()}, {r.X, r.Bottom()}}
}

// drawHandles draws the eight resize handles and the rotate handle of the
// screen-space bounds b.
func drawHandles(dst *ebiten.Image, b Rect, style OverlayStyle) {
	rects := handleRects(b, style.HandleSize)
	for h, r := range rects {
		if Handle(h).IsRotate() {
			c := r.Center()
			vector.StrokeLine(dst, float32(c.X), float32(c.Y), float32(b.Center().X), float32(b.Y), 1, style.Accent.toRGBA(), true)
			vector.StrokeCircle(dst, float32(c.X), float32(c.Y), float32(math.Max(r.Width/2, 3)), 1, style.Accent.toRGBA(), true)
			continue
		}
		fillQuad(dst, rectQuad(r), Color{1, 1, 1, 1})
		strokeQuad(dst, rectQuad(r), 1, style.Accent)
	}
}

// DrawGrid draws grid lines every spacing canvas units across the visible
// canvas rectangle. Lines closer than 4 screen pixels are skipped.
func DrawGrid(dst *ebiten.Image, t CanvasTransform, visible Rect, spacing float64, clr Color) {
	if spacing <= 0 || !t.valid() {
		return
	}
	for spacing*t.Scale < 4 {
		spacing *= 5
	}
	c := clr.toRGBA()
	b := dst.Bounds()
	for x := math.Floor(visible.X/spacing) * spacing; x <= visible.Right(); x += spacing {
		sx := float32(x*t.Scale + t.X)
		vector.StrokeLine(dst, sx, float32(b.Min.Y), sx, float32(b.Max.Y), 1, c, false)
	}
	for y := math.Floor(visible.Y/spacing) * spacing; y <= visible.Bottom(); y += spacing {
		sy := float32(y*t.Scale + t.Y)
		vector.StrokeLine(dst, float32(b.Min.X), sy, float32(b.Max.X), sy, 1, c, false)
	}
}
