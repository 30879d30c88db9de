package easel

import "math"

// transformSession is one resize or rotate gesture over the selection. All
// geometry is recomputed from the pre-gesture snapshot on every move, so the
// gesture can be reverted exactly.
type transformSession struct {
	handle  Handle
	start   Point
	bounds  Rect
	ids     []string
	initial map[string]Widget
}

// newTransformSession snapshots the selected widgets. Returns false when
// nothing is selected.
func newTransformSession(h Handle, start Point, selected []Widget) (*transformSession, bool) {
	bounds, ok := BoundsOf(selected)
	if !ok {
		return nil, false
	}
	g := &transformSession{
		handle:  h,
		start:   start,
		bounds:  bounds,
		ids:     make([]string, 0, len(selected)),
		initial: make(map[string]Widget, len(selected)),
	}
	for _, w := range selected {
		g.ids = append(g.ids, w.ID)
		g.initial[w.ID] = w
	}
	return g, true
}

// resizedBounds moves the edges named by the handle by the pointer delta.
// Shift keeps the aspect ratio of the original bounds; Alt resizes about the
// bounds center.
func (g *transformSession) resizedBounds(p Point, mods KeyModifiers) Rect {
	b := g.bounds
	d := p.Sub(g.start)
	left, top, right, bottom := g.handle.edges()

	x0, y0, x1, y1 := b.X, b.Y, b.Right(), b.Bottom()
	if left {
		x0 += d.X
		if mods.Alt() {
			x1 -= d.X
		}
	}
	if right {
		x1 += d.X
		if mods.Alt() {
			x0 -= d.X
		}
	}
	if top {
		y0 += d.Y
		if mods.Alt() {
			y1 -= d.Y
		}
	}
	if bottom {
		y1 += d.Y
		if mods.Alt() {
			y0 -= d.Y
		}
	}

	w := math.Max(x1-x0, 1)
	h := math.Max(y1-y0, 1)
	if mods.Shift() && b.Width > 0 && b.Height > 0 {
		sx, sy := w/b.Width, h/b.Height
		switch {
		case (left || right) && (top || bottom):
			s := math.Max(sx, sy)
			w, h = b.Width*s, b.Height*s
		case left || right:
			h = b.Height * sx
		default:
			w = b.Width * sy
		}
	}

	c := b.Center()
	var nx, ny float64
	switch {
	case mods.Alt():
		nx, ny = c.X-w/2, c.Y-h/2
	default:
		switch {
		case left:
			nx = b.Right() - w
		case right:
			nx = b.X
		default:
			nx = c.X - w/2
		}
		switch {
		case top:
			ny = b.Bottom() - h
		case bottom:
			ny = b.Y
		default:
			ny = c.Y - h/2
		}
	}
	return Rect{X: nx, Y: ny, Width: w, Height: h}
}

// resize scales every widget proportionally to its position inside the
// original bounds. No widget shrinks below minSize.
func (g *transformSession) resize(p Point, mods KeyModifiers, minSize float64) []WidgetUpdate {
	b := g.bounds
	nb := g.resizedBounds(p, mods)
	sx, sy := 1.0, 1.0
	if b.Width > 0 {
		sx = nb.Width / b.Width
	}
	if b.Height > 0 {
		sy = nb.Height / b.Height
	}

	batch := make([]WidgetUpdate, 0, len(g.ids))
	for _, id := range g.ids {
		w := g.initial[id]
		batch = append(batch, WidgetUpdate{ID: id, Patch: WidgetPatch{
			Fields: PatchPosition | PatchSize,
			X:      nb.X + (w.X-b.X)*sx,
			Y:      nb.Y + (w.Y-b.Y)*sy,
			Width:  math.Max(minSize, w.Width*sx),
			Height: math.Max(minSize, w.Height*sy),
		}})
	}
	return batch
}

// rotationDelta returns the signed angle in degrees, in (-180, 180], swept
// from the start vector to the vector toward p around the bounds center.
func (g *transformSession) rotationDelta(p Point, mods KeyModifiers, snap float64) float64 {
	c := g.bounds.Center()
	a0 := math.Atan2(g.start.Y-c.Y, g.start.X-c.X)
	a1 := math.Atan2(p.Y-c.Y, p.X-c.X)
	deg := (a1 - a0) * 180 / math.Pi
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	if mods.Shift() && snap > 0 {
		deg = math.Round(deg/snap) * snap
	}
	return deg
}

// rotate sets each widget's rotation to its original rotation plus the
// swept angle.
func (g *transformSession) rotate(p Point, mods KeyModifiers, snap float64) []WidgetUpdate {
	deg := g.rotationDelta(p, mods, snap)
	batch := make([]WidgetUpdate, 0, len(g.ids))
	for _, id := range g.ids {
		w := g.initial[id]
		batch = append(batch, WidgetUpdate{ID: id, Patch: WidgetPatch{
			Fields:   PatchRotation,
			Rotation: normalizeDegrees(w.Rotation + deg),
		}})
	}
	return batch
}

// revert restores the pre-gesture geometry of every widget.
func (g *transformSession) revert() []WidgetUpdate {
	batch := make([]WidgetUpdate, 0, len(g.ids))
	for _, id := range g.ids {
		w := g.initial[id]
		batch = append(batch, WidgetUpdate{ID: id, Patch: WidgetPatch{
			Fields:   PatchPosition | PatchSize | PatchRotation,
			X:        w.X,
			Y:        w.Y,
			Width:    w.Width,
			Height:   w.Height,
			Rotation: w.Rotation,
		}})
	}
	return batch
}
