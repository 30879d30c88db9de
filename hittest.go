package easel

import "sort"

// --- Hit testing ---

// topmostOrder returns widget indices sorted topmost first: descending
// ZIndex, and for equal ZIndex the widget later in the slice first (it is
// painted last).
func topmostOrder(widgets []Widget) []int {
	order := make([]int, len(widgets))
	for i := range order {
		order[i] = len(widgets) - 1 - i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return widgets[order[a]].ZIndex > widgets[order[b]].ZIndex
	})
	return order
}

// TopmostAt finds the topmost widget whose rectangle contains the canvas
// point p. Locked widgets are hit-testable. Returns false if nothing is hit.
func TopmostAt(p Point, widgets []Widget) (Widget, bool) {
	for _, i := range topmostOrder(widgets) {
		if widgets[i].Rect().Contains(p) {
			return widgets[i], true
		}
	}
	return Widget{}, false
}

// WidgetsInRect returns the ids of widgets whose rectangle overlaps r, in
// the order they appear in widgets.
func WidgetsInRect(r Rect, widgets []Widget) []string {
	var ids []string
	for _, w := range widgets {
		if w.Rect().Intersects(r) {
			ids = append(ids, w.ID)
		}
	}
	return ids
}

// BoundsOf returns the union AABB of the given widgets. ok is false when the
// slice is empty.
func BoundsOf(widgets []Widget) (bounds Rect, ok bool) {
	for i, w := range widgets {
		if i == 0 {
			bounds = w.Rect()
			continue
		}
		bounds = bounds.Union(w.Rect())
	}
	return bounds, len(widgets) > 0
}

// handleRects returns the screen-space hit boxes of the eight resize handles
// and the rotate handle for screen-space bounds b.
func handleRects(b Rect, size float64) [9]Rect {
	half := size / 2
	cx, cy := b.X+b.Width/2, b.Y+b.Height/2
	at := func(x, y float64) Rect {
		return Rect{X: x - half, Y: y - half, Width: size, Height: size}
	}
	return [9]Rect{
		HandleTopLeft:     at(b.X, b.Y),
		HandleTop:         at(cx, b.Y),
		HandleTopRight:    at(b.Right(), b.Y),
		HandleRight:       at(b.Right(), cy),
		HandleBottomRight: at(b.Right(), b.Bottom()),
		HandleBottom:      at(cx, b.Bottom()),
		HandleBottomLeft:  at(b.X, b.Bottom()),
		HandleLeft:        at(b.X, cy),
		HandleRotate:      at(cx, b.Y-rotateHandleOffset),
	}
}

// rotateHandleOffset is the screen distance of the rotate handle above the
// selection bounds.
const rotateHandleOffset = 24

// HandleAt reports which transform handle of the screen-space selection
// bounds lies under the screen point p.
func HandleAt(p Point, bounds Rect, size float64) (Handle, bool) {
	rects := handleRects(bounds, size)
	for i := len(rects) - 1; i >= 0; i-- {
		if rects[i].Contains(p) {
			return Handle(i), true
		}
	}
	return 0, false
}
