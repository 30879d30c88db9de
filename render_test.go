package easel

import (
	"slices"
	"strings"
	"testing"
)

func TestDrawOrderIsStableByZ(t *testing.T) {
	widgets := []Widget{
		{ID: "top", ZIndex: 5},
		{ID: "first", ZIndex: 0},
		{ID: "under", ZIndex: -1},
		{ID: "second", ZIndex: 0},
	}
	var ids []string
	for _, w := range drawOrder(widgets) {
		ids = append(ids, w.ID)
	}
	if want := []string{"under", "first", "second", "top"}; !slices.Equal(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
	if widgets[0].ID != "top" {
		t.Error("drawOrder reordered its input")
	}
}

func TestWidgetQuad(t *testing.T) {
	w := Widget{X: 10, Y: 20, Width: 30, Height: 40}
	q := widgetQuad(w, CanvasTransform{X: 5, Y: -5, Scale: 2})
	want := [4]Point{{25, 35}, {85, 35}, {85, 115}, {25, 115}}
	for i := range q {
		assertPoint(t, "corner", q[i], want[i])
	}

	w.Rotation = 180
	q = widgetQuad(w, IdentityTransform)
	assertPoint(t, "rotated top-left", q[0], Point{40, 60})
	assertPoint(t, "rotated bottom-right", q[2], Point{10, 20})
}

func TestHUDText(t *testing.T) {
	o := Overlay{Mode: ModeDragging, Transform: CanvasTransform{Scale: 1.5}, Selected: []string{"a", "b"}}
	got := hudText(60, 60, o)
	want := "FPS: 60.0  TPS: 60.0\nmode: dragging  zoom: 150%\nselected: 2"
	if got != want {
		t.Errorf("hudText = %q, want %q", got, want)
	}
	o.HandTool = true
	if !strings.HasSuffix(hudText(60, 60, o), "  [hand]") {
		t.Error("hand tool not shown")
	}
}
