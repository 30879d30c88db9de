package easel

import (
	"bytes"
	"math"
	"slices"
	"strings"
	"testing"
)

// recordingHost captures every write the engine makes.
type recordingHost struct {
	single  []WidgetUpdate
	batches [][]WidgetUpdate
	removed []string
	added   []Widget
}

func (h *recordingHost) UpdateWidget(id string, patch WidgetPatch) {
	h.single = append(h.single, WidgetUpdate{ID: id, Patch: patch})
}

func (h *recordingHost) UpdateWidgets(batch []WidgetUpdate) {
	h.batches = append(h.batches, append([]WidgetUpdate(nil), batch...))
}

func (h *recordingHost) RemoveWidget(id string) { h.removed = append(h.removed, id) }
func (h *recordingHost) AddWidget(w Widget)     { h.added = append(h.added, w) }

func (h *recordingHost) lastBatch(t *testing.T) []WidgetUpdate {
	t.Helper()
	if len(h.batches) == 0 {
		t.Fatal("host received no batch")
	}
	return h.batches[len(h.batches)-1]
}

func newTestMachine(t *testing.T, widgets ...Widget) (*Machine, *recordingHost, *bytes.Buffer) {
	t.Helper()
	if widgets == nil {
		widgets = testWidgets()
	}
	host := &recordingHost{}
	m := NewMachine(host, noGridConfig())
	var diag bytes.Buffer
	m.SetDiagnosticsOutput(&diag)
	m.SetWidgets(widgets)
	m.SetViewport(Rect{Width: 800, Height: 600})
	return m, host, &diag
}

// Under the identity transform canvas and screen coordinates coincide.

func pointerDown(m *Machine, x, y float64, mods KeyModifiers) Result {
	return m.ProcessEvent(Event{Type: EventPointerDown, Screen: Point{x, y}, Canvas: Point{x, y}, Modifiers: mods, ClickCount: 1})
}

func pointerMove(m *Machine, x, y float64, mods KeyModifiers) Result {
	return m.ProcessEvent(Event{Type: EventPointerMove, Screen: Point{x, y}, Canvas: Point{x, y}, Modifiers: mods})
}

func pointerUp(m *Machine, x, y float64, mods KeyModifiers) Result {
	return m.ProcessEvent(Event{Type: EventPointerUp, Screen: Point{x, y}, Canvas: Point{x, y}, Modifiers: mods})
}

func keyDown(m *Machine, key string, mods KeyModifiers) Result {
	return m.ProcessEvent(Event{Type: EventKeyDown, Key: NormalizeKey(key), Modifiers: mods})
}

func keyUp(m *Machine, key string) Result {
	return m.ProcessEvent(Event{Type: EventKeyUp, Key: NormalizeKey(key)})
}

func assertMode(t *testing.T, m *Machine, want Mode) {
	t.Helper()
	if m.Mode() != want {
		t.Fatalf("mode = %s, want %s", m.Mode(), want)
	}
}

func assertMachineSelection(t *testing.T, m *Machine, want ...string) {
	t.Helper()
	assertSelected(t, m.Selection(), want...)
}

func widgetAt(t *testing.T, m *Machine, id string) Widget {
	t.Helper()
	w, ok := m.Widget(id)
	if !ok {
		t.Fatalf("widget %s missing from snapshot", id)
	}
	return w
}

// --- Idle / dragging ---

func TestMachineStartsIdle(t *testing.T) {
	m := NewMachine(nil, DefaultConfig())
	assertMode(t, m, ModeIdle)
	if m.Transform() != IdentityTransform {
		t.Errorf("Transform = %+v, want identity", m.Transform())
	}
}

func TestClickWidgetSelectsAndDrags(t *testing.T) {
	m, host, _ := newTestMachine(t)
	pointerDown(m, 10, 10, 0)
	assertMode(t, m, ModeDragging)
	assertMachineSelection(t, m, "a")

	pointerMove(m, 40, 80, 0)
	batch := host.lastBatch(t)
	if len(batch) != 1 || batch[0].ID != "a" {
		t.Fatalf("batch = %+v", batch)
	}
	assertPoint(t, "snapshot", widgetAt(t, m, "a").Position(), Point{30, 70})

	pointerUp(m, 40, 80, 0)
	assertMode(t, m, ModeIdle)
	assertPoint(t, "final", widgetAt(t, m, "a").Position(), Point{30, 70})
}

func TestDragMovesWholeSelection(t *testing.T) {
	m, host, _ := newTestMachine(t)
	m.Select("a", "b")
	// A plain press would replace the selection with b.
	pointerDown(m, 110, 110, ModShift)
	assertMachineSelection(t, m, "a", "b")
	pointerMove(m, 115, 117, ModMeta)

	batch := host.lastBatch(t)
	if len(batch) != 2 {
		t.Fatalf("batch has %d updates, want 2", len(batch))
	}
	assertPoint(t, "a", widgetAt(t, m, "a").Position(), Point{5, 7})
	assertPoint(t, "b", widgetAt(t, m, "b").Position(), Point{105, 107})
}

func TestDragSkipsLockedWidgets(t *testing.T) {
	m, host, _ := newTestMachine(t)
	m.Select("a", "locked")
	pointerDown(m, 10, 10, ModShift)
	assertMode(t, m, ModeDragging)
	pointerMove(m, 20, 10, ModMeta)
	for _, u := range host.lastBatch(t) {
		if u.ID == "locked" {
			t.Fatal("locked widget moved")
		}
	}
}

func TestPressOnLockedWidgetSelectsWithoutDragging(t *testing.T) {
	m, host, _ := newTestMachine(t)
	pointerDown(m, 520, 20, 0)
	assertMode(t, m, ModeIdle)
	assertMachineSelection(t, m, "locked")
	pointerMove(m, 600, 20, 0)
	pointerUp(m, 600, 20, 0)
	if len(host.batches) != 0 {
		t.Errorf("host received %d batches", len(host.batches))
	}
}

func TestEscapeDuringDragRestores(t *testing.T) {
	m, host, _ := newTestMachine(t)
	pointerDown(m, 10, 10, 0)
	pointerMove(m, 90, 70, ModMeta)
	res := keyDown(m, "Escape", 0)
	if !res.Handled {
		t.Error("Escape not handled")
	}
	assertMode(t, m, ModeIdle)
	assertPoint(t, "restored", widgetAt(t, m, "a").Position(), Point{0, 0})
	assertPoint(t, "host", positionOf(t, host.lastBatch(t), "a"), Point{0, 0})
	if m.Drag().Active() {
		t.Error("drag still active")
	}
	// The selection survives a cancelled drag.
	assertMachineSelection(t, m, "a")
}

func TestBlurDuringDragRestores(t *testing.T) {
	m, _, _ := newTestMachine(t)
	pointerDown(m, 10, 10, 0)
	pointerMove(m, 90, 70, ModMeta)
	m.ProcessEvent(Event{Type: EventBlur})
	assertMode(t, m, ModeIdle)
	assertPoint(t, "restored", widgetAt(t, m, "a").Position(), Point{0, 0})
}

func TestRightButtonIgnored(t *testing.T) {
	m, _, _ := newTestMachine(t)
	res := m.ProcessEvent(Event{Type: EventPointerDown, Button: MouseButtonRight, Canvas: Point{10, 10}})
	if res.Handled {
		t.Error("right press handled")
	}
	assertMode(t, m, ModeIdle)
	assertMachineSelection(t, m)

	res = m.ProcessEvent(Event{Type: EventContextMenu, Canvas: Point{10, 10}})
	if !res.Handled || !res.PreventDefault {
		t.Errorf("context menu result = %+v", res)
	}
}

// --- Area selection ---

func TestAreaSelect(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.Select("c")
	pointerDown(m, -10, -10, 0)
	assertMode(t, m, ModeAreaSelect)
	assertMachineSelection(t, m)
	if m.Cursor() != CursorCrosshair {
		t.Errorf("cursor = %s, want crosshair", m.Cursor())
	}

	pointerMove(m, 120, 120, 0)
	if r, ok := m.Selection().AreaRect(); !ok || r.Width != 130 {
		t.Errorf("AreaRect = %+v, %v", r, ok)
	}
	pointerUp(m, 120, 120, 0)
	assertMode(t, m, ModeIdle)
	assertMachineSelection(t, m, "a", "b")
	if _, ok := m.Selection().AreaRect(); ok {
		t.Error("area rect still open")
	}
}

func TestAreaSelectTracksHover(t *testing.T) {
	m, _, _ := newTestMachine(t)
	var hovers []string
	m.OnHoverChange(func(id string) { hovers = append(hovers, id) })

	pointerDown(m, -10, -10, 0)
	pointerMove(m, 120, 120, 0)
	if id, ok := m.Selection().Hovered(); !ok || id != "b" {
		t.Errorf("Hovered = %q, %v during area select", id, ok)
	}
	pointerMove(m, 200, 200, 0)
	pointerUp(m, 200, 200, 0)
	if !slices.Equal(hovers, []string{"b", ""}) {
		t.Errorf("hovers = %q", hovers)
	}
}

func TestAreaSelectAdditive(t *testing.T) {
	for _, mods := range []KeyModifiers{ModShift, ModCtrl, ModMeta} {
		m, _, _ := newTestMachine(t)
		m.Select("c")
		pointerDown(m, -10, -10, mods)
		pointerMove(m, 10, 10, mods)
		pointerUp(m, 10, 10, mods)
		assertMachineSelection(t, m, "c", "a")
	}
}

func TestEscapeDuringAreaSelectKeepsSelection(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.Select("c")
	pointerDown(m, -10, -10, ModShift)
	pointerMove(m, 200, 200, ModShift)
	keyDown(m, "Escape", 0)
	assertMode(t, m, ModeIdle)
	assertMachineSelection(t, m, "c")
	if _, ok := m.Selection().AreaRect(); ok {
		t.Error("area rect still open")
	}
	// Releasing afterwards must not select anything.
	pointerUp(m, 200, 200, 0)
	assertMachineSelection(t, m, "c")
}

// --- Panning ---

func TestSpacePan(t *testing.T) {
	m, _, _ := newTestMachine(t)
	keyDown(m, " ", 0)
	if m.Cursor() != CursorGrab {
		t.Errorf("cursor = %s, want grab", m.Cursor())
	}
	pointerDown(m, 100, 100, 0)
	assertMode(t, m, ModePanning)
	if m.Cursor() != CursorGrabbing {
		t.Errorf("cursor = %s, want grabbing", m.Cursor())
	}
	pointerMove(m, 130, 140, 0)
	if tr := m.Transform(); tr.X != 30 || tr.Y != 40 || tr.Scale != 1 {
		t.Errorf("Transform = %+v", tr)
	}
	assertMachineSelection(t, m)

	pointerUp(m, 130, 140, 0)
	assertMode(t, m, ModeIdle)
	keyUp(m, "space")
	if m.Cursor() != CursorDefault {
		t.Errorf("cursor = %s, want default", m.Cursor())
	}
}

func TestSpaceReleaseEndsPan(t *testing.T) {
	m, _, _ := newTestMachine(t)
	keyDown(m, "space", 0)
	pointerDown(m, 100, 100, 0)
	keyUp(m, "space")
	assertMode(t, m, ModeIdle)
}

func TestMiddleButtonPan(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.ProcessEvent(Event{Type: EventPointerDown, Button: MouseButtonMiddle, Screen: Point{10, 10}, Canvas: Point{10, 10}})
	assertMode(t, m, ModePanning)
	pointerMove(m, 0, 5, 0)
	if tr := m.Transform(); tr.X != -10 || tr.Y != -5 {
		t.Errorf("Transform = %+v", tr)
	}
	m.ProcessEvent(Event{Type: EventPointerUp, Button: MouseButtonMiddle})
	assertMode(t, m, ModeIdle)
}

func TestHandTool(t *testing.T) {
	m, _, _ := newTestMachine(t)
	keyDown(m, "h", 0)
	assertMode(t, m, ModePanning)
	if !m.HandToolActive() {
		t.Fatal("hand tool not active")
	}

	pointerDown(m, 0, 0, 0)
	pointerMove(m, 25, 0, 0)
	pointerUp(m, 25, 0, 0)
	assertMode(t, m, ModePanning)
	if m.Cursor() != CursorGrab {
		t.Errorf("cursor = %s, want grab", m.Cursor())
	}
	if m.Transform().X != 25 {
		t.Errorf("Transform.X = %v, want 25", m.Transform().X)
	}

	keyDown(m, "h", 0)
	assertMode(t, m, ModeIdle)
	if m.HandToolActive() {
		t.Error("hand tool still active")
	}
}

func TestHandToolEscape(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.ToggleHandTool()
	assertMode(t, m, ModePanning)
	keyDown(m, "Escape", 0)
	assertMode(t, m, ModeIdle)
	if m.HandToolActive() {
		t.Error("hand tool still active after Escape")
	}
}

func TestBlurEndsPan(t *testing.T) {
	m, _, _ := newTestMachine(t)
	keyDown(m, "space", 0)
	pointerDown(m, 0, 0, 0)
	m.ProcessEvent(Event{Type: EventBlur})
	assertMode(t, m, ModeIdle)
	// Space is forgotten on blur, so the next press selects again.
	pointerDown(m, 10, 10, 0)
	assertMode(t, m, ModeDragging)
}

// --- Wheel ---

func TestWheelZoomKeepsAnchor(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.SetTransform(CanvasTransform{X: 20, Y: -30, Scale: 1.5})
	anchor := Point{100, 100}
	before := ScreenToCanvas(anchor, m.Transform())

	res := m.ProcessEvent(Event{Type: EventWheel, Screen: anchor, DeltaY: -100, Modifiers: ModCtrl})
	if !res.Handled || !res.PreventDefault || !res.StopPropagation {
		t.Errorf("result = %+v", res)
	}
	tr := m.Transform()
	if math.Abs(tr.Scale-1.5*math.E) > 1e-9 {
		t.Errorf("Scale = %v, want %v", tr.Scale, 1.5*math.E)
	}
	assertPoint(t, "anchor", ScreenToCanvas(anchor, tr), before)
}

func TestWheelZoomClamps(t *testing.T) {
	m, _, _ := newTestMachine(t)
	for i := 0; i < 50; i++ {
		m.ProcessEvent(Event{Type: EventWheel, Screen: Point{10, 10}, DeltaY: -500, Modifiers: ModMeta})
	}
	if s := m.Transform().Scale; s != MaxScale {
		t.Errorf("Scale = %v, want %v", s, MaxScale)
	}
}

func TestWheelPans(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		mods   KeyModifiers
		want   CanvasTransform
	}{
		{"vertical", 0, 50, 0, CanvasTransform{Y: -50, Scale: 1}},
		{"horizontal", 30, 0, 0, CanvasTransform{X: -30, Scale: 1}},
		{"shift swaps", 0, 50, ModShift, CanvasTransform{X: -50, Scale: 1}},
	}
	for _, tt := range tests {
		m, _, _ := newTestMachine(t)
		m.ProcessEvent(Event{Type: EventWheel, DeltaX: tt.dx, DeltaY: tt.dy, Modifiers: tt.mods})
		if m.Transform() != tt.want {
			t.Errorf("%s: Transform = %+v, want %+v", tt.name, m.Transform(), tt.want)
		}
	}
}

func TestWheelOverScrollableContentIsLeftAlone(t *testing.T) {
	m, _, _ := newTestMachine(t)
	target := &fakeTarget{parent: &fakeTarget{scrollable: true}}
	res := m.ProcessEvent(Event{Type: EventWheel, DeltaY: 50, Target: target})
	if res.Handled {
		t.Error("wheel over scrollable content handled")
	}
	if m.Transform() != IdentityTransform {
		t.Errorf("Transform = %+v", m.Transform())
	}
	// Zoom still applies.
	m.ProcessEvent(Event{Type: EventWheel, DeltaY: -10, Target: target, Modifiers: ModCtrl})
	if m.Transform().Scale == 1 {
		t.Error("ctrl+wheel over scrollable content did not zoom")
	}
}

// --- Resize / rotate ---

func TestResizeGesture(t *testing.T) {
	m, host, _ := newTestMachine(t)
	m.Select("a")
	if !m.StartTransform(HandleBottomRight, Point{50, 50}) {
		t.Fatal("StartTransform failed")
	}
	assertMode(t, m, ModeResizing)
	if m.Cursor() != CursorResizeNWSE {
		t.Errorf("cursor = %s", m.Cursor())
	}
	if h, ok := m.TransformHandle(); !ok || h != HandleBottomRight {
		t.Errorf("TransformHandle = %v, %v", h, ok)
	}

	pointerMove(m, 100, 80, 0)
	p := patchFor(t, host.lastBatch(t), "a")
	assertGeometry(t, "a", p, 0, 0, 100, 80)

	pointerUp(m, 100, 80, 0)
	assertMode(t, m, ModeIdle)
	if w := widgetAt(t, m, "a"); w.Width != 100 || w.Height != 80 {
		t.Errorf("snapshot = %+v", w)
	}
}

func TestResizeEscapeReverts(t *testing.T) {
	m, host, _ := newTestMachine(t)
	m.Select("a", "b")
	m.StartTransform(HandleRight, Point{150, 75})
	pointerMove(m, 300, 75, 0)
	keyDown(m, "Escape", 0)
	assertMode(t, m, ModeIdle)
	if w := widgetAt(t, m, "a"); w.Width != 50 || w.X != 0 {
		t.Errorf("a not reverted: %+v", w)
	}
	if w := widgetAt(t, m, "b"); w.Width != 50 || w.X != 100 {
		t.Errorf("b not reverted: %+v", w)
	}
	if len(host.lastBatch(t)) != 2 {
		t.Error("revert not sent as one batch")
	}
}

func TestRotateGesture(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.Select("a")
	// a is 50x50 at the origin, so its center is (25, 25).
	if !m.StartTransform(HandleRotate, Point{25, 0}) {
		t.Fatal("StartTransform failed")
	}
	assertMode(t, m, ModeRotating)
	pointerMove(m, 50, 25, 0)
	if r := widgetAt(t, m, "a").Rotation; math.Abs(r-90) > 1e-9 {
		t.Errorf("Rotation = %v, want 90", r)
	}
	m.ProcessEvent(Event{Type: EventBlur})
	assertMode(t, m, ModeIdle)
	if r := widgetAt(t, m, "a").Rotation; r != 0 {
		t.Errorf("Rotation after blur = %v, want 0", r)
	}
}

func TestStartTransformRequiresUnlockedSelection(t *testing.T) {
	m, _, _ := newTestMachine(t)
	if m.StartTransform(HandleRight, Point{}) {
		t.Error("StartTransform succeeded with empty selection")
	}
	m.Select("locked")
	if m.StartTransform(HandleRight, Point{}) {
		t.Error("StartTransform succeeded on a locked widget")
	}
	if m.EndTransform() {
		t.Error("EndTransform succeeded without a gesture")
	}
}

func TestEndTransformKeepsGeometry(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.Select("a")
	m.StartTransform(HandleRight, Point{50, 25})
	pointerMove(m, 70, 25, 0)
	if !m.EndTransform() {
		t.Fatal("EndTransform failed")
	}
	assertMode(t, m, ModeIdle)
	if w := widgetAt(t, m, "a"); w.Width != 70 {
		t.Errorf("Width = %v, want 70", w.Width)
	}
}

// --- Text editing ---

func TestDoubleClickEntersTextEditing(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.ProcessEvent(Event{Type: EventPointerDown, Canvas: Point{10, 10}, ClickCount: 2})
	assertMode(t, m, ModeTextEditing)
	if id, ok := m.EditingID(); !ok || id != "a" {
		t.Errorf("EditingID = %q, %v", id, ok)
	}
	if m.Cursor() != CursorText {
		t.Errorf("cursor = %s, want text", m.Cursor())
	}
}

func TestDoubleClickOnLockedDoesNotEdit(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.ProcessEvent(Event{Type: EventPointerDown, Canvas: Point{520, 20}, ClickCount: 2})
	if m.Mode() == ModeTextEditing {
		t.Error("locked widget entered text editing")
	}
}

func TestTextEditingLeavesKeysToHost(t *testing.T) {
	m, host, _ := newTestMachine(t)
	m.StartTextEditing("a")
	res := keyDown(m, "Delete", 0)
	if res.Handled {
		t.Error("Delete handled while editing")
	}
	keyDown(m, "a", ModMeta)
	if len(host.removed) != 0 {
		t.Error("widget removed while editing")
	}
	assertMachineSelection(t, m, "a")

	// Pressing inside the widget stays in editing.
	pointerDown(m, 20, 20, 0)
	assertMode(t, m, ModeTextEditing)

	keyDown(m, "Escape", 0)
	assertMode(t, m, ModeIdle)
	if _, ok := m.EditingID(); ok {
		t.Error("editing id kept after exit")
	}
}

func TestPressOutsideEditedWidgetIsHandledAsIdle(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.StartTextEditing("a")
	pointerDown(m, 1000, 1000, 0)
	assertMode(t, m, ModeAreaSelect)
	assertMachineSelection(t, m)
}

func TestRemovingEditedWidgetEndsEditing(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.StartTextEditing("b")
	m.SetWidgets(testWidgets()[:1])
	assertMode(t, m, ModeIdle)
}

// --- Keyboard commands ---

func TestSelectAllShortcut(t *testing.T) {
	m, _, _ := newTestMachine(t)
	res := keyDown(m, "a", ModCtrl)
	if !res.Handled || !res.PreventDefault {
		t.Errorf("result = %+v", res)
	}
	assertMachineSelection(t, m, "a", "b", "c", "locked")
}

func TestShortcutInEditableTargetIgnored(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.Select("a")
	res := m.ProcessEvent(Event{Type: EventKeyDown, Key: KeyDelete, Target: &fakeTarget{editable: true}})
	if res.Handled {
		t.Error("Delete in editable target handled")
	}
	if _, ok := m.Widget("a"); !ok {
		t.Error("widget deleted from editable target")
	}
}

func TestDeleteSkipsLocked(t *testing.T) {
	m, host, _ := newTestMachine(t)
	m.Select("a", "locked")
	keyDown(m, "Backspace", 0)
	if !slices.Equal(host.removed, []string{"a"}) {
		t.Errorf("removed = %v, want [a]", host.removed)
	}
	if _, ok := m.Widget("a"); ok {
		t.Error("a still in snapshot")
	}
	assertMachineSelection(t, m, "locked")
}

func TestDuplicate(t *testing.T) {
	m, host, _ := newTestMachine(t,
		Widget{ID: "a", X: 10, Y: 10, Width: 5, Height: 5, ZIndex: 2},
		Widget{ID: "b", X: 50, Y: 50, Width: 5, Height: 5, ZIndex: 7, Locked: true},
	)
	m.Select("a", "b")
	keyDown(m, "d", ModMeta)
	if len(host.added) != 2 {
		t.Fatalf("added %d widgets, want 2", len(host.added))
	}
	first, second := host.added[0], host.added[1]
	if first.ID == "a" || first.ID == "" || first.ID == second.ID {
		t.Errorf("duplicate ids not fresh: %q, %q", first.ID, second.ID)
	}
	if first.X != 30 || first.Y != 30 || first.ZIndex != 8 {
		t.Errorf("first copy = %+v", first)
	}
	if second.ZIndex != 9 || second.Locked {
		t.Errorf("second copy = %+v", second)
	}
	assertMachineSelection(t, m, first.ID, second.ID)
}

func TestNudge(t *testing.T) {
	tests := []struct {
		key  string
		mods KeyModifiers
		want Point
	}{
		{"ArrowRight", 0, Point{1, 0}},
		{"ArrowLeft", 0, Point{-1, 0}},
		{"ArrowUp", ModShift, Point{0, -10}},
		{"ArrowDown", ModShift, Point{0, 10}},
	}
	for _, tt := range tests {
		m, host, _ := newTestMachine(t)
		m.Select("a", "locked")
		keyDown(m, tt.key, tt.mods)
		batch := host.lastBatch(t)
		if len(batch) != 1 {
			t.Fatalf("%s: batch = %+v", tt.key, batch)
		}
		assertPoint(t, tt.key, widgetAt(t, m, "a").Position(), tt.want)
	}
}

func TestBringToFrontAndSendToBack(t *testing.T) {
	widgets := []Widget{
		{ID: "a", ZIndex: 0},
		{ID: "b", ZIndex: 1},
		{ID: "c", ZIndex: 2},
	}
	m, _, _ := newTestMachine(t, widgets...)
	m.Select("a", "b")
	keyDown(m, "]", 0)
	if a, b := widgetAt(t, m, "a").ZIndex, widgetAt(t, m, "b").ZIndex; a != 3 || b != 4 {
		t.Errorf("front: a=%d b=%d, want 3 4", a, b)
	}

	m, _, _ = newTestMachine(t, widgets...)
	m.Select("c")
	keyDown(m, "[", 0)
	if c := widgetAt(t, m, "c").ZIndex; c != -1 {
		t.Errorf("back: c=%d, want -1", c)
	}
}

func TestEscapeInIdleClearsSelection(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.Select("a")
	keyDown(m, "Escape", 0)
	assertMachineSelection(t, m)
}

func TestZoomShortcuts(t *testing.T) {
	m, _, _ := newTestMachine(t)
	center := Point{400, 300}
	before := ScreenToCanvas(center, m.Transform())

	keyDown(m, "=", ModCtrl)
	assertNear(t, "zoom in", m.Transform().Scale, 1.25)
	assertPoint(t, "anchor", ScreenToCanvas(center, m.Transform()), before)

	keyDown(m, "-", ModMeta)
	keyDown(m, "-", ModMeta)
	assertNear(t, "zoom out", m.Transform().Scale, 0.8)

	keyDown(m, "0", ModCtrl)
	assertNear(t, "reset", m.Transform().Scale, 1)
}

func TestZoomToFitShortcut(t *testing.T) {
	m, _, _ := newTestMachine(t)
	keyDown(m, "1", 0)
	bounds, _ := BoundsOf(m.Widgets())
	want := FitRect(bounds, m.Viewport(), m.cfg.FitPadding)
	got := m.Transform()
	assertNear(t, "Scale", got.Scale, want.Scale)
	assertNear(t, "X", got.X, want.X)
	assertNear(t, "Y", got.Y, want.Y)
}

func TestZoomToSelectionNeedsSelection(t *testing.T) {
	m, _, _ := newTestMachine(t)
	keyDown(m, "2", 0)
	if m.Transform() != IdentityTransform {
		t.Error("zoom to selection moved without a selection")
	}
	m.Select("c")
	keyDown(m, "2", 0)
	if c := CanvasToScreen(Point{325, 325}, m.Transform()); math.Abs(c.X-400) > 1e-6 || math.Abs(c.Y-300) > 1e-6 {
		t.Errorf("selection center on screen = %v, want (400, 300)", c)
	}
}

func TestRunCommand(t *testing.T) {
	m, _, _ := newTestMachine(t)
	if !m.RunCommand(CommandSelectAll) {
		t.Fatal("RunCommand failed")
	}
	assertMachineSelection(t, m, "a", "b", "c", "locked")
	if m.RunCommand("nope") {
		t.Error("unknown command ran")
	}
}

// --- Snapshots and host writes ---

func TestSetWidgetsPrunesSelection(t *testing.T) {
	m, _, _ := newTestMachine(t)
	var got [][]string
	m.OnSelectionChange(func(ids []string) { got = append(got, ids) })
	m.Select("a", "c")
	m.SetWidgets(testWidgets()[:2])
	if len(got) != 2 || !slices.Equal(got[1], []string{"a"}) {
		t.Errorf("selection notifications = %v", got)
	}
}

func TestSelectIgnoresUnknownIDs(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.Select("a", "ghost")
	assertMachineSelection(t, m, "a")
}

func TestApplyBatchDropsUnknownWidgets(t *testing.T) {
	m, host, diag := newTestMachine(t)
	m.applyBatch([]WidgetUpdate{
		{ID: "a", Patch: positionPatch(Point{1, 2})},
		{ID: "ghost", Patch: positionPatch(Point{3, 4})},
	})
	batch := host.lastBatch(t)
	if len(batch) != 1 || batch[0].ID != "a" {
		t.Errorf("batch = %+v", batch)
	}
	if !strings.Contains(diag.String(), `[easel] warning: dropping update for unknown widget "ghost"`) {
		t.Errorf("diagnostics = %q", diag.String())
	}

	host.batches = nil
	m.applyBatch([]WidgetUpdate{{ID: "ghost"}})
	if len(host.batches) != 0 {
		t.Error("empty batch sent to host")
	}
}

func TestSetTransformClamps(t *testing.T) {
	m := NewMachine(nil, DefaultConfig())
	m.SetTransform(CanvasTransform{Scale: 1000})
	if m.Transform().Scale != MaxScale {
		t.Errorf("Scale = %v", m.Transform().Scale)
	}
	cfg := DefaultConfig()
	cfg.MinScale, cfg.MaxScale = 0.5, 4
	m = NewMachine(nil, cfg)
	m.SetTransform(CanvasTransform{Scale: 0.1})
	if m.Transform().Scale != 0.5 {
		t.Errorf("Scale = %v, want 0.5", m.Transform().Scale)
	}
}

// --- Observers ---

func TestModeObserver(t *testing.T) {
	m, _, _ := newTestMachine(t)
	var modes []Mode
	h := m.OnModeChange(func(md Mode) { modes = append(modes, md) })
	pointerDown(m, 10, 10, 0)
	pointerUp(m, 10, 10, 0)
	if !slices.Equal(modes, []Mode{ModeDragging, ModeIdle}) {
		t.Errorf("modes = %v", modes)
	}
	h.Remove()
	pointerDown(m, 10, 10, 0)
	if len(modes) != 2 {
		t.Error("removed observer still called")
	}
}

func TestHoverAndCursorObservers(t *testing.T) {
	m, _, _ := newTestMachine(t)
	var hovers []string
	var cursors []CursorHint
	m.OnHoverChange(func(id string) { hovers = append(hovers, id) })
	m.OnCursorChange(func(c CursorHint) { cursors = append(cursors, c) })

	pointerMove(m, 10, 10, 0)
	pointerMove(m, 12, 12, 0)
	pointerMove(m, 520, 20, 0)
	pointerMove(m, 1000, 1000, 0)

	if !slices.Equal(hovers, []string{"a", "locked", ""}) {
		t.Errorf("hovers = %q", hovers)
	}
	if !slices.Equal(cursors, []CursorHint{CursorMove, CursorDefault}) {
		t.Errorf("cursors = %v", cursors)
	}
}

func TestTransformObserver(t *testing.T) {
	m, _, _ := newTestMachine(t)
	var got []CanvasTransform
	m.OnCanvasTransform(func(tr CanvasTransform) { got = append(got, tr) })
	m.ProcessEvent(Event{Type: EventWheel, DeltaY: 10})
	m.ProcessEvent(Event{Type: EventWheel})
	if len(got) != 1 || got[0].Y != -10 {
		t.Errorf("transforms = %+v", got)
	}
}

type recordingSink struct {
	events []InteractionEvent
}

func (s *recordingSink) EmitEvent(ev InteractionEvent) { s.events = append(s.events, ev) }

func (s *recordingSink) types() []NotificationType {
	out := make([]NotificationType, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Type
	}
	return out
}

func TestEventSinkReceivesNotifications(t *testing.T) {
	m, _, _ := newTestMachine(t)
	sink := &recordingSink{}
	m.SetEventSink(sink)

	pointerDown(m, 10, 10, 0)
	pointerMove(m, 20, 10, ModMeta)
	pointerUp(m, 20, 10, 0)

	types := sink.types()
	for _, want := range []NotificationType{NotifyModeChange, NotifySelectionChange, NotifyCursorChange, NotifyWidgetsUpdate} {
		if !slices.Contains(types, want) {
			t.Errorf("sink missing notification %d in %v", want, types)
		}
	}
	first := sink.events[0]
	if first.Type != NotifyCursorChange && first.Type != NotifyModeChange {
		t.Errorf("first notification = %d", first.Type)
	}

	sink.events = nil
	keyDown(m, "Delete", 0)
	if !slices.Contains(sink.types(), NotifyWidgetRemove) || !slices.Contains(sink.types(), NotifyCommand) {
		t.Errorf("delete notifications = %v", sink.types())
	}
}
