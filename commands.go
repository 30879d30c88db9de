package easel

import (
	"slices"

	"github.com/google/uuid"
)

// bindCommands wires the built-in keyboard commands to the machine.
func bindCommands(m *Machine) {
	run := func(cmd Command, fn func()) {
		m.keys.Bind(cmd, func(KeyEvent) {
			fn()
			m.emitEvent(InteractionEvent{Type: NotifyCommand, Command: cmd})
		})
	}

	run(CommandSelectAll, func() { m.selection.SelectAll(m.widgets) })
	run(CommandCancel, func() { m.selection.Clear() })
	run(CommandDelete, m.deleteSelection)
	run(CommandDuplicate, m.duplicateSelection)

	run(CommandNudgeLeft, func() { m.nudge(-m.cfg.Nudge, 0) })
	run(CommandNudgeRight, func() { m.nudge(m.cfg.Nudge, 0) })
	run(CommandNudgeUp, func() { m.nudge(0, -m.cfg.Nudge) })
	run(CommandNudgeDown, func() { m.nudge(0, m.cfg.Nudge) })
	run(CommandNudgeLeftLarge, func() { m.nudge(-m.cfg.NudgeLarge, 0) })
	run(CommandNudgeRightLarge, func() { m.nudge(m.cfg.NudgeLarge, 0) })
	run(CommandNudgeUpLarge, func() { m.nudge(0, -m.cfg.NudgeLarge) })
	run(CommandNudgeDownLarge, func() { m.nudge(0, m.cfg.NudgeLarge) })

	run(CommandBringToFront, func() { m.restack(true) })
	run(CommandSendToBack, func() { m.restack(false) })

	run(CommandZoomToFit, func() { m.zoomToFit() })
	run(CommandZoomToSelection, func() { m.zoomToSelection() })
	run(CommandZoomIn, func() { m.zoomAbout(m.viewport.Center(), m.transform.Scale*m.cfg.ZoomStep) })
	run(CommandZoomOut, func() { m.zoomAbout(m.viewport.Center(), m.transform.Scale/m.cfg.ZoomStep) })
	run(CommandResetZoom, func() { m.zoomAbout(m.viewport.Center(), 1) })

	run(CommandHandTool, m.ToggleHandTool)
}

// deleteSelection removes every unlocked selected widget. Locked widgets stay
// selected.
func (m *Machine) deleteSelection() {
	ids := m.unlockedSelection()
	for _, id := range ids {
		m.removeWidget(id)
	}
	m.selection.Deselect(ids...)
	m.selection.Prune(m.widgets)
}

// duplicateSelection copies the selected widgets with fresh ids, offset and
// stacked above everything, and selects the copies.
func (m *Machine) duplicateSelection() {
	src := m.selection.SelectedWidgets(m.widgets)
	if len(src) == 0 {
		return
	}
	sortByZ(src)
	top := maxZ(m.widgets)
	off := m.cfg.DuplicateOffset

	ids := make([]string, 0, len(src))
	for i, w := range src {
		w.ID = uuid.NewString()
		w.X += off
		w.Y += off
		w.ZIndex = top + 1 + i
		w.Locked = false
		m.addWidget(w)
		ids = append(ids, w.ID)
	}
	m.selection.Replace(ids...)
}

// nudge moves the unlocked selection by a canvas delta in one batch.
func (m *Machine) nudge(dx, dy float64) {
	ids := m.unlockedSelection()
	if len(ids) == 0 {
		return
	}
	batch := make([]WidgetUpdate, 0, len(ids))
	for _, w := range m.widgetsByID(ids) {
		batch = append(batch, WidgetUpdate{ID: w.ID, Patch: positionPatch(Point{w.X + dx, w.Y + dy})})
	}
	m.applyBatch(batch)
}

// restack moves the unlocked selection above (front) or below every other
// widget, keeping its internal stacking order.
func (m *Machine) restack(front bool) {
	sel := m.widgetsByID(m.unlockedSelection())
	if len(sel) == 0 {
		return
	}
	sortByZ(sel)
	batch := make([]WidgetUpdate, 0, len(sel))
	if front {
		base := maxZ(m.widgets)
		for i, w := range sel {
			batch = append(batch, zPatch(w.ID, base+1+i))
		}
	} else {
		base := minZ(m.widgets)
		n := len(sel)
		for i, w := range sel {
			batch = append(batch, zPatch(w.ID, base-n+i))
		}
	}
	m.applyBatch(batch)
}

func zPatch(id string, z int) WidgetUpdate {
	return WidgetUpdate{ID: id, Patch: WidgetPatch{Fields: PatchZIndex, ZIndex: z}}
}

// sortByZ orders widgets bottom to top, keeping slice order for equal z.
func sortByZ(ws []Widget) {
	slices.SortStableFunc(ws, func(a, b Widget) int { return a.ZIndex - b.ZIndex })
}

func maxZ(ws []Widget) int {
	if len(ws) == 0 {
		return 0
	}
	z := ws[0].ZIndex
	for _, w := range ws[1:] {
		z = max(z, w.ZIndex)
	}
	return z
}

func minZ(ws []Widget) int {
	if len(ws) == 0 {
		return 0
	}
	z := ws[0].ZIndex
	for _, w := range ws[1:] {
		z = min(z, w.ZIndex)
	}
	return z
}

// --- Zoom ---

// fitTarget returns the transform that frames bounds in the viewport.
func (m *Machine) fitTarget(bounds Rect) (CanvasTransform, bool) {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return CanvasTransform{}, false
	}
	t := FitRect(bounds, m.viewport, m.cfg.FitPadding)
	if s := m.cfg.clampScale(t.Scale); s != t.Scale {
		c, vc := bounds.Center(), m.viewport.Center()
		t = CanvasTransform{X: vc.X - c.X*s, Y: vc.Y - c.Y*s, Scale: s}
	}
	return t, true
}

// zoomTo applies a zoom-command target, through the zoom hook when one is
// set.
func (m *Machine) zoomTo(target CanvasTransform) {
	if m.zoomHook != nil {
		m.zoomHook(target)
		return
	}
	m.setTransform(target)
}

// zoomToFit frames every widget. Returns false when there are no widgets or
// no viewport.
func (m *Machine) zoomToFit() bool {
	b, ok := BoundsOf(m.widgets)
	if !ok {
		return false
	}
	t, ok := m.fitTarget(b)
	if !ok {
		return false
	}
	m.zoomTo(t)
	return true
}

// zoomToSelection frames the selected widgets.
func (m *Machine) zoomToSelection() bool {
	b, ok := m.selection.Bounds(m.widgets)
	if !ok {
		return false
	}
	t, ok := m.fitTarget(b)
	if !ok {
		return false
	}
	m.zoomTo(t)
	return true
}
