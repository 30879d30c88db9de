package easel

// stateTable builds the per-mode lifecycle table. It is built per machine
// rather than as a package variable because the handlers refer back to
// Machine methods that read the table.
func stateTable() [modeCount]stateDef {
	var t [modeCount]stateDef
	t[ModeIdle] = stateDef{enter: idleEnter, handle: idleHandle}
	t[ModeAreaSelect] = stateDef{enter: areaEnter, exit: areaExit, handle: areaHandle}
	t[ModeDragging] = stateDef{enter: dragEnter, exit: dragExit, handle: dragHandle}
	t[ModePanning] = stateDef{enter: panEnter, exit: panExit, handle: panHandle}
	t[ModeResizing] = stateDef{enter: transformEnter, exit: transformExit, handle: resizeHandle}
	t[ModeRotating] = stateDef{enter: transformEnter, exit: transformExit, handle: rotateHandle}
	t[ModeTextEditing] = stateDef{enter: textEnter, exit: textExit, handle: textHandle}
	return t
}

// isKey reports whether ev is a press of k.
func isKey(ev Event, k Key) bool {
	return NormalizeKey(string(ev.Key)) == k
}

// cancelTo returns a scoped listener that leaves for next on Escape or blur.
// Leaving runs the state's exit, which reverts the gesture.
func cancelTo(next Mode) func(m *Machine, ev Event) (Result, bool) {
	return func(m *Machine, ev Event) (Result, bool) {
		if ev.Type == EventKeyDown && !isKey(ev, KeyEscape) {
			return Result{}, false
		}
		res := goTo(next)
		res.PreventDefault = ev.Type == EventKeyDown
		return res, true
	}
}

// --- idle ---

func idleEnter(m *Machine, _ Event) {
	m.setCursor(m.idleCursor())
}

// idleCursor is the cursor shown while idle: grab with the hand tool or
// space held, move over an unlocked widget, default otherwise.
func (m *Machine) idleCursor() CursorHint {
	if m.pan.handTool || m.pan.spaceHeld {
		return CursorGrab
	}
	if id, ok := m.selection.Hovered(); ok {
		if w, ok := m.Widget(id); ok && !w.Locked {
			return CursorMove
		}
	}
	return CursorDefault
}

func idleHandle(m *Machine, ev Event) Result {
	switch ev.Type {
	case EventPointerMove:
		m.selection.UpdateHover(ev.Canvas, m.widgets)
		m.setCursor(m.idleCursor())
		return Result{Handled: true}
	case EventPointerDown:
		return idlePointerDown(m, ev)
	case EventKeyDown:
		if isEditable(ev.Target) {
			return Result{}
		}
		if isKey(ev, KeySpace) && ev.Modifiers == 0 {
			m.setCursor(CursorGrab)
			return handled()
		}
		if m.keys.Dispatch(ev.keyEvent()) {
			return handled()
		}
	case EventKeyUp:
		if isKey(ev, KeySpace) {
			m.setCursor(m.idleCursor())
			return Result{Handled: true}
		}
	case EventBlur:
		m.selection.ClearHover()
		m.setCursor(m.idleCursor())
	}
	return Result{}
}

func idlePointerDown(m *Machine, ev Event) Result {
	switch {
	case ev.Button == MouseButtonRight:
		return Result{}
	case ev.Button == MouseButtonMiddle, m.pan.spaceHeld, m.pan.handTool:
		return goTo(ModePanning)
	}

	hit, ok := TopmostAt(ev.Canvas, m.widgets)
	if !ok {
		m.selection.Click(nil, ev.Modifiers)
		m.areaAdditive = ev.Modifiers.Shift() || ev.Modifiers.CtrlOrMeta()
		m.selection.StartAreaSelection(ev.Canvas)
		return goTo(ModeAreaSelect)
	}

	if ev.ClickCount >= 2 && !hit.Locked && ev.Modifiers == 0 {
		m.selection.Replace(hit.ID)
		m.editing = hit.ID
		return goTo(ModeTextEditing)
	}

	m.selection.Click(&hit, ev.Modifiers)
	if hit.Locked || !m.selection.IsSelected(hit.ID) {
		return Result{Handled: true}
	}
	ids := m.unlockedSelection()
	if len(ids) == 0 {
		return Result{Handled: true}
	}
	m.drag.StartDrag(ids, ev.Canvas, m.widgets)
	return goTo(ModeDragging)
}

// --- areaSelect ---

func areaEnter(m *Machine, _ Event) {
	m.setCursor(CursorCrosshair)
	m.listen(EventKeyDown, cancelTo(ModeIdle))
	m.listen(EventBlur, cancelTo(ModeIdle))
}

func areaExit(m *Machine) {
	m.selection.CancelAreaSelection()
}

func areaHandle(m *Machine, ev Event) Result {
	switch ev.Type {
	case EventPointerMove:
		m.selection.UpdateAreaSelection(ev.Canvas)
		m.selection.UpdateHover(ev.Canvas, m.widgets)
		return Result{Handled: true}
	case EventPointerUp:
		m.selection.UpdateAreaSelection(ev.Canvas)
		m.selection.EndAreaSelection(m.widgets, m.areaAdditive)
		return goTo(ModeIdle)
	}
	return Result{}
}

// --- dragging ---

func dragEnter(m *Machine, _ Event) {
	m.setCursor(CursorGrabbing)
	m.listen(EventKeyDown, cancelTo(ModeIdle))
	m.listen(EventBlur, cancelTo(ModeIdle))
}

// dragExit cancels a session that was not ended by pointer up.
func dragExit(m *Machine) {
	if m.drag.Active() {
		m.drag.CancelDrag()
	}
}

func dragHandle(m *Machine, ev Event) Result {
	switch ev.Type {
	case EventPointerMove:
		m.drag.UpdateDrag(ev.Canvas, ev.Modifiers)
		return Result{Handled: true}
	case EventPointerUp:
		m.drag.EndDrag()
		return goTo(ModeIdle)
	}
	return Result{}
}

// --- panning ---

func panEnter(m *Machine, ev Event) {
	m.pan.returnTo = m.prev
	m.pan.grabbing = ev.Type == EventPointerDown
	m.pan.last = ev.Screen
	if m.pan.grabbing {
		m.setCursor(CursorGrabbing)
	} else {
		m.setCursor(CursorGrab)
	}

	m.listen(EventKeyUp, func(m *Machine, ev Event) (Result, bool) {
		if !isKey(ev, KeySpace) || m.pan.handTool {
			return Result{}, false
		}
		return goTo(m.pan.returnTo), true
	})
	m.listen(EventBlur, func(m *Machine, _ Event) (Result, bool) {
		return goTo(m.pan.returnTo), true
	})
}

func panExit(m *Machine) {
	m.pan.grabbing = false
}

func panHandle(m *Machine, ev Event) Result {
	switch ev.Type {
	case EventPointerDown:
		m.pan.grabbing = true
		m.pan.last = ev.Screen
		m.setCursor(CursorGrabbing)
		return Result{Handled: true}
	case EventPointerMove:
		if m.pan.grabbing {
			d := ev.Screen.Sub(m.pan.last)
			m.pan.last = ev.Screen
			m.setTransform(m.transform.Pan(d.X, d.Y))
		}
		return Result{Handled: true}
	case EventPointerUp:
		if m.pan.handTool {
			m.pan.grabbing = false
			m.setCursor(CursorGrab)
			return Result{Handled: true}
		}
		return goTo(m.pan.returnTo)
	case EventKeyDown:
		if isKey(ev, KeyEscape) {
			m.pan.handTool = false
			return goTo(m.pan.returnTo)
		}
		if isKey(ev, "h") && ev.Modifiers == 0 && m.pan.handTool {
			m.pan.handTool = false
			return goTo(m.pan.returnTo)
		}
	}
	return Result{}
}

// --- resizing / rotating ---

func transformEnter(m *Machine, _ Event) {
	if m.gesture != nil {
		m.setCursor(cursorForHandle(m.gesture.handle))
	}
	m.listen(EventKeyDown, cancelTo(ModeIdle))
	m.listen(EventBlur, cancelTo(ModeIdle))
}

// transformExit reverts a gesture that was not ended by pointer up.
func transformExit(m *Machine) {
	if m.gesture != nil {
		m.applyBatch(m.gesture.revert())
		m.gesture = nil
	}
}

func resizeHandle(m *Machine, ev Event) Result {
	switch ev.Type {
	case EventPointerMove:
		m.applyBatch(m.gesture.resize(ev.Canvas, ev.Modifiers, m.cfg.MinWidgetSize))
		return Result{Handled: true}
	case EventPointerUp:
		m.gesture = nil
		return goTo(ModeIdle)
	}
	return Result{}
}

func rotateHandle(m *Machine, ev Event) Result {
	switch ev.Type {
	case EventPointerMove:
		m.applyBatch(m.gesture.rotate(ev.Canvas, ev.Modifiers, m.cfg.RotateSnap))
		return Result{Handled: true}
	case EventPointerUp:
		m.gesture = nil
		return goTo(ModeIdle)
	}
	return Result{}
}

// --- textEditing ---

func textEnter(m *Machine, _ Event) {
	m.setCursor(CursorText)
}

func textExit(m *Machine) {
	m.editing = ""
}

// textHandle leaves keyboard and pointer input inside the edited widget to
// the host. Escape or a press outside the widget ends editing; the press is
// then handled as if idle.
func textHandle(m *Machine, ev Event) Result {
	switch ev.Type {
	case EventKeyDown:
		if isKey(ev, KeyEscape) {
			return goTo(ModeIdle)
		}
	case EventPointerDown:
		if w, ok := m.Widget(m.editing); ok && w.Rect().Contains(ev.Canvas) {
			return Result{}
		}
		m.transition(ModeIdle, ev)
		return idleHandle(m, ev)
	}
	return Result{}
}
