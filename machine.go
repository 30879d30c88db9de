package easel

import (
	"math"
	"time"
)

// stateDef binds the three lifecycle functions of one mode. enter and exit
// may be nil.
type stateDef struct {
	enter  func(m *Machine, ev Event)
	exit   func(m *Machine)
	handle func(m *Machine, ev Event) Result
}

// scopedListener is registered by a state's enter and removed automatically
// when the state exits, whatever the exit path.
type scopedListener struct {
	id  uint32
	typ EventType
	fn  func(m *Machine, ev Event) (Result, bool)
}

// panState is the shared context of the panning mode.
type panState struct {
	grabbing  bool
	last      Point // screen space
	spaceHeld bool
	handTool  bool
	returnTo  Mode
}

// Machine is the interaction state machine. It owns the selection, drag
// engine and keyboard dispatcher, keeps read-only snapshots of the host's
// widgets and canvas transform, and reports every change through Host and
// the registered observers.
//
// Machine is not safe for concurrent use; feed it events from one goroutine.
type Machine struct {
	cfg  Config
	host Host

	mode   Mode
	prev   Mode
	states [modeCount]stateDef

	scope   []scopedListener
	scopeID uint32

	widgets   []Widget
	index     map[string]int
	transform CanvasTransform
	viewport  Rect

	selection    *SelectionManager
	drag         *DragEngine
	keys         *KeyboardDispatcher
	gesture      *transformSession
	areaAdditive bool
	editing      string
	pan          panState
	cursor       CursorHint

	// zoomHook, when set, receives zoom-command targets instead of the
	// transform being applied immediately.
	zoomHook func(target CanvasTransform)
	// clampHook, when set, limits every transform before it is stored.
	clampHook func(t CanvasTransform) CanvasTransform

	observers   observerRegistry
	sink        EventSink
	seenSel     uint64
	seenHover   uint64
	diagnostics *diagnostics
}

// NewMachine creates a machine in idle mode. A nil host discards all
// updates.
func NewMachine(host Host, cfg Config) *Machine {
	if host == nil {
		host = nopHost{}
	}
	m := &Machine{
		cfg:         cfg,
		host:        host,
		index:       make(map[string]int),
		transform:   IdentityTransform,
		selection:   NewSelectionManager(),
		keys:        NewKeyboardDispatcher(nil),
		diagnostics: newDiagnostics(),
	}
	m.states = stateTable()
	m.drag = NewDragEngine(cfg, m.applyBatch)
	bindCommands(m)
	return m
}

// --- Snapshots ---

// SetWidgets replaces the widget snapshot. Selected and hovered ids that
// disappeared are pruned.
func (m *Machine) SetWidgets(widgets []Widget) {
	m.widgets = append(m.widgets[:0:0], widgets...)
	m.reindex()
	m.selection.Prune(m.widgets)
	if m.editing != "" {
		if _, ok := m.index[m.editing]; !ok && m.mode == ModeTextEditing {
			m.transition(ModeIdle, Event{})
		}
	}
	m.flushNotifications()
}

func (m *Machine) reindex() {
	clear(m.index)
	for i, w := range m.widgets {
		m.index[w.ID] = i
	}
}

// Widgets returns a copy of the widget snapshot.
func (m *Machine) Widgets() []Widget {
	return append([]Widget(nil), m.widgets...)
}

// Widget returns the snapshot of one widget.
func (m *Machine) Widget(id string) (Widget, bool) {
	i, ok := m.index[id]
	if !ok {
		return Widget{}, false
	}
	return m.widgets[i], true
}

// SetTransform replaces the canvas transform snapshot. The scale is clamped
// to the configured range; a non-positive scale is kept as "not ready".
func (m *Machine) SetTransform(t CanvasTransform) {
	if t.Scale > 0 {
		t.Scale = m.cfg.clampScale(t.Scale)
	}
	if m.clampHook != nil {
		t = m.clampHook(t)
	}
	m.transform = t
}

// Transform returns the canvas transform snapshot.
func (m *Machine) Transform() CanvasTransform { return m.transform }

// SetViewport sets the screen-space rectangle of the canvas surface, used by
// zoom commands.
func (m *Machine) SetViewport(r Rect) { m.viewport = r }

// Viewport returns the screen-space canvas rectangle.
func (m *Machine) Viewport() Rect { return m.viewport }

// --- Read-outs ---

// Mode returns the active mode.
func (m *Machine) Mode() Mode { return m.mode }

// Selection returns the selection manager. Mutating it directly bypasses
// change notifications until the next event.
func (m *Machine) Selection() *SelectionManager { return m.selection }

// Drag returns the drag engine.
func (m *Machine) Drag() *DragEngine { return m.drag }

// Keyboard returns the keyboard dispatcher, e.g. to rebind commands.
func (m *Machine) Keyboard() *KeyboardDispatcher { return m.keys }

// Cursor returns the current cursor hint.
func (m *Machine) Cursor() CursorHint { return m.cursor }

// HandToolActive reports whether the hand tool is toggled on.
func (m *Machine) HandToolActive() bool { return m.pan.handTool }

// EditingID returns the widget being text-edited, if any.
func (m *Machine) EditingID() (string, bool) {
	return m.editing, m.editing != ""
}

// TransformHandle returns the handle of the active resize or rotate gesture.
func (m *Machine) TransformHandle() (Handle, bool) {
	if m.gesture == nil {
		return 0, false
	}
	return m.gesture.handle, true
}

// --- Event processing ---

// ProcessEvent runs one event through the active state. Events are handled
// synchronously and strictly in call order. Event types the active state
// does not recognize are ignored.
func (m *Machine) ProcessEvent(ev Event) Result {
	var t0 time.Time
	if m.diagnostics.debug {
		t0 = time.Now()
	}
	from := m.mode

	m.track(ev)
	res, consumed := m.runScoped(ev)
	if !consumed {
		switch {
		case ev.Type == EventContextMenu:
			res = handled()
		case ev.Type == EventWheel && m.mode != ModeTextEditing:
			res = m.handleWheel(ev)
		default:
			res = m.states[m.mode].handle(m, ev)
		}
	}
	if res.Transition {
		m.transition(res.Next, ev)
	}
	m.flushNotifications()

	if m.diagnostics.debug {
		m.diagnostics.event(ev.Type, from, m.mode, time.Since(t0))
	}
	return res
}

// track maintains keyboard and focus bookkeeping shared by every state.
func (m *Machine) track(ev Event) {
	switch ev.Type {
	case EventKeyDown:
		if isEditable(ev.Target) {
			return
		}
		m.keys.Observe(ev.keyEvent())
		if NormalizeKey(string(ev.Key)) == KeySpace {
			m.pan.spaceHeld = true
		}
	case EventKeyUp:
		m.keys.KeyUp(ev.keyEvent())
		if NormalizeKey(string(ev.Key)) == KeySpace {
			m.pan.spaceHeld = false
		}
	case EventBlur, EventFocus:
		m.keys.Reset()
		m.pan.spaceHeld = false
	}
}

// listen registers a listener scoped to the current state.
func (m *Machine) listen(typ EventType, fn func(m *Machine, ev Event) (Result, bool)) {
	m.scopeID++
	m.scope = append(m.scope, scopedListener{id: m.scopeID, typ: typ, fn: fn})
}

// runScoped offers ev to the current state's scoped listeners. The first
// listener that consumes it wins.
func (m *Machine) runScoped(ev Event) (Result, bool) {
	if len(m.scope) == 0 {
		return Result{}, false
	}
	listeners := append([]scopedListener(nil), m.scope...)
	for _, l := range listeners {
		if l.typ != ev.Type {
			continue
		}
		if res, ok := l.fn(m, ev); ok {
			return res, true
		}
	}
	return Result{}, false
}

// transition exits the current state, drops its scoped listeners and enters
// next. Switching to the active mode is a no-op.
func (m *Machine) transition(next Mode, ev Event) {
	if next == m.mode || next >= modeCount {
		return
	}
	old := m.mode
	if def := m.states[old]; def.exit != nil {
		def.exit(m)
	}
	m.scope = m.scope[:0]

	m.prev = old
	m.mode = next
	if def := m.states[next]; def.enter != nil {
		def.enter(m, ev)
	}

	fire(m.observers.mode, next)
	m.emitEvent(InteractionEvent{Type: NotifyModeChange, Mode: next, PrevMode: old})
}

// flushNotifications reports selection and hover changes made since the last
// flush.
func (m *Machine) flushNotifications() {
	if v := m.selection.selVersion; v != m.seenSel {
		m.seenSel = v
		ids := m.selection.Selected()
		fire(m.observers.selection, ids)
		m.emitEvent(InteractionEvent{Type: NotifySelectionChange, IDs: ids})
	}
	if v := m.selection.hoverVersion; v != m.seenHover {
		m.seenHover = v
		id, _ := m.selection.Hovered()
		fire(m.observers.hover, id)
		m.emitEvent(InteractionEvent{Type: NotifyHoverChange, HoverID: id})
	}
}

// setCursor updates the cursor hint and notifies on change.
func (m *Machine) setCursor(c CursorHint) {
	if c == m.cursor {
		return
	}
	m.cursor = c
	fire(m.observers.cursor, c)
	m.emitEvent(InteractionEvent{Type: NotifyCursorChange, Cursor: c})
}

// setTransform stores a transform produced by pan or zoom and notifies the
// host.
func (m *Machine) setTransform(t CanvasTransform) {
	if m.clampHook != nil {
		t = m.clampHook(t)
	}
	if t == m.transform {
		return
	}
	m.transform = t
	fire(m.observers.transform, t)
	m.emitEvent(InteractionEvent{Type: NotifyTransformChange, Transform: t})
}

// --- Host writes ---

// applyBatch drops updates for unknown widgets, mirrors the rest into the
// snapshot and sends them to the host as one call.
func (m *Machine) applyBatch(batch []WidgetUpdate) {
	valid := make([]WidgetUpdate, 0, len(batch))
	for _, u := range batch {
		i, ok := m.index[u.ID]
		if !ok {
			m.diagnostics.warnf("dropping update for unknown widget %q", u.ID)
			continue
		}
		m.widgets[i] = u.Patch.Apply(m.widgets[i])
		valid = append(valid, u)
	}
	if len(valid) == 0 {
		return
	}
	m.diagnostics.stats.batches++
	m.host.UpdateWidgets(valid)
	m.emitEvent(InteractionEvent{Type: NotifyWidgetsUpdate, Updates: valid})
}

// updateWidget sends a single-widget patch.
func (m *Machine) updateWidget(id string, patch WidgetPatch) {
	i, ok := m.index[id]
	if !ok {
		m.diagnostics.warnf("dropping update for unknown widget %q", id)
		return
	}
	m.widgets[i] = patch.Apply(m.widgets[i])
	m.host.UpdateWidget(id, patch)
	m.emitEvent(InteractionEvent{Type: NotifyWidgetsUpdate, Updates: []WidgetUpdate{{ID: id, Patch: patch}}})
}

// removeWidget asks the host to delete a widget and drops it from the
// snapshot.
func (m *Machine) removeWidget(id string) {
	i, ok := m.index[id]
	if !ok {
		return
	}
	w := m.widgets[i]
	m.widgets = append(m.widgets[:i], m.widgets[i+1:]...)
	m.reindex()
	m.host.RemoveWidget(id)
	m.emitEvent(InteractionEvent{Type: NotifyWidgetRemove, Widget: w, IDs: []string{id}})
}

// addWidget asks the host to create a widget and adds it to the snapshot.
func (m *Machine) addWidget(w Widget) {
	if _, dup := m.index[w.ID]; dup {
		m.diagnostics.warnf("ignoring add of duplicate widget %q", w.ID)
		return
	}
	m.widgets = append(m.widgets, w)
	m.index[w.ID] = len(m.widgets) - 1
	m.host.AddWidget(w)
	m.emitEvent(InteractionEvent{Type: NotifyWidgetAdd, Widget: w, IDs: []string{w.ID}})
}

// unlockedSelection returns the selected ids whose widgets are not locked,
// in selection order.
func (m *Machine) unlockedSelection() []string {
	var ids []string
	for _, id := range m.selection.Selected() {
		if w, ok := m.Widget(id); ok && !w.Locked {
			ids = append(ids, id)
		}
	}
	return ids
}

// selectedWidgets returns the snapshots of the given ids that exist.
func (m *Machine) widgetsByID(ids []string) []Widget {
	out := make([]Widget, 0, len(ids))
	for _, id := range ids {
		if w, ok := m.Widget(id); ok {
			out = append(out, w)
		}
	}
	return out
}

// --- Wheel ---

// handleWheel zooms about the pointer with a zoom modifier, otherwise pans.
// Wheel events over scrollable widget content are left to the host.
func (m *Machine) handleWheel(ev Event) Result {
	if ev.Modifiers.CtrlOrMeta() {
		factor := math.Exp(-ev.DeltaY * m.cfg.WheelZoomSpeed)
		m.zoomAbout(ev.Screen, m.transform.Scale*factor)
		return Result{Handled: true, PreventDefault: true, StopPropagation: true}
	}
	if inScrollableWidgetContent(ev.Target) {
		return Result{}
	}
	dx, dy := ev.DeltaX, ev.DeltaY
	if ev.Modifiers.Shift() && dx == 0 {
		dx, dy = dy, 0
	}
	speed := m.cfg.WheelPanSpeed
	m.setTransform(m.transform.Pan(-dx*speed, -dy*speed))
	return Result{Handled: true, PreventDefault: true, StopPropagation: true}
}

// zoomAbout rescales the canvas keeping the screen point anchor fixed.
func (m *Machine) zoomAbout(anchor Point, scale float64) {
	m.setTransform(ZoomToPoint(anchor, m.cfg.clampScale(scale), m.transform))
}

// --- Explicit gestures ---

// StartTransform begins a resize (or rotate, for HandleRotate) of the
// unlocked selected widgets from the canvas point start. It bypasses hit
// testing. Returns false unless idle with something to transform.
func (m *Machine) StartTransform(h Handle, start Point) bool {
	if m.mode != ModeIdle {
		return false
	}
	g, ok := newTransformSession(h, start, m.widgetsByID(m.unlockedSelection()))
	if !ok {
		return false
	}
	m.gesture = g
	next := ModeResizing
	if h.IsRotate() {
		next = ModeRotating
	}
	m.transition(next, Event{Canvas: start})
	m.flushNotifications()
	return true
}

// EndTransform finalizes an active resize or rotate. No-op without one.
func (m *Machine) EndTransform() bool {
	if m.gesture == nil || (m.mode != ModeResizing && m.mode != ModeRotating) {
		return false
	}
	m.gesture = nil
	m.transition(ModeIdle, Event{})
	m.flushNotifications()
	return true
}

// EndDrag finalizes an active drag. No-op without one.
func (m *Machine) EndDrag() bool {
	if m.mode != ModeDragging || !m.drag.EndDrag() {
		return false
	}
	m.transition(ModeIdle, Event{})
	m.flushNotifications()
	return true
}

// Cancel reverts any in-flight gesture and returns to idle.
func (m *Machine) Cancel() {
	m.transition(ModeIdle, Event{})
	m.flushNotifications()
}

// SetHandTool turns the hand tool on or off. Turning it on from idle enters
// panning; turning it off leaves panning.
func (m *Machine) SetHandTool(on bool) {
	m.pan.handTool = on
	switch {
	case on && m.mode == ModeIdle:
		m.transition(ModePanning, Event{})
	case !on && m.mode == ModePanning:
		m.transition(m.pan.returnTo, Event{})
	}
	if m.mode == ModeIdle {
		m.setCursor(m.idleCursor())
	}
	m.flushNotifications()
}

// ToggleHandTool flips the hand tool.
func (m *Machine) ToggleHandTool() {
	m.SetHandTool(!m.pan.handTool)
}

// StartTextEditing enters text editing for an unlocked widget. Returns false
// unless idle and the widget exists and is unlocked.
func (m *Machine) StartTextEditing(id string) bool {
	w, ok := m.Widget(id)
	if !ok || w.Locked || m.mode != ModeIdle {
		return false
	}
	m.selection.Replace(id)
	m.editing = id
	m.transition(ModeTextEditing, Event{})
	m.flushNotifications()
	return true
}

// StopTextEditing leaves text editing.
func (m *Machine) StopTextEditing() {
	if m.mode == ModeTextEditing {
		m.transition(ModeIdle, Event{})
		m.flushNotifications()
	}
}

// Select replaces the selection with ids that exist in the snapshot.
func (m *Machine) Select(ids ...string) {
	live := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := m.index[id]; ok {
			live = append(live, id)
		}
	}
	m.selection.Replace(live...)
	m.flushNotifications()
}

// RunCommand executes a keyboard command as if its shortcut was pressed.
// Returns false when the command has no handler.
func (m *Machine) RunCommand(cmd Command) bool {
	fn, ok := m.keys.handlers[cmd]
	if !ok {
		return false
	}
	fn(KeyEvent{})
	m.flushNotifications()
	return true
}

// nopHost discards every write.
type nopHost struct{}

func (nopHost) UpdateWidget(string, WidgetPatch) {}
func (nopHost) UpdateWidgets([]WidgetUpdate)     {}
func (nopHost) RemoveWidget(string)              {}
func (nopHost) AddWidget(Widget)                 {}
