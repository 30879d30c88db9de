package easel

// Host owns the widgets. The engine never edits widgets itself; it asks the
// host through these calls. UpdateWidgets carries every gesture-driven change
// and must be applied as one atomic write.
type Host interface {
	UpdateWidget(id string, patch WidgetPatch)
	UpdateWidgets(batch []WidgetUpdate)
	RemoveWidget(id string)
	AddWidget(w Widget)
}

// NotificationType identifies what an InteractionEvent reports.
type NotificationType uint8

const (
	NotifyModeChange      NotificationType = iota // the interaction mode changed
	NotifySelectionChange                         // the selected ids changed
	NotifyHoverChange                             // the hovered widget changed
	NotifyCursorChange                            // the cursor hint changed
	NotifyTransformChange                         // the canvas transform changed
	NotifyWidgetsUpdate                           // a widget batch was sent to the host
	NotifyWidgetRemove                            // a widget removal was sent to the host
	NotifyWidgetAdd                               // a widget addition was sent to the host
	NotifyCommand                                 // a keyboard command ran
)

// InteractionEvent is a flat record of one engine notification, for
// forwarding to an EventSink. Only the fields relevant to Type are set.
type InteractionEvent struct {
	Type      NotificationType
	Mode      Mode
	PrevMode  Mode
	IDs       []string
	HoverID   string
	Cursor    CursorHint
	Transform CanvasTransform
	Updates   []WidgetUpdate
	Widget    Widget
	Command   Command
}

// EventSink is the interface for optional forwarding of engine
// notifications, e.g. into an ECS world.
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

// --- Handler registry ---

type handler[T any] struct {
	id uint32
	fn func(T)
}

type observerKind uint8

const (
	observeMode observerKind = iota
	observeSelection
	observeHover
	observeCursor
	observeTransform
)

type observerRegistry struct {
	mode      []handler[Mode]
	selection []handler[[]string]
	hover     []handler[string]
	cursor    []handler[CursorHint]
	transform []handler[CanvasTransform]
	nextID    uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id   uint32
	reg  *observerRegistry
	kind observerKind
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case observeMode:
		h.reg.mode = removeHandler(h.reg.mode, h.id)
	case observeSelection:
		h.reg.selection = removeHandler(h.reg.selection, h.id)
	case observeHover:
		h.reg.hover = removeHandler(h.reg.hover, h.id)
	case observeCursor:
		h.reg.cursor = removeHandler(h.reg.cursor, h.id)
	case observeTransform:
		h.reg.transform = removeHandler(h.reg.transform, h.id)
	}
}

func removeHandler[T any](s []handler[T], id uint32) []handler[T] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[T]{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *observerRegistry) add(kind observerKind) CallbackHandle {
	r.nextID++
	return CallbackHandle{id: r.nextID, reg: r, kind: kind}
}

func fire[T any](hs []handler[T], v T) {
	for _, h := range hs {
		h.fn(v)
	}
}

// --- Registration ---

// OnModeChange registers a callback for mode changes.
func (m *Machine) OnModeChange(fn func(Mode)) CallbackHandle {
	h := m.observers.add(observeMode)
	m.observers.mode = append(m.observers.mode, handler[Mode]{id: h.id, fn: fn})
	return h
}

// OnSelectionChange registers a callback receiving the new selected ids.
func (m *Machine) OnSelectionChange(fn func(ids []string)) CallbackHandle {
	h := m.observers.add(observeSelection)
	m.observers.selection = append(m.observers.selection, handler[[]string]{id: h.id, fn: fn})
	return h
}

// OnHoverChange registers a callback receiving the hovered id ("" for none).
func (m *Machine) OnHoverChange(fn func(id string)) CallbackHandle {
	h := m.observers.add(observeHover)
	m.observers.hover = append(m.observers.hover, handler[string]{id: h.id, fn: fn})
	return h
}

// OnCursorChange registers a callback for cursor hint changes.
func (m *Machine) OnCursorChange(fn func(CursorHint)) CallbackHandle {
	h := m.observers.add(observeCursor)
	m.observers.cursor = append(m.observers.cursor, handler[CursorHint]{id: h.id, fn: fn})
	return h
}

// OnCanvasTransform registers a callback for transforms produced by pan and
// zoom.
func (m *Machine) OnCanvasTransform(fn func(CanvasTransform)) CallbackHandle {
	h := m.observers.add(observeTransform)
	m.observers.transform = append(m.observers.transform, handler[CanvasTransform]{id: h.id, fn: fn})
	return h
}

// SetEventSink sets the optional notification bridge.
func (m *Machine) SetEventSink(sink EventSink) {
	m.sink = sink
}

// emitEvent forwards a notification to the sink, if any.
func (m *Machine) emitEvent(ev InteractionEvent) {
	if m.sink != nil {
		m.sink.EmitEvent(ev)
	}
}
