package easel

// EventType identifies a kind of input event delivered to the state machine.
type EventType uint8

const (
	EventPointerDown EventType = iota // a pointer button was pressed
	EventPointerMove                  // the pointer moved (button held or not)
	EventPointerUp                    // a pointer button was released
	EventKeyDown                      // a key was pressed (or auto-repeated)
	EventKeyUp                        // a key was released
	EventWheel                        // wheel or trackpad scroll
	EventContextMenu                  // the host's context-menu gesture
	EventBlur                         // the input surface lost focus
	EventFocus                        // the input surface gained focus
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventPointerDown:
		return "pointerdown"
	case EventPointerMove:
		return "pointermove"
	case EventPointerUp:
		return "pointerup"
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventWheel:
		return "wheel"
	case EventContextMenu:
		return "contextmenu"
	case EventBlur:
		return "blur"
	case EventFocus:
		return "focus"
	default:
		return "unknown"
	}
}

// EventTarget describes the host element an event was aimed at. Hosts
// without an element tree pass nil.
type EventTarget interface {
	// Parent returns the enclosing element, or nil at the root.
	Parent() EventTarget
	// Editable reports whether the element accepts text input.
	Editable() bool
	// Scrollable reports whether the element can scroll its content.
	Scrollable() bool
	// WidgetBoundary reports whether the element is the root element of a
	// widget's content.
	WidgetBoundary() bool
}

// isEditable reports whether t or one of its ancestors accepts text input.
func isEditable(t EventTarget) bool {
	for ; t != nil; t = t.Parent() {
		if t.Editable() {
			return true
		}
	}
	return false
}

// inScrollableWidgetContent walks from t toward the root and reports whether
// a scrollable element is found before (or at) a widget boundary.
func inScrollableWidgetContent(t EventTarget) bool {
	for ; t != nil; t = t.Parent() {
		if t.Scrollable() {
			return true
		}
		if t.WidgetBoundary() {
			return false
		}
	}
	return false
}

// Event is a single input event. Screen is the host position; Canvas is the
// same position converted through the current CanvasTransform.
type Event struct {
	Type      EventType
	Screen    Point
	Canvas    Point
	Button    MouseButton
	Modifiers KeyModifiers
	// ClickCount is 2 for the press of a double click.
	ClickCount int

	Key    Key
	Repeat bool

	// DeltaX and DeltaY carry the wheel delta in screen pixels.
	DeltaX, DeltaY float64

	Target EventTarget
}

// keyEvent extracts the keyboard part of an event.
func (e Event) keyEvent() KeyEvent {
	return KeyEvent{Key: e.Key, Modifiers: e.Modifiers, Target: e.Target, Repeat: e.Repeat}
}

// Result reports how the state machine handled an event.
type Result struct {
	// Handled is false when the event was ignored and should keep its
	// default host behavior.
	Handled bool
	// Transition is true when Next names the mode to switch to.
	Transition bool
	Next       Mode
	// PreventDefault and StopPropagation mirror the host flags of the same
	// names.
	PreventDefault  bool
	StopPropagation bool
}

// handled is a Result for a consumed event that keeps the current mode.
func handled() Result {
	return Result{Handled: true, PreventDefault: true}
}

// goTo is a Result that consumes the event and switches to next.
func goTo(next Mode) Result {
	return Result{Handled: true, Transition: true, Next: next, PreventDefault: true}
}
