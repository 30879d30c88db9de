package easel

import "github.com/tanema/gween/ease"

// Overlay is a read-only snapshot of the interaction state for drawing
// selection outlines, handles, the area rectangle and snap guides.
type Overlay struct {
	Mode      Mode
	Cursor    CursorHint
	Transform CanvasTransform

	Selected        []string
	SelectionBounds Rect
	HasSelection    bool

	Hovered    string
	HasHovered bool

	AreaRect Rect
	HasArea  bool

	// Snaps holds at most one active snap guide.
	Snaps []SnapTarget

	Handle    Handle // active resize/rotate handle when HasHandle
	HasHandle bool

	EditingID string
	HandTool  bool
}

// Controller is the host-facing facade of the engine. It takes pointer
// positions in screen space, converts them through the current canvas
// transform and feeds the state machine.
type Controller struct {
	machine *Machine
	camera  *Camera
	cfg     Config
	ease    ease.TweenFunc
}

// NewController creates a controller writing widget changes to host.
func NewController(host Host, cfg Config) *Controller {
	c := &Controller{
		machine: NewMachine(host, cfg),
		camera:  NewCamera(Rect{}),
		cfg:     cfg,
		ease:    ease.OutCubic,
	}
	c.machine.zoomHook = c.zoomTo
	c.machine.clampHook = c.camera.clamp
	c.machine.OnCanvasTransform(c.camera.follow)
	return c
}

// Machine returns the underlying state machine for observer registration
// and lower-level access.
func (c *Controller) Machine() *Machine { return c.machine }

// Camera returns the camera used for animated zoom.
func (c *Controller) Camera() *Camera { return c.camera }

// SetZoomEase sets the easing of animated zooms.
func (c *Controller) SetZoomEase(fn ease.TweenFunc) {
	if fn != nil {
		c.ease = fn
	}
}

// --- Snapshots ---

// SetWidgets refreshes the widget snapshot.
func (c *Controller) SetWidgets(widgets []Widget) { c.machine.SetWidgets(widgets) }

// SetTransform refreshes the transform snapshot and stops any zoom
// animation.
func (c *Controller) SetTransform(t CanvasTransform) {
	c.machine.SetTransform(t)
	c.camera.Set(c.machine.Transform())
}

// SetCanvasBounds keeps the canvas point at the viewport center inside
// bounds for every pan and zoom, moving the current transform if needed.
func (c *Controller) SetCanvasBounds(bounds Rect) {
	c.camera.SetBounds(bounds)
	c.machine.setTransform(c.machine.Transform())
}

// ClearCanvasBounds lets the canvas pan freely again.
func (c *Controller) ClearCanvasBounds() { c.camera.ClearBounds() }

// SetViewport sets the screen rectangle of the canvas.
func (c *Controller) SetViewport(r Rect) {
	c.machine.SetViewport(r)
	c.camera.Viewport = r
}

// --- Events ---

// Dispatch converts ev.Screen into canvas space and processes the event.
// Use it for events carrying an EventTarget.
func (c *Controller) Dispatch(ev Event) Result {
	switch ev.Type {
	case EventPointerDown, EventWheel:
		c.stopAnimation()
	}
	ev.Canvas = ScreenToCanvas(ev.Screen, c.machine.Transform())
	return c.machine.ProcessEvent(ev)
}

// PointerDown reports a button press. clicks is 2 for the press of a double
// click.
func (c *Controller) PointerDown(screen Point, button MouseButton, mods KeyModifiers, clicks int) Result {
	return c.Dispatch(Event{Type: EventPointerDown, Screen: screen, Button: button, Modifiers: mods, ClickCount: clicks})
}

// PointerMove reports pointer movement.
func (c *Controller) PointerMove(screen Point, mods KeyModifiers) Result {
	return c.Dispatch(Event{Type: EventPointerMove, Screen: screen, Modifiers: mods})
}

// PointerUp reports a button release.
func (c *Controller) PointerUp(screen Point, button MouseButton, mods KeyModifiers) Result {
	return c.Dispatch(Event{Type: EventPointerUp, Screen: screen, Button: button, Modifiers: mods})
}

// KeyDown reports a key press. The key name is normalized.
func (c *Controller) KeyDown(key string, mods KeyModifiers, repeat bool) Result {
	return c.Dispatch(Event{Type: EventKeyDown, Key: NormalizeKey(key), Modifiers: mods, Repeat: repeat})
}

// KeyUp reports a key release.
func (c *Controller) KeyUp(key string, mods KeyModifiers) Result {
	return c.Dispatch(Event{Type: EventKeyUp, Key: NormalizeKey(key), Modifiers: mods})
}

// Wheel reports a wheel or trackpad scroll at the screen point.
func (c *Controller) Wheel(screen Point, dx, dy float64, mods KeyModifiers) Result {
	return c.Dispatch(Event{Type: EventWheel, Screen: screen, DeltaX: dx, DeltaY: dy, Modifiers: mods})
}

// ContextMenu reports a context-menu request.
func (c *Controller) ContextMenu(screen Point) Result {
	return c.Dispatch(Event{Type: EventContextMenu, Screen: screen})
}

// Blur reports that the canvas lost focus.
func (c *Controller) Blur() Result { return c.Dispatch(Event{Type: EventBlur}) }

// Focus reports that the canvas regained focus.
func (c *Controller) Focus() Result { return c.Dispatch(Event{Type: EventFocus}) }

// --- Read-outs ---

// Mode returns the active interaction mode.
func (c *Controller) Mode() Mode { return c.machine.Mode() }

// Selection returns the selected ids.
func (c *Controller) Selection() []string { return c.machine.selection.Selected() }

// Hovered returns the hovered widget id.
func (c *Controller) Hovered() (string, bool) { return c.machine.selection.Hovered() }

// SelectionRect returns the live area-selection rectangle in canvas space.
func (c *Controller) SelectionRect() (Rect, bool) { return c.machine.selection.AreaRect() }

// SnapIndicators returns the active snap guide, if any.
func (c *Controller) SnapIndicators() []SnapTarget { return c.machine.drag.SnapIndicators() }

// Cursor returns the cursor hint.
func (c *Controller) Cursor() CursorHint { return c.machine.Cursor() }

// Transform returns the canvas transform.
func (c *Controller) Transform() CanvasTransform { return c.machine.Transform() }

// ScreenToCanvas converts a screen point through the current transform.
func (c *Controller) ScreenToCanvas(p Point) Point {
	return ScreenToCanvas(p, c.machine.Transform())
}

// CanvasToScreen converts a canvas point through the current transform.
func (c *Controller) CanvasToScreen(p Point) Point {
	return CanvasToScreen(p, c.machine.Transform())
}

// Overlay returns a snapshot of everything an overlay renderer needs.
func (c *Controller) Overlay() Overlay {
	m := c.machine
	o := Overlay{
		Mode:      m.mode,
		Cursor:    m.cursor,
		Transform: m.transform,
		Selected:  m.selection.Selected(),
		Snaps:     m.drag.SnapIndicators(),
		EditingID: m.editing,
		HandTool:  m.pan.handTool,
	}
	o.SelectionBounds, o.HasSelection = m.selection.Bounds(m.widgets)
	o.Hovered, o.HasHovered = m.selection.Hovered()
	o.AreaRect, o.HasArea = m.selection.AreaRect()
	o.Handle, o.HasHandle = m.TransformHandle()
	return o
}

// --- Conveniences ---

// ZoomToFit frames every widget in the viewport. Returns false when there
// is nothing to frame or no viewport.
func (c *Controller) ZoomToFit() bool {
	ok := c.machine.zoomToFit()
	c.machine.flushNotifications()
	return ok
}

// ZoomToSelection frames the selected widgets.
func (c *Controller) ZoomToSelection() bool {
	ok := c.machine.zoomToSelection()
	c.machine.flushNotifications()
	return ok
}

// ZoomAt zooms to scale keeping the screen point anchor fixed.
func (c *Controller) ZoomAt(anchor Point, scale float64) {
	c.stopAnimation()
	c.machine.zoomAbout(anchor, scale)
}

// HandleAt reports which transform handle of the selection bounds lies under
// the screen point. size is the handle size in screen pixels.
func (c *Controller) HandleAt(screen Point, size float64) (Handle, bool) {
	b, ok := c.machine.selection.Bounds(c.machine.widgets)
	if !ok {
		return 0, false
	}
	t := c.machine.Transform()
	return HandleAt(screen, RectToScreen(b, t), size)
}

// StartTransform begins a resize or rotate from the screen point.
func (c *Controller) StartTransform(h Handle, screen Point) bool {
	c.stopAnimation()
	return c.machine.StartTransform(h, c.ScreenToCanvas(screen))
}

// EndTransform finalizes a resize or rotate.
func (c *Controller) EndTransform() bool { return c.machine.EndTransform() }

// ToggleHandTool flips the hand tool.
func (c *Controller) ToggleHandTool() { c.machine.ToggleHandTool() }

// StartTextEditing enters text editing on a widget.
func (c *Controller) StartTextEditing(id string) bool { return c.machine.StartTextEditing(id) }

// Select replaces the selection.
func (c *Controller) Select(ids ...string) { c.machine.Select(ids...) }

// Cancel reverts any in-flight gesture and returns to idle.
func (c *Controller) Cancel() { c.machine.Cancel() }

// Update advances the zoom animation by dt seconds. Call it once per frame.
func (c *Controller) Update(dt float32) {
	if c.camera.Update(dt) {
		c.machine.setTransform(c.camera.Transform())
	}
}

// zoomTo animates to target when ZoomDuration is positive, otherwise jumps.
func (c *Controller) zoomTo(target CanvasTransform) {
	if c.cfg.ZoomDuration <= 0 {
		c.camera.Set(target)
		c.machine.setTransform(target)
		return
	}
	c.camera.Set(c.machine.Transform())
	c.camera.AnimateTo(target, c.cfg.ZoomDuration, c.ease)
}

func (c *Controller) stopAnimation() {
	if c.camera.Animating() {
		c.camera.Set(c.machine.Transform())
	}
}
