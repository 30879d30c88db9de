package easel

import "math"

// dragSession is the state of one drag gesture. It exists only while a drag
// is active.
type dragSession struct {
	ids     []string
	start   Point
	current Point
	initial map[string]Point
	targets []SnapTarget
	delta   Point

	activeSnap SnapTarget
	hasSnap    bool
}

// DragEngine moves a set of widgets together, with axis constraint and
// snapping. All position changes of a gesture are emitted as one batch per
// update.
type DragEngine struct {
	cfg     Config
	session *dragSession

	onUpdate func([]WidgetUpdate)
	onEnd    func(ids []string, delta Point)
}

// NewDragEngine creates a drag engine that reports position batches to
// onUpdate.
func NewDragEngine(cfg Config, onUpdate func([]WidgetUpdate)) *DragEngine {
	return &DragEngine{cfg: cfg, onUpdate: onUpdate}
}

// OnEnd registers a callback invoked when a drag ends normally (not when it
// is cancelled).
func (d *DragEngine) OnEnd(fn func(ids []string, delta Point)) {
	d.onEnd = fn
}

// Active reports whether a drag session is open.
func (d *DragEngine) Active() bool { return d.session != nil }

// DraggedIDs returns the ids being dragged.
func (d *DragEngine) DraggedIDs() []string {
	if d.session == nil {
		return nil
	}
	out := make([]string, len(d.session.ids))
	copy(out, d.session.ids)
	return out
}

// Delta returns the last applied movement.
func (d *DragEngine) Delta() Point {
	if d.session == nil {
		return Point{}
	}
	return d.session.delta
}

// SnapTargets returns the widget snap targets generated for the current
// session. Grid lines are evaluated on demand and not listed.
func (d *DragEngine) SnapTargets() []SnapTarget {
	if d.session == nil {
		return nil
	}
	return d.session.targets
}

// SnapIndicators returns the active snap target, if any, for overlay
// rendering.
func (d *DragEngine) SnapIndicators() []SnapTarget {
	if d.session == nil || !d.session.hasSnap {
		return nil
	}
	return []SnapTarget{d.session.activeSnap}
}

// StartDrag opens a session over ids at the canvas point start. Ids missing
// from widgets are skipped. Does nothing and returns false if a session is
// already active. An empty id list opens a session that moves nothing.
func (d *DragEngine) StartDrag(ids []string, start Point, widgets []Widget) bool {
	if d.session != nil {
		return false
	}
	byID := make(map[string]Widget, len(widgets))
	for _, w := range widgets {
		byID[w.ID] = w
	}

	s := &dragSession{
		start:   start,
		current: start,
		initial: make(map[string]Point, len(ids)),
	}
	for _, id := range ids {
		w, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := s.initial[id]; dup {
			continue
		}
		s.ids = append(s.ids, id)
		s.initial[id] = w.Position()
	}
	s.targets = widgetSnapTargets(widgets, setOf(s.ids), d.cfg)
	d.session = s
	return true
}

// UpdateDrag moves the dragged widgets to follow the canvas point p.
//
// Shift constrains the movement to horizontal, vertical or 45 degrees. Meta
// disables snapping. Otherwise each axis snaps the first dragged widget's
// position to the best target within range.
func (d *DragEngine) UpdateDrag(p Point, mods KeyModifiers) {
	s := d.session
	if s == nil {
		return
	}
	s.current = p
	delta := p.Sub(s.start)
	if mods.Shift() {
		delta = constrainDelta(delta)
	}

	s.hasSnap = false
	if !mods.Meta() && len(s.ids) > 0 {
		first := s.initial[s.ids[0]]
		x := matchSnap(first.X+delta.X, Vertical, s.targets, d.cfg)
		if x.ok {
			delta.X = x.target.Coord() - first.X
		}
		y := matchSnap(first.Y+delta.Y, Horizontal, s.targets, d.cfg)
		if y.ok {
			delta.Y = y.target.Coord() - first.Y
		}
		if best := pickActiveSnap(x, y); best.ok {
			s.activeSnap = best.target
			s.hasSnap = true
		}
	}

	s.delta = delta
	d.emit(delta)
}

// EndDrag flushes the final positions and closes the session. Returns false
// when no session was active.
func (d *DragEngine) EndDrag() bool {
	s := d.session
	if s == nil {
		return false
	}
	d.emit(s.delta)
	d.session = nil
	if d.onEnd != nil {
		d.onEnd(s.ids, s.delta)
	}
	return true
}

// CancelDrag restores every dragged widget to its starting position in one
// batch and closes the session without calling the end callback.
func (d *DragEngine) CancelDrag() bool {
	if d.session == nil {
		return false
	}
	d.emit(Point{})
	d.session = nil
	return true
}

// emit sends initial+delta for every dragged widget in a single batch.
func (d *DragEngine) emit(delta Point) {
	s := d.session
	if len(s.ids) == 0 || d.onUpdate == nil {
		return
	}
	batch := make([]WidgetUpdate, len(s.ids))
	for i, id := range s.ids {
		batch[i] = WidgetUpdate{ID: id, Patch: positionPatch(s.initial[id].Add(delta))}
	}
	d.onUpdate(batch)
}

// constrainDelta locks a movement to the nearest of horizontal, vertical and
// 45 degrees. An axis dominates when it is more than twice the other.
func constrainDelta(delta Point) Point {
	ax, ay := math.Abs(delta.X), math.Abs(delta.Y)
	switch {
	case ax > 2*ay:
		return Point{X: delta.X}
	case ay > 2*ax:
		return Point{Y: delta.Y}
	default:
		m := math.Max(ax, ay)
		return Point{X: math.Copysign(m, delta.X), Y: math.Copysign(m, delta.Y)}
	}
}

// setOf builds a lookup set from ids.
func setOf(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
