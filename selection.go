package easel

// areaSelection is the live rubber-band rectangle.
type areaSelection struct {
	start Point
	rect  Rect
}

// SelectionManager tracks the selected widget ids, the hovered widget and an
// optional area-selection rectangle. It holds ids only; widget geometry is
// always passed in by the caller.
//
// Every mutation bumps a version counter so an observer can detect changes
// without diffing.
type SelectionManager struct {
	ids   []string
	index map[string]struct{}

	hovered  string
	hasHover bool

	area *areaSelection

	selVersion   uint64
	hoverVersion uint64
}

// NewSelectionManager creates an empty selection.
func NewSelectionManager() *SelectionManager {
	return &SelectionManager{index: make(map[string]struct{})}
}

// --- Queries ---

// Selected returns the selected ids in the order they were selected.
func (s *SelectionManager) Selected() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of selected widgets.
func (s *SelectionManager) Len() int { return len(s.ids) }

// IsSelected reports whether id is selected.
func (s *SelectionManager) IsSelected(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Hovered returns the hovered widget id, if any.
func (s *SelectionManager) Hovered() (string, bool) {
	return s.hovered, s.hasHover
}

// AreaRect returns the live area-selection rectangle, if one is open.
func (s *SelectionManager) AreaRect() (Rect, bool) {
	if s.area == nil {
		return Rect{}, false
	}
	return s.area.rect, true
}

// SelectedWidgets returns the widgets from widgets that are selected, in the
// order of widgets.
func (s *SelectionManager) SelectedWidgets(widgets []Widget) []Widget {
	var out []Widget
	for _, w := range widgets {
		if s.IsSelected(w.ID) {
			out = append(out, w)
		}
	}
	return out
}

// Bounds returns the union AABB of the selected widgets. ok is false when
// nothing is selected (or no selected id is present in widgets).
func (s *SelectionManager) Bounds(widgets []Widget) (Rect, bool) {
	return BoundsOf(s.SelectedWidgets(widgets))
}

// --- Mutation ---

func (s *SelectionManager) add(id string) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

func (s *SelectionManager) remove(id string) bool {
	if _, ok := s.index[id]; !ok {
		return false
	}
	delete(s.index, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return true
}

func (s *SelectionManager) changed(c bool) bool {
	if c {
		s.selVersion++
	}
	return c
}

// Select adds ids to the selection.
func (s *SelectionManager) Select(ids ...string) bool {
	c := false
	for _, id := range ids {
		if s.add(id) {
			c = true
		}
	}
	return s.changed(c)
}

// Deselect removes ids from the selection.
func (s *SelectionManager) Deselect(ids ...string) bool {
	c := false
	for _, id := range ids {
		if s.remove(id) {
			c = true
		}
	}
	return s.changed(c)
}

// Toggle flips the membership of id.
func (s *SelectionManager) Toggle(id string) bool {
	if !s.remove(id) {
		s.add(id)
	}
	return s.changed(true)
}

// Replace makes ids the whole selection.
func (s *SelectionManager) Replace(ids ...string) bool {
	if len(ids) == len(s.ids) {
		same := true
		for _, id := range ids {
			if !s.IsSelected(id) {
				same = false
				break
			}
		}
		if same {
			return false
		}
	}
	s.ids = s.ids[:0]
	clear(s.index)
	for _, id := range ids {
		s.add(id)
	}
	return s.changed(true)
}

// Clear empties the selection.
func (s *SelectionManager) Clear() bool {
	if len(s.ids) == 0 {
		return false
	}
	s.ids = s.ids[:0]
	clear(s.index)
	return s.changed(true)
}

// SelectAll selects every widget, locked ones included.
func (s *SelectionManager) SelectAll(widgets []Widget) bool {
	ids := make([]string, len(widgets))
	for i, w := range widgets {
		ids[i] = w.ID
	}
	return s.Replace(ids...)
}

// Prune drops selected and hovered ids that are no longer present in
// widgets.
func (s *SelectionManager) Prune(widgets []Widget) bool {
	live := make(map[string]struct{}, len(widgets))
	for _, w := range widgets {
		live[w.ID] = struct{}{}
	}
	var stale []string
	for _, id := range s.ids {
		if _, ok := live[id]; !ok {
			stale = append(stale, id)
		}
	}
	if s.hasHover {
		if _, ok := live[s.hovered]; !ok {
			s.setHover("", false)
		}
	}
	return s.Deselect(stale...)
}

// --- Click semantics ---

// Click applies click semantics for a pointer press that hit the given
// widget (nil for empty canvas):
//
//   - empty canvas without ctrl/meta/shift clears the selection
//   - alt: deep select (currently the same as a single select)
//   - ctrl/meta: toggle membership
//   - shift: add to the selection
//   - no modifier: replace the selection with the hit widget
func (s *SelectionManager) Click(hit *Widget, mods KeyModifiers) bool {
	if hit == nil {
		if !mods.CtrlOrMeta() && !mods.Shift() {
			return s.Clear()
		}
		return false
	}
	switch {
	case mods.Alt():
		return s.deepSelect(hit)
	case mods.CtrlOrMeta():
		return s.Toggle(hit.ID)
	case mods.Shift():
		return s.Select(hit.ID)
	default:
		return s.Replace(hit.ID)
	}
}

// deepSelect is the hook for selecting inside groups. Without a hierarchy it
// selects the hit widget alone.
func (s *SelectionManager) deepSelect(hit *Widget) bool {
	return s.Replace(hit.ID)
}

// HandleClick hit-tests the canvas point p against widgets and applies Click.
func (s *SelectionManager) HandleClick(p Point, widgets []Widget, mods KeyModifiers) bool {
	if w, ok := TopmostAt(p, widgets); ok {
		return s.Click(&w, mods)
	}
	return s.Click(nil, mods)
}

// --- Area selection ---

// StartAreaSelection opens a zero-size rectangle at the canvas point p.
func (s *SelectionManager) StartAreaSelection(p Point) {
	s.area = &areaSelection{start: p, rect: Rect{X: p.X, Y: p.Y}}
}

// UpdateAreaSelection stretches the rectangle from its fixed start corner to
// p. No-op when no area selection is open.
func (s *SelectionManager) UpdateAreaSelection(p Point) {
	if s.area == nil {
		return
	}
	s.area.rect = rectFromCorners(s.area.start, p)
}

// EndAreaSelection selects every widget overlapping the rectangle, replacing
// the selection or adding to it when additive, and closes the rectangle.
func (s *SelectionManager) EndAreaSelection(widgets []Widget, additive bool) bool {
	if s.area == nil {
		return false
	}
	ids := WidgetsInRect(s.area.rect, widgets)
	s.area = nil
	if additive {
		return s.Select(ids...)
	}
	return s.Replace(ids...)
}

// CancelAreaSelection closes the rectangle without touching the selection.
func (s *SelectionManager) CancelAreaSelection() {
	s.area = nil
}

// --- Hover ---

func (s *SelectionManager) setHover(id string, ok bool) bool {
	if s.hasHover == ok && s.hovered == id {
		return false
	}
	s.hovered, s.hasHover = id, ok
	s.hoverVersion++
	return true
}

// UpdateHover sets the hovered widget to the topmost widget under p, or
// none.
func (s *SelectionManager) UpdateHover(p Point, widgets []Widget) bool {
	if w, ok := TopmostAt(p, widgets); ok {
		return s.setHover(w.ID, true)
	}
	return s.setHover("", false)
}

// ClearHover removes the hovered widget.
func (s *SelectionManager) ClearHover() bool {
	return s.setHover("", false)
}
