package easel

// BoardChange describes one write applied to a Board.
type BoardChange struct {
	Version uint64
	IDs     []string
	Removed bool
	Added   bool
}

// Board is an in-memory Host. It applies each batch as a whole and then
// publishes a single change, so observers never see a half-moved selection.
type Board struct {
	widgets []Widget
	index   map[string]int
	version uint64

	listeners []handler[BoardChange]
	nextID    uint32
}

// NewBoard creates a board holding copies of widgets. Later duplicates of an
// id are ignored.
func NewBoard(widgets ...Widget) *Board {
	b := &Board{index: make(map[string]int, len(widgets))}
	for _, w := range widgets {
		if _, dup := b.index[w.ID]; dup {
			continue
		}
		b.index[w.ID] = len(b.widgets)
		b.widgets = append(b.widgets, w)
	}
	return b
}

// Widgets returns a copy of the widgets in insertion order.
func (b *Board) Widgets() []Widget {
	return append([]Widget(nil), b.widgets...)
}

// Widget returns one widget.
func (b *Board) Widget(id string) (Widget, bool) {
	i, ok := b.index[id]
	if !ok {
		return Widget{}, false
	}
	return b.widgets[i], true
}

// Len returns the number of widgets.
func (b *Board) Len() int { return len(b.widgets) }

// Version increments once per applied write.
func (b *Board) Version() uint64 { return b.version }

// OnChange registers fn to run after every applied write.
func (b *Board) OnChange(fn func(BoardChange)) BoardHandle {
	b.nextID++
	b.listeners = append(b.listeners, handler[BoardChange]{id: b.nextID, fn: fn})
	return BoardHandle{id: b.nextID, board: b}
}

// BoardHandle removes a change listener.
type BoardHandle struct {
	id    uint32
	board *Board
}

// Remove unregisters the listener.
func (h BoardHandle) Remove() {
	if h.board != nil {
		h.board.listeners = removeHandler(h.board.listeners, h.id)
	}
}

func (b *Board) publish(c BoardChange) {
	b.version++
	c.Version = b.version
	fire(b.listeners, c)
}

// UpdateWidget applies one patch. Unknown ids are ignored.
func (b *Board) UpdateWidget(id string, patch WidgetPatch) {
	i, ok := b.index[id]
	if !ok {
		return
	}
	b.widgets[i] = patch.Apply(b.widgets[i])
	b.publish(BoardChange{IDs: []string{id}})
}

// UpdateWidgets applies every patch of the batch, then publishes once.
// Unknown ids are skipped.
func (b *Board) UpdateWidgets(batch []WidgetUpdate) {
	ids := make([]string, 0, len(batch))
	for _, u := range batch {
		i, ok := b.index[u.ID]
		if !ok {
			continue
		}
		b.widgets[i] = u.Patch.Apply(b.widgets[i])
		ids = append(ids, u.ID)
	}
	if len(ids) == 0 {
		return
	}
	b.publish(BoardChange{IDs: ids})
}

// RemoveWidget deletes a widget.
func (b *Board) RemoveWidget(id string) {
	i, ok := b.index[id]
	if !ok {
		return
	}
	b.widgets = append(b.widgets[:i], b.widgets[i+1:]...)
	delete(b.index, id)
	for j := i; j < len(b.widgets); j++ {
		b.index[b.widgets[j].ID] = j
	}
	b.publish(BoardChange{IDs: []string{id}, Removed: true})
}

// AddWidget appends a widget. A duplicate id is ignored.
func (b *Board) AddWidget(w Widget) {
	if _, dup := b.index[w.ID]; dup {
		return
	}
	b.index[w.ID] = len(b.widgets)
	b.widgets = append(b.widgets, w)
	b.publish(BoardChange{IDs: []string{w.ID}, Added: true})
}
