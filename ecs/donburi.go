package ecs

import (
	"github.com/phanxgames/easel"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for easel notifications.
var InteractionEventType = events.NewEventType[easel.InteractionEvent]()

// WidgetComponent holds the latest known state of one widget.
var WidgetComponent = donburi.NewComponentType[easel.Widget]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Notifications are published to InteractionEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) easel.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event easel.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// WidgetMirror maintains a WidgetComponent entity per widget from the
// widget notifications published to InteractionEventType.
type WidgetMirror struct {
	world    donburi.World
	entities map[string]donburi.Entity
}

// NewWidgetMirror creates entities for the initial widgets and subscribes
// to InteractionEventType. Changes apply when the world processes events.
func NewWidgetMirror(world donburi.World, initial []easel.Widget) *WidgetMirror {
	m := &WidgetMirror{world: world, entities: make(map[string]donburi.Entity, len(initial))}
	for _, w := range initial {
		m.add(w)
	}
	InteractionEventType.Subscribe(world, m.handle)
	return m
}

// Entity returns the entity mirroring id.
func (m *WidgetMirror) Entity(id string) (donburi.Entity, bool) {
	e, ok := m.entities[id]
	return e, ok
}

// Widget returns the mirrored state of id.
func (m *WidgetMirror) Widget(id string) (easel.Widget, bool) {
	e, ok := m.entities[id]
	if !ok || !m.world.Valid(e) {
		return easel.Widget{}, false
	}
	return *WidgetComponent.Get(m.world.Entry(e)), true
}

// Len returns the number of mirrored widgets.
func (m *WidgetMirror) Len() int { return len(m.entities) }

func (m *WidgetMirror) add(w easel.Widget) {
	if _, dup := m.entities[w.ID]; dup {
		return
	}
	e := m.world.Create(WidgetComponent)
	WidgetComponent.SetValue(m.world.Entry(e), w)
	m.entities[w.ID] = e
}

func (m *WidgetMirror) handle(w donburi.World, ev easel.InteractionEvent) {
	switch ev.Type {
	case easel.NotifyWidgetAdd:
		m.add(ev.Widget)
	case easel.NotifyWidgetRemove:
		if e, ok := m.entities[ev.Widget.ID]; ok {
			w.Remove(e)
			delete(m.entities, ev.Widget.ID)
		}
	case easel.NotifyWidgetsUpdate:
		for _, u := range ev.Updates {
			e, ok := m.entities[u.ID]
			if !ok || !w.Valid(e) {
				continue
			}
			entry := w.Entry(e)
			WidgetComponent.SetValue(entry, u.Patch.Apply(*WidgetComponent.Get(entry)))
		}
	}
}
