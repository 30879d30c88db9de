package ecs

import (
	"testing"

	"github.com/phanxgames/easel"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []easel.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e easel.InteractionEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(easel.InteractionEvent{
		Type:     easel.NotifyModeChange,
		Mode:     easel.ModeDragging,
		PrevMode: easel.ModeIdle,
	})
	sink.EmitEvent(easel.InteractionEvent{
		Type: easel.NotifySelectionChange,
		IDs:  []string{"a", "b"},
	})

	// Events are queued; process them.
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != easel.NotifyModeChange || e.Mode != easel.ModeDragging {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != easel.NotifySelectionChange || len(e.IDs) != 2 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink easel.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e easel.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e easel.InteractionEvent) {
		count2++
	})

	sink.EmitEvent(easel.InteractionEvent{Type: easel.NotifyCommand, Command: easel.CommandSelectAll})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestMachineForwardsToDonburi(t *testing.T) {
	world := donburi.NewWorld()
	board := easel.NewBoard(
		easel.Widget{ID: "a", X: 0, Y: 0, Width: 50, Height: 50},
		easel.Widget{ID: "b", X: 200, Y: 0, Width: 50, Height: 50},
	)
	ctrl := easel.NewController(board, easel.DefaultConfig())
	ctrl.SetWidgets(board.Widgets())
	ctrl.Machine().SetEventSink(NewDonburiSink(world))

	var modes []easel.Mode
	var selections [][]string
	InteractionEventType.Subscribe(world, func(w donburi.World, e easel.InteractionEvent) {
		switch e.Type {
		case easel.NotifyModeChange:
			modes = append(modes, e.Mode)
		case easel.NotifySelectionChange:
			selections = append(selections, e.IDs)
		}
	})

	ctrl.PointerDown(easel.Point{X: 10, Y: 10}, easel.MouseButtonLeft, 0, 1)
	ctrl.PointerUp(easel.Point{X: 10, Y: 10}, easel.MouseButtonLeft, 0)
	InteractionEventType.ProcessEvents(world)

	if len(modes) != 2 || modes[0] != easel.ModeDragging || modes[1] != easel.ModeIdle {
		t.Errorf("modes = %v, want [dragging idle]", modes)
	}
	if len(selections) != 1 || len(selections[0]) != 1 || selections[0][0] != "a" {
		t.Errorf("selections = %v, want [[a]]", selections)
	}
}

func TestWidgetMirror(t *testing.T) {
	world := donburi.NewWorld()
	initial := []easel.Widget{
		{ID: "a", X: 0, Y: 0, Width: 50, Height: 50},
		{ID: "b", X: 200, Y: 0, Width: 50, Height: 50},
	}
	board := easel.NewBoard(initial...)
	ctrl := easel.NewController(board, easel.DefaultConfig())
	ctrl.SetWidgets(board.Widgets())
	ctrl.Machine().SetEventSink(NewDonburiSink(world))
	mirror := NewWidgetMirror(world, initial)

	if mirror.Len() != 2 {
		t.Fatalf("Len = %d, want 2", mirror.Len())
	}

	// Nudge "a" right by 10 (shift+arrow).
	ctrl.Select("a")
	ctrl.KeyDown("ArrowRight", easel.ModShift, false)
	InteractionEventType.ProcessEvents(world)

	w, ok := mirror.Widget("a")
	if !ok || w.X != 10 {
		t.Errorf("mirrored a = %+v (ok=%v), want X=10", w, ok)
	}

	// Delete "a".
	ctrl.KeyDown("Delete", 0, false)
	InteractionEventType.ProcessEvents(world)

	if _, ok := mirror.Widget("a"); ok {
		t.Error("a still mirrored after delete")
	}
	if mirror.Len() != 1 {
		t.Errorf("Len = %d, want 1", mirror.Len())
	}
}
