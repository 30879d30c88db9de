// Package easel is an interaction engine for infinite canvas editors built on
// [Ebitengine].
//
// Easel turns raw pointer, keyboard and wheel input into selection, drag,
// resize, rotate, pan and zoom gestures over host-owned rectangular widgets.
// It never mutates widgets itself: every change is reported through the
// [Host] interface, with gesture updates batched so one pointer move produces
// one atomic write.
//
// # Quick start
//
// The simplest way to get started is [Run] with the in-memory [Board] host:
//
//	board := easel.NewBoard(
//		easel.Widget{ID: "a", X: 100, Y: 100, Width: 120, Height: 80},
//	)
//	game := easel.NewGame(board, easel.DefaultConfig())
//	easel.Run(game, easel.RunConfig{Title: "My Board", Width: 1024, Height: 720})
//
// For full control, own the widgets yourself, implement [Host] and feed a
// [Controller] from your own event loop:
//
//	ctrl := easel.NewController(myHost, easel.DefaultConfig())
//	ctrl.SetWidgets(snapshot)
//	ctrl.SetViewport(easel.Rect{Width: 1024, Height: 720})
//	ctrl.PointerDown(easel.Point{X: 130, Y: 120}, easel.MouseButtonLeft, 0, 1)
//
// # Coordinates
//
// Screen space is the host's pixel space; canvas space is the infinite
// plane widgets live on. A [CanvasTransform] maps one to the other:
//
//	screen = canvas*Scale + (X, Y)
//
// Use [ScreenToCanvas], [CanvasToScreen] and [ZoomToPoint]. Scale is always
// kept within [MinScale, MaxScale].
//
// # Modes
//
// The [Machine] is a finite-state machine with exactly one active [Mode]:
// idle, areaSelect, dragging, panning, resizing, rotating or textEditing.
// Each mode has enter, exit and handle functions; listeners a mode registers
// on enter are removed on every exit path, so Escape or focus loss always
// reverts an in-flight gesture cleanly.
//
// # Snapping
//
// While dragging, the first dragged widget's position snaps per axis to the
// nearest edge or center line of the other widgets, or to the grid, within
// [Config.SnapThreshold] scaled by the target's strength. Hold Shift to
// constrain movement to an axis or diagonal; hold Meta to disable snapping.
//
// # Observers
//
// Register callbacks with [Machine.OnModeChange], [Machine.OnSelectionChange],
// [Machine.OnHoverChange], [Machine.OnCursorChange] and
// [Machine.OnCanvasTransform]; each returns a [CallbackHandle] whose Remove
// method unregisters it. Every notification is also forwarded to an optional
// [EventSink]; the easel/ecs package provides one backed by a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package easel
