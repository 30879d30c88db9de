// Package ecs provides ECS adapters for easel's interaction notifications.
//
// [NewDonburiSink] bridges engine notifications (mode, selection, hover,
// cursor, transform and widget writes) into a [Donburi] world as typed
// events. Subscribe to [InteractionEventType] in your ECS systems to receive
// them. [WidgetMirror] keeps one entity per widget in sync with the writes
// the engine sends to its host.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	controller.Machine().SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
