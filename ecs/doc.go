// Package ecs provides ECS adapters for viewport's event dispatcher.
//
// The primary adapter is [NewBridge], a listener that republishes viewport
// events (pointer, key, drag, camera) into a [Donburi] world as typed
// events. Subscribe to [ViewportEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	vp.Dispatcher().Insert(0, ecs.NewBridge(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
