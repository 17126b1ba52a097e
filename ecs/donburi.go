// Package ecs provides ECS adapters for viewport.
package ecs

import (
	"github.com/phanxgames/viewport"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ViewportEventType is the Donburi event type for viewport events.
// Subscribe to this in your ECS systems to receive pointer, key, drag, and
// camera events.
var ViewportEventType = events.NewEventType[viewport.Event]()

// Bridge is a listener that republishes viewport events into a Donburi
// world. It never consumes, so register it first to observe every event
// before tools see it.
type Bridge struct {
	viewport.NopListener

	world donburi.World
	kinds map[viewport.EventKind]bool
}

// NewBridge creates a Bridge publishing to world. If kinds is empty every
// event is published; otherwise only the listed kinds are.
func NewBridge(world donburi.World, kinds ...viewport.EventKind) *Bridge {
	b := &Bridge{world: world}
	if len(kinds) > 0 {
		b.kinds = make(map[viewport.EventKind]bool, len(kinds))
		for _, k := range kinds {
			b.kinds[k] = true
		}
	}
	return b
}

func (b *Bridge) Name() string { return "ecs-bridge" }

// publish queues a copy of e, so later changes to the event (including
// Consumed) are not visible to subscribers.
func (b *Bridge) publish(e *viewport.Event) {
	if b.kinds != nil && !b.kinds[e.Kind] {
		return
	}
	ViewportEventType.Publish(b.world, *e)
}

func (b *Bridge) MouseDown(e *viewport.Event) { b.publish(e) }
func (b *Bridge) MouseUp(e *viewport.Event) { b.publish(e) }
func (b *Bridge) MouseMove(e *viewport.Event) { b.publish(e) }
func (b *Bridge) MouseWheel(e *viewport.Event) { b.publish(e) }
func (b *Bridge) MouseClick(e *viewport.Event) { b.publish(e) }
func (b *Bridge) MouseDoubleClick(e *viewport.Event) { b.publish(e) }
func (b *Bridge) MouseEnter(e *viewport.Event) { b.publish(e) }
func (b *Bridge) MouseLeave(e *viewport.Event) { b.publish(e) }
func (b *Bridge) KeyDown(e *viewport.Event) { b.publish(e) }
func (b *Bridge) KeyUp(e *viewport.Event) { b.publish(e) }
func (b *Bridge) DragStart(e *viewport.Event) { b.publish(e) }
func (b *Bridge) DragMove(e *viewport.Event) { b.publish(e) }
func (b *Bridge) DragEnd(e *viewport.Event) { b.publish(e) }
func (b *Bridge) PositionChanged(e *viewport.Event) { b.publish(e) }
func (b *Bridge) ZoomChanged(e *viewport.Event) { b.publish(e) }
