// Package viewport routes input for a level-editor viewport and detects
// pointer gestures, on top of [Ebitengine].
//
// A [Viewport] pairs an orthographic [Camera] with a [Dispatcher]. The
// dispatcher receives raw device callbacks from a [Host], runs them through
// a gesture detector that synthesizes drag and click events, and delivers
// every event to an ordered chain of [Listener] values.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	vp, err := viewport.NewViewport(viewport.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	vp.Register(viewport.NewCameraNavigator(vp, vp.Config().Navigation))
//	vp.Register(myTool)
//	viewport.Run(vp, viewport.RunConfig{Title: "Map"})
//
// For full control, implement [ebiten.Game] yourself, attach a host with
// [NewEbitenHost], and call [Viewport.Update] and [Viewport.Draw] directly.
//
// # Listeners
//
// Listeners are tried in registration order; index 0 has the highest
// priority. Before each delivery the dispatcher asks [Listener.IsActive] and
// skips inactive listeners. A listener that calls [Event.Consume] stops the
// event from reaching the rest of the chain. Per-frame ticks
// ([Listener.UpdateFrame]) and camera notifications are broadcast to every
// active listener and cannot be consumed.
//
// Embed [NopListener] to implement only the handlers a tool needs:
//
//	type selectTool struct {
//		viewport.NopListener
//	}
//
//	func (t *selectTool) MouseClick(e *viewport.Event) {
//		w := e.Sender.ScreenToWorld(e.X, e.Y)
//		// ...
//		e.Consume()
//	}
//
// A listener that panics is isolated: the panic is recovered, reported as a
// [ListenerFault] to the logger and the handler set with
// [Dispatcher.SetFaultHandler], and delivery continues with the next
// listener.
//
// # Gestures
//
// For every mouse move the dispatcher compares the pointer against the
// position of the last press. Once it has moved more than one pixel on
// either axis a drag starts: DragStart is delivered before the move, and
// every later move is followed by DragMove. Releasing the button that
// started the drag delivers DragEnd before MouseUp. A press and release that
// never left the tolerance box delivers MouseClick after MouseUp.
//
// # Input lock
//
// A tool that needs exclusive input for a multi-event interaction acquires
// the input lock with a [LockToken]. The lock is advisory: the dispatcher
// still delivers events to every listener, and cooperating listeners check
// [Dispatcher.IsUnlocked] before acting.
//
// # Testing
//
// [Viewport.InjectClick], [Viewport.InjectDrag], and friends queue raw
// events that are dispatched one per frame in place of host input.
// [LoadTestScript] sequences injected input and screenshots from JSON.
// The viewport/ecs module forwards events into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package viewport
