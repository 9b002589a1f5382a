package starship

// syntheticEvent is a single injected input event: a key event when isKey is
// set, otherwise a pointer event. A noop event consumes a frame without input.
type syntheticEvent struct {
	pointer PointerEvent
	key     KeyEvent
	isKey   bool
	noop    bool
}

// InjectPress queues a pointer press at the given canvas coordinates. The
// event is consumed on the next frame's Update.
func (g *Game) InjectPress(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{
		pointer: PointerEvent{Kind: PointerDown, X: x, Y: y},
	})
}

// InjectMove queues a pointer move. Use this between InjectPress and
// InjectRelease to simulate a drag.
func (g *Game) InjectMove(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{
		pointer: PointerEvent{Kind: PointerMove, X: x, Y: y},
	})
}

// InjectRelease queues a pointer release at the given canvas coordinates.
func (g *Game) InjectRelease(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{
		pointer: PointerEvent{Kind: PointerUp, X: x, Y: y},
	})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (g *Game) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, a final move and
// release at (toX, toY). Minimum frames is 2.
func (g *Game) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	g.InjectMove(toX, toY)
	g.InjectRelease(toX, toY)
}

// InjectKeyDown queues a key press.
func (g *Game) InjectKeyDown(k Key) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{key: KeyEvent{Key: k, Down: true}, isKey: true})
}

// InjectKeyUp queues a key release.
func (g *Game) InjectKeyUp(k Key) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{key: KeyEvent{Key: k}, isKey: true})
}

// InjectKeyHold queues a press, frames-2 idle frames and a release, so the
// key is held for frames frames in total. Minimum frames is 2.
func (g *Game) InjectKeyHold(k Key, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectKeyDown(k)
	for i := 0; i < frames-2; i++ {
		g.injectQueue = append(g.injectQueue, syntheticEvent{noop: true})
	}
	g.InjectKeyUp(k)
}

// processInjectedInput pops one event from the inject queue and feeds it to
// the controller. Returns true if an event was consumed, in which case real
// input is skipped for this frame.
func (g *Game) processInjectedInput() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	switch {
	case evt.noop:
	case evt.isKey:
		g.ctrl.HandleKey(evt.key)
	default:
		g.ctrl.HandlePointer(evt.pointer)
	}
	return true
}
