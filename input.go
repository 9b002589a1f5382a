package starship

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// PointerKind identifies a pointer event.
type PointerKind uint8

const (
	PointerDown PointerKind = iota // primary button pressed
	PointerMove                    // pointer moved, pressed or not
	PointerUp                      // primary button released
)

// PointerEvent is a pointer event in root coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// Key is the small key vocabulary the ship understands.
type Key uint8

const (
	KeyForward   Key = iota // thrust while held
	KeyTurnLeft             // turn the tail left while held
	KeyTurnRight            // turn the tail right while held
	KeyPowerUp              // power up on release
	numKeys
)

// KeyEvent is a key press or release.
type KeyEvent struct {
	Key  Key
	Down bool
}

// CursorShape is the pointer feedback the controller asks for.
type CursorShape uint8

const (
	CursorDefault CursorShape = iota
	CursorMove                // over the body: drag moves the ship
	CursorResize              // over the handle: drag resizes the body
)

// dragMode is what the current pointer drag does.
type dragMode uint8

const (
	dragNone dragMode = iota
	dragShip
	dragResize
)

// Controller maps discrete input events onto the model.
//
// Mouse and keyboard are mutually exclusive: pointer presses are ignored
// while any key is held, and keys are ignored while the pointer is down.
// The mouse is also locked out while a power-up is active.
type Controller struct {
	model *Model
	log   *zap.Logger

	pointerDown bool
	mode        dragMode
	lastX       float64
	lastY       float64
	keys        [numKeys]bool
	cursor      CursorShape
	store       EntityStore
}

// NewController creates a controller driving m.
func NewController(m *Model) *Controller {
	return &Controller{model: m, log: m.log.Named("input")}
}

// Cursor returns the cursor shape requested by the last pointer event.
func (c *Controller) Cursor() CursorShape { return c.cursor }

// Dragging reports whether a pointer drag is moving or resizing the ship.
func (c *Controller) Dragging() bool { return c.mode != dragNone }

func (c *Controller) anyKeyDown() bool {
	for _, down := range c.keys {
		if down {
			return true
		}
	}
	return false
}

// HandlePointer applies a pointer event.
func (c *Controller) HandlePointer(e PointerEvent) {
	switch e.Kind {
	case PointerDown:
		c.pointerPress(e)
	case PointerMove:
		c.pointerMove(e)
	case PointerUp:
		c.pointerRelease(e)
	}
}

func (c *Controller) pointerPress(e PointerEvent) {
	if c.anyKeyDown() || c.model.PowerUpRemaining() > 0 {
		return
	}
	c.pointerDown = true
	c.lastX, c.lastY = e.X, e.Y
	c.mode = dragNone
	hit := c.model.PerformHitDetection(e.X, e.Y)
	switch hit {
	case c.model.body:
		c.mode = dragShip
	case c.model.handle:
		c.mode = dragResize
		c.model.StartAdjustingBodyHeight()
	}
	if c.mode != dragNone {
		c.log.Debug("drag start", zap.Uint8("mode", uint8(c.mode)), zap.Float64("x", e.X), zap.Float64("y", e.Y))
	}
	c.emit(InteractionEvent{Type: EventPointerDown, X: e.X, Y: e.Y}, hit)
}

// emit forwards an event to the entity store, tagging it with node when non-nil.
func (c *Controller) emit(ev InteractionEvent, node *Node) {
	if c.store == nil {
		return
	}
	if node != nil {
		ev.NodeID = node.ID
		ev.Kind = node.Kind
	}
	c.store.EmitEvent(ev)
}

func (c *Controller) pointerMove(e PointerEvent) {
	dx, dy := e.X-c.lastX, e.Y-c.lastY
	c.lastX, c.lastY = e.X, e.Y
	if c.anyKeyDown() || c.model.PowerUpRemaining() > 0 {
		c.cursor = CursorDefault
		return
	}
	switch c.mode {
	case dragShip:
		c.model.TranslateSpaceshipByGlobalMouseMove(dx, dy)
		c.emit(InteractionEvent{Type: EventDrag, X: e.X, Y: e.Y, DeltaX: dx, DeltaY: dy}, c.model.body)
	case dragResize:
		c.model.AdjustBodyHeightByGlobalMouseMove(dx, dy)
		c.emit(InteractionEvent{Type: EventDrag, X: e.X, Y: e.Y, DeltaX: dx, DeltaY: dy}, c.model.handle)
	default:
		c.cursor = c.hoverCursor(e.X, e.Y)
	}
}

func (c *Controller) hoverCursor(x, y float64) CursorShape {
	switch c.model.PerformHitDetection(x, y) {
	case c.model.body:
		return CursorMove
	case c.model.handle:
		return CursorResize
	}
	return CursorDefault
}

func (c *Controller) pointerRelease(e PointerEvent) {
	c.cursor = CursorDefault
	if !c.pointerDown {
		return
	}
	c.pointerDown = false
	c.mode = dragNone
	c.model.StopAdjustingBodyHeight()
	c.emit(InteractionEvent{Type: EventPointerUp, X: e.X, Y: e.Y}, nil)
}

// HandleKey applies a key event. Thrust and turning follow the key while it
// is held; the power-up fires when its key is released.
func (c *Controller) HandleKey(e KeyEvent) {
	if c.pointerDown || e.Key >= numKeys {
		return
	}
	c.keys[e.Key] = e.Down
	if e.Down {
		c.emit(InteractionEvent{Type: EventKeyDown, Key: e.Key}, nil)
		switch e.Key {
		case KeyForward:
			c.model.StartMovingForward()
		case KeyTurnLeft:
			c.model.StartTurningTailLeft()
		case KeyTurnRight:
			c.model.StartTurningTailRight()
		}
		return
	}
	c.emit(InteractionEvent{Type: EventKeyUp, Key: e.Key}, nil)
	switch e.Key {
	case KeyPowerUp:
		c.model.RequestPowerUp()
	case KeyForward:
		c.model.StopMovingForward()
	case KeyTurnLeft:
		c.model.StopTurningTailLeft()
	case KeyTurnRight:
		c.model.StopTurningTailRight()
	}
}

// --- Ebitengine polling ---

// keyBindings maps each Key to the Ebitengine key that drives it.
var keyBindings = [numKeys]ebiten.Key{
	KeyForward:   ebiten.KeyArrowUp,
	KeyTurnLeft:  ebiten.KeyArrowLeft,
	KeyTurnRight: ebiten.KeyArrowRight,
	KeyPowerUp:   ebiten.KeySpace,
}

// ebitenInput converts Ebitengine's polled input state into events.
type ebitenInput struct {
	lastX, lastY int
	seen         bool
}

// poll feeds this frame's key and mouse edges to c.
func (in *ebitenInput) poll(c *Controller) {
	for k, ek := range keyBindings {
		if inpututil.IsKeyJustPressed(ek) {
			c.HandleKey(KeyEvent{Key: Key(k), Down: true})
		}
		if inpututil.IsKeyJustReleased(ek) {
			c.HandleKey(KeyEvent{Key: Key(k), Down: false})
		}
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		c.HandlePointer(PointerEvent{Kind: PointerDown, X: x, Y: y})
	}
	if !in.seen || mx != in.lastX || my != in.lastY {
		c.HandlePointer(PointerEvent{Kind: PointerMove, X: x, Y: y})
		in.lastX, in.lastY, in.seen = mx, my, true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		c.HandlePointer(PointerEvent{Kind: PointerUp, X: x, Y: y})
	}
}

// ebitenCursor maps a CursorShape to Ebitengine's cursor shape.
func ebitenCursor(s CursorShape) ebiten.CursorShapeType {
	switch s {
	case CursorMove:
		return ebiten.CursorShapeMove
	case CursorResize:
		return ebiten.CursorShapeNSResize
	}
	return ebiten.CursorShapeDefault
}
