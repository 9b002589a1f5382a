package starship

import "errors"

// ErrNotResizable is returned by Resize on kinds without a resize capability.
var ErrNotResizable = errors.New("starship: node kind cannot be resized")

// NodeKind distinguishes the bounding box, interactivity and rendering of a Node.
type NodeKind uint8

const (
	KindRoot      NodeKind = iota // canvas-sized container
	KindStar                      // twinkling background star
	KindStatus                    // HUD with power bars and action hints
	KindSpaceship                 // invisible container for the ship parts
	KindHead                      // red nose cone
	KindBody                      // resizable hull, draggable
	KindHandle                    // resize grip on top of the body
	KindPorthole                  // round window on the body
	KindTail                      // steerable fin
	KindFire                      // exhaust flames, shown while thrusting
	numKinds
)

var kindNames = [numKinds]string{
	"root", "star", "status", "spaceship", "head",
	"body", "handle", "porthole", "tail", "fire",
}

// String returns the lower-case kind name.
func (k NodeKind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "unknown"
}

// Default body height limits.
const (
	MinBodyHeight = 55.0
	MaxBodyHeight = 400.0
)

// kindBehavior is the per-kind row of the behavior table.
type kindBehavior struct {
	bounds      Rect
	interactive bool
	hidden      bool
	init        func(*Node)
	draw        func(*Node, Painter)
	resize      func(*Node, float64) float64
}

// kindTable is indexed by NodeKind. Populated in init so the draw functions
// can refer to Node methods freely.
var kindTable [numKinds]kindBehavior

func init() {
	kindTable = [numKinds]kindBehavior{
		KindRoot:      {bounds: Rect{0, 0, 800, 600}},
		KindStar:      {bounds: Rect{-10, -10, 20, 20}, init: initStar, draw: drawStar},
		KindStatus:    {bounds: Rect{0, 0, 250, 266}, init: initStatus, draw: drawStatus},
		KindSpaceship: {bounds: Rect{-20, -150, 40, 200}},
		KindHead:      {bounds: Rect{-15, -30, 30, 30}, draw: drawHead},
		KindBody:      {bounds: Rect{-15, -120, 30, 120}, interactive: true, init: initBody, draw: drawBody, resize: resizeBody},
		KindHandle:    {bounds: Rect{-15, 0, 30, 6}, interactive: true, draw: drawHandle},
		KindPorthole:  {bounds: Rect{-10, -10, 20, 20}, draw: drawPorthole},
		KindTail:      {bounds: Rect{-20, 0, 40, 20}, draw: drawTail},
		KindFire:      {bounds: Rect{-20, 0, 40, 30}, hidden: true, init: initFire, draw: drawFire},
	}
}

// Resizable reports whether the node's kind supports Resize.
func (n *Node) Resizable() bool {
	return kindTable[n.Kind].resize != nil
}

// Resize asks the node to grow its height by request (negative shrinks) and
// returns the change actually applied after clamping. Kinds without a resize
// capability return ErrNotResizable.
func (n *Node) Resize(request float64) (float64, error) {
	fn := kindTable[n.Kind].resize
	if fn == nil {
		return 0, ErrNotResizable
	}
	return fn(n, request), nil
}

// setBounds replaces the local bounding box.
func (n *Node) setBounds(r Rect) {
	n.bounds = r
}

// growUp extends the bounding box upward by dh, keeping its bottom edge fixed.
func (n *Node) growUp(dh float64) {
	n.bounds.Height += dh
	n.bounds.Y -= dh
}

// --- Body ---

type bodyState struct {
	minHeight, maxHeight float64
}

func initBody(n *Node) {
	n.body = &bodyState{minHeight: MinBodyHeight, maxHeight: MaxBodyHeight}
}

// SetHeightLimits overrides the body's resize range. No-op on other kinds.
func (n *Node) SetHeightLimits(minHeight, maxHeight float64) {
	if n.body == nil {
		return
	}
	n.body.minHeight = minHeight
	n.body.maxHeight = maxHeight
}

// resizeBody grows the body upward, clamped to its height limits.
func resizeBody(n *Node, request float64) float64 {
	h := n.bounds.Height
	switch {
	case h+request > n.body.maxHeight:
		request = n.body.maxHeight - h
	case h+request < n.body.minHeight:
		request = n.body.minHeight - h
	}
	if request == 0 {
		return 0
	}
	n.growUp(request)
	n.Notify()
	return request
}
