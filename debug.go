package starship

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

// globalDebug mirrors the most recently applied DebugConfig.Enabled so that
// node operations can run their checks without a back-pointer to the game.
var globalDebug bool

// debugLog receives debug-mode warnings. Replaced by Game.SetDebug.
var debugLog = zap.NewNop()

// debugStats holds per-frame metrics. Only populated when frame logging is on.
type debugStats struct {
	renderTime time.Duration
	nodeCount  int
}

// logFrame logs one frame's render stats.
func (g *Game) logFrame(stats debugStats) {
	debugLog.Debug("frame",
		zap.Duration("render", stats.renderTime),
		zap.Int("nodes", stats.nodeCount),
		zap.Float64("momentum", g.model.momentum),
		zap.Float64("tail", g.model.tailAngle),
	)
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLog.Warn("tree too deep",
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth),
			zap.String("node", n.Name),
		)
	}
}

var (
	boundsColor = Color{R: 0, G: 1, B: 0.6, A: 0.8}
	hiddenColor = Color{R: 1, G: 0.3, B: 0.3, A: 0.6}
)

// drawBounds outlines every node's bounds in its global frame. Hidden nodes
// are outlined in red. With labels set, each box is tagged with the node name.
func drawBounds(root *Node, p Painter, labels bool) {
	root.Walk(func(n *Node) {
		if n.bounds.Width == 0 && n.bounds.Height == 0 {
			return
		}
		c := boundsColor
		if !n.visible {
			c = hiddenColor
		}
		p.Save()
		p.Transform(n.global)
		p.StrokeRect(n.bounds, 1, c)
		if labels {
			p.Text(n.Name, n.bounds.X+2, n.bounds.Y+2, 10, TextAlignLeft, c)
		}
		p.Restore()
	})
}

// drawFPS prints the actual frame and tick rates in the top-right corner.
func drawFPS(screen *ebiten.Image) {
	w := screen.Bounds().Dx()
	msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	ebitenutil.DebugPrintAt(screen, msg, w-90, 4)
}
