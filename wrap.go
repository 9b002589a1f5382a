package starship

import (
	"math"

	"go.uber.org/zap"
)

// wrap moves the ship to the opposite edge once it has left the canvas.
// An axis wraps only when all four transformed corners of the ship's box lie
// beyond the same edge, so a tilted ship straddling an edge never jumps. The
// jump is the canvas extent plus the ship's world-space extent on that axis.
// Both axes are applied in one global translation.
func (m *Model) wrap() {
	dx, dy := wrapDelta(m.root.bounds, m.spaceship.global, m.spaceship.bounds)
	if dx == 0 && dy == 0 {
		return
	}
	if err := m.spaceship.TranslateGlobal(dx, dy); err != nil {
		m.log.Warn("wrap skipped", zap.Error(err))
		return
	}
	m.log.Debug("wrapped", zap.Float64("dx", dx), zap.Float64("dy", dy))
}

// wrapDelta returns the root-space translation that wraps a box with the
// given local bounds and global transform around canvas.
func wrapDelta(canvas Rect, global Affine, bounds Rect) (dx, dy float64) {
	corners := bounds.Corners()
	global.TransformPoints(corners[:], corners[:])

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	left, right, above, below := true, true, true, true
	for _, c := range corners {
		minX = math.Min(minX, c.X)
		maxX = math.Max(maxX, c.X)
		minY = math.Min(minY, c.Y)
		maxY = math.Max(maxY, c.Y)
		left = left && c.X < canvas.X
		right = right && c.X > canvas.X+canvas.Width
		above = above && c.Y < canvas.Y
		below = below && c.Y > canvas.Y+canvas.Height
	}
	w, h := maxX-minX, maxY-minY

	switch {
	case left:
		dx = canvas.Width + w
	case right:
		dx = -(canvas.Width + w)
	}
	switch {
	case above:
		dy = canvas.Height + h
	case below:
		dy = -(canvas.Height + h)
	}
	return dx, dy
}
