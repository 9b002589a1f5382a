package starship

import "go.uber.org/zap"

// StartAdjustingBodyHeight begins a resize drag and empties the bucket.
func (m *Model) StartAdjustingBodyHeight() {
	m.adjusting = true
	m.bucket = 0
}

// StopAdjustingBodyHeight ends the resize drag.
func (m *Model) StopAdjustingBodyHeight() {
	m.adjusting = false
}

// AdjustBodyHeightByGlobalMouseMove converts a root-space mouse delta into a
// body height request. Dragging up grows the body.
//
// Movement the body cannot absorb at its height limits is parked in the
// bucket. While the bucket is non-empty, further movement in the same
// direction only fills it, and movement the other way drains it before the
// body changes again, so the handle stays under the cursor after a reversal.
// Ignored unless a drag was started with StartAdjustingBodyHeight.
func (m *Model) AdjustBodyHeightByGlobalMouseMove(dx, dy float64) {
	if !m.adjusting {
		return
	}
	_, localDy, err := m.spaceship.globalDeltaToLocal(dx, dy)
	if err != nil {
		m.log.Warn("resize ignored", zap.Error(err))
		return
	}
	m.applyResize(-localDy)
}

// applyResize runs the bucket algorithm for one requested height delta and
// returns the height change actually applied.
func (m *Model) applyResize(request float64) float64 {
	if m.bucket != 0 {
		if (m.bucket < 0) == (request < 0) {
			m.bucket += request
			return 0
		}
		if abs(m.bucket) >= abs(request) {
			m.bucket += request
			return 0
		}
		request += m.bucket
		m.bucket = 0
	}

	actual, err := m.body.Resize(request)
	if err != nil {
		m.log.Error("body resize failed", zap.Error(err))
		return 0
	}
	m.bucket += request - actual
	if actual == 0 {
		return 0
	}

	m.spaceship.growUp(actual)
	m.head.Translate(0, -actual)
	m.handle.Translate(0, -actual)
	m.porthole.Translate(0, -actual)
	return actual
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
