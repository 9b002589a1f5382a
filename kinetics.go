package starship

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// --- Forward motion ---

// StartMovingForward shows the exhaust, cancels any deceleration and starts
// accelerating unless already accelerating.
func (m *Model) StartMovingForward() {
	m.fire.SetVisible(true)
	if !m.thrusting {
		m.thrusting = true
		m.sound.ThrusterOn()
	}
	if m.decel != nil {
		m.decel.Stop()
		m.decel = nil
	}
	if m.accel == nil {
		m.accel = m.sched.Every("accelerate", m.tuning.TickInterval, m.accelerateTick)
		m.log.Debug("accelerating", zap.Float64("momentum", m.momentum))
	}
}

// StopMovingForward hides the exhaust, cancels acceleration and starts
// decelerating unless already decelerating or at rest.
func (m *Model) StopMovingForward() {
	m.fire.SetVisible(false)
	if m.thrusting {
		m.thrusting = false
		m.sound.ThrusterOff()
	}
	if m.accel != nil {
		m.accel.Stop()
		m.accel = nil
	}
	if m.decel == nil && m.momentum > 0 {
		m.decel = m.sched.Every("decelerate", m.tuning.TickInterval, m.decelerateTick)
		m.log.Debug("decelerating", zap.Float64("momentum", m.momentum))
	}
}

// accelerateTick ramps momentum: seeded from rest, quadratic below the
// transition threshold, linear above it, capped at exactly 1.
func (m *Model) accelerateTick() {
	t := m.tuning
	factor := math.Min(m.momentum/t.Transition, 1)
	switch {
	case m.momentum < t.MomentumSeed:
		m.momentum = t.MomentumSeed
	case m.momentum+factor*t.AccelStep > 1:
		m.momentum = 1
		m.accel.Stop()
		m.accel = nil
	default:
		m.momentum += factor * t.AccelStep
	}
}

// decelerateTick decays momentum geometrically and snaps it to exactly 0
// once it falls below the seed.
func (m *Model) decelerateTick() {
	if m.momentum < m.tuning.MomentumSeed {
		m.momentum = 0
		m.decel.Stop()
		m.decel = nil
		return
	}
	m.momentum *= m.tuning.DecelFactor
}

// moveTick advances the ship along its heading and wraps it at the canvas
// edges. When the ship is at rest the root is notified so animated
// decorations still get redrawn.
func (m *Model) moveTick() {
	animateCosmetics(m.root, m.tuning.TickInterval.Seconds(), m.rng)

	t := m.tuning
	if m.momentum < t.MomentumSeed {
		m.root.Notify()
		return
	}
	theta := -m.momentum * t.TailDamping * m.tailAngle
	if m.decel != nil {
		// Straighten out faster than the ship turned in.
		theta *= m.momentum * m.momentum * m.momentum
	}
	m.spaceship.Rotate(theta, 0, 0)
	m.spaceship.Translate(0, -m.momentum*t.ForwardStep)
	m.wrap()
}

// --- Tail ---

// StartTurningTailLeft starts rotating the tail toward +TailLimit. No-op if
// already turning left.
func (m *Model) StartTurningTailLeft() {
	if m.tailLeft == nil {
		m.tailLeft = m.sched.Every("tail-left", m.tuning.TailInterval, func() { m.turnTail(1) })
	}
}

// StopTurningTailLeft stops the left turn. No-op if not turning left.
func (m *Model) StopTurningTailLeft() {
	m.tailLeft.Stop()
	m.tailLeft = nil
}

// StartTurningTailRight starts rotating the tail toward -TailLimit. No-op if
// already turning right.
func (m *Model) StartTurningTailRight() {
	if m.tailRight == nil {
		m.tailRight = m.sched.Every("tail-right", m.tuning.TailInterval, func() { m.turnTail(-1) })
	}
}

// StopTurningTailRight stops the right turn. No-op if not turning right.
func (m *Model) StopTurningTailRight() {
	m.tailRight.Stop()
	m.tailRight = nil
}

// turnTail steps the tail angle in direction dir (+1 or -1) without
// overshooting the limit, pivoting about the tail's top edge.
func (m *Model) turnTail(dir float64) {
	limit := dir * m.tuning.TailLimit
	remaining := limit - m.tailAngle
	if remaining*dir <= 0 {
		return
	}
	step := dir * math.Min(m.tuning.TailStep, math.Abs(remaining))
	m.tailAngle += step
	if math.Abs(m.tailAngle) > m.tuning.TailLimit {
		m.tailAngle = limit
	}
	m.tail.Rotate(step, 0, m.tail.bounds.Y)
}

// --- Power-up ---

// RequestPowerUp scales the ship up for PowerUpTimeout. No-op while a
// power-up is already active.
func (m *Model) RequestPowerUp() {
	if m.poweredUp {
		return
	}
	s := m.tuning.PowerUpScale
	if err := m.spaceship.Scale(s, s); err != nil {
		m.log.Warn("power-up scale rejected", zap.Float64("scale", s), zap.Error(err))
		return
	}
	m.poweredUp = true
	m.powerUpStart = m.sched.Now()
	m.powerUpRevert = m.sched.After("power-up-revert", m.tuning.PowerUpTimeout, m.revertPowerUp)
	m.sound.PowerUp()
	m.log.Debug("powered up", zap.Duration("timeout", m.tuning.PowerUpTimeout))
}

func (m *Model) revertPowerUp() {
	s := 1 / m.tuning.PowerUpScale
	if err := m.spaceship.Scale(s, s); err != nil {
		m.log.Warn("power-up revert rejected", zap.Error(err))
	}
	m.poweredUp = false
	m.powerUpRevert = nil
	m.log.Debug("power-up expired")
}

// PowerUpRemaining returns the time left on the current power-up, or 0.
func (m *Model) PowerUpRemaining() time.Duration {
	if !m.poweredUp {
		return 0
	}
	left := m.tuning.PowerUpTimeout - m.sched.Now().Sub(m.powerUpStart)
	if left < 0 {
		return 0
	}
	return left
}

// --- Dragging ---

// TranslateSpaceshipByGlobalMouseMove drags the ship by a root-space mouse delta.
func (m *Model) TranslateSpaceshipByGlobalMouseMove(dx, dy float64) {
	if err := m.spaceship.TranslateGlobal(dx, dy); err != nil {
		m.log.Warn("drag ignored", zap.Error(err))
	}
}
