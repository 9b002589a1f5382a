package starship

import (
	"math"
	"math/rand"
	"time"

	"github.com/tanema/gween/ease"
)

// Star twinkle timing, in seconds.
const (
	starGapMin    = 3.0
	starGapRange  = 8.0
	starLenMin    = 1.0
	starLenRange  = 4.0
	statusSlideIn = 0.35
)

// --- Stars ---

type starState struct {
	gap    float64 // seconds left before the next twinkle
	length float64 // duration of one twinkle
	factor float64 // current brightness and scale
	tween  *FieldTween
}

func initStar(n *Node) {
	n.star = &starState{}
}

func (s *starState) twinkling() bool {
	return s.tween != nil
}

// seed picks a random cycle length and a random phase within the first gap.
func (s *starState) seed(rng *rand.Rand) {
	s.length = starLenRange*rng.Float64() + starLenMin
	s.gap = (starGapRange*rng.Float64() + starGapMin) * rng.Float64()
}

func (s *starState) animate(dt float64, rng *rand.Rand) {
	if s.tween == nil {
		s.gap -= dt
		if s.gap <= 0 {
			s.tween = NewFieldTween(&s.factor, 0, 1, float32(s.length), twinkleEase)
		}
		return
	}
	s.tween.Update(float32(dt))
	if s.tween.Done {
		s.tween = nil
		s.factor = 0
		s.gap = starGapRange*rng.Float64() + starGapMin
	}
}

// --- Fire ---

type fireState struct {
	t1, t2, t3 float64
}

func initFire(n *Node) {
	n.fire = &fireState{}
}

// animate advances the three flame phases by random steps.
func (f *fireState) animate(rng *rand.Rand) {
	f.t1 = math.Mod(f.t1+math.Pi/12*rng.Float64(), 2*math.Pi)
	f.t2 = math.Mod(f.t2+math.Pi/20*rng.Float64(), 2*math.Pi)
	f.t3 = math.Mod(f.t3+math.Pi/12*rng.Float64(), 2*math.Pi)
}

// --- Status ---

// StatusSource supplies the values shown by the status HUD.
type StatusSource interface {
	Momentum() float64
	PowerUpRemaining() time.Duration
	PowerUpTimeout() time.Duration
}

type statusState struct {
	src       StatusSource
	offset    float64 // vertical offset of the power-up bar; -indicatorTotalHeight when hidden
	wasActive bool
	tween     *FieldTween
}

func initStatus(n *Node) {
	n.status = &statusState{offset: -indicatorTotalHeight}
}

// SetStatusSource connects a status node to its data. No-op on other kinds.
func (n *Node) SetStatusSource(src StatusSource) {
	if n.status == nil {
		return
	}
	n.status.src = src
}

// animate slides the power-up bar in when a power-up starts and back out
// when it ends.
func (s *statusState) animate(dt float64) {
	if s.src == nil {
		return
	}
	active := s.src.PowerUpRemaining() > 0
	if active != s.wasActive {
		s.wasActive = active
		if active {
			s.tween = NewFieldTween(&s.offset, -indicatorTotalHeight, 0, statusSlideIn, ease.OutCubic)
		} else {
			s.tween = NewFieldTween(&s.offset, s.offset, -indicatorTotalHeight, statusSlideIn, ease.InCubic)
		}
	}
	if s.tween != nil {
		s.tween.Update(float32(dt))
		if s.tween.Done {
			s.tween = nil
		}
	}
}

// animateCosmetics advances every star, the fire and the HUD in n's subtree.
func animateCosmetics(n *Node, dt float64, rng *rand.Rand) {
	n.Walk(func(c *Node) {
		switch {
		case c.star != nil:
			c.star.animate(dt, rng)
		case c.fire != nil:
			if c.visible {
				c.fire.animate(rng)
			}
		case c.status != nil:
			c.status.animate(dt)
		}
	})
}
