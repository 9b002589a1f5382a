package starship

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FieldTween animates a single float64 field. Call Update(dt) each tick;
// the current value is written to the field and Done flips once the tween
// finishes.
//
// There is no global animation manager; owners call Update themselves.
type FieldTween struct {
	tween *gween.Tween
	field *float64
	Done  bool
}

// NewFieldTween creates a tween that drives *field from `from` to `to` over
// duration seconds using the easing function.
func NewFieldTween(field *float64, from, to float64, duration float32, fn ease.TweenFunc) *FieldTween {
	*field = from
	return &FieldTween{
		tween: gween.New(float32(from), float32(to), duration, fn),
		field: field,
	}
}

// Update advances the tween by dt seconds and writes the value to the field.
func (t *FieldTween) Update(dt float32) {
	if t == nil || t.Done {
		return
	}
	val, finished := t.tween.Update(dt)
	*t.field = float64(val)
	t.Done = finished
}

// twinkleEase rises and falls once over the duration, following an
// arctangent brightness curve that stays near 0 at both ends.
func twinkleEase(t, b, c, d float32) float32 {
	if d <= 0 {
		return b
	}
	x := float64(t / d)
	s := 2 * x
	if x > 0.5 {
		s = 2 - 2*x
	}
	v := math.Atan(5*s-2.5)/2.4 + 0.5
	return b + c*float32(v)
}
