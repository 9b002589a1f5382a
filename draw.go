package starship

import (
	"fmt"
	"math"
)

// Part outlines in each part's local frame.
var (
	headShape = []Vec2{{0, -30}, {15, 0}, {-15, 0}}
	tailShape = []Vec2{{0, 0}, {20, 20}, {-20, 20}}

	portholeShape = circlePoints(0, 0, 10, 24)

	// starFan is the four-pointed star outline prefixed with its center so the
	// concave shape fan-triangulates correctly.
	starFan = buildStarFan()
)

// circlePoints returns segs points on a circle of radius r around (cx, cy).
func circlePoints(cx, cy, r float64, segs int) []Vec2 {
	pts := make([]Vec2, segs)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(segs))
		pts[i] = Vec2{cx + r*cos, cy + r*sin}
	}
	return pts
}

// cubicPoints flattens a cubic Bezier into segs points, excluding p0.
func cubicPoints(p0, p1, p2, p3 Vec2, segs int) []Vec2 {
	pts := make([]Vec2, 0, segs)
	for i := 1; i <= segs; i++ {
		t := float64(i) / float64(segs)
		u := 1 - t
		b0 := u * u * u
		b1 := 3 * u * u * t
		b2 := 3 * u * t * t
		b3 := t * t * t
		pts = append(pts, Vec2{
			b0*p0.X + b1*p1.X + b2*p2.X + b3*p3.X,
			b0*p0.Y + b1*p1.Y + b2*p2.Y + b3*p3.Y,
		})
	}
	return pts
}

func buildStarFan() []Vec2 {
	cpx := [5]float64{0, 2, 0, -2, 0}
	cpy := [5]float64{-2, 0, 2, 0, -2}
	x := [4]float64{10, 0, -10, 0}
	y := [4]float64{0, 10, 0, -10}

	pts := []Vec2{{0, 0}, {0, -10}}
	cur := Vec2{0, -10}
	for i := 0; i < 4; i++ {
		end := Vec2{x[i], y[i]}
		pts = append(pts, cubicPoints(cur, Vec2{cpx[i], cpy[i]}, Vec2{cpx[i+1], cpy[i+1]}, end, 6)...)
		cur = end
	}
	return pts
}

// --- Ship parts ---

func drawHead(_ *Node, p Painter) {
	p.FillPolygon(headShape, ColorHead)
	p.StrokePolygon(headShape, 1, ColorWhite)
}

func drawBody(n *Node, p Painter) {
	p.FillRect(n.bounds, ColorBody)
	p.StrokeRect(n.bounds, 1, ColorWhite)
}

func drawHandle(n *Node, p Painter) {
	p.FillRect(n.bounds, ColorHandle)
}

func drawPorthole(_ *Node, p Painter) {
	p.FillPolygon(portholeShape, ColorGlass)
	p.StrokePolygon(portholeShape, 2, ColorGlassRim)
}

func drawTail(_ *Node, p Painter) {
	p.FillPolygon(tailShape, ColorTail)
	p.StrokePolygon(tailShape, 1, ColorWhite)
}

func drawFire(n *Node, p Painter) {
	f := n.fire
	p.FillRect(Rect{-16, 2, 8, 15 + 8*math.Sin(f.t1)}, HSLA(13+13*math.Sin(f.t1), 1, 0.5, 1))
	p.FillRect(Rect{-4, 2, 8, 21 + 7*math.Cos(f.t2)}, HSLA(13+13*math.Cos(f.t2), 1, 0.5, 1))
	p.FillRect(Rect{8, 2, 8, 17 + 8*math.Cos(f.t3)}, HSLA(13+13*math.Sin(f.t3), 1, 0.5, 1))
}

// --- Background ---

func drawStar(n *Node, p Painter) {
	s := n.star
	if !s.twinkling() || s.factor <= 0 {
		return
	}
	p.Save()
	p.Transform(ScaleMatrix(s.factor, s.factor))
	p.FillPolygon(starFan, HSLA(51, 1, 0.5, math.Min(1, s.factor)))
	p.Restore()
}

// --- Status HUD ---

// HUD layout.
const (
	indicatorOpacity     = 0.85
	indicatorBorderW     = 200.0
	indicatorBorderH     = 37.0
	indicatorFillX       = 6.0
	indicatorFillY       = 6.0
	indicatorFillH       = 25.0
	indicatorFillMaxW    = indicatorBorderW - 12
	indicatorLabelY      = indicatorBorderH + 5
	indicatorTotalHeight = 70.0
	hintSpacing          = 16.0
	hintExtra            = 20.0
)

var (
	hudWhite = ColorWhite.WithAlpha(indicatorOpacity)
	hudHint  = Color{0.75, 0.75, 0.75, indicatorOpacity}
	hudValue = Color{0, 1, 0, 1}
)

// drawIndicator draws the nth progress bar with its value and caption.
func drawIndicator(p Painter, nth int, percent float64, red bool, value float64, unit, label string, yOffset float64) {
	y := float64(nth)*indicatorTotalHeight + yOffset
	percent = math.Max(0, math.Min(100, percent))

	fill := hudWhite
	if red {
		fill = HSLA(0, 1, (math.Min(percent/50, 1)*50+50)/100, indicatorOpacity)
	}
	p.FillRect(Rect{indicatorFillX, y + indicatorFillY, percent / 100 * indicatorFillMaxW, indicatorFillH}, fill)
	p.Text(fmt.Sprintf("%.1f%s", value, unit), indicatorFillMaxW+indicatorFillX-3, y+indicatorFillY+4, 16, TextAlignRight, hudValue)
	p.StrokeRect(Rect{0, y, indicatorBorderW, indicatorBorderH}, 4, hudWhite)
	p.Text(label, 0, y+indicatorLabelY, 16, TextAlignLeft, hudWhite)
}

func drawStatus(n *Node, p Painter) {
	s := n.status
	if s.src == nil {
		return
	}
	remaining := s.src.PowerUpRemaining()
	timeout := s.src.PowerUpTimeout()
	engine := s.src.Momentum() * 100

	drawIndicator(p, 0, engine, false, engine, "", "ENGINE POWER %", 0)

	off := s.offset
	p.Save()
	p.SetAlpha(math.Abs((indicatorTotalHeight + off) / indicatorTotalHeight))
	var pct float64
	if timeout > 0 {
		pct = 100 * remaining.Seconds() / timeout.Seconds()
	}
	drawIndicator(p, 1, pct, true, remaining.Seconds(), "s", "POWERUP REMAINING", off)
	p.Restore()

	base := 2*indicatorTotalHeight + off
	p.Text("AVAILABLE ACTIONS", 0, base, 15, TextAlignLeft, hudHint)
	p.Line(0, base+hintExtra-2, 160, base+hintExtra-2, 2, hudHint)

	poweredUp := remaining > 0
	busy := poweredUp || engine > 20
	for i, h := range statusHints(poweredUp, engine > 20) {
		c := hudHint
		if (i == 2 && poweredUp) || (i >= 3 && busy) {
			c = c.WithAlpha(0.5)
		}
		extra := hintExtra
		if i == 4 {
			extra -= 4
		}
		p.Text(h, 0, base+float64(i)*hintSpacing+extra, 13, TextAlignLeft, c)
	}
}

// statusHints returns the action list shown under the indicators.
func statusHints(poweredUp, moving bool) []string {
	hints := []string{
		" - power engine........[↑]",
		" - turn............[←]/[→]",
		" - power up........[space]",
		" - drag & resize ship",
		"   ..............use mouse",
	}
	if poweredUp {
		hints[2] = " x power up...........WAIT"
	}
	switch {
	case poweredUp:
		hints[3] = " x drag & resize ship"
		hints[4] = "   ....UNAVAIL: POWERED UP"
	case moving:
		hints[3] = " x drag & resize ship"
		hints[4] = "   .....UNAVAIL: IN MOTION"
	}
	return hints
}
