package starship

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TextAlign controls horizontal text alignment relative to the anchor point.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // anchor is the left edge (default)
	TextAlignCenter                  // anchor is the horizontal center
	TextAlignRight                   // anchor is the right edge
)

// Painter receives drawing requests in the current local frame. RenderAll
// brackets every node with Save/Restore and applies the node's local
// transform with Transform before the node draws itself.
type Painter interface {
	// Save pushes the current transform and alpha.
	Save()
	// Restore pops the state pushed by the matching Save.
	Restore()
	// Transform right-multiplies m onto the current transform.
	Transform(m Affine)
	// SetAlpha multiplies the current alpha by a until the next Restore.
	SetAlpha(a float64)

	FillPolygon(pts []Vec2, c Color)
	StrokePolygon(pts []Vec2, width float64, c Color)
	FillRect(r Rect, c Color)
	StrokeRect(r Rect, width float64, c Color)
	Line(x0, y0, x1, y1, width float64, c Color)
	// Text draws s with its top edge at y. size is the font size in pixels.
	Text(s string, x, y, size float64, align TextAlign, c Color)
}

// painterState is one entry of the Save/Restore stack.
type painterState struct {
	m     Affine
	alpha float64
}

// EbitenPainter draws onto an *ebiten.Image. Polygons are fan-triangulated
// and submitted with DrawTriangles against a white pixel; strokes use
// vector.StrokeLine in screen space.
type EbitenPainter struct {
	dst   *ebiten.Image
	cur   painterState
	stack []painterState
	fonts *FontCache

	// Preallocated buffers reused across calls.
	pts   []Vec2
	verts []ebiten.Vertex
	inds  []uint16
}

// NewEbitenPainter creates a painter targeting dst. fonts may be nil, in which
// case Text is a no-op.
func NewEbitenPainter(dst *ebiten.Image, fonts *FontCache) *EbitenPainter {
	return &EbitenPainter{
		dst:   dst,
		cur:   painterState{m: identityTransform, alpha: 1},
		fonts: fonts,
	}
}

// Reset retargets the painter and clears its state stack.
func (p *EbitenPainter) Reset(dst *ebiten.Image) {
	p.dst = dst
	p.cur = painterState{m: identityTransform, alpha: 1}
	p.stack = p.stack[:0]
}

// Depth returns the number of unmatched Save calls.
func (p *EbitenPainter) Depth() int { return len(p.stack) }

// Current returns the current transform.
func (p *EbitenPainter) Current() Affine { return p.cur.m }

func (p *EbitenPainter) Save() {
	p.stack = append(p.stack, p.cur)
}

func (p *EbitenPainter) Restore() {
	if len(p.stack) == 0 {
		return
	}
	p.cur = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *EbitenPainter) Transform(m Affine) {
	p.cur.m = multiplyAffine(p.cur.m, m)
}

func (p *EbitenPainter) SetAlpha(a float64) {
	p.cur.alpha *= a
}

func (p *EbitenPainter) FillPolygon(pts []Vec2, c Color) {
	if len(pts) < 3 {
		return
	}
	c = c.WithAlpha(p.cur.alpha)
	p.pts = p.cur.m.TransformPoints(p.pts, pts)
	p.verts, p.inds = buildPolygonFan(p.verts, p.inds, p.pts, c)
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	p.dst.DrawTriangles(p.verts, p.inds, whitePixel(), op)
}

func (p *EbitenPainter) StrokePolygon(pts []Vec2, width float64, c Color) {
	if len(pts) < 2 {
		return
	}
	clr := c.WithAlpha(p.cur.alpha).RGBA()
	w := float32(width * p.cur.m.linearScale())
	p.pts = p.cur.m.TransformPoints(p.pts, pts)
	n := len(p.pts)
	for i := 0; i < n; i++ {
		a, b := p.pts[i], p.pts[(i+1)%n]
		vector.StrokeLine(p.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), w, clr, true)
	}
}

func (p *EbitenPainter) FillRect(r Rect, c Color) {
	corners := r.Corners()
	p.FillPolygon(corners[:], c)
}

func (p *EbitenPainter) StrokeRect(r Rect, width float64, c Color) {
	corners := r.Corners()
	p.StrokePolygon(corners[:], width, c)
}

func (p *EbitenPainter) Line(x0, y0, x1, y1, width float64, c Color) {
	ax, ay := p.cur.m.Apply(x0, y0)
	bx, by := p.cur.m.Apply(x1, y1)
	w := float32(width * p.cur.m.linearScale())
	vector.StrokeLine(p.dst, float32(ax), float32(ay), float32(bx), float32(by), w, c.WithAlpha(p.cur.alpha).RGBA(), true)
}

func (p *EbitenPainter) Text(s string, x, y, size float64, align TextAlign, c Color) {
	if p.fonts == nil || s == "" {
		return
	}
	face := p.fonts.Face(size)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	switch align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
	}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(p.cur.m.GeoM())
	op.ColorScale.ScaleWithColor(c.WithAlpha(p.cur.alpha).RGBA())
	text.Draw(p.dst, s, face, op)
}

// whitePixelImage is a 1x1 white image used as the source for solid fills.
var whitePixelImage *ebiten.Image

func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(ColorWhite.RGBA())
	}
	return whitePixelImage
}

// buildPolygonFan generates vertices and indices for a fan-triangulated
// convex polygon, reusing the given buffers. N vertices, 3*(N-2) indices.
func buildPolygonFan(verts []ebiten.Vertex, inds []uint16, points []Vec2, c Color) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	verts = verts[:0]
	inds = inds[:0]
	if n < 3 {
		return verts, inds
	}
	r, g, b, a := float32(c.R), float32(c.G), float32(c.B), float32(c.A)
	for _, pt := range points {
		verts = append(verts, ebiten.Vertex{
			DstX: float32(pt.X), DstY: float32(pt.Y),
			// Map to center of white pixel (0.5, 0.5).
			SrcX: 0.5, SrcY: 0.5,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	// Fan triangulation: vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		inds = append(inds, 0, uint16(i+1), uint16(i+2))
	}
	return verts, inds
}
