package starship

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
)

// FontCache hands out Go Regular faces by pixel size. Faces share one
// parsed font source.
type FontCache struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// NewFontCache parses the embedded Go Regular font.
func NewFontCache() (*FontCache, error) {
	return NewFontCacheFromTTF(goregular.TTF)
}

// NewFontCacheFromTTF parses TrueType/OpenType data into a FontCache.
func NewFontCacheFromTTF(ttfData []byte) (*FontCache, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, errors.Wrap(err, "load font")
	}
	return &FontCache{source: source, faces: make(map[float64]*text.GoTextFace)}, nil
}

// Face returns the face for size, creating it on first use.
func (c *FontCache) Face(size float64) *text.GoTextFace {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: c.source, Size: size}
	c.faces[size] = f
	return f
}

