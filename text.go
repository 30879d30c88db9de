package easel

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// TTFFont wraps Ebitengine's text/v2 for widget labels.
type TTFFont struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("easel: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &TTFFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// DefaultFont loads Go Regular at the given size.
func DefaultFont(size float64) (*TTFFont, error) {
	return LoadTTFFont(goregular.TTF, size)
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 { return f.lh }

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace { return f.face }

// drawLabel draws s centered on the screen point c, rotated by deg degrees
// about it.
func (f *TTFFont) drawLabel(dst *ebiten.Image, s string, c Point, deg float64, clr Color) {
	if f == nil || s == "" {
		return
	}
	w, h := f.MeasureString(s)
	op := &text.DrawOptions{}
	op.LineSpacing = f.lh
	op.GeoM.Translate(-w/2, -h/2)
	if deg != 0 {
		op.GeoM.Rotate(deg * degToRad)
	}
	op.GeoM.Translate(c.X, c.Y)
	op.ColorScale.Scale(float32(clr.R), float32(clr.G), float32(clr.B), float32(clr.A))
	text.Draw(dst, s, f.face, op)
}
