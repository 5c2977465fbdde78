package bmfont

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/funnygeeker/easydisplay/image1bit"
)

// Face returns a font.Face view of the font for use with the
// golang.org/x/image/font drawing machinery.
//
// Glyphs sit on the baseline with their full height as ascent, matching the
// top-anchored layout of the container format. The face shares the font's
// glyph cache and stays valid until the font is closed.
func (f *Font) Face() font.Face {
	return &face{f: f}
}

type face struct {
	f *Font
}

func (a *face) Close() error {
	return nil
}

func (a *face) Metrics() font.Metrics {
	h := fixed.I(a.f.height)
	return font.Metrics{
		Height:     h,
		Ascent:     h,
		Descent:    0,
		XHeight:    h / 2,
		CapHeight:  h,
		CaretSlope: image.Point{X: 0, Y: 1},
	}
}

func (a *face) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	g := a.f.Glyph(r)
	x := dot.X.Floor()
	y := dot.Y.Floor() - a.f.height
	dr = image.Rect(x, y, x+g.Width(), y+g.Height())
	return dr, glyphMask{g.Bitmap()}, image.Point{}, fixed.I(g.Width()), true
}

func (a *face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	g := a.f.Glyph(r)
	return fixed.R(0, -g.Height(), g.Width(), 0), fixed.I(g.Width()), true
}

func (a *face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	return fixed.I(a.f.Glyph(r).Width()), true
}

func (a *face) Kern(r0, r1 rune) fixed.Int26_6 {
	return 0
}

// glyphMask exposes a 1-bit glyph bitmap as an alpha mask for draw.DrawMask.
type glyphMask struct {
	b *image1bit.HorizontalMSB
}

func (m glyphMask) ColorModel() color.Model {
	return color.Alpha16Model
}

func (m glyphMask) Bounds() image.Rectangle {
	return m.b.Bounds()
}

func (m glyphMask) At(x, y int) color.Color {
	if m.b.BitAt(x, y) {
		return color.Opaque
	}
	return color.Transparent
}
