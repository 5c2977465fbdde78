package bmfont

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Fonter returns a tinyfont.Fonter view of the font so BMF glyphs can be
// drawn on any tinygo.org/x/drivers display.
//
// The cursor y passed to tinyfont sits on the bottom row of the glyph cell,
// so a glyph of height h covers rows y-h+1 through y.
func (f *Font) Fonter() tinyfont.Fonter {
	return &fonter{f: f}
}

type fonter struct {
	f *Font
}

func (t *fonter) GetYAdvance() uint8 {
	return uint8(t.f.height)
}

func (t *fonter) GetGlyph(r rune) tinyfont.Glypher {
	return &glypher{g: t.f.Glyph(r)}
}

type glypher struct {
	g *Glyph
}

func (gl *glypher) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	b := gl.g.Bitmap()
	h := gl.g.Height()
	for row := 0; row < h; row++ {
		for col := 0; col < gl.g.Width(); col++ {
			if b.BitAt(col, row) {
				display.SetPixel(x+int16(col), y-int16(h-1-row), c)
			}
		}
	}
}

func (gl *glypher) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     gl.g.Rune,
		Width:    uint8(gl.g.Width()),
		Height:   uint8(gl.g.Height()),
		XAdvance: uint8(gl.g.Width()),
		XOffset:  0,
		YOffset:  int8(1 - gl.g.Height()),
	}
}
