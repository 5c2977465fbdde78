package bmfont

import (
	"image/color"
	"testing"

	"tinygo.org/x/tinyfont"
)

// fakeDisplayer records SetPixel calls.
type fakeDisplayer struct {
	pixels map[[2]int16]color.RGBA
}

func (d *fakeDisplayer) Size() (int16, int16) { return 64, 64 }

func (d *fakeDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.pixels == nil {
		d.pixels = make(map[[2]int16]color.RGBA)
	}
	d.pixels[[2]int16{x, y}] = c
}

func (d *fakeDisplayer) Display() error { return nil }

func TestFonterYAdvance(t *testing.T) {
	f := openTestFont(t, 16, TierFull, []rune{'A'}, nil, nil)
	if got := f.Fonter().GetYAdvance(); got != 16 {
		t.Errorf("GetYAdvance() = %d, want 16", got)
	}
}

func TestFonterGlyphInfo(t *testing.T) {
	f := openTestFont(t, 8, TierFull, []rune{'A'}, map[rune][]byte{'A': glyphA}, nil)

	info := f.Fonter().GetGlyph('A').Info()
	want := tinyfont.GlyphInfo{Rune: 'A', Width: 8, Height: 8, XAdvance: 8, XOffset: 0, YOffset: -7}
	if info != want {
		t.Errorf("Info() = %+v, want %+v", info, want)
	}
}

func TestFonterDraw(t *testing.T) {
	f := openTestFont(t, 8, TierFull, []rune{'A'}, map[rune][]byte{'A': glyphA}, nil)

	d := &fakeDisplayer{}
	white := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}

	// The cursor y sits on the bottom row of the cell, so drawing at y=9
	// puts the cell top at row 2.
	f.Fonter().GetGlyph('A').Draw(d, 2, 9, white)

	if len(d.pixels) != 18 {
		t.Errorf("painted %d pixels, want 18", len(d.pixels))
	}
	if _, ok := d.pixels[[2]int16{5, 2}]; !ok {
		t.Error("glyph pixel (3, 0) missing at display (5, 2)")
	}
	if _, ok := d.pixels[[2]int16{3, 5}]; !ok {
		t.Error("glyph pixel (1, 3) missing at display (3, 5)")
	}
	if _, ok := d.pixels[[2]int16{2, 2}]; ok {
		t.Error("cleared glyph pixel (0, 0) was painted")
	}
}

func TestFonterWriteLine(t *testing.T) {
	glyphB := []byte{0x7C, 0x42, 0x42, 0x7C, 0x42, 0x42, 0x7C, 0x00}
	f := openTestFont(t, 8, TierFull, []rune{'A', 'B'},
		map[rune][]byte{'A': glyphA, 'B': glyphB}, nil)

	d := &fakeDisplayer{}
	white := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	tinyfont.WriteLine(d, f.Fonter(), 0, 7, "AB", white)

	// 'A' cell at x 0-7, 'B' cell at x 8-15.
	if _, ok := d.pixels[[2]int16{3, 0}]; !ok {
		t.Error("'A' pixel (3, 0) missing")
	}
	if _, ok := d.pixels[[2]int16{9, 0}]; !ok {
		t.Error("'B' pixel (1, 0) missing at display (9, 0)")
	}
}
