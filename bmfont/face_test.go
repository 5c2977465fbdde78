package bmfont

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

func TestFaceMetrics(t *testing.T) {
	f := openTestFont(t, 16, TierFull, []rune{'A'}, nil, nil)
	m := f.Face().Metrics()

	if m.Height != fixed.I(16) {
		t.Errorf("Height = %v, want %v", m.Height, fixed.I(16))
	}
	if m.Ascent != fixed.I(16) {
		t.Errorf("Ascent = %v, want %v", m.Ascent, fixed.I(16))
	}
	if m.Descent != 0 {
		t.Errorf("Descent = %v, want 0", m.Descent)
	}
	if m.CapHeight != fixed.I(16) {
		t.Errorf("CapHeight = %v, want %v", m.CapHeight, fixed.I(16))
	}
	if m.CaretSlope != image.Pt(0, 1) {
		t.Errorf("CaretSlope = %v, want (0,1)", m.CaretSlope)
	}
}

func TestFaceGlyph(t *testing.T) {
	f := openTestFont(t, 8, TierFull, []rune{'A'}, map[rune][]byte{'A': glyphA}, nil)

	dr, mask, maskp, advance, ok := f.Face().Glyph(fixed.P(10, 20), 'A')
	if !ok {
		t.Fatal("Glyph() not ok")
	}
	if want := image.Rect(10, 12, 18, 20); dr != want {
		t.Errorf("dr = %v, want %v", dr, want)
	}
	if maskp != (image.Point{}) {
		t.Errorf("maskp = %v, want (0,0)", maskp)
	}
	if advance != fixed.I(8) {
		t.Errorf("advance = %v, want %v", advance, fixed.I(8))
	}

	if mask.ColorModel() != color.Alpha16Model {
		t.Error("mask color model is not Alpha16")
	}
	if mask.At(3, 0) != color.Opaque {
		t.Error("mask At(3, 0) = transparent, want opaque")
	}
	if mask.At(0, 0) != color.Transparent {
		t.Error("mask At(0, 0) = opaque, want transparent")
	}
}

func TestFaceGlyphBounds(t *testing.T) {
	f := openTestFont(t, 8, TierFull, []rune{'A'}, nil, nil)

	bounds, advance, ok := f.Face().GlyphBounds('A')
	if !ok {
		t.Fatal("GlyphBounds() not ok")
	}
	if want := fixed.R(0, -8, 8, 0); bounds != want {
		t.Errorf("bounds = %v, want %v", bounds, want)
	}
	if advance != fixed.I(8) {
		t.Errorf("advance = %v, want %v", advance, fixed.I(8))
	}

	adv, ok := f.Face().GlyphAdvance('A')
	if !ok || adv != fixed.I(8) {
		t.Errorf("GlyphAdvance() = %v, %v, want %v, true", adv, ok, fixed.I(8))
	}

	if k := f.Face().Kern('A', 'A'); k != 0 {
		t.Errorf("Kern() = %v, want 0", k)
	}
}

func TestFaceDrawString(t *testing.T) {
	f := openTestFont(t, 8, TierFull, []rune{'A'}, map[rune][]byte{'A': glyphA}, nil)

	dst := image.NewRGBA(image.Rect(0, 0, 16, 8))
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: f.Face(),
		Dot:  fixed.P(0, 8),
	}
	d.DrawString("AA")

	// Row 0 of the glyph has pixels 3 and 4 set.
	if r, _, _, _ := dst.At(3, 0).RGBA(); r != 0xFFFF {
		t.Error("pixel (3, 0) not painted")
	}
	if _, _, _, a := dst.At(0, 0).RGBA(); a != 0 {
		t.Error("pixel (0, 0) painted, want untouched")
	}

	// The second cell starts one advance to the right.
	if r, _, _, _ := dst.At(11, 0).RGBA(); r != 0xFFFF {
		t.Error("pixel (11, 0) not painted")
	}

	if d.Dot.X != fixed.I(16) {
		t.Errorf("Dot.X = %v, want %v", d.Dot.X, fixed.I(16))
	}
}
