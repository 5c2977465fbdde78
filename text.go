package easydisplay

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/funnygeeker/easydisplay/image1bit"
)

// Text draws s with the top left corner of the first glyph cell at (x, y).
//
// The cursor advances one glyph cell per code point, half a cell for code
// points below U+0080 when half width rendering is on. '\n' returns the
// cursor to x one line down, '\t' advances it to the next cell boundary
// relative to x, and other code points below U+0010 are skipped. With auto
// wrap on, a glyph that would cross the right panel edge moves the cursor
// to the start of the next line instead; with it off the glyph is clipped.
//
// Text fails with ErrConfig when the resolved style has no font.
func (d *Display) Text(s string, x, y int, opts ...Option) error {
	st := d.apply(opts)
	size, err := glyphSize(&st)
	if err != nil {
		return err
	}
	if st.clear {
		if err := d.clearWith(&st); err != nil {
			return err
		}
	}

	lineH := size + st.lineSpacing
	cx, cy := x, y
	for _, r := range s {
		switch {
		case r == '\n':
			cx, cy = x, cy+lineH
			continue
		case r == '\t':
			cx = (cx/size+1)*size + x%size
			continue
		case r < 0x10:
			continue
		}
		gw := size
		if st.halfWidth && r < 0x80 {
			gw = size / 2
		}
		if st.autoWrap && cx+gw > d.bounds.Max.X {
			cx, cy = x, cy+lineH
		}
		// Cells past the panel edge are dropped without a glyph lookup.
		if cx > d.bounds.Max.X || cy > d.bounds.Max.Y {
			continue
		}
		if err := d.drawGlyph(r, cx, cy, size, gw, &st); err != nil {
			return err
		}
		cx += gw
	}
	return d.finish(&st)
}

// MeasureText returns the width and height in pixels the text would cover
// if drawn at the panel origin with the same options, without drawing.
func (d *Display) MeasureText(s string, opts ...Option) (w, h int, err error) {
	st := d.apply(opts)
	size, err := glyphSize(&st)
	if err != nil {
		return 0, 0, err
	}

	lineH := size + st.lineSpacing
	cx, cy := 0, 0
	for _, r := range s {
		switch {
		case r == '\n':
			cx, cy = 0, cy+lineH
			continue
		case r == '\t':
			cx = (cx/size + 1) * size
			continue
		case r < 0x10:
			continue
		}
		gw := size
		if st.halfWidth && r < 0x80 {
			gw = size / 2
		}
		if st.autoWrap && cx+gw > d.bounds.Max.X {
			cx, cy = 0, cy+lineH
		}
		if right := cx + gw; right > w {
			w = right
		}
		if bottom := cy + size; bottom > h {
			h = bottom
		}
		cx += gw
	}
	return w, h, nil
}

// glyphSize resolves the effective glyph cell size of a style.
func glyphSize(st *style) (int, error) {
	if st.font == nil {
		return 0, fmt.Errorf("%w: no font configured", ErrConfig)
	}
	if st.size < 0 {
		return 0, fmt.Errorf("%w: glyph size %d", ErrOutOfRange, st.size)
	}
	if st.size == 0 {
		return st.font.Height(), nil
	}
	return st.size, nil
}

// drawGlyph renders one glyph in a size sized cell, cropped to gw columns.
func (d *Display) drawGlyph(r rune, x, y, size, gw int, st *style) error {
	g := st.font.Glyph(r)
	src := g.Bitmap()
	if size != g.Height() {
		src = scaleBits(src, size, size)
	}
	return d.drawBits(src, image.Rect(0, 0, gw, size), image.Point{X: x, Y: y}, st)
}

// scaleBits resamples a 1-bit image to w by h. Nearest neighbor keeps every
// output pixel a pure source bit.
func scaleBits(src *image1bit.HorizontalMSB, w, h int) *image1bit.HorizontalMSB {
	dst := image1bit.NewHorizontalMSB(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Rect, src, src.Bounds(), xdraw.Src, nil)
	return dst
}
