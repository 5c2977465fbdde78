package easydisplay

import (
	"image"
	"image/color"

	"github.com/funnygeeker/easydisplay/image1bit"
	"github.com/funnygeeker/easydisplay/rgb565"
)

// emit pushes one pixel block at the device, cropping it against the panel
// bounds. Blocks wholly outside the panel produce no device call.
func (d *Display) emit(r image.Rectangle, src image.Image) error {
	clipped := r.Intersect(d.bounds)
	if clipped.Empty() {
		return nil
	}
	sp := src.Bounds().Min.Add(clipped.Min.Sub(r.Min))
	return d.drawer.Draw(clipped, src, sp)
}

// fill pushes one uniform block of c covering r.
func (d *Display) fill(r image.Rectangle, c color.Color, st *style) error {
	clipped := r.Intersect(d.bounds)
	if clipped.Empty() {
		return nil
	}
	w, h := clipped.Dx(), clipped.Dy()
	if st.mode == ModeRGB565 {
		blk := rgb565.New(image.Rect(0, 0, w, h))
		px := rgb565.Model.Convert(c).(rgb565.Color)
		for x := 0; x < w; x++ {
			blk.SetColor(x, 0, px)
		}
		for y := 1; y < h; y++ {
			copy(blk.Pix[y*blk.Stride:(y+1)*blk.Stride], blk.Pix[:blk.Stride])
		}
		return d.drawer.Draw(clipped, blk, image.Point{})
	}
	blk := image1bit.NewHorizontalMSB(image.Rect(0, 0, w, h))
	if image1bit.BitModel.Convert(c).(image1bit.Bit) {
		for i := range blk.Pix {
			blk.Pix[i] = 0xFF
		}
	}
	return d.drawer.Draw(clipped, blk, image.Point{})
}

// drawBits renders the sr region of a 1-bit source at the panel point at.
//
// Set bits map to the foreground color and cleared bits to the background,
// with inversion flipping which bit value counts as foreground. A
// transparent background decomposes the source into horizontal foreground
// runs, each emitted as its own uniform block in left to right, top to
// bottom order, so background pixels stay untouched.
func (d *Display) drawBits(src *image1bit.HorizontalMSB, sr image.Rectangle, at image.Point, st *style) error {
	sr = sr.Intersect(src.Bounds())
	w, h := sr.Dx(), sr.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	fg := image1bit.On
	if st.invert {
		fg = image1bit.Off
	}

	if transparent(st.background) {
		for y := 0; y < h; y++ {
			for x := 0; x < w; {
				if src.BitAt(sr.Min.X+x, sr.Min.Y+y) != fg {
					x++
					continue
				}
				x0 := x
				for x < w && src.BitAt(sr.Min.X+x, sr.Min.Y+y) == fg {
					x++
				}
				run := image.Rect(at.X+x0, at.Y+y, at.X+x, at.Y+y+1)
				if err := d.fill(run, st.color, st); err != nil {
					return err
				}
			}
		}
		return nil
	}

	dst := image.Rect(at.X, at.Y, at.X+w, at.Y+h)
	if st.mode == ModeRGB565 {
		blk := rgb565.New(image.Rect(0, 0, w, h))
		fgPx := rgb565.Model.Convert(st.color).(rgb565.Color)
		bgPx := rgb565.Model.Convert(st.background).(rgb565.Color)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if src.BitAt(sr.Min.X+x, sr.Min.Y+y) == fg {
					blk.SetColor(x, y, fgPx)
				} else {
					blk.SetColor(x, y, bgPx)
				}
			}
		}
		return d.emit(dst, blk)
	}
	blk := image1bit.NewHorizontalMSB(image.Rect(0, 0, w, h))
	fgBit := image1bit.BitModel.Convert(st.color).(image1bit.Bit)
	bgBit := image1bit.BitModel.Convert(st.background).(image1bit.Bit)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if src.BitAt(sr.Min.X+x, sr.Min.Y+y) == fg {
				blk.SetBit(x, y, fgBit)
			} else {
				blk.SetBit(x, y, bgBit)
			}
		}
	}
	return d.emit(dst, blk)
}
