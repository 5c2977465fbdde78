package easydisplay

import (
	"fmt"
	"image"
	"io"

	"github.com/funnygeeker/easydisplay/bmp"
	"github.com/funnygeeker/easydisplay/dat"
	"github.com/funnygeeker/easydisplay/image1bit"
	"github.com/funnygeeker/easydisplay/pbm"
	"github.com/funnygeeker/easydisplay/rgb565"
)

// batchRows bounds how many decoded rows accumulate into one pixel block,
// keeping memory proportional to a few rows for arbitrarily tall images.
const batchRows = 8

// DrawBMP decodes a 24-bit BMP image from r and draws it with its top left
// corner at (x, y). Oversized images are clipped to the panel. On a
// monochrome session pixels are thresholded and mapped through the
// foreground and background colors.
func (d *Display) DrawBMP(r io.ReadSeeker, x, y int, opts ...Option) error {
	st := d.apply(opts)
	dec, err := bmp.NewDecoder(r)
	if err != nil {
		return err
	}
	if st.clear {
		if err := d.clearWith(&st); err != nil {
			return err
		}
	}
	if err := d.drawRGBRows(x, y, dec.Width(), dec.Height(), &st, dec.ReadRow); err != nil {
		return err
	}
	return d.finish(&st)
}

// DrawPBM decodes a binary netpbm image from r and draws it with its top
// left corner at (x, y). P4 bitmaps render set bits in the foreground
// color, like text; P6 pixmaps render like BMP images.
func (d *Display) DrawPBM(r io.Reader, x, y int, opts ...Option) error {
	st := d.apply(opts)
	dec, err := pbm.NewDecoder(r)
	if err != nil {
		return err
	}
	if st.clear {
		if err := d.clearWith(&st); err != nil {
			return err
		}
	}
	if dec.Format() == pbm.P4 {
		err = d.drawBitRows(x, y, dec.Width(), dec.Height(), &st, dec.ReadRow)
	} else {
		err = d.drawRGBRows(x, y, dec.Width(), dec.Height(), &st, dec.ReadRow)
	}
	if err != nil {
		return err
	}
	return d.finish(&st)
}

// DrawDAT decodes an EasyDisplay V1 screen dump from r and draws it with
// its top left corner at (x, y). Dumps carry raw RGB565 pixels, so they
// only render on RGB565 sessions; anything else fails with ErrConfig.
func (d *Display) DrawDAT(r io.Reader, x, y int, opts ...Option) error {
	st := d.apply(opts)
	if st.mode != ModeRGB565 {
		return fmt.Errorf("%w: dat dumps are RGB565, session mode is %s", ErrConfig, st.mode)
	}
	dec, err := dat.NewDecoder(r)
	if err != nil {
		return err
	}
	if st.clear {
		if err := d.clearWith(&st); err != nil {
			return err
		}
	}
	if err := d.drawDATRows(x, y, dec.Width(), dec.Height(), &st, dec.ReadRow); err != nil {
		return err
	}
	return d.finish(&st)
}

// DrawImage draws an arbitrary image with its top left corner at (x, y),
// converting pixels to the session mode. Alpha is ignored.
func (d *Display) DrawImage(img image.Image, x, y int, opts ...Option) error {
	st := d.apply(opts)
	if st.clear {
		if err := d.clearWith(&st); err != nil {
			return err
		}
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	row := make([]byte, w*3)
	yy := 0
	next := func() ([]byte, error) {
		for xx := 0; xx < w; xx++ {
			r16, g16, b16, _ := img.At(b.Min.X+xx, b.Min.Y+yy).RGBA()
			row[xx*3+0] = uint8(r16 >> 8)
			row[xx*3+1] = uint8(g16 >> 8)
			row[xx*3+2] = uint8(b16 >> 8)
		}
		yy++
		return row, nil
	}
	if err := d.drawRGBRows(x, y, w, h, &st, next); err != nil {
		return err
	}
	return d.finish(&st)
}

// drawRGBRows streams RGB triplet rows into batched blocks at (x, y).
// Batches with no visible pixel still consume their rows but produce no
// device call.
func (d *Display) drawRGBRows(x, y, w, h int, st *style, next func() ([]byte, error)) error {
	for y0 := 0; y0 < h; y0 += batchRows {
		bh := h - y0
		if bh > batchRows {
			bh = batchRows
		}
		dst := image.Rect(x, y+y0, x+w, y+y0+bh)
		if !dst.Overlaps(d.bounds) {
			for yy := 0; yy < bh; yy++ {
				if _, err := next(); err != nil {
					return err
				}
			}
			continue
		}

		if st.mode == ModeRGB565 {
			blk := rgb565.New(image.Rect(0, 0, w, bh))
			for yy := 0; yy < bh; yy++ {
				row, err := next()
				if err != nil {
					return err
				}
				for xx := 0; xx < w; xx++ {
					r8, g8, b8 := row[xx*3], row[xx*3+1], row[xx*3+2]
					if st.invert {
						r8, g8, b8 = 255-r8, 255-g8, 255-b8
					}
					blk.SetColor(xx, yy, rgb565.From888(r8, g8, b8))
				}
			}
			if err := d.emit(dst, blk); err != nil {
				return err
			}
			continue
		}

		// Monochrome sessions threshold each pixel and then treat the
		// batch like any 1-bit source, so the foreground and background
		// colors and a transparent background apply as for text.
		blk := image1bit.NewHorizontalMSB(image.Rect(0, 0, w, bh))
		for yy := 0; yy < bh; yy++ {
			row, err := next()
			if err != nil {
				return err
			}
			for xx := 0; xx < w; xx++ {
				r8, g8, b8 := row[xx*3], row[xx*3+1], row[xx*3+2]
				if st.invert {
					r8, g8, b8 = 255-r8, 255-g8, 255-b8
				}
				if (int(r8)+int(g8)+int(b8))/3 >= 127 {
					blk.SetBit(xx, yy, image1bit.On)
				}
			}
		}
		flat := *st
		flat.invert = false // the channel negation above already inverted
		if err := d.drawBits(blk, blk.Rect, dst.Min, &flat); err != nil {
			return err
		}
	}
	return nil
}

// drawBitRows streams packed 1-bit rows into batched blocks at (x, y).
func (d *Display) drawBitRows(x, y, w, h int, st *style, next func() ([]byte, error)) error {
	stride := (w + 7) / 8
	for y0 := 0; y0 < h; y0 += batchRows {
		bh := h - y0
		if bh > batchRows {
			bh = batchRows
		}
		blk := image1bit.NewHorizontalMSB(image.Rect(0, 0, w, bh))
		for yy := 0; yy < bh; yy++ {
			row, err := next()
			if err != nil {
				return err
			}
			copy(blk.Pix[yy*stride:(yy+1)*stride], row)
		}
		if err := d.drawBits(blk, blk.Rect, image.Point{X: x, Y: y + y0}, st); err != nil {
			return err
		}
	}
	return nil
}

// drawDATRows streams raw RGB565 rows into batched blocks at (x, y).
func (d *Display) drawDATRows(x, y, w, h int, st *style, next func() ([]byte, error)) error {
	for y0 := 0; y0 < h; y0 += batchRows {
		bh := h - y0
		if bh > batchRows {
			bh = batchRows
		}
		dst := image.Rect(x, y+y0, x+w, y+y0+bh)
		if !dst.Overlaps(d.bounds) {
			for yy := 0; yy < bh; yy++ {
				if _, err := next(); err != nil {
					return err
				}
			}
			continue
		}
		blk := rgb565.New(image.Rect(0, 0, w, bh))
		for yy := 0; yy < bh; yy++ {
			row, err := next()
			if err != nil {
				return err
			}
			dstRow := blk.Pix[yy*blk.Stride : (yy+1)*blk.Stride]
			copy(dstRow, row)
			if st.invert {
				// Complementing a 565 word complements each channel.
				for i := range dstRow {
					dstRow[i] = ^dstRow[i]
				}
			}
		}
		if err := d.emit(dst, blk); err != nil {
			return err
		}
	}
	return nil
}
