// Package framebuffer provides in-memory display devices.
//
// A Device accumulates drawn blocks in a RAM frame buffer and pushes the
// whole frame through a flush function, the way buffered panel drivers
// work: cheap pixel writes, one bulk transfer. The buffer layout is the
// wire format of the selected pixel mode, so a flush can hand the bytes to
// a controller unchanged. With a nil flush function a Device is a pure
// in-memory render target, which also makes it a convenient test double
// for code drawing to a display.
package framebuffer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/funnygeeker/easydisplay/image1bit"
	"github.com/funnygeeker/easydisplay/rgb565"
)

// FlushFunc pushes one full frame to the underlying output. The slice is
// the device's live buffer and must not be retained.
type FlushFunc func(pix []byte) error

// Device is a buffered display.
//
// It implements the display.Drawer interface from periph.io/x/conn/v3,
// plus Clear and Flush.
type Device struct {
	buf   draw.Image
	pix   []byte
	model color.Model
	rect  image.Rectangle
	flush FlushFunc
	desc  string
}

// NewMono creates a w by h 1-bit device. Rows are packed eight pixels per
// byte, most significant bit leftmost.
func NewMono(w, h int, flush FlushFunc) (*Device, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("framebuffer: invalid geometry %dx%d", w, h)
	}
	img := image1bit.NewHorizontalMSB(image.Rect(0, 0, w, h))
	return &Device{
		buf:   img,
		pix:   img.Pix,
		model: image1bit.BitModel,
		rect:  img.Rect,
		flush: flush,
		desc:  fmt.Sprintf("framebuffer.Device{%dx%d mono}", w, h),
	}, nil
}

// NewRGB565 creates a w by h RGB565 device. Pixels are stored big-endian,
// two bytes each.
func NewRGB565(w, h int, flush FlushFunc) (*Device, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("framebuffer: invalid geometry %dx%d", w, h)
	}
	img := rgb565.New(image.Rect(0, 0, w, h))
	return &Device{
		buf:   img,
		pix:   img.Pix,
		model: rgb565.Model,
		rect:  img.Rect,
		flush: flush,
		desc:  fmt.Sprintf("framebuffer.Device{%dx%d rgb565}", w, h),
	}, nil
}

// String implements conn.Resource.
func (d *Device) String() string {
	return d.desc
}

// Halt clears the frame buffer. It does not flush.
func (d *Device) Halt() error {
	for i := range d.pix {
		d.pix[i] = 0
	}
	return nil
}

// ColorModel implements display.Drawer.
func (d *Device) ColorModel() color.Model {
	return d.model
}

// Bounds implements display.Drawer.
func (d *Device) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer. The block is cropped against the device
// bounds.
func (d *Device) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if src == nil {
		return errors.New("framebuffer: nil source image")
	}
	clipped := r.Intersect(d.rect)
	if clipped.Empty() {
		return nil
	}
	draw.Draw(d.buf, clipped, src, sp.Add(clipped.Min.Sub(r.Min)), draw.Src)
	return nil
}

// Clear fills the frame buffer with c.
func (d *Device) Clear(c color.Color) error {
	draw.Draw(d.buf, d.rect, image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

// Flush pushes the frame buffer through the flush function. It is a no-op
// without one.
func (d *Device) Flush() error {
	if d.flush == nil {
		return nil
	}
	return d.flush(d.pix)
}

// Pix returns the live frame buffer bytes in wire layout.
func (d *Device) Pix() []byte {
	return d.pix
}

// Image returns the frame buffer as an image for inspection. The pixels
// are live, not a copy.
func (d *Device) Image() image.Image {
	return d.buf
}
