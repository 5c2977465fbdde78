package rgb565

import (
	"encoding/binary"
	"image"
	"image/color"
)

// Color represents a 16-bit RGB565 color.
// Bits 15-11 are red, bits 10-5 are green, bits 4-0 are blue.
type Color uint16

// From888 packs 8-bit RGB channels into an RGB565 color.
func From888(r, g, b uint8) Color {
	return Color(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3)
}

// RGBA converts the RGB565 color to standard RGBA.
// Each channel is expanded to 16 bits by replicating its high bits.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c>>11) & 0x1F
	g = uint32(c>>5) & 0x3F
	b = uint32(c) & 0x1F
	r = r<<11 | r<<6 | r<<1 | r>>4
	g = g<<10 | g<<4 | g>>2
	b = b<<11 | b<<6 | b<<1 | b>>4
	return r, g, b, 0xFFFF
}

// toColor converts any color.Color to an RGB565 Color.
func toColor(c color.Color) color.Color {
	if c, ok := c.(Color); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return Color(uint16(r>>11)<<11 | uint16(g>>10)<<5 | uint16(b>>11))
}

// Model converts colors to Color.
var Model = color.ModelFunc(toColor)

// Image is an RGB565 image backed by big-endian pixel data.
// The Pix layout matches the wire format of common color panels, so the
// buffer can be written to a controller without conversion.
type Image struct {
	Pix    []byte          // Pixel data (2 bytes per pixel, big-endian)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// New creates a new Image with the specified bounds.
func New(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Image{Rect: r}
	}

	stride := w * 2
	return &Image{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	return p.ColorAt(x, y)
}

// ColorAt returns the RGB565 color of the pixel at (x, y).
func (p *Image) ColorAt(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return 0
	}
	offset := p.pixOffset(x, y)
	return Color(binary.BigEndian.Uint16(p.Pix[offset:]))
}

// Set sets the color of the pixel at (x, y).
func (p *Image) Set(x, y int, c color.Color) {
	p.SetColor(x, y, Model.Convert(c).(Color))
}

// SetColor sets the RGB565 color of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *Image) SetColor(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset := p.pixOffset(x, y)
	binary.BigEndian.PutUint16(p.Pix[offset:], uint16(c))
}

// pixOffset returns the byte offset of the pixel at (x, y).
func (p *Image) pixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}
