// Package st7735 controls an ST7735 TFT display via SPI.
//
// The ST7735 is a 16-bit color controller for panels up to 132x162 pixels,
// commonly found as 128x160, 128x128 and 80x160 modules. This driver
// implements the display.Drawer interface from periph.io and consumes
// RGB565 pixel data.
package st7735

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"

	"github.com/funnygeeker/easydisplay/rgb565"
)

// ST7735 registers used by this driver.
const (
	cmdSWRESET = 0x01 // Software reset
	cmdSLPIN   = 0x10 // Sleep in and booster off
	cmdSLPOUT  = 0x11 // Sleep out and booster on
	cmdNORON   = 0x13 // Normal display mode on
	cmdINVOFF  = 0x20 // Display inversion off
	cmdINVON   = 0x21 // Display inversion on
	cmdDISPOFF = 0x28 // Display off
	cmdDISPON  = 0x29 // Display on
	cmdCASET   = 0x2A // Column address set
	cmdRASET   = 0x2B // Row address set
	cmdRAMWR   = 0x2C // Memory write
	cmdMADCTL  = 0x36 // Memory data access control
	cmdCOLMOD  = 0x3A // Interface pixel format
	cmdFRMCTR1 = 0xB1 // Frame rate control, normal mode
	cmdFRMCTR2 = 0xB2 // Frame rate control, idle mode
	cmdFRMCTR3 = 0xB3 // Frame rate control, partial mode
	cmdINVCTR  = 0xB4 // Display inversion control
	cmdPWCTR1  = 0xC0 // Power control 1
	cmdPWCTR2  = 0xC1 // Power control 2
	cmdPWCTR3  = 0xC2 // Power control 3
	cmdPWCTR4  = 0xC3 // Power control 4
	cmdPWCTR5  = 0xC4 // Power control 5
	cmdVMCTR1  = 0xC5 // VCOM control
	cmdGMCTRP1 = 0xE0 // Positive gamma correction
	cmdGMCTRN1 = 0xE1 // Negative gamma correction
)

// The controller RAM is 132 columns by 162 rows; panels map a window of it.
const ramSize = 162

// Opts is the configuration for the ST7735 display.
type Opts struct {
	// Display dimensions in pixels as seen after rotation.
	W int // Width (default: 128)
	H int // Height (default: 160)

	// Rotation selects the panel orientation in 90 degree steps (0-3).
	Rotation int

	// XOffset and YOffset skip the controller RAM columns and rows the
	// panel glass is not bonded to. 80x160 modules typically need 26 and 1.
	XOffset int
	YOffset int

	// BGR must be set when the panel wires its subpixels in BGR order,
	// which most modules do.
	BGR bool

	// Invert enables panel inversion, needed by some 80x160 glass.
	Invert bool

	// Optional hardware reset pin
	RST gpio.PinIO // Reset pin (optional, nil if not used)
}

// Dev is the device handle for the ST7735 display.
type Dev struct {
	// Communication
	c   conn.Conn   // SPI connection
	dc  gpio.PinOut // Data/Command pin
	rst gpio.PinIO  // Reset pin (optional)

	// Display geometry
	rect image.Rectangle
	xOff int
	yOff int

	// State
	halted bool
}

// NewSPI creates a new ST7735 device connected via SPI.
//
// The SPI port is configured for 10MHz, Mode0 (CPOL=0, CPHA=0), 8-bit
// transfers. The dc (Data/Command) GPIO pin must be provided and configured
// as an output.
//
// opts can be nil to use defaults (128x160 display).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	// Apply defaults and validate options
	if opts == nil {
		opts = &Opts{W: 128, H: 160}
	}

	if opts.W <= 0 || opts.H <= 0 {
		return nil, errors.New("st7735: width and height must be positive")
	}
	if opts.XOffset < 0 || opts.YOffset < 0 {
		return nil, errors.New("st7735: offsets must not be negative")
	}
	if opts.W+opts.XOffset > ramSize || opts.H+opts.YOffset > ramSize {
		return nil, errors.New("st7735: window exceeds controller RAM")
	}
	if opts.Rotation < 0 || opts.Rotation > 3 {
		return nil, errors.New("st7735: rotation must be between 0 and 3")
	}

	// The ST7735 tops out around 15MHz on writes, 10MHz is conservative.
	c, err := p.Connect(10*1000000, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	d := &Dev{
		c:    c,
		dc:   dc,
		rst:  opts.RST,
		rect: image.Rect(0, 0, opts.W, opts.H),
		xOff: opts.XOffset,
		yOff: opts.YOffset,
	}

	if err := d.init(opts); err != nil {
		return nil, err
	}

	return d, nil
}

// init sends the initialization sequence to the display.
func (d *Dev) init(opts *Opts) error {
	// Hardware reset sequence (if RST pin is provided)
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("st7735: failed to pull RST low: %w", err)
		}
		time.Sleep(50 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("st7735: failed to pull RST high: %w", err)
		}
		time.Sleep(150 * time.Millisecond)
	}

	madctl := byte(0x00)
	switch opts.Rotation {
	case 1:
		madctl = 0xA0
	case 2:
		madctl = 0xC0
	case 3:
		madctl = 0x60
	}
	if opts.BGR {
		madctl |= 0x08
	}

	inversion := byte(cmdINVOFF)
	if opts.Invert {
		inversion = cmdINVON
	}

	seq := []struct {
		cmd   byte
		data  []byte
		delay time.Duration
	}{
		{cmdSWRESET, nil, 150 * time.Millisecond},
		{cmdSLPOUT, nil, 120 * time.Millisecond},
		{cmdFRMCTR1, []byte{0x01, 0x2C, 0x2D}, 0},
		{cmdFRMCTR2, []byte{0x01, 0x2C, 0x2D}, 0},
		{cmdFRMCTR3, []byte{0x01, 0x2C, 0x2D, 0x01, 0x2C, 0x2D}, 0},
		{cmdINVCTR, []byte{0x07}, 0},
		{cmdPWCTR1, []byte{0xA2, 0x02, 0x84}, 0},
		{cmdPWCTR2, []byte{0xC5}, 0},
		{cmdPWCTR3, []byte{0x0A, 0x00}, 0},
		{cmdPWCTR4, []byte{0x8A, 0x2A}, 0},
		{cmdPWCTR5, []byte{0x8A, 0xEE}, 0},
		{cmdVMCTR1, []byte{0x0E}, 0},
		{inversion, nil, 0},
		{cmdMADCTL, []byte{madctl}, 0},
		{cmdCOLMOD, []byte{0x05}, 0}, // 16 bits per pixel
		{cmdGMCTRP1, []byte{
			0x02, 0x1C, 0x07, 0x12, 0x37, 0x32, 0x29, 0x2D,
			0x29, 0x25, 0x2B, 0x39, 0x00, 0x01, 0x03, 0x10}, 0},
		{cmdGMCTRN1, []byte{
			0x03, 0x1D, 0x07, 0x06, 0x2E, 0x2C, 0x29, 0x2D,
			0x2E, 0x2E, 0x37, 0x3F, 0x00, 0x00, 0x02, 0x10}, 0},
		{cmdNORON, nil, 10 * time.Millisecond},
		{cmdDISPON, nil, 100 * time.Millisecond},
	}
	for _, s := range seq {
		if err := d.sendCommand(s.cmd); err != nil {
			return err
		}
		if len(s.data) > 0 {
			if err := d.sendData(s.data); err != nil {
				return err
			}
		}
		if s.delay > 0 {
			time.Sleep(s.delay)
		}
	}

	// Clear panel RAM, which powers up with random pixels.
	return d.Clear(color.Black)
}

// sendCommand sends a single command byte.
func (d *Dev) sendCommand(cmd byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx([]byte{cmd}, nil)
}

// sendData sends a slice of data bytes.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(data, nil)
}

// writeRect writes RGB565 pixel data to a rectangular region of the panel.
func (d *Dev) writeRect(r image.Rectangle, pixels []byte) error {
	var win [4]byte
	binary.BigEndian.PutUint16(win[0:2], uint16(r.Min.X+d.xOff))
	binary.BigEndian.PutUint16(win[2:4], uint16(r.Max.X-1+d.xOff))
	if err := d.sendCommand(cmdCASET); err != nil {
		return err
	}
	if err := d.sendData(win[:]); err != nil {
		return err
	}
	binary.BigEndian.PutUint16(win[0:2], uint16(r.Min.Y+d.yOff))
	binary.BigEndian.PutUint16(win[2:4], uint16(r.Max.Y-1+d.yOff))
	if err := d.sendCommand(cmdRASET); err != nil {
		return err
	}
	if err := d.sendData(win[:]); err != nil {
		return err
	}
	if err := d.sendCommand(cmdRAMWR); err != nil {
		return err
	}
	return d.sendData(pixels)
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes a full frame of raw big-endian RGB565 pixel data.
// The data must be exactly d.Bounds().Dx() * d.Bounds().Dy() * 2 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, errors.New("st7735: halted")
	}
	if len(pixels) != d.rect.Dx()*d.rect.Dy()*2 {
		return 0, errors.New("st7735: invalid buffer size")
	}
	if err := d.writeRect(d.rect, pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Draw draws an image onto the display. The dst rectangle specifies the
// destination region on the panel, cropped against its bounds; sp is the
// corresponding origin within src.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errors.New("st7735: halted")
	}

	clipped := dst.Intersect(d.rect)
	if clipped.Empty() {
		return nil
	}
	sp = sp.Add(clipped.Min.Sub(dst.Min))
	w, h := clipped.Dx(), clipped.Dy()

	buf := make([]byte, w*h*2)

	// Fast path: RGB565 sources are already in wire layout.
	if img, ok := src.(*rgb565.Image); ok {
		for y := 0; y < h; y++ {
			off := (sp.Y + y - img.Rect.Min.Y) * img.Stride
			off += (sp.X - img.Rect.Min.X) * 2
			copy(buf[y*w*2:(y+1)*w*2], img.Pix[off:off+w*2])
		}
		return d.writeRect(clipped, buf)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := rgb565.Model.Convert(src.At(sp.X+x, sp.Y+y)).(rgb565.Color)
			binary.BigEndian.PutUint16(buf[(y*w+x)*2:], uint16(px))
		}
	}
	return d.writeRect(clipped, buf)
}

// Clear fills the whole panel with c.
func (d *Dev) Clear(c color.Color) error {
	if d.halted {
		return errors.New("st7735: halted")
	}
	px := rgb565.Model.Convert(c).(rgb565.Color)
	buf := make([]byte, d.rect.Dx()*d.rect.Dy()*2)
	for i := 0; i < len(buf); i += 2 {
		binary.BigEndian.PutUint16(buf[i:], uint16(px))
	}
	return d.writeRect(d.rect, buf)
}

// Invert inverts the panel colors.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errors.New("st7735: halted")
	}
	cmd := byte(cmdINVOFF)
	if invert {
		cmd = cmdINVON
	}
	return d.sendCommand(cmd)
}

// Halt turns the display off and puts it to sleep.
// After calling Halt, the display will not respond to further commands
// until the device is re-initialized.
func (d *Dev) Halt() error {
	d.halted = true
	if err := d.sendCommand(cmdDISPOFF); err != nil {
		return err
	}
	return d.sendCommand(cmdSLPIN)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7735.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
