// Package x11screen renders display output into an X11 window.
//
// It implements the same display.Drawer interface as the hardware drivers,
// so rendering code can be pointed at a desktop window instead of a panel.
// Each pixel can be magnified by an integer scale factor, which makes small
// panels legible on a desktop monitor.
package x11screen

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/funnygeeker/easydisplay/image1bit"
	"github.com/funnygeeker/easydisplay/rgb565"
)

// maxPutBytes caps the payload of a single PutImage request, staying well
// under the X11 base request size limit.
const maxPutBytes = 1 << 16

// Opts is the configuration for the window.
type Opts struct {
	// Emulated panel dimensions in pixels.
	W int // Width (default: 128)
	H int // Height (default: 160)

	// Scale magnifies each panel pixel to a Scale x Scale block (default: 1).
	Scale int

	// Mono emulates a 1-bit panel instead of an RGB565 one.
	Mono bool

	// Title is the window title (default: "easydisplay").
	Title string
}

// Dev is an emulated display backed by an X11 window.
type Dev struct {
	xu     *xgbutil.XUtil
	window xproto.Window
	gc     xproto.Gcontext
	depth  byte

	rect  image.Rectangle
	scale int
	model color.Model
	buf   []uint32 // 0x00RRGGBB, one entry per panel pixel

	halted bool
}

// New connects to the X server named by $DISPLAY and opens a window
// emulating a panel of the given dimensions.
//
// opts can be nil to use defaults (128x160, scale 1, RGB565).
func New(opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 128, H: 160}
	}
	if opts.W <= 0 || opts.H <= 0 {
		return nil, errors.New("x11screen: width and height must be positive")
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	if scale < 1 {
		return nil, errors.New("x11screen: scale must be positive")
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11screen: cannot connect to X server: %w", err)
	}

	setup := xproto.Setup(xu.Conn())
	screen := setup.DefaultScreen(xu.Conn())

	wid, err := xproto.NewWindowId(xu.Conn())
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}
	xproto.CreateWindow(
		xu.Conn(),
		screen.RootDepth,
		wid,
		screen.Root,
		0, 0,
		uint16(opts.W*scale),
		uint16(opts.H*scale),
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{
			screen.BlackPixel,
			xproto.EventMaskExposure | xproto.EventMaskKeyPress,
		},
	)

	gc, err := xproto.NewGcontextId(xu.Conn())
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}
	xproto.CreateGC(
		xu.Conn(),
		gc,
		xproto.Drawable(wid),
		xproto.GcForeground|xproto.GcBackground,
		[]uint32{
			screen.BlackPixel,
			screen.WhitePixel,
		},
	)

	title := opts.Title
	if title == "" {
		title = "easydisplay"
	}
	// The title is cosmetic, a window manager that rejects it is harmless.
	_ = ewmh.WmNameSet(xu, wid, title)

	xproto.MapWindow(xu.Conn(), wid)

	model := color.Model(rgb565.Model)
	if opts.Mono {
		model = image1bit.BitModel
	}

	return &Dev{
		xu:     xu,
		window: wid,
		gc:     gc,
		depth:  screen.RootDepth,
		rect:   image.Rect(0, 0, opts.W, opts.H),
		scale:  scale,
		model:  model,
		buf:    make([]uint32, opts.W*opts.H),
	}, nil
}

// ColorModel returns the color model of the emulated panel.
func (d *Dev) ColorModel() color.Model {
	return d.model
}

// Bounds returns the bounds of the emulated panel.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw draws an image onto the emulated panel and updates the window.
// dst is cropped against the panel bounds; sp is the corresponding origin
// within src.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errors.New("x11screen: halted")
	}

	clipped := dst.Intersect(d.rect)
	if clipped.Empty() {
		return nil
	}
	sp = sp.Add(clipped.Min.Sub(dst.Min))

	w := d.rect.Dx()
	for y := 0; y < clipped.Dy(); y++ {
		for x := 0; x < clipped.Dx(); x++ {
			r, g, b, _ := d.model.Convert(src.At(sp.X+x, sp.Y+y)).RGBA()
			px := (r >> 8 << 16) | (g >> 8 << 8) | b>>8
			d.buf[(clipped.Min.Y+y)*w+clipped.Min.X+x] = px
		}
	}

	d.push(clipped)
	return nil
}

// Clear fills the emulated panel with c and updates the window.
func (d *Dev) Clear(c color.Color) error {
	if d.halted {
		return errors.New("x11screen: halted")
	}
	r, g, b, _ := d.model.Convert(c).RGBA()
	px := (r >> 8 << 16) | (g >> 8 << 8) | b>>8
	for i := range d.buf {
		d.buf[i] = px
	}
	d.push(d.rect)
	return nil
}

// Flush retransmits the whole panel to the window. Call it after an
// expose event to repair the window contents.
func (d *Dev) Flush() error {
	if d.halted {
		return errors.New("x11screen: halted")
	}
	d.push(d.rect)
	d.xu.Conn().Sync()
	return nil
}

// WaitForEvent blocks until the next event arrives from the X server.
// Callers typically call Flush on expose events.
func (d *Dev) WaitForEvent() (xgb.Event, xgb.Error) {
	return d.xu.Conn().WaitForEvent()
}

// Halt closes the window and the X connection.
func (d *Dev) Halt() error {
	d.halted = true
	d.xu.Conn().Close()
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("x11screen.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// push transmits the region r of the panel buffer to the window, expanding
// each pixel by the scale factor. Large regions are split over several
// PutImage requests.
func (d *Dev) push(r image.Rectangle) {
	w := r.Dx() * d.scale
	rowBytes := w * 4
	chunk := maxPutBytes / rowBytes
	if chunk < 1 {
		chunk = 1
	}

	bottom := r.Max.Y * d.scale
	for yStart := r.Min.Y * d.scale; yStart < bottom; yStart += chunk {
		h := chunk
		if yStart+h > bottom {
			h = bottom - yStart
		}

		data := make([]byte, rowBytes*h)
		idx := 0
		for row := yStart; row < yStart+h; row++ {
			srcRow := row / d.scale
			for col := r.Min.X * d.scale; col < r.Max.X*d.scale; col++ {
				c := d.buf[srcRow*d.rect.Dx()+col/d.scale]
				// 0x00RRGGBB to ZPixmap B, G, R, X.
				data[idx+0] = byte(c)
				data[idx+1] = byte(c >> 8)
				data[idx+2] = byte(c >> 16)
				data[idx+3] = 0
				idx += 4
			}
		}

		xproto.PutImage(
			d.xu.Conn(),
			xproto.ImageFormatZPixmap,
			xproto.Drawable(d.window),
			d.gc,
			uint16(w),
			uint16(h),
			int16(r.Min.X*d.scale), int16(yStart),
			0,
			d.depth,
			data,
		)
	}
}
