package easydisplay

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
)

// Clearer is implemented by devices that can fill the whole panel natively.
// When the session's device implements it, Clear uses it instead of pushing
// a full-panel block.
type Clearer interface {
	Clear(c color.Color) error
}

// Flusher is implemented by buffered devices that push their buffer to the
// panel on demand. Flush and the Show option are no-ops for devices that
// do not implement it.
type Flusher interface {
	Flush() error
}

// Display is a rendering session bound to one device.
//
// The session captures its defaults at construction; drawing calls may
// override them per call but never modify them. A Display performs no
// internal locking and must be confined to a single goroutine. The fonts
// it draws with are shareable.
type Display struct {
	drawer   display.Drawer
	bounds   image.Rectangle
	defaults style
}

// New creates a rendering session on dev.
//
// A nil opts selects the documented defaults. The device must report a
// non-empty Bounds.
func New(dev display.Drawer, opts *Opts) (*Display, error) {
	if dev == nil {
		return nil, fmt.Errorf("%w: nil device", ErrConfig)
	}
	if opts == nil {
		opts = &Opts{}
	}
	switch opts.Mode {
	case ModeMono, ModeRGB565:
	default:
		return nil, fmt.Errorf("%w: unknown pixel mode %d", ErrConfig, opts.Mode)
	}
	bounds := dev.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: device bounds %v are empty", ErrOutOfRange, bounds)
	}

	st := style{
		font:        opts.Font,
		mode:        opts.Mode,
		color:       opts.Color,
		background:  opts.Background,
		clear:       opts.Clear,
		autoWrap:    opts.AutoWrap,
		halfWidth:   opts.HalfWidth,
		invert:      opts.Invert,
		show:        opts.Show,
		lineSpacing: opts.LineSpacing,
	}
	if st.color == nil {
		st.color = color.White
	}
	if st.background == nil {
		st.background = color.Black
	}

	return &Display{
		drawer:   dev,
		bounds:   bounds,
		defaults: st,
	}, nil
}

// Bounds returns the addressable panel rectangle.
func (d *Display) Bounds() image.Rectangle {
	return d.bounds
}

// Clear fills the panel with the session background color.
//
// A transparent background falls back to opaque black, since clearing to
// nothing is meaningless. On a buffered device the cleared frame still
// needs a Flush to reach the panel.
func (d *Display) Clear() error {
	st := d.defaults
	return d.clearWith(&st)
}

// Flush pushes the buffer of a buffered device to the panel. It is a
// no-op for direct devices.
func (d *Display) Flush() error {
	if f, ok := d.drawer.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// String implements fmt.Stringer.
func (d *Display) String() string {
	return fmt.Sprintf("easydisplay.Display{%dx%d %s}", d.bounds.Dx(), d.bounds.Dy(), d.defaults.mode)
}

// apply resolves the per-call options against the session defaults. The
// defaults themselves are never modified.
func (d *Display) apply(opts []Option) style {
	st := d.defaults
	for _, o := range opts {
		o(&st)
	}
	return st
}

// clearWith fills the panel with the style's background.
func (d *Display) clearWith(st *style) error {
	bg := st.background
	if transparent(bg) {
		bg = color.Black
	}
	if c, ok := d.drawer.(Clearer); ok {
		return c.Clear(bg)
	}
	return d.fill(d.bounds, bg, st)
}

// finish applies the end-of-call show semantics.
func (d *Display) finish(st *style) error {
	if st.show {
		return d.Flush()
	}
	return nil
}

// transparent reports whether c has zero alpha.
func transparent(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a == 0
}
