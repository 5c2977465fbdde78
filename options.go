package easydisplay

import (
	"image/color"

	"github.com/funnygeeker/easydisplay/bmfont"
)

// Mode selects the pixel format a session renders blocks in.
type Mode uint8

// Supported pixel modes.
const (
	// ModeMono renders 1-bit blocks (image1bit.HorizontalMSB).
	ModeMono Mode = iota
	// ModeRGB565 renders 16-bit color blocks (rgb565.Image).
	ModeRGB565
)

// String returns a human readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeMono:
		return "mono"
	case ModeRGB565:
		return "rgb565"
	}
	return "unknown"
}

// Opts is the session configuration captured by New.
//
// The zero value is a usable monochrome session: white foreground, black
// background, no font. Individual drawing calls can override any of these
// through Option values without touching the captured defaults.
type Opts struct {
	// Mode selects the pixel format blocks are rendered in. It must match
	// what the device expects.
	Mode Mode

	// Font supplies glyphs for Text. Optional, but Text fails without one.
	Font *bmfont.Font

	// Color is the foreground. Defaults to white.
	Color color.Color

	// Background is the background. A color with zero alpha, such as
	// color.Transparent, leaves background pixels untouched. Defaults to
	// black.
	Background color.Color

	// Clear fills the panel with the background before each drawing call.
	Clear bool

	// AutoWrap breaks text lines at the right panel edge.
	AutoWrap bool

	// HalfWidth renders code points below U+0080 at half the glyph cell
	// width.
	HalfWidth bool

	// Invert swaps foreground and background of 1-bit sources and negates
	// the channels of color sources.
	Invert bool

	// Show flushes a buffered device after each drawing call.
	Show bool

	// LineSpacing adds extra pixels between text lines.
	LineSpacing int
}

// style is a resolved drawing configuration: the session defaults merged
// with the per-call options.
type style struct {
	font        *bmfont.Font
	mode        Mode
	color       color.Color
	background  color.Color
	clear       bool
	autoWrap    bool
	halfWidth   bool
	invert      bool
	show        bool
	lineSpacing int
	size        int // glyph cell override, 0 keeps the font height
}

// Option overrides one session default for the duration of a single call.
type Option func(*style)

// WithFont substitutes the glyph source.
func WithFont(f *bmfont.Font) Option {
	return func(st *style) { st.font = f }
}

// WithColor substitutes the foreground color.
func WithColor(c color.Color) Option {
	return func(st *style) { st.color = c }
}

// WithBackground substitutes the background color. A zero alpha color
// leaves background pixels untouched.
func WithBackground(c color.Color) Option {
	return func(st *style) { st.background = c }
}

// WithClear controls clearing the panel before the call draws.
func WithClear(clear bool) Option {
	return func(st *style) { st.clear = clear }
}

// WithAutoWrap controls breaking text lines at the right panel edge.
func WithAutoWrap(wrap bool) Option {
	return func(st *style) { st.autoWrap = wrap }
}

// WithHalfWidth controls half cell rendering of code points below U+0080.
func WithHalfWidth(half bool) Option {
	return func(st *style) { st.halfWidth = half }
}

// WithInvert controls color inversion.
func WithInvert(invert bool) Option {
	return func(st *style) { st.invert = invert }
}

// WithShow controls flushing a buffered device when the call finishes.
func WithShow(show bool) Option {
	return func(st *style) { st.show = show }
}

// WithLineSpacing sets the extra pixels between text lines.
func WithLineSpacing(px int) Option {
	return func(st *style) { st.lineSpacing = px }
}

// WithSize renders glyphs scaled to a px by px cell instead of the font's
// native height.
func WithSize(px int) Option {
	return func(st *style) { st.size = px }
}
