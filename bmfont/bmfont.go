package bmfont

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/funnygeeker/easydisplay/image1bit"
)

// Errors returned while opening a font container.
var (
	ErrFormat    = errors.New("bmfont: invalid font container")
	ErrTruncated = errors.New("bmfont: truncated font container")
)

// Version is the container format version this package reads.
const Version = 3

const headerSize = 16

// DefaultCacheSize is the glyph cache bound used when Opts.CacheSize is 0.
const DefaultCacheSize = 64

// Tier identifies the coverage tier a font container was built with.
type Tier uint8

// Possible tier values.
const (
	// TierFull covers the complete code point set of its source font.
	TierFull Tier = 0
	// TierLite covers a reduced, commonly used subset.
	TierLite Tier = 1
)

// String returns a human readable tier name.
func (t Tier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierLite:
		return "lite"
	}
	return fmt.Sprintf("Tier(%d)", uint8(t))
}

// Opts is the configuration for opening a font container.
type Opts struct {
	// CacheSize bounds the number of decoded glyphs kept in memory.
	// 0 selects DefaultCacheSize, a negative value disables caching.
	CacheSize int
}

// Font is an open BMF font container.
//
// The container is read lazily: code point lookups binary search the index
// through the underlying reader and only decoded glyphs are held in memory,
// bounded by the cache size. A Font is safe for concurrent use.
type Font struct {
	r      io.ReaderAt
	closer io.Closer

	version     byte
	mapMode     byte
	tier        Tier
	height      int
	glyphBytes  int
	bitmapStart int64
	glyphCount  int

	fallback *Glyph

	mu    sync.Mutex
	cache *glyphCache
}

// Open opens the BMF font container at path.
func Open(path string, opts *Opts) (*Font, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	fnt, err := New(f, st.Size(), opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	fnt.closer = f
	return fnt, nil
}

// New reads a BMF font container from r, which holds size bytes.
//
// The header and the declared index and bitmap regions are validated up
// front; glyph data is read on demand.
func New(r io.ReaderAt, size int64, opts *Opts) (*Font, error) {
	if opts == nil {
		opts = &Opts{}
	}
	if size < headerSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, size, headerSize)
	}
	var hdr [headerSize]byte
	if _, err := r.ReadAt(hdr[:], 0); err != nil {
		return nil, fmt.Errorf("bmfont: reading header: %w", err)
	}
	if hdr[0] != 'B' || hdr[1] != 'M' {
		return nil, fmt.Errorf("%w: bad identity %q", ErrFormat, hdr[0:2])
	}
	if hdr[2] != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, hdr[2])
	}
	height := int(hdr[7])
	switch height {
	case 8, 16, 24, 36:
	default:
		return nil, fmt.Errorf("%w: unsupported font height %d", ErrFormat, height)
	}
	glyphBytes := int(hdr[8])
	if want := (height + 7) / 8 * height; glyphBytes != want {
		return nil, fmt.Errorf("%w: %d bytes per glyph, height %d needs %d", ErrFormat, glyphBytes, height, want)
	}
	tier := Tier(hdr[9])
	if tier != TierFull && tier != TierLite {
		return nil, fmt.Errorf("%w: unknown tier %d", ErrFormat, hdr[9])
	}

	// The bitmap start offset is a 3 byte big-endian integer.
	bitmapStart := int64(hdr[4])<<16 | int64(hdr[5])<<8 | int64(hdr[6])
	if bitmapStart < headerSize || (bitmapStart-headerSize)%2 != 0 {
		return nil, fmt.Errorf("%w: bitmap start offset %d", ErrFormat, bitmapStart)
	}
	glyphCount := int(bitmapStart-headerSize) / 2
	if bitmapStart > size {
		return nil, fmt.Errorf("%w: index ends at %d, have %d bytes", ErrTruncated, bitmapStart, size)
	}
	if end := bitmapStart + int64(glyphCount)*int64(glyphBytes); end > size {
		return nil, fmt.Errorf("%w: bitmaps end at %d, have %d bytes", ErrTruncated, end, size)
	}

	f := &Font{
		r:           r,
		version:     hdr[2],
		mapMode:     hdr[3],
		tier:        tier,
		height:      height,
		glyphBytes:  glyphBytes,
		bitmapStart: bitmapStart,
		glyphCount:  glyphCount,
	}
	f.fallback = fallbackGlyph(height)
	cacheSize := opts.CacheSize
	if cacheSize == 0 {
		cacheSize = DefaultCacheSize
	}
	if cacheSize > 0 {
		f.cache = newGlyphCache(cacheSize)
	}
	return f, nil
}

// Height returns the glyph height in pixels. Glyph bitmaps are square.
func (f *Font) Height() int {
	return f.height
}

// Len returns the number of code points in the container index.
func (f *Font) Len() int {
	return f.glyphCount
}

// Tier returns the coverage tier the container was built with.
func (f *Font) Tier() Tier {
	return f.tier
}

// FormatVersion returns the container format version byte.
func (f *Font) FormatVersion() int {
	return int(f.version)
}

// Has reports whether the container indexes r.
func (f *Font) Has(r rune) bool {
	return f.index(r) >= 0
}

// Glyph returns the decoded glyph for r.
//
// Lookup never fails: code points outside the index, including any above
// U+FFFF, map to a deterministic fallback glyph. The returned glyph is
// shared and must not be modified.
func (f *Font) Glyph(r rune) *Glyph {
	if f.cache != nil {
		f.mu.Lock()
		g := f.cache.get(r)
		f.mu.Unlock()
		if g != nil {
			return g
		}
	}
	idx := f.index(r)
	if idx < 0 {
		return f.fallback
	}
	g, err := f.readGlyph(r, idx)
	if err != nil {
		return f.fallback
	}
	if f.cache != nil {
		f.mu.Lock()
		f.cache.add(r, g)
		f.mu.Unlock()
	}
	return g
}

// Close releases the underlying file when the font was opened with Open.
// It is a no-op for fonts created with New.
func (f *Font) Close() error {
	if f.closer == nil {
		return nil
	}
	err := f.closer.Close()
	f.closer = nil
	return err
}

// String implements fmt.Stringer.
func (f *Font) String() string {
	return fmt.Sprintf("bmfont.Font{height:%d, glyphs:%d, tier:%s}", f.height, f.glyphCount, f.tier)
}

// index binary searches the container index for r and returns its glyph
// ordinal, or -1 when r is not indexed. Index entries are sorted big-endian
// uint16 code units, so anything outside that key space misses.
func (f *Font) index(r rune) int {
	if r < 0 || r > 0xFFFF {
		return -1
	}
	code := uint16(r)
	var buf [2]byte
	lo, hi := 0, f.glyphCount-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		if _, err := f.r.ReadAt(buf[:], headerSize+int64(mid)*2); err != nil {
			return -1
		}
		switch c := binary.BigEndian.Uint16(buf[:]); {
		case code == c:
			return mid
		case code < c:
			hi = mid - 1
		default:
			lo = mid + 1
		}
	}
	return -1
}

// readGlyph reads and decodes the glyph bitmap at ordinal idx.
func (f *Font) readGlyph(r rune, idx int) (*Glyph, error) {
	buf := make([]byte, f.glyphBytes)
	if _, err := f.r.ReadAt(buf, f.bitmapStart+int64(idx)*int64(f.glyphBytes)); err != nil {
		return nil, fmt.Errorf("bmfont: reading glyph %q: %w", r, err)
	}
	return &Glyph{
		Rune: r,
		img: &image1bit.HorizontalMSB{
			Pix:    buf,
			Stride: (f.height + 7) / 8,
			Rect:   image.Rect(0, 0, f.height, f.height),
		},
	}, nil
}

// Glyph is a decoded glyph bitmap.
//
// The pixel encoding behind a Glyph is versioned with the container format
// and may change; consumers should stay on the accessor methods.
type Glyph struct {
	// Rune is the code point this glyph renders, utf8.RuneError for the
	// fallback glyph.
	Rune rune

	img *image1bit.HorizontalMSB
}

// Width returns the glyph width in pixels.
func (g *Glyph) Width() int {
	return g.img.Rect.Dx()
}

// Height returns the glyph height in pixels.
func (g *Glyph) Height() int {
	return g.img.Rect.Dy()
}

// Bitmap returns the 1-bit glyph image. The image is shared with the font
// cache and must not be modified.
func (g *Glyph) Bitmap() *image1bit.HorizontalMSB {
	return g.img
}

// fallbackGlyph builds the glyph substituted for unindexed code points,
// a hollow box inset one pixel from the cell border.
func fallbackGlyph(h int) *Glyph {
	img := image1bit.NewHorizontalMSB(image.Rect(0, 0, h, h))
	for x := 1; x < h-1; x++ {
		img.SetBit(x, 1, image1bit.On)
		img.SetBit(x, h-2, image1bit.On)
	}
	for y := 1; y < h-1; y++ {
		img.SetBit(1, y, image1bit.On)
		img.SetBit(h-2, y, image1bit.On)
	}
	return &Glyph{Rune: utf8.RuneError, img: img}
}
