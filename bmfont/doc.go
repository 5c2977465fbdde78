// Package bmfont reads BMF bitmap font containers.
//
// BMF packs fixed-size 1-bit glyph bitmaps behind a sorted code point index,
// small enough to sit on a microcontroller's flash filesystem and cheap
// enough to query through seeks instead of loading into RAM.
//
// # Container Layout
//
// A version 3 container has three regions:
//
//	Offset  Size  Field
//	0       2     Identity "BM"
//	2       1     Format version (3)
//	3       1     Mapping mode
//	4       3     Bitmap region start offset (big-endian)
//	7       1     Glyph height in pixels (8, 16, 24 or 36)
//	8       1     Bytes per glyph record, ceil(height/8)*height
//	9       1     Coverage tier (0 full, 1 lite)
//	10      6     Reserved
//	16      …     Index: sorted big-endian uint16 code points
//	start   …     Glyph bitmaps, one record per index entry, same order
//
// Glyph bitmaps are square, packed row by row, eight pixels per byte with
// the most significant bit leftmost, rows padded to a whole byte. A decoded
// glyph is exposed as an image1bit.HorizontalMSB.
//
// # Lookup
//
// Code point lookup binary searches the on-disk index through io.ReaderAt,
// so opening a font costs one header read no matter how many glyphs it
// holds. Decoded glyphs are kept in a bounded LRU cache; the cache makes a
// Font safe to share between goroutines.
//
// Lookup never fails. Code points missing from the index, including
// everything above U+FFFF, resolve to a deterministic hollow box glyph.
//
// # Basic Usage
//
//	fnt, err := bmfont.Open("text_lite_16px_2312.v3.bmf", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer fnt.Close()
//
//	g := fnt.Glyph('你')
//	img := g.Bitmap() // 16x16 1-bit image
//
// # Adapters
//
// Font.Face adapts a font to golang.org/x/image/font.Face for use with
// font.Drawer, and Font.Fonter adapts it to tinyfont.Fonter for drawing on
// tinygo.org/x/drivers displays.
package bmfont
