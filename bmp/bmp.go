// Package bmp decodes uncompressed 24-bit BMP images row by row.
//
// Only the common Windows variant is supported: "BM" magic, BITMAPINFOHEADER
// or larger, one plane, 24 bits per pixel, no compression. Rows are stored
// on disk as BGR triplets padded to four bytes, bottom-up unless the header
// height is negative; ReadRow hides both, always yielding top-down RGB rows.
//
// Decoding is pull based and seeks per row, keeping memory proportional to
// a single row regardless of image size.
package bmp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Errors returned while decoding.
var (
	ErrFormat    = errors.New("bmp: invalid bmp image")
	ErrTruncated = errors.New("bmp: truncated bmp image")
)

// headerSize is the file header plus the smallest supported info header.
const headerSize = 14 + 40

// Decoder reads a 24-bit BMP image one row at a time.
//
// Rows are returned in logical top-down order as RGB triplets. The returned
// slice is reused by the next ReadRow call. A Decoder is not restartable.
type Decoder struct {
	rs      io.ReadSeeker
	width   int
	height  int
	topDown bool
	dataOff int64
	stride  int64
	raw     []byte // one disk row, BGR
	row     []byte // one logical row, RGB
	y       int
}

// NewDecoder parses and validates the BMP header of rs.
//
// Unsupported encodings (depth other than 24, compression, multiple
// planes) fail with ErrFormat. Input shorter than the header-implied pixel
// region fails with ErrTruncated.
func NewDecoder(rs io.ReadSeeker) (*Decoder, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(rs, hdr[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: %d byte header", ErrTruncated, headerSize)
		}
		return nil, fmt.Errorf("bmp: reading header: %w", err)
	}
	if hdr[0] != 'B' || hdr[1] != 'M' {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, hdr[0:2])
	}
	if dibSize := binary.LittleEndian.Uint32(hdr[14:18]); dibSize < 40 {
		return nil, fmt.Errorf("%w: info header size %d", ErrFormat, dibSize)
	}
	if planes := binary.LittleEndian.Uint16(hdr[26:28]); planes != 1 {
		return nil, fmt.Errorf("%w: %d color planes", ErrFormat, planes)
	}
	if depth := binary.LittleEndian.Uint16(hdr[28:30]); depth != 24 {
		return nil, fmt.Errorf("%w: %d bits per pixel, want 24", ErrFormat, depth)
	}
	if comp := binary.LittleEndian.Uint32(hdr[30:34]); comp != 0 {
		return nil, fmt.Errorf("%w: compression method %d", ErrFormat, comp)
	}

	width := int(int32(binary.LittleEndian.Uint32(hdr[18:22])))
	rawHeight := int(int32(binary.LittleEndian.Uint32(hdr[22:26])))
	if width <= 0 || rawHeight == 0 {
		return nil, fmt.Errorf("%w: %dx%d geometry", ErrFormat, width, rawHeight)
	}
	height, topDown := rawHeight, false
	if rawHeight < 0 {
		// Negative header height means rows are stored top-down.
		height, topDown = -rawHeight, true
	}

	dataOff := int64(binary.LittleEndian.Uint32(hdr[10:14]))
	if dataOff < headerSize {
		return nil, fmt.Errorf("%w: pixel data offset %d", ErrFormat, dataOff)
	}
	stride := int64(width*3+3) &^ 3

	end, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("bmp: sizing input: %w", err)
	}
	if need := dataOff + int64(height-1)*stride + int64(width)*3; need > end {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, need, end)
	}

	return &Decoder{
		rs:      rs,
		width:   width,
		height:  height,
		topDown: topDown,
		dataOff: dataOff,
		stride:  stride,
		raw:     make([]byte, width*3),
		row:     make([]byte, width*3),
	}, nil
}

// Width returns the image width in pixels.
func (d *Decoder) Width() int {
	return d.width
}

// Height returns the image height in pixels.
func (d *Decoder) Height() int {
	return d.height
}

// ReadRow returns the next row in top-down order as RGB triplets.
//
// The slice is valid until the next call. After the last row every call
// returns io.EOF.
func (d *Decoder) ReadRow() ([]byte, error) {
	if d.y >= d.height {
		return nil, io.EOF
	}
	src := d.y
	if !d.topDown {
		src = d.height - 1 - d.y
	}
	if _, err := d.rs.Seek(d.dataOff+int64(src)*d.stride, io.SeekStart); err != nil {
		return nil, fmt.Errorf("bmp: seeking row %d: %w", d.y, err)
	}
	if _, err := io.ReadFull(d.rs, d.raw); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: row %d", ErrTruncated, d.y)
		}
		return nil, fmt.Errorf("bmp: reading row %d: %w", d.y, err)
	}
	for i := 0; i < d.width; i++ {
		d.row[i*3+0] = d.raw[i*3+2]
		d.row[i*3+1] = d.raw[i*3+1]
		d.row[i*3+2] = d.raw[i*3+0]
	}
	d.y++
	return d.row, nil
}
