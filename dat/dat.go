// Package dat decodes EasyDisplay V1 screen dumps row by row.
//
// A dump is a text header of three lines, "EasyDisplay", "V1" and
// "width height", followed by raw big-endian RGB565 pixel data, two bytes
// per pixel, rows top-down. The payload is the wire format of color panels,
// so rows can be pushed to a display without conversion; the format carries
// no meaning for monochrome targets.
package dat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Errors returned while decoding.
var (
	ErrFormat    = errors.New("dat: invalid screen dump")
	ErrTruncated = errors.New("dat: truncated screen dump")
)

// maxHeaderLine bounds header line length so junk input cannot buffer
// unboundedly while searching for a newline.
const maxHeaderLine = 64

// Decoder reads an EasyDisplay screen dump one row at a time.
//
// The returned slice is reused by the next ReadRow call. A Decoder is not
// restartable.
type Decoder struct {
	br     *bufio.Reader
	width  int
	height int
	row    []byte
	y      int
}

// NewDecoder parses and validates the dump header of r.
//
// When r is an io.Seeker the payload length is checked up front and short
// input fails with ErrTruncated; otherwise truncation surfaces at the
// failing ReadRow.
func NewDecoder(r io.Reader) (*Decoder, error) {
	avail := int64(-1)
	if s, ok := r.(io.Seeker); ok {
		if cur, err := s.Seek(0, io.SeekCurrent); err == nil {
			if end, err := s.Seek(0, io.SeekEnd); err == nil {
				if _, err := s.Seek(cur, io.SeekStart); err == nil {
					avail = end - cur
				}
			}
		}
	}

	cr := &countingReader{r: r}
	br := bufio.NewReader(cr)

	line, err := readLine(br)
	if err != nil {
		return nil, err
	}
	if line != "EasyDisplay" {
		return nil, fmt.Errorf("%w: identity line %q", ErrFormat, line)
	}
	if line, err = readLine(br); err != nil {
		return nil, err
	}
	if line != "V1" {
		return nil, fmt.Errorf("%w: unsupported version %q", ErrFormat, line)
	}
	if line, err = readLine(br); err != nil {
		return nil, err
	}
	ws, hs, ok := strings.Cut(line, " ")
	if !ok {
		return nil, fmt.Errorf("%w: geometry line %q", ErrFormat, line)
	}
	width, err := strconv.Atoi(ws)
	if err != nil {
		return nil, fmt.Errorf("%w: geometry line %q", ErrFormat, line)
	}
	height, err := strconv.Atoi(hs)
	if err != nil {
		return nil, fmt.Errorf("%w: geometry line %q", ErrFormat, line)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d geometry", ErrFormat, width, height)
	}

	d := &Decoder{
		br:     br,
		width:  width,
		height: height,
		row:    make([]byte, width*2),
	}
	if avail >= 0 {
		have := avail - (cr.n - int64(br.Buffered()))
		if need := int64(width) * 2 * int64(height); have < need {
			return nil, fmt.Errorf("%w: need %d payload bytes, have %d", ErrTruncated, need, have)
		}
	}
	return d, nil
}

// Width returns the dump width in pixels.
func (d *Decoder) Width() int {
	return d.width
}

// Height returns the dump height in pixels.
func (d *Decoder) Height() int {
	return d.height
}

// ReadRow returns the next row, top-down, as big-endian RGB565 pixels.
//
// The slice is valid until the next call. After the last row every call
// returns io.EOF.
func (d *Decoder) ReadRow() ([]byte, error) {
	if d.y >= d.height {
		return nil, io.EOF
	}
	if _, err := io.ReadFull(d.br, d.row); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: row %d", ErrTruncated, d.y)
		}
		return nil, fmt.Errorf("dat: reading row %d: %w", d.y, err)
	}
	d.y++
	return d.row, nil
}

// readLine reads one newline-terminated header line.
func readLine(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for sb.Len() <= maxHeaderLine {
		b, err := br.ReadByte()
		if err != nil {
			return "", fmt.Errorf("%w: incomplete header", ErrFormat)
		}
		if b == '\n' {
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
	return "", fmt.Errorf("%w: header line too long", ErrFormat)
}

// countingReader tracks how many bytes have been pulled from the source so
// the header length can be subtracted from a seek probe.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
