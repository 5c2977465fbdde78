// Package pbm decodes binary netpbm images row by row.
//
// Supported variants are P4 (1-bit bitmap, rows packed eight pixels per
// byte with the most significant bit leftmost; a set bit is foreground)
// and P6 (pixmap, three bytes per pixel, maximum sample value 255). The
// plain-text P1/P2/P3 variants are not supported.
//
// Decoding is pull based: the header is parsed and validated by NewDecoder
// and each ReadRow call yields one row, keeping memory proportional to a
// single row regardless of image size.
package pbm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Errors returned while decoding.
var (
	ErrFormat    = errors.New("pbm: invalid netpbm image")
	ErrTruncated = errors.New("pbm: truncated netpbm image")
)

// Format identifies the netpbm variant of a stream.
type Format uint8

// Supported variants.
const (
	P4 Format = iota // 1-bit bitmap
	P6               // 8-bit RGB pixmap
)

// String returns the magic number of the format.
func (f Format) String() string {
	switch f {
	case P4:
		return "P4"
	case P6:
		return "P6"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Decoder reads a binary netpbm image one row at a time.
//
// Rows are returned top-down. The returned slice is reused by the next
// ReadRow call. A Decoder is not restartable.
type Decoder struct {
	br     *bufio.Reader
	format Format
	width  int
	height int
	maxval int
	row    []byte
	y      int
}

// NewDecoder parses and validates the netpbm header of r.
//
// The header grammar is the magic number, then width and height (and the
// maximum sample value for P6) as decimal tokens, then a single whitespace
// byte before the payload. Token separators are runs of whitespace which
// may contain '#' comments running to end of line.
//
// Malformed headers fail with ErrFormat. When r is an io.Seeker the
// payload length is checked up front and short input fails with
// ErrTruncated; otherwise truncation surfaces at the failing ReadRow.
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

	var magic [2]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: missing magic number", ErrFormat)
	}
	d := &Decoder{br: br}
	switch {
	case magic[0] == 'P' && magic[1] == '4':
		d.format = P4
	case magic[0] == 'P' && magic[1] == '6':
		d.format = P6
	default:
		return nil, fmt.Errorf("%w: magic number %q", ErrFormat, magic[:])
	}

	var err error
	if d.width, err = readNumber(br, "width"); err != nil {
		return nil, err
	}
	if d.height, err = readNumber(br, "height"); err != nil {
		return nil, err
	}
	if d.width <= 0 || d.height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d geometry", ErrFormat, d.width, d.height)
	}
	if d.format == P6 {
		if d.maxval, err = readNumber(br, "maxval"); err != nil {
			return nil, err
		}
		if d.maxval <= 0 || d.maxval > 255 {
			return nil, fmt.Errorf("%w: maximum sample value %d", ErrFormat, d.maxval)
		}
	}

	// Exactly one whitespace byte separates the header from the payload.
	b, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: missing payload separator", ErrFormat)
	}
	if !isSpace(b) {
		return nil, fmt.Errorf("%w: payload separator 0x%02x", ErrFormat, b)
	}

	rowBytes := (d.width + 7) / 8
	if d.format == P6 {
		rowBytes = d.width * 3
	}
	d.row = make([]byte, rowBytes)

	if avail >= 0 {
		have := avail - (cr.n - int64(br.Buffered()))
		if need := int64(rowBytes) * int64(d.height); have < need {
			return nil, fmt.Errorf("%w: need %d payload bytes, have %d", ErrTruncated, need, have)
		}
	}
	return d, nil
}

// Format returns the netpbm variant of the stream.
func (d *Decoder) Format() Format {
	return d.format
}

// Width returns the image width in pixels.
func (d *Decoder) Width() int {
	return d.width
}

// Height returns the image height in pixels.
func (d *Decoder) Height() int {
	return d.height
}

// ReadRow returns the next row, top-down.
//
// For P4 the row is (width+7)/8 packed bytes with undefined trailing pad
// bits, for P6 it is width RGB triplets. The slice is valid until the next
// call. After the last row every call returns io.EOF.
func (d *Decoder) ReadRow() ([]byte, error) {
	if d.y >= d.height {
		return nil, io.EOF
	}
	if _, err := io.ReadFull(d.br, d.row); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: row %d", ErrTruncated, d.y)
		}
		return nil, fmt.Errorf("pbm: reading row %d: %w", d.y, err)
	}
	d.y++
	return d.row, nil
}

// readNumber skips token separators and reads one decimal token.
func readNumber(br *bufio.Reader, field string) (int, error) {
	if err := skipSeparators(br); err != nil {
		return 0, fmt.Errorf("%w: missing %s", ErrFormat, field)
	}
	n, digits := 0, 0
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("pbm: reading %s: %w", field, err)
		}
		if b < '0' || b > '9' {
			if err := br.UnreadByte(); err != nil {
				return 0, err
			}
			break
		}
		n = n*10 + int(b-'0')
		digits++
		if n > 1<<24 {
			return 0, fmt.Errorf("%w: %s out of range", ErrFormat, field)
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: missing %s", ErrFormat, field)
	}
	return n, nil
}

// skipSeparators consumes whitespace and '#' comments, stopping before the
// first byte belonging to the next token.
func skipSeparators(br *bufio.Reader) error {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case isSpace(b):
		case b == '#':
			if _, err := br.ReadString('\n'); err != nil {
				return err
			}
		default:
			return br.UnreadByte()
		}
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
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
