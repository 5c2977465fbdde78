package pbm

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// onlyReader hides any Seeker the wrapped reader may implement.
type onlyReader struct {
	io.Reader
}

func TestDecodeP4(t *testing.T) {
	data := append([]byte("P4\n8 2\n"), 0xAA, 0x55)

	d, err := NewDecoder(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewDecoder() = %v", err)
	}
	if d.Format() != P4 {
		t.Errorf("Format() = %v, want P4", d.Format())
	}
	if d.Width() != 8 || d.Height() != 2 {
		t.Errorf("geometry = %dx%d, want 8x2", d.Width(), d.Height())
	}

	row, err := d.ReadRow()
	if err != nil {
		t.Fatalf("ReadRow() = %v", err)
	}
	// MSB is the leftmost pixel: 0xAA decodes as 10101010.
	if len(row) != 1 || row[0] != 0xAA {
		t.Errorf("row 0 = % X, want AA", row)
	}

	row, err = d.ReadRow()
	if err != nil {
		t.Fatalf("ReadRow() = %v", err)
	}
	if row[0] != 0x55 {
		t.Errorf("row 1 = % X, want 55", row)
	}

	if _, err = d.ReadRow(); err != io.EOF {
		t.Errorf("ReadRow() after last row = %v, want io.EOF", err)
	}
}

func TestDecodeP6(t *testing.T) {
	data := append([]byte("P6\n2 2\n255\n"),
		0xFF, 0x00, 0x00, 0x00, 0xFF, 0x00,
		0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF)

	d, err := NewDecoder(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewDecoder() = %v", err)
	}
	if d.Format() != P6 {
		t.Errorf("Format() = %v, want P6", d.Format())
	}

	row, err := d.ReadRow()
	if err != nil {
		t.Fatalf("ReadRow() = %v", err)
	}
	if want := []byte{0xFF, 0x00, 0x00, 0x00, 0xFF, 0x00}; !bytes.Equal(row, want) {
		t.Errorf("row 0 = % X, want % X", row, want)
	}

	row, err = d.ReadRow()
	if err != nil {
		t.Fatalf("ReadRow() = %v", err)
	}
	if want := []byte{0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF}; !bytes.Equal(row, want) {
		t.Errorf("row 1 = % X, want % X", row, want)
	}
}

func TestHeaderGrammar(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"comments between tokens", append([]byte("P4\n# made by hand\n8 # width\n2\n"), 0xFF, 0xFF), nil},
		{"tabs and runs of spaces", append([]byte("P4\t\t 8 \t 2\n"), 0xFF, 0xFF), nil},
		{"crlf separators", append([]byte("P4\r\n8 2\r"), 0xFF, 0xFF), nil},
		{"bad magic", []byte("P5\n8 2\n"), ErrFormat},
		{"plain text variant", []byte("P1\n8 2\n"), ErrFormat},
		{"empty input", nil, ErrFormat},
		{"missing height", []byte("P4\n8\n"), ErrFormat},
		{"zero width", []byte("P4\n0 2\n"), ErrFormat},
		{"zero height", []byte("P4\n8 0\n"), ErrFormat},
		{"width out of range", []byte("P4\n99999999 2\n"), ErrFormat},
		{"junk instead of number", []byte("P4\nx 2\n"), ErrFormat},
		{"missing payload separator", []byte("P4\n8 2"), ErrFormat},
		{"non-space payload separator", []byte("P4\n8 2x\xFF\xFF"), ErrFormat},
		{"p6 maxval zero", []byte("P6\n2 2\n0\n"), ErrFormat},
		{"p6 maxval 16 bit", []byte("P6\n2 2\n65535\n"), ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder(onlyReader{bytes.NewReader(tt.data)})
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("NewDecoder() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewDecoder() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTruncationEager(t *testing.T) {
	// Seekable input with a short payload fails before any row is read.
	data := append([]byte("P4\n8 2\n"), 0xAA)
	_, err := NewDecoder(bytes.NewReader(data))
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("NewDecoder() = %v, want %v", err, ErrTruncated)
	}
}

func TestTruncationLazy(t *testing.T) {
	// The same stream through a pipe only fails at the missing row.
	data := append([]byte("P4\n8 2\n"), 0xAA)
	d, err := NewDecoder(onlyReader{bytes.NewReader(data)})
	if err != nil {
		t.Fatalf("NewDecoder() = %v", err)
	}

	if _, err := d.ReadRow(); err != nil {
		t.Fatalf("ReadRow() = %v", err)
	}
	if _, err := d.ReadRow(); !errors.Is(err, ErrTruncated) {
		t.Errorf("ReadRow() = %v, want %v", err, ErrTruncated)
	}
}

func TestDecodeAtOffset(t *testing.T) {
	// The seek probe must preserve the current position, not assume the
	// image starts at offset zero.
	data := append([]byte("??P4\n8 1\n"), 0xF0)
	r := bytes.NewReader(data)
	if _, err := r.Seek(2, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	d, err := NewDecoder(r)
	if err != nil {
		t.Fatalf("NewDecoder() = %v", err)
	}
	row, err := d.ReadRow()
	if err != nil {
		t.Fatalf("ReadRow() = %v", err)
	}
	if row[0] != 0xF0 {
		t.Errorf("row = % X, want F0", row)
	}
}

func TestRowBufferReuse(t *testing.T) {
	data := append([]byte("P4\n8 2\n"), 0xAA, 0x55)
	d, err := NewDecoder(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewDecoder() = %v", err)
	}

	r0, err := d.ReadRow()
	if err != nil {
		t.Fatal(err)
	}
	r1, err := d.ReadRow()
	if err != nil {
		t.Fatal(err)
	}
	// The row buffer is documented as reused between calls.
	if &r0[0] != &r1[0] {
		t.Error("ReadRow allocated a fresh row buffer")
	}
}

func TestUnpaddedWidth(t *testing.T) {
	// 10 pixels pack into 2 bytes per row with trailing pad bits.
	data := append([]byte("P4\n10 1\n"), 0xFF, 0xC0)
	d, err := NewDecoder(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewDecoder() = %v", err)
	}
	row, err := d.ReadRow()
	if err != nil {
		t.Fatalf("ReadRow() = %v", err)
	}
	if len(row) != 2 {
		t.Errorf("len(row) = %d, want 2", len(row))
	}
}

func TestFormatString(t *testing.T) {
	if got := P4.String(); got != "P4" {
		t.Errorf("P4.String() = %q", got)
	}
	if got := P6.String(); got != "P6" {
		t.Errorf("P6.String() = %q", got)
	}
	if got := Format(9).String(); got != "Format(9)" {
		t.Errorf("Format(9).String() = %q", got)
	}
}
