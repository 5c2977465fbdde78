package framebuffer

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/funnygeeker/easydisplay/image1bit"
	"github.com/funnygeeker/easydisplay/rgb565"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"1x1", 1, 1, false},
		{"160x80", 160, 80, false},
		{"zero width", 0, 80, true},
		{"zero height", 160, 0, true},
		{"negative", -1, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMono(tt.w, tt.h, nil); (err != nil) != tt.wantErr {
				t.Errorf("NewMono(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if _, err := NewRGB565(tt.w, tt.h, nil); (err != nil) != tt.wantErr {
				t.Errorf("NewRGB565(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestMonoWireLayout(t *testing.T) {
	d, err := NewMono(8, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.ColorModel() != image1bit.BitModel {
		t.Error("ColorModel() did not return BitModel")
	}
	if got := d.String(); got != "framebuffer.Device{8x2 mono}" {
		t.Errorf("String() = %q", got)
	}

	src := image.NewUniform(image1bit.On)
	if err := d.Draw(image.Rect(0, 0, 8, 1), src, image.Point{}); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	pix := d.Pix()
	if len(pix) != 2 {
		t.Fatalf("len(Pix()) = %d, want 2", len(pix))
	}
	if pix[0] != 0xFF || pix[1] != 0x00 {
		t.Errorf("Pix() = % X, want FF 00", pix)
	}
}

func TestRGB565WireLayout(t *testing.T) {
	d, err := NewRGB565(2, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.ColorModel() != rgb565.Model {
		t.Error("ColorModel() did not return rgb565.Model")
	}

	src := image.NewUniform(color.RGBA{0xFF, 0x00, 0x00, 0xFF})
	if err := d.Draw(image.Rect(0, 0, 1, 1), src, image.Point{}); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	// Red pixel is big-endian 0xF800, the untouched pixel stays zero.
	if pix := d.Pix(); pix[0] != 0xF8 || pix[1] != 0x00 || pix[2] != 0x00 || pix[3] != 0x00 {
		t.Errorf("Pix() = % X, want F8 00 00 00", pix)
	}
}

func TestDrawClipsToBounds(t *testing.T) {
	d, err := NewRGB565(4, 4, nil)
	if err != nil {
		t.Fatal(err)
	}

	// A block hanging off the panel edge draws only its visible part.
	src := image.NewUniform(color.White)
	if err := d.Draw(image.Rect(2, 2, 10, 10), src, image.Point{}); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	img := d.Image().(*rgb565.Image)
	if got := img.ColorAt(1, 1); got != 0 {
		t.Errorf("ColorAt(1, 1) = %#04x, want 0", uint16(got))
	}
	if got := img.ColorAt(3, 3); got != 0xFFFF {
		t.Errorf("ColorAt(3, 3) = %#04x, want 0xffff", uint16(got))
	}

	// Fully off-panel blocks are a no-op, not an error.
	if err := d.Draw(image.Rect(100, 100, 110, 110), src, image.Point{}); err != nil {
		t.Errorf("off-panel Draw() = %v", err)
	}
}

func TestDrawNilSource(t *testing.T) {
	d, err := NewMono(8, 8, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Draw(d.Bounds(), nil, image.Point{}); err == nil {
		t.Error("Draw(nil) succeeded")
	}
}

func TestClear(t *testing.T) {
	d, err := NewRGB565(2, 2, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Clear(color.White); err != nil {
		t.Fatalf("Clear() = %v", err)
	}
	for i, b := range d.Pix() {
		if b != 0xFF {
			t.Errorf("Pix()[%d] = 0x%02X after white Clear, want 0xFF", i, b)
		}
	}

	if err := d.Clear(color.Black); err != nil {
		t.Fatalf("Clear() = %v", err)
	}
	for i, b := range d.Pix() {
		if b != 0x00 {
			t.Errorf("Pix()[%d] = 0x%02X after black Clear, want 0x00", i, b)
		}
	}
}

func TestFlush(t *testing.T) {
	var flushed [][]byte
	d, err := NewMono(8, 1, func(pix []byte) error {
		flushed = append(flushed, append([]byte(nil), pix...))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	d.Draw(image.Rect(0, 0, 8, 1), image.NewUniform(image1bit.On), image.Point{})
	if err := d.Flush(); err != nil {
		t.Fatalf("Flush() = %v", err)
	}

	if len(flushed) != 1 {
		t.Fatalf("flush called %d times, want 1", len(flushed))
	}
	if flushed[0][0] != 0xFF {
		t.Errorf("flushed frame = % X, want FF", flushed[0])
	}
}

func TestFlushError(t *testing.T) {
	werr := errors.New("spi gone")
	d, err := NewMono(8, 1, func([]byte) error { return werr })
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Flush(); !errors.Is(err, werr) {
		t.Errorf("Flush() = %v, want %v", err, werr)
	}
}

func TestFlushWithoutFunc(t *testing.T) {
	d, err := NewMono(8, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Flush(); err != nil {
		t.Errorf("Flush() = %v, want nil", err)
	}
}

func TestHalt(t *testing.T) {
	d, err := NewMono(8, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	d.Draw(d.Bounds(), image.NewUniform(image1bit.On), image.Point{})

	if err := d.Halt(); err != nil {
		t.Fatalf("Halt() = %v", err)
	}
	if d.Pix()[0] != 0 {
		t.Errorf("Pix() = % X after Halt, want zeroed", d.Pix())
	}
}
