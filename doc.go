// Package easydisplay renders text and images on small display panels.
//
// It is a rendering session over any periph.io display.Drawer: BMF bitmap
// fonts, BMP, PBM and DAT images are decoded incrementally and written to
// the panel in bounded blocks, so full frames never need to fit in memory.
// That makes it practical on single board computers driving SPI panels as
// well as in desktop previews.
//
// # Features
//
// - BMF bitmap fonts with heights 8, 16, 24 and 36, including CJK coverage
// - Mono (1-bit) and RGB565 panel color modes
// - Automatic line wrapping, tab stops and newline handling
// - Per-call overrides of color, background, inversion and scaling
// - Incremental BMP (24-bit), PBM (P4/P6) and DAT image streaming
// - Adapters bridging BMF fonts to golang.org/x/image/font and tinyfont
//
// # Basic Usage
//
// Example rendering text to an ST7735 TFT panel:
//
//	package main
//
//	import (
//		"log"
//
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//
//		"github.com/funnygeeker/easydisplay"
//		"github.com/funnygeeker/easydisplay/bmfont"
//		"github.com/funnygeeker/easydisplay/st7735"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus and the panel
//		spiBus, _ := spireg.Open("")
//		dcPin := gpioreg.ByName("GPIO25")
//		dev, _ := st7735.NewSPI(spiBus, dcPin, &st7735.Opts{
//			W: 160,
//			H: 80,
//		})
//		defer dev.Halt()
//
//		// Load a font and open a session
//		f, err := bmfont.Open("text_lite_16px_2312.v3.bmf", nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer f.Close()
//
//		disp, _ := easydisplay.New(dev, &easydisplay.Opts{
//			Mode: easydisplay.ModeRGB565,
//			Font: f,
//		})
//
//		// Draw
//		disp.Clear()
//		disp.Text("Hello, world!", 0, 0)
//		disp.Text("你好，世界", 0, 16)
//	}
//
// # Session Defaults and Per-Call Options
//
// New fixes the session defaults: font, foreground and background colors,
// wrapping and inversion behavior. Every drawing call accepts functional
// options that override the defaults for that call only, the session is
// never mutated:
//
//	disp.Text("alert", 0, 0,
//		easydisplay.WithColor(red),
//		easydisplay.WithInvert(true))
//
// A transparent background (any color with zero alpha) draws glyph
// foreground pixels only, leaving the panel contents visible between them.
//
// # Color Modes
//
// ModeMono targets 1-bit panels. Text renders as set/cleared pixels and
// color images are thresholded on mean luminance. ModeRGB565 targets
// 16-bit color panels; text and images render through the panel's RGB565
// color model. The mode must match the panel wired to the session.
//
// # Image Formats
//
// Images stream row by row from an io.Reader or io.ReadSeeker, clipped
// against the panel, so oversized files display their top-left region
// instead of failing:
//
//	r, _ := os.Open("photo.bmp")
//	defer r.Close()
//	disp.DrawBMP(r, 0, 0)
//
// Supported formats are 24-bit uncompressed BMP, binary PBM (P4) and PPM
// (P6), and the DAT raw RGB565 format. Arbitrary image.Image values can be
// drawn with DrawImage.
//
// # Display Backends
//
// Any display.Drawer works as a backend. This module ships three:
//
//	st7735       SPI TFT driver for ST7735 panels (RGB565)
//	framebuffer  in-memory panel with an optional flush callback
//	x11screen    desktop preview window over the X11 protocol
//
// Backends may additionally implement Clearer for fast whole-panel fills
// and Flusher for explicit present, both are detected at run time.
//
// # Fonts
//
// Fonts use the BMF v3 container holding fixed-cell bitmap glyphs sorted
// by code point. See the bmfont package for the container layout, glyph
// lookup semantics and the font.Face / tinyfont.Fonter adapters.
//
// # Compatibility with periph.io
//
// The session consumes the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// Any periph.io display device can therefore sit behind a session, and the
// drivers in this module remain usable with other periph.io tooling.
package easydisplay
