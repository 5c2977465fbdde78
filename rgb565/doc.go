// Package rgb565 provides the 16-bit RGB565 pixel format for color display panels.
//
// Small color controllers (ST7735, ST7789, ILI9341) expect pixel data as
// 16-bit words with 5 bits of red, 6 bits of green and 5 bits of blue,
// transmitted big-endian. The Image type stores its pixels in exactly that
// layout, so a row or a full frame can go to the panel as-is.
//
// Bit layout of one pixel:
//
//	15                    0
//	R R R R R G G G G G G B B B B B
//
// This package provides:
//
// - Color: A color type representing one RGB565 value
// - Model: A color model for converting standard Go colors to Color
// - From888: Channel packing from 8-bit RGB
// - Image: An image.Image implementation with big-endian 2-byte pixels
//
// Example usage:
//
//	img := rgb565.New(image.Rect(0, 0, 160, 128))
//	img.SetColor(10, 20, rgb565.From888(255, 0, 0))
//
//	c := img.ColorAt(10, 20)
//	fmt.Printf("%04x\n", uint16(c)) // Output: f800
package rgb565
