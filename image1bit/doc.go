// Package image1bit provides a 1-bit monochrome image format for display panels.
//
// Monochrome OLED and LCD controllers store one bit per pixel. This package
// packs pixels horizontally, eight per byte, with the most significant bit
// as the leftmost pixel. This matches the row layout of BMF glyph bitmaps
// and of PBM P4 image data, so decoded rows can back an image directly.
//
// Memory layout example for a 12-pixel row:
//
//	Pixels: 0 1 2 3 4 5 6 7  8 9 10 11
//	Values: 1 0 1 0 1 0 1 0  1 1 0  0
//	Bytes:  0xAA             0xC0
//	        (0xAA = bit 7 is pixel 0; trailing bits of 0xC0 are padding)
//
// This package provides:
//
// - Bit: A color type representing a 1-bit value (On or Off)
// - BitModel: A color model for converting standard Go colors to Bit
// - HorizontalMSB: An image.Image implementation with MSB-first row packing
//
// Example usage:
//
//	// Create a 128x64 image
//	img := image1bit.NewHorizontalMSB(image.Rect(0, 0, 128, 64))
//
//	// Set a pixel
//	img.SetBit(10, 20, image1bit.On)
//
//	// Get a pixel
//	b := img.BitAt(10, 20)
//	println(b.String()) // Output: On
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(image1bit.On), image.Point{}, draw.Src)
package image1bit
