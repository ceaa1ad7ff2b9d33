// Package render presents traced frames: it converts packed pixel buffers to
// framebuffers, draws them into the terminal with half-block characters,
// saves them as PNG and draws the top-down debug schematic.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Framebuffer is a 2D array of pixels that can be rendered to the terminal.
// We use double vertical resolution by using half-block characters (▀▄).
type Framebuffer struct {
	Width  int          // Width in "pixels" (same as terminal columns)
	Height int          // Height in "pixels" (2x terminal rows due to half-blocks)
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
// Height should be 2x the desired terminal rows for half-block rendering.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// SetPacked sets a pixel from a 0xRRGGBB value.
func (fb *Framebuffer) SetPacked(x, y int, c uint32) {
	fb.SetPixel(x, y, Packed(c))
}

// FromPacked copies a row-major 0xRRGGBB buffer of the framebuffer's size.
func (fb *Framebuffer) FromPacked(buf []uint32) error {
	if len(buf) != len(fb.Pixels) {
		return fmt.Errorf("packed buffer has %d pixels, framebuffer %dx%d needs %d",
			len(buf), fb.Width, fb.Height, len(fb.Pixels))
	}
	for i, c := range buf {
		fb.Pixels[i] = Packed(c)
	}
	return nil
}

// Blit copies src into the framebuffer with its top-left corner at (x, y).
// Pixels falling outside are dropped.
func (fb *Framebuffer) Blit(src *Framebuffer, x, y int) {
	for sy := range src.Height {
		for sx := range src.Width {
			fb.SetPixel(x+sx, y+sy, src.Pixels[sy*src.Width+sx])
		}
	}
}

// CopyImage draws img into the framebuffer, anchored at the top-left.
func (fb *Framebuffer) CopyImage(img image.Image) {
	b := img.Bounds()
	for y := 0; y < b.Dy() && y < fb.Height; y++ {
		for x := 0; x < b.Dx() && x < fb.Width; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// RGBA returns 16-bit values, scale to 8-bit
			fb.Pixels[y*fb.Width+x] = color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8), uint8(a >> 8)}
		}
	}
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
