// Package pixel provides the RGBA frame buffer edited by the sprite engine.
package pixel

import (
	"fmt"
	"image"
	"image/color"
)

// RGBA is one straight-alpha pixel value.
type RGBA struct {
	R, G, B, A uint8
}

// Transparent is the zero pixel.
var Transparent = RGBA{}

// Opaque returns the color with full alpha.
func Opaque(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 255}
}

// Visible reports whether the pixel has any coverage.
// Alpha 0 means transparent regardless of RGB.
func (c RGBA) Visible() bool {
	return c.A > 0
}

// Buffer is a W x H RGBA pixel buffer in row-major order, 4 bytes per pixel.
// len(Pix) == W*H*4 always holds.
type Buffer struct {
	W   int
	H   int
	Pix []uint8
}

// New creates a fully transparent buffer.
// Negative dimensions are treated as zero.
func New(w, h int) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Buffer{
		W:   w,
		H:   h,
		Pix: make([]uint8, w*h*4),
	}
}

// FromBytes wraps a copy of data as a w x h buffer.
// It fails when the length does not match the declared dimensions.
func FromBytes(w, h int, data []byte) (*Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("pixel: invalid dimensions %dx%d", w, h)
	}
	if len(data) != w*h*4 {
		return nil, fmt.Errorf("pixel: %dx%d buffer needs %d bytes, got %d", w, h, w*h*4, len(data))
	}
	b := New(w, h)
	copy(b.Pix, data)
	return b, nil
}

// index converts a coordinate to the offset of its red byte.
func (b *Buffer) index(x, y int) int {
	return (y*b.W + x) * 4
}

// InBounds returns true if (x, y) lies within [0,W) x [0,H).
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// At returns the pixel at (x, y).
// Returns Transparent for out-of-bounds coordinates.
func (b *Buffer) At(x, y int) RGBA {
	if !b.InBounds(x, y) {
		return Transparent
	}
	i := b.index(x, y)
	return RGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// Set writes the pixel at (x, y).
// Out-of-bounds coordinates are silently ignored.
func (b *Buffer) Set(x, y int, c RGBA) {
	if !b.InBounds(x, y) {
		return
	}
	i := b.index(x, y)
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = c.A
}

// SetAlpha changes only the alpha byte at (x, y), keeping RGB.
func (b *Buffer) SetAlpha(x, y int, a uint8) {
	if !b.InBounds(x, y) {
		return
	}
	b.Pix[b.index(x, y)+3] = a
}

// Clear makes every pixel fully transparent black.
func (b *Buffer) Clear() {
	clear(b.Pix)
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{
		W:   b.W,
		H:   b.H,
		Pix: pix,
	}
}

// Bytes returns a copy of the raw pixel data.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.Pix))
	copy(out, b.Pix)
	return out
}

// Equal returns true if two buffers have the same dimensions and bytes.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil || b.W != other.W || b.H != other.H || len(b.Pix) != len(other.Pix) {
		return false
	}
	for i, v := range b.Pix {
		if v != other.Pix[i] {
			return false
		}
	}
	return true
}

// VisibleCount returns the number of pixels with alpha > 0.
func (b *Buffer) VisibleCount() int {
	count := 0
	for i := 3; i < len(b.Pix); i += 4 {
		if b.Pix[i] > 0 {
			count++
		}
	}
	return count
}

// ToImage converts the buffer to an image.NRGBA (straight alpha, no copy loss).
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.W, b.H))
	copy(img.Pix, b.Pix)
	return img
}

// FromImage creates a buffer from any image, converting to straight alpha.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	b := New(bounds.Dx(), bounds.Dy())
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			b.Set(x, y, RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	return b
}
