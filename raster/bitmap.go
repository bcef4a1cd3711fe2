// Package raster holds the 1-bit images produced by the glyph rasterizer and
// their packed, printer-ready form.
package raster

import "fmt"

// Bitmap is a monochrome image. Pix is row-major, true meaning ink.
type Bitmap struct {
	Width  int
	Height int
	Pix    []bool
}

// NewBitmap returns a blank bitmap. It panics if either dimension is not
// positive.
func NewBitmap(width, height int) *Bitmap {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("raster: invalid bitmap size %dx%d", width, height))
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]bool, width*height),
	}
}

// At reports whether (x, y) is inked. Out-of-range coordinates are blank.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Pix[y*b.Width+x]
}

// Set inks or clears (x, y). Out-of-range coordinates are ignored.
func (b *Bitmap) Set(x, y int, ink bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = ink
}

// BlackCount returns the number of inked pixels.
func (b *Bitmap) BlackCount() int {
	n := 0
	for _, p := range b.Pix {
		if p {
			n++
		}
	}
	return n
}

// Equal reports whether b and o have the same size and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b.Width != o.Width || b.Height != o.Height {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Rotate90 returns b rotated 90 degrees clockwise.
// Pixel (x, y) moves to (Height-1-y, x).
func (b *Bitmap) Rotate90() *Bitmap {
	r := NewBitmap(b.Height, b.Width)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Pix[y*b.Width+x] {
				r.Pix[x*r.Width+(b.Height-1-y)] = true
			}
		}
	}
	return r
}
