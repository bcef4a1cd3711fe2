package raster

import (
	"fmt"
	"strings"
)

// Polarity selects how ink maps to bits in a packed row.
type Polarity int

const (
	// Normal packs ink as 1.
	Normal Polarity = iota
	// Inverted packs ink as 0. EPL2 GW prints a 0 bit as a black dot.
	Inverted
)

// String implements fmt.Stringer.
func (p Polarity) String() string {
	switch p {
	case Normal:
		return "normal"
	case Inverted:
		return "inverted"
	default:
		return fmt.Sprintf("Polarity(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Polarity) MarshalText() ([]byte, error) {
	switch p {
	case Normal, Inverted:
		return []byte(p.String()), nil
	}
	return nil, fmt.Errorf("raster: unknown polarity %d", int(p))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Polarity) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "normal":
		*p = Normal
	case "inverted", "invert":
		*p = Inverted
	default:
		return fmt.Errorf("raster: unknown polarity %q", b)
	}
	return nil
}

// Packed is a Bitmap packed eight pixels per byte, MSB first, each row padded
// to a whole byte.
type Packed struct {
	Width       int
	Height      int
	BytesPerRow int
	Rows        []byte
	Polarity    Polarity
}

// BytesPerRow returns ceil(width/8).
func BytesPerRow(width int) int {
	return (width + 7) / 8
}

// Pack packs b row by row. Padding bits are 0 before inversion, so with
// Inverted polarity every byte, padding included, is complemented.
func Pack(b *Bitmap, pol Polarity) *Packed {
	bpr := BytesPerRow(b.Width)
	rows := make([]byte, bpr*b.Height)
	for y := 0; y < b.Height; y++ {
		row := rows[y*bpr : (y+1)*bpr]
		src := b.Pix[y*b.Width : (y+1)*b.Width]
		for x, ink := range src {
			if ink {
				row[x>>3] |= 0x80 >> uint(x&7)
			}
		}
	}
	if pol == Inverted {
		for i := range rows {
			rows[i] = ^rows[i]
		}
	}
	return &Packed{
		Width:       b.Width,
		Height:      b.Height,
		BytesPerRow: bpr,
		Rows:        rows,
		Polarity:    pol,
	}
}

// Row returns the bytes of row y.
func (p *Packed) Row(y int) []byte {
	return p.Rows[y*p.BytesPerRow : (y+1)*p.BytesPerRow]
}

// Unpack reverses Pack.
func (p *Packed) Unpack() *Bitmap {
	b := NewBitmap(p.Width, p.Height)
	for y := 0; y < p.Height; y++ {
		row := p.Row(y)
		for x := 0; x < p.Width; x++ {
			bit := row[x>>3]&(0x80>>uint(x&7)) != 0
			if p.Polarity == Inverted {
				bit = !bit
			}
			b.Pix[y*p.Width+x] = bit
		}
	}
	return b
}

// Rotate90 returns p rotated 90 degrees clockwise with the same polarity.
func (p *Packed) Rotate90() *Packed {
	return Pack(p.Unpack().Rotate90(), p.Polarity)
}
