// Package epl writes and reads EPL2 printer command streams.
package epl

import (
	"strconv"

	"github.com/gogpu/label/raster"
)

// EOL terminates every textual directive.
const EOL = "\r\n"

// BarcodeType is the EPL2 symbology selector for EAN-13 (UCC/EAN with
// the check digit printed).
const BarcodeType = "E30"

// Emitter appends EPL2 directives to a byte buffer. Directives are written
// in call order; the Emitter never reorders or merges them.
//
// The zero value is ready to use.
type Emitter struct {
	buf []byte
}

// NewEmitter returns an Emitter with room for size bytes.
func NewEmitter(size int) *Emitter {
	return &Emitter{buf: make([]byte, 0, size)}
}

// Header clears the image buffer and sets the label geometry, darkness and
// speed: N, q, Q, D and S.
func (e *Emitter) Header(width, height, gap, darkness, speed int) {
	e.line("N")
	e.buf = append(e.buf, 'q')
	e.ints(width)
	e.eol()
	e.buf = append(e.buf, 'Q')
	e.ints(height, gap)
	e.eol()
	e.buf = append(e.buf, 'D')
	e.ints(darkness)
	e.eol()
	e.buf = append(e.buf, 'S')
	e.ints(speed)
	e.eol()
}

// Image writes a GW block: the header, exactly BytesPerRow*Height raw
// bytes, then EOL. The header follows the EPL2 manual syntax
// GWp1,p2,p3,p4,DATA, so a comma separates the height from the data.
func (e *Emitter) Image(x, y int, p *raster.Packed) {
	e.buf = append(e.buf, 'G', 'W')
	e.ints(x, y, p.BytesPerRow, p.Height)
	e.buf = append(e.buf, ',')
	e.buf = append(e.buf, p.Rows[:p.BytesPerRow*p.Height]...)
	e.eol()
}

// Barcode writes a B directive for an EAN-13 symbol.
func (e *Emitter) Barcode(x, y, rotation, narrow, wide, height int, hri bool, digits string) {
	e.buf = append(e.buf, 'B')
	e.ints(x, y, rotation)
	e.buf = append(e.buf, ',')
	e.buf = append(e.buf, BarcodeType...)
	e.buf = append(e.buf, ',')
	e.ints(narrow, wide, height)
	if hri {
		e.buf = append(e.buf, ",B,\""...)
	} else {
		e.buf = append(e.buf, ",N,\""...)
	}
	e.buf = append(e.buf, digits...)
	e.buf = append(e.buf, '"')
	e.eol()
}

// Rule writes an LO directive. EPL2 reads the last two parameters as the
// horizontal and vertical extent, so a vertical rule is (thickness, length).
func (e *Emitter) Rule(x, y, thickness, length int) {
	e.buf = append(e.buf, 'L', 'O')
	e.ints(x, y, thickness, length)
	e.eol()
}

// End prints one copy.
func (e *Emitter) End() {
	e.line("P1")
}

// Bytes returns the stream written so far. It aliases the Emitter's buffer
// until the next write.
func (e *Emitter) Bytes() []byte { return e.buf }

// Len returns the number of bytes written.
func (e *Emitter) Len() int { return len(e.buf) }

// Reset discards the stream, keeping the buffer.
func (e *Emitter) Reset() { e.buf = e.buf[:0] }

func (e *Emitter) line(s string) {
	e.buf = append(e.buf, s...)
	e.eol()
}

func (e *Emitter) eol() {
	e.buf = append(e.buf, EOL...)
}

// ints appends comma-separated decimal values.
func (e *Emitter) ints(vs ...int) {
	for i, v := range vs {
		if i > 0 {
			e.buf = append(e.buf, ',')
		}
		e.buf = strconv.AppendInt(e.buf, int64(v), 10)
	}
}
