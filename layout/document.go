package layout

import (
	"fmt"
	"image"

	"github.com/gogpu/label/barcode"
	"github.com/gogpu/label/raster"
)

// Element is one placed item of a Document: *TextBlock, *Barcode or *Rule.
type Element interface {
	// Bounds returns the dots the element may ink.
	Bounds() image.Rectangle
	element()
}

// TextBlock is a packed text raster with its top-left corner at X, Y.
type TextBlock struct {
	Raster *raster.Packed
	X, Y   int
}

func (*TextBlock) element() {}

// Bounds implements Element.
func (t *TextBlock) Bounds() image.Rectangle {
	return image.Rect(t.X, t.Y, t.X+t.Raster.Width, t.Y+t.Raster.Height)
}

// Rotation is an EPL2 rotation: clockwise quarter turns about the anchor.
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// Barcode is an EAN-13 symbol drawn by the printer. X, Y is the top-left
// corner of the bars before rotation.
type Barcode struct {
	X, Y     int
	Rotation Rotation
	Narrow   int
	Wide     int
	Height   int
	// HRI prints the digits below the bars. HRIHeight is the space they
	// take, and the first digit sits left of the bars.
	HRI       bool
	HRIHeight int
	Digits    string
}

func (*Barcode) element() {}

// Bounds implements Element.
func (b *Barcode) Bounds() image.Rectangle {
	w := barcode.Width(b.Narrow)
	h := b.Height
	lead := 0
	if b.HRI {
		h += b.HRIHeight
		lead = barcode.LeadModules * b.Narrow
	}
	x, y := b.X, b.Y
	switch b.Rotation {
	case Rotate90:
		return image.Rect(x-h, y-lead, x, y+w)
	case Rotate180:
		return image.Rect(x-w, y-h, x+lead, y)
	case Rotate270:
		return image.Rect(x, y-w, x+h, y+lead)
	default:
		return image.Rect(x-lead, y, x+w, y+h)
	}
}

// RuleOrientation is the direction a rule runs in.
type RuleOrientation int

const (
	Horizontal RuleOrientation = iota
	Vertical
)

// Rule is a solid line starting at X, Y.
type Rule struct {
	X, Y        int
	Thickness   int
	Length      int
	Orientation RuleOrientation
}

func (*Rule) element() {}

// Extents returns the horizontal and vertical size of the rule.
func (r *Rule) Extents() (w, h int) {
	if r.Orientation == Vertical {
		return r.Thickness, r.Length
	}
	return r.Length, r.Thickness
}

// Bounds implements Element.
func (r *Rule) Bounds() image.Rectangle {
	w, h := r.Extents()
	return image.Rect(r.X, r.Y, r.X+w, r.Y+h)
}

// Document is a fully planned label. Elements are emitted in order.
type Document struct {
	CanvasWidth  int
	CanvasHeight int
	Gap          int
	Darkness     int
	Speed        int
	Elements     []Element
}

// Canvas returns the printable area.
func (d *Document) Canvas() image.Rectangle {
	return image.Rect(0, 0, d.CanvasWidth, d.CanvasHeight)
}

// Validate checks that every element lies inside the canvas.
func (d *Document) Validate() error {
	canvas := d.Canvas()
	for i, el := range d.Elements {
		if b := el.Bounds(); !b.In(canvas) {
			return fmt.Errorf("%w: element %d (%T) at %v outside %v", ErrCanvasTooSmall, i, el, b, canvas)
		}
	}
	return nil
}

// Rotated returns d turned 90 degrees clockwise for stock fed sideways.
// Canvas dimensions swap, rasters are rotated pixel for pixel and
// barcodes advance one quarter turn.
func (d *Document) Rotated() *Document {
	h := d.CanvasHeight
	out := &Document{
		CanvasWidth:  d.CanvasHeight,
		CanvasHeight: d.CanvasWidth,
		Gap:          d.Gap,
		Darkness:     d.Darkness,
		Speed:        d.Speed,
		Elements:     make([]Element, 0, len(d.Elements)),
	}
	for _, el := range d.Elements {
		switch el := el.(type) {
		case *TextBlock:
			out.Elements = append(out.Elements, &TextBlock{
				Raster: el.Raster.Rotate90(),
				X:      h - el.Y - el.Raster.Height,
				Y:      el.X,
			})
		case *Barcode:
			b := *el
			b.X, b.Y = h-el.Y, el.X
			b.Rotation = (el.Rotation + 1) % 4
			out.Elements = append(out.Elements, &b)
		case *Rule:
			_, eh := el.Extents()
			r := *el
			r.X, r.Y = h-el.Y-eh, el.X
			r.Orientation = Vertical - el.Orientation
			out.Elements = append(out.Elements, &r)
		}
	}
	return out
}
