package epl

import (
	"fmt"

	"github.com/gogpu/label/layout"
)

// Encode validates doc and serializes it: header, every element in
// document order, then P1. Nothing is returned for an invalid document.
func Encode(doc *layout.Document) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	e := NewEmitter(estimate(doc))
	e.Header(doc.CanvasWidth, doc.CanvasHeight, doc.Gap, doc.Darkness, doc.Speed)
	for i, el := range doc.Elements {
		switch el := el.(type) {
		case *layout.TextBlock:
			e.Image(el.X, el.Y, el.Raster)
		case *layout.Barcode:
			e.Barcode(el.X, el.Y, int(el.Rotation), el.Narrow, el.Wide, el.Height, el.HRI, el.Digits)
		case *layout.Rule:
			w, h := el.Extents()
			e.Rule(el.X, el.Y, w, h)
		default:
			return nil, fmt.Errorf("epl: element %d: unsupported type %T", i, el)
		}
	}
	e.End()
	return e.Bytes(), nil
}

func estimate(doc *layout.Document) int {
	n := 64
	for _, el := range doc.Elements {
		n += 48
		if tb, ok := el.(*layout.TextBlock); ok {
			n += len(tb.Raster.Rows)
		}
	}
	return n
}
