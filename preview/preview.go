// Package preview draws a planned label as an image, approximating what
// the printer produces. It is meant for checking layouts without a printer.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	bc "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/ean"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/label/barcode"
	"github.com/gogpu/label/layout"
	"github.com/gogpu/label/raster"
)

var (
	paper = image.NewUniform(color.Gray{Y: 0xff})
	ink   = image.NewUniform(color.Gray{Y: 0})
)

// Render draws doc at one pixel per dot.
func Render(doc *layout.Document) (*image.Gray, error) {
	dst := image.NewGray(doc.Canvas())
	draw.Draw(dst, dst.Bounds(), paper, image.Point{}, draw.Src)

	for i, el := range doc.Elements {
		var err error
		switch el := el.(type) {
		case *layout.TextBlock:
			blit(dst, el.Raster.Unpack(), image.Pt(el.X, el.Y))
		case *layout.Barcode:
			err = drawBarcode(dst, el)
		case *layout.Rule:
			draw.Draw(dst, el.Bounds(), ink, image.Point{}, draw.Src)
		default:
			err = fmt.Errorf("unsupported element %T", el)
		}
		if err != nil {
			return nil, fmt.Errorf("preview: element %d: %w", i, err)
		}
	}
	return dst, nil
}

// Scale magnifies img by an integer factor with nearest-neighbour
// sampling, keeping dots square.
func Scale(img *image.Gray, factor int) *image.Gray {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG renders doc, magnified by scale, as a PNG.
func WritePNG(w io.Writer, doc *layout.Document, scale int) error {
	img, err := Render(doc)
	if err != nil {
		return err
	}
	return png.Encode(w, Scale(img, scale))
}

func blit(dst *image.Gray, b *raster.Bitmap, at image.Point) {
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.At(x, y) {
				dst.SetGray(at.X+x, at.Y+y, color.Gray{})
			}
		}
	}
}

// drawBarcode draws the bars and, for unrotated symbols, the digits.
func drawBarcode(dst *image.Gray, b *layout.Barcode) error {
	code, err := ean.Encode(b.Digits)
	if err != nil {
		return err
	}
	w := barcode.Width(b.Narrow)
	scaled, err := bc.Scale(code, w, b.Height)
	if err != nil {
		return err
	}

	bars := raster.NewBitmap(w, b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < w; x++ {
			if color.GrayModel.Convert(scaled.At(x, y)).(color.Gray).Y < 0x80 {
				bars.Set(x, y, true)
			}
		}
	}
	for i := 0; i < int(b.Rotation)%4; i++ {
		bars = bars.Rotate90()
	}

	var at image.Point
	switch b.Rotation {
	case layout.Rotate90:
		at = image.Pt(b.X-b.Height, b.Y)
	case layout.Rotate180:
		at = image.Pt(b.X-w, b.Y-b.Height)
	case layout.Rotate270:
		at = image.Pt(b.X, b.Y-w)
	default:
		at = image.Pt(b.X, b.Y)
	}
	blit(dst, bars, at)

	if b.HRI && b.Rotation == layout.Rotate0 {
		drawDigits(dst, code.Content(), b)
	}
	return nil
}

// drawDigits prints the human-readable digits under the bars: the first
// one left of the start guard, then two groups of six.
func drawDigits(dst *image.Gray, digits string, b *layout.Barcode) {
	d := font.Drawer{Dst: dst, Src: ink, Face: basicfont.Face7x13}
	baseline := b.Y + b.Height + basicfont.Face7x13.Ascent + 1
	left := b.X + 3*b.Narrow
	right := b.X + 50*b.Narrow
	groups := []struct {
		x int
		s string
	}{
		{b.X - barcode.LeadModules*b.Narrow, digits[:1]},
		{left, digits[1:7]},
		{right, digits[7:]},
	}
	for _, g := range groups {
		d.Dot = fixed.P(g.x, baseline)
		d.DrawString(g.s)
	}
}
