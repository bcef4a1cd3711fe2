package text

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/label/internal/cache"
	"github.com/gogpu/label/internal/logging"
	"github.com/gogpu/label/raster"
)

// Defaults applied to zero RasterOptions fields.
const (
	DefaultThreshold  = 0.65
	DefaultMinHeight  = 30
	DefaultBoldPasses = 2
)

// Align positions the text inside the bitmap when the bitmap is wider than
// the text, or clipped by MaxWidth.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// RasterOptions configures Rasterize.
type RasterOptions struct {
	// Size is the font size in pixels per em.
	Size int
	// Padding is added on both sides of the text.
	Padding int
	// Bold draws every glyph BoldPasses times, one pixel apart.
	Bold       bool
	BoldPasses int
	// MaxWidth caps the bitmap width. Zero means no cap.
	MaxWidth int
	Align    Align
	// Threshold is the coverage in (0, 1) above which a pixel is inked.
	Threshold float64
	// MinHeight floors the bitmap height.
	MinHeight int
}

func (o RasterOptions) passes() int {
	if !o.Bold {
		return 1
	}
	if o.BoldPasses < 1 {
		return DefaultBoldPasses
	}
	return o.BoldPasses
}

func (o RasterOptions) threshold() uint8 {
	t := o.Threshold
	if t <= 0 || t >= 1 {
		t = DefaultThreshold
	}
	return uint8(math.Floor(t * 0xff))
}

func (o RasterOptions) minHeight() int {
	if o.MinHeight <= 0 {
		return DefaultMinHeight
	}
	return o.MinHeight
}

// Rasterize draws display-order text into a tight monochrome bitmap.
//
// The bitmap is as wide as the text plus Padding on both sides (and one
// pixel per extra bold pass), capped at MaxWidth, and as tall as the font's
// rounded-up ascent plus descent, floored at MinHeight. The baseline sits at
// the rounded-up ascent. Each glyph's anti-aliased coverage is binarized
// against Threshold; bold passes are ORed together. Output is a pure
// function of the arguments.
func Rasterize(f *Font, s Shaped, o RasterOptions) (*raster.Bitmap, error) {
	f.copyCheck()
	if o.Size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, o.Size)
	}

	run := f.layoutLine(s, o.Size)
	m := f.Metrics(o.Size)
	ascent := ceil(m.Ascent)
	height := max(ascent+ceil(m.Descent), o.minHeight())

	// Scoped to this call: repeated glyphs in the line load once.
	loaded := cache.New[outlineKey, sfnt.Segments](0)
	inkRight := run.advance
	outlines := make([]sfnt.Segments, len(run.glyphs))
	for i, g := range run.glyphs {
		segs := f.outline(loaded, g.id, o.Size)
		outlines[i] = segs
		if len(segs) > 0 {
			if r := g.x + segs.Bounds().Max.X; r > inkRight {
				inkRight = r
			}
		}
	}

	passes := o.passes()
	extra := passes - 1
	textW := max(inkRight.Ceil(), 0)
	width := textW + extra + 2*o.Padding
	if o.MaxWidth > 0 && width > o.MaxWidth {
		width = o.MaxWidth
	}
	width = max(width, 1)

	var startX int
	switch o.Align {
	case AlignRight:
		startX = width - o.Padding - textW - extra
	case AlignCenter:
		startX = (width - textW - extra) / 2
	default:
		startX = o.Padding
	}

	bm := raster.NewBitmap(width, height)
	th := o.threshold()
	var rast vector.Rasterizer
	for i, g := range run.glyphs {
		if len(outlines[i]) == 0 {
			continue
		}
		dot := fixed.Point26_6{
			X: fixed.I(startX) + g.x,
			Y: fixed.I(ascent) + g.y,
		}
		mask, origin := glyphMask(&rast, outlines[i], dot)
		if mask == nil {
			continue
		}
		b := mask.Bounds()
		for y := 0; y < b.Dy(); y++ {
			row := mask.Pix[y*mask.Stride : y*mask.Stride+b.Dx()]
			for x, a := range row {
				if a <= th {
					continue
				}
				for dx := 0; dx < passes; dx++ {
					bm.Set(origin.X+x+dx, origin.Y+y, true)
				}
			}
		}
	}

	logging.L().Debug("text: rasterized",
		"font", f.name, "size", o.Size, "glyphs", len(run.glyphs),
		"width", width, "height", height, "passes", passes)
	return bm, nil
}

// glyphMask fills one outline at dot, returning the coverage mask and the
// position of its top-left pixel.
func glyphMask(z *vector.Rasterizer, segs sfnt.Segments, dot fixed.Point26_6) (*image.Alpha, image.Point) {
	bounds := segs.Bounds()
	dr := image.Rectangle{
		Min: image.Point{
			X: (dot.X + bounds.Min.X).Floor(),
			Y: (dot.Y + bounds.Min.Y).Floor(),
		},
		Max: image.Point{
			X: (dot.X + bounds.Max.X).Ceil(),
			Y: (dot.Y + bounds.Max.Y).Ceil(),
		},
	}
	if dr.Empty() {
		return nil, image.Point{}
	}
	biasX := dot.X - fixed.Int26_6(dr.Min.X<<6)
	biasY := dot.Y - fixed.Int26_6(dr.Min.Y<<6)

	w, h := dr.Dx(), dr.Dy()
	z.Reset(w, h)
	z.DrawOp = draw.Src
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			z.MoveTo(
				float32(seg.Args[0].X+biasX)/64,
				float32(seg.Args[0].Y+biasY)/64,
			)
		case sfnt.SegmentOpLineTo:
			z.LineTo(
				float32(seg.Args[0].X+biasX)/64,
				float32(seg.Args[0].Y+biasY)/64,
			)
		case sfnt.SegmentOpQuadTo:
			z.QuadTo(
				float32(seg.Args[0].X+biasX)/64,
				float32(seg.Args[0].Y+biasY)/64,
				float32(seg.Args[1].X+biasX)/64,
				float32(seg.Args[1].Y+biasY)/64,
			)
		case sfnt.SegmentOpCubeTo:
			z.CubeTo(
				float32(seg.Args[0].X+biasX)/64,
				float32(seg.Args[0].Y+biasY)/64,
				float32(seg.Args[1].X+biasX)/64,
				float32(seg.Args[1].Y+biasY)/64,
				float32(seg.Args[2].X+biasX)/64,
				float32(seg.Args[2].Y+biasY)/64,
			)
		}
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, dr.Min
}

func ceil(v float64) int {
	return int(math.Ceil(v))
}
