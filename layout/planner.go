package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/label/barcode"
	"github.com/gogpu/label/config"
	"github.com/gogpu/label/internal/logging"
	"github.com/gogpu/label/raster"
	"github.com/gogpu/label/text"
)

// Sentinel errors for layout package.
var (
	// ErrInvalidProductCount is returned for anything but 2 or 4 products.
	ErrInvalidProductCount = errors.New("layout: product count must be 2 or 4")

	// ErrCanvasTooSmall is returned when the arrangement does not fit.
	ErrCanvasTooSmall = errors.New("layout: canvas too small")
)

// Product is one item on a label.
type Product struct {
	Name    string `yaml:"name"`
	Price   string `yaml:"price"`
	Barcode string `yaml:"barcode"`
}

// Request is the content of one label.
type Request struct {
	// Title is printed as a caption in every grid quadrant when set.
	Title    string    `yaml:"title"`
	Products []Product `yaml:"products"`
}

// Planner turns requests into documents using one font and profile.
// A Planner holds no mutable state and is safe for concurrent use.
type Planner struct {
	font    *text.Font
	profile config.Profile
}

// NewPlanner returns a Planner. The profile is validated.
func NewPlanner(f *text.Font, p config.Profile) (*Planner, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: %w", text.ErrFontDecode, text.ErrEmptyFontData)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Planner{font: f, profile: p}, nil
}

// Profile returns the planner's profile.
func (p *Planner) Profile() config.Profile { return p.profile }

// CheckRequest validates the product count and every barcode without
// rendering anything.
func CheckRequest(req Request) ([]barcode.EAN13, error) {
	if n := len(req.Products); n != 2 && n != 4 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidProductCount, n)
	}
	codes := make([]barcode.EAN13, len(req.Products))
	for i, prod := range req.Products {
		c, err := barcode.Normalize(prod.Barcode)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		codes[i] = c
	}
	return codes, nil
}

// Plan lays out req. All validation happens before any text is rendered.
func (p *Planner) Plan(req Request) (*Document, error) {
	codes, err := CheckRequest(req)
	if err != nil {
		return nil, err
	}
	if err := p.checkFits(req); err != nil {
		return nil, err
	}

	pr := p.profile
	doc := &Document{
		CanvasWidth:  pr.Canvas.Width,
		CanvasHeight: pr.Canvas.Height,
		Gap:          pr.Canvas.Gap,
		Darkness:     pr.Darkness,
		Speed:        pr.Speed,
	}
	if len(req.Products) == 2 {
		err = p.planPair(doc, req, codes)
	} else {
		err = p.planGrid(doc, req, codes)
	}
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if pr.Orientation == config.Landscape {
		doc = doc.Rotated()
		if err := doc.Validate(); err != nil {
			return nil, err
		}
	}
	logging.L().Debug("layout: planned",
		"products", len(req.Products), "elements", len(doc.Elements),
		"canvas", fmt.Sprintf("%dx%d", doc.CanvasWidth, doc.CanvasHeight),
		"orientation", pr.Orientation)
	return doc, nil
}

func (p *Planner) hriHeight() int {
	if !p.profile.Barcode.HRI {
		return 0
	}
	return p.profile.Barcode.HRIHeight
}

func (p *Planner) hriLead() int {
	if !p.profile.Barcode.HRI {
		return 0
	}
	return barcode.LeadModules * p.profile.Barcode.Narrow
}

// checkFits rejects canvases that cannot hold the arrangement with
// minimum-height text.
func (p *Planner) checkFits(req Request) error {
	pr := p.profile
	bw := barcode.Width(pr.Barcode.Narrow) + p.hriLead()
	minLine := pr.Text.MinLineHeight
	gap := pr.Layout.ElementGap

	var need, have, wneed, whave int
	if len(req.Products) == 2 {
		need = pr.Layout.TopMargin + minLine + gap + pr.Barcode.Height + p.hriHeight()
		have = pr.Canvas.Height / 2
		wneed, whave = bw, pr.Canvas.Width
	} else {
		need = pr.Layout.TopMargin + minLine + gap + pr.Barcode.GridHeight + p.hriHeight()
		if req.Title != "" {
			need += minLine + gap
		}
		have = (pr.Canvas.Height - pr.Layout.GridGap) / 2
		wneed, whave = bw, (pr.Canvas.Width-pr.Layout.GridGap)/2
	}
	if need > have || wneed > whave {
		return fmt.Errorf("%w: need %dx%d per cell, have %dx%d", ErrCanvasTooSmall, wneed, need, whave, have)
	}
	return nil
}

// renderText shapes, rasterizes and packs one line.
func (p *Planner) renderText(s string, size int, bold bool, maxWidth int, align text.Align) (*raster.Packed, error) {
	t := p.profile.Text
	shaped := text.Shape(s)
	if err := p.font.Coverage(shaped.String()); err != nil {
		logging.L().Warn("layout: missing glyphs", "err", err)
	}
	bm, err := text.Rasterize(p.font, shaped, text.RasterOptions{
		Size:       size,
		Padding:    t.Padding,
		Bold:       bold,
		BoldPasses: t.BoldPasses,
		MaxWidth:   maxWidth,
		Align:      align,
		Threshold:  t.Threshold,
		MinHeight:  t.MinLineHeight,
	})
	if err != nil {
		return nil, err
	}
	return raster.Pack(bm, p.profile.Polarity), nil
}

// productLine joins name and price with sep and appends the currency.
func (p *Planner) productLine(prod Product, sep string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(prod.Name))
	b.WriteString(sep)
	b.WriteString(strings.TrimSpace(prod.Price))
	if c := p.profile.Text.Currency; c != "" {
		b.WriteByte(' ')
		b.WriteString(c)
	}
	return b.String()
}

func (p *Planner) digits(c barcode.EAN13) string {
	if p.profile.Barcode.Checksum == config.ChecksumFirmware {
		return c.Payload()
	}
	return c.String()
}

// planPair stacks two bands. In each band the text is right-aligned to the
// canvas and the barcode is centered below it.
func (p *Planner) planPair(doc *Document, req Request, codes []barcode.EAN13) error {
	pr := p.profile
	w := pr.Canvas.Width
	band := pr.Canvas.Height / 2
	bw := barcode.Width(pr.Barcode.Narrow)

	for i, prod := range req.Products {
		top := i * band
		line, err := p.renderText(p.productLine(prod, "    "), pr.Text.Size, pr.Text.Bold, w, text.AlignRight)
		if err != nil {
			return err
		}
		tb := &TextBlock{Raster: line, X: w - line.Width, Y: top + pr.Layout.TopMargin}

		bc := &Barcode{
			X:         (w - bw) / 2,
			Y:         BarcodeY(tb.Y, line.Height, pr.Layout.ElementGap),
			Narrow:    pr.Barcode.Narrow,
			Wide:      pr.Barcode.Wide,
			Height:    pr.Barcode.Height,
			HRI:       pr.Barcode.HRI,
			HRIHeight: p.hriHeight(),
			Digits:    p.digits(codes[i]),
		}
		if end := bc.Bounds().Max.Y; end > top+band {
			return fmt.Errorf("%w: product %d needs %d dots, band is %d", ErrCanvasTooSmall, i, end-top, band)
		}
		logging.L().Debug("layout: band", "index", i, "text", tb.Bounds(), "barcode", bc.Bounds())
		doc.Elements = append(doc.Elements, tb, bc)
	}
	return nil
}

// BarcodeY returns the barcode top for text at textY with the measured
// textHeight. It is always below the text.
func BarcodeY(textY, textHeight, gap int) int {
	return textY + textHeight + max(gap, 1)
}

// planGrid fills four quadrants left to right, top to bottom, then adds
// the separator rules.
func (p *Planner) planGrid(doc *Document, req Request, codes []barcode.EAN13) error {
	pr := p.profile
	g := pr.Layout.GridGap
	qw := (pr.Canvas.Width - g) / 2
	qh := (pr.Canvas.Height - g) / 2
	bw := barcode.Width(pr.Barcode.Narrow)
	lead := p.hriLead()
	gap := pr.Layout.ElementGap

	var caption *raster.Packed
	if req.Title != "" {
		var err error
		caption, err = p.renderText(req.Title, pr.Text.CaptionSize, false, qw, text.AlignCenter)
		if err != nil {
			return err
		}
	}

	for i, prod := range req.Products {
		qx := (i % 2) * (qw + g)
		qy := (i / 2) * (qh + g)
		y := qy + pr.Layout.TopMargin

		if caption != nil {
			doc.Elements = append(doc.Elements, &TextBlock{
				Raster: caption,
				X:      qx + (qw-caption.Width)/2,
				Y:      y,
			})
			y += caption.Height + gap
		}

		line, err := p.renderText(p.productLine(prod, "  "), pr.Text.GridSize, pr.Text.Bold, qw, text.AlignCenter)
		if err != nil {
			return err
		}
		doc.Elements = append(doc.Elements, &TextBlock{
			Raster: line,
			X:      qx + (qw-line.Width)/2,
			Y:      y,
		})

		// Keep the leading HRI digit inside the quadrant.
		bx := qx + (qw-bw)/2
		if bx-qx < lead {
			bx = qx + lead
		}
		bc := &Barcode{
			X:         bx,
			Y:         BarcodeY(y, line.Height, gap),
			Narrow:    pr.Barcode.Narrow,
			Wide:      pr.Barcode.Wide,
			Height:    pr.Barcode.GridHeight,
			HRI:       pr.Barcode.HRI,
			HRIHeight: p.hriHeight(),
			Digits:    p.digits(codes[i]),
		}
		b := bc.Bounds()
		if b.Max.Y > qy+qh || b.Max.X > qx+qw {
			return fmt.Errorf("%w: quadrant %d needs %v, has %dx%d", ErrCanvasTooSmall, i, b.Size(), qw, qh)
		}
		logging.L().Debug("layout: quadrant", "index", i, "barcode", b)
		doc.Elements = append(doc.Elements, bc)
	}

	if pr.Layout.GridRules && g > 0 {
		t := min(pr.Layout.RuleWidth, g)
		doc.Elements = append(doc.Elements,
			&Rule{X: 0, Y: qh + (g-t)/2, Thickness: t, Length: pr.Canvas.Width, Orientation: Horizontal},
			&Rule{X: qw + (g-t)/2, Y: 0, Thickness: t, Length: pr.Canvas.Height, Orientation: Vertical},
		)
	}
	return nil
}
