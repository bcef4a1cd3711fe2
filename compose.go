package label

import (
	"github.com/gogpu/label/barcode"
	"github.com/gogpu/label/config"
	"github.com/gogpu/label/epl"
	"github.com/gogpu/label/layout"
	"github.com/gogpu/label/text"
)

// Product and Request describe the content of one label.
type (
	Product = layout.Product
	Request = layout.Request
)

// Composition errors, matched with errors.Is.
var (
	ErrInvalidProductCount = layout.ErrInvalidProductCount
	ErrInvalidBarcode      = barcode.ErrInvalidDigits
	ErrFontDecode          = text.ErrFontDecode
	ErrCanvasTooSmall      = layout.ErrCanvasTooSmall
	ErrInvalidProfile      = config.ErrInvalidProfile
)

// Composer turns requests into EPL2 streams with one font and profile.
// A Composer is safe for concurrent use.
type Composer struct {
	planner *layout.Planner
}

// NewComposer returns a Composer using f. The resolved profile is
// validated.
func NewComposer(f *text.Font, opts ...ComposerOption) (*Composer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p, err := layout.NewPlanner(f, o.resolve())
	if err != nil {
		return nil, err
	}
	return &Composer{planner: p}, nil
}

// Profile returns the profile the Composer renders with.
func (c *Composer) Profile() config.Profile {
	return c.planner.Profile()
}

// Compose plans req without encoding it.
func (c *Composer) Compose(req Request) (*layout.Document, error) {
	return c.planner.Plan(req)
}

// Render composes req and encodes it. On error no bytes are returned.
func (c *Composer) Render(req Request) ([]byte, error) {
	doc, err := c.planner.Plan(req)
	if err != nil {
		return nil, err
	}
	data, err := epl.Encode(doc)
	if err != nil {
		return nil, err
	}
	Logger().Info("label: composed",
		"products", len(req.Products), "elements", len(doc.Elements), "bytes", len(data))
	return data, nil
}

// Render is a one-shot helper that parses fontData and renders req. The
// request is checked before the font is parsed. Prefer a Composer when
// printing more than one label with the same font.
func Render(fontData []byte, req Request, opts ...ComposerOption) ([]byte, error) {
	if _, err := layout.CheckRequest(req); err != nil {
		return nil, err
	}
	f, err := text.NewFont(fontData)
	if err != nil {
		return nil, err
	}
	c, err := NewComposer(f, opts...)
	if err != nil {
		return nil, err
	}
	return c.Render(req)
}
