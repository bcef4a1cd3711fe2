package config

import "github.com/gogpu/label/raster"

// Option adjusts a Profile during New.
//
// Example:
//
//	p, err := config.New(
//	    config.WithDarkness(12),
//	    config.WithOrientation(config.Landscape),
//	)
type Option func(*Profile)

// New returns Default with opts applied, validated.
func New(opts ...Option) (Profile, error) {
	p := Default()
	for _, opt := range opts {
		opt(&p)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// With returns a copy of p with opts applied. The copy is not validated.
func (p Profile) With(opts ...Option) Profile {
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithCanvas sets the printable area and the inter-label gap.
func WithCanvas(width, height, gap int) Option {
	return func(p *Profile) {
		p.Canvas = Canvas{Width: width, Height: height, Gap: gap}
	}
}

// WithDarkness sets the print density, 0..15.
func WithDarkness(d int) Option {
	return func(p *Profile) { p.Darkness = d }
}

// WithSpeed sets the print speed, 1..6.
func WithSpeed(s int) Option {
	return func(p *Profile) { p.Speed = s }
}

// WithPolarity sets how ink maps to GW bits.
func WithPolarity(pol raster.Polarity) Option {
	return func(p *Profile) { p.Polarity = pol }
}

// WithOrientation sets portrait or landscape output.
func WithOrientation(o Orientation) Option {
	return func(p *Profile) { p.Orientation = o }
}

// WithTextSize sets the product line sizes for the pair and grid
// arrangements.
func WithTextSize(pair, grid int) Option {
	return func(p *Profile) {
		p.Text.Size = pair
		p.Text.GridSize = grid
	}
}

// WithBold enables or disables faux bold with the given pass count.
func WithBold(bold bool, passes int) Option {
	return func(p *Profile) {
		p.Text.Bold = bold
		p.Text.BoldPasses = passes
	}
}

// WithThreshold sets the coverage threshold.
func WithThreshold(v float64) Option {
	return func(p *Profile) { p.Text.Threshold = v }
}

// WithMinLineHeight sets the floor for rasterized line heights.
func WithMinLineHeight(h int) Option {
	return func(p *Profile) { p.Text.MinLineHeight = h }
}

// WithCurrency sets the suffix appended to prices.
func WithCurrency(c string) Option {
	return func(p *Profile) { p.Text.Currency = c }
}

// WithBarcode sets bar widths and the symbol heights for both arrangements.
func WithBarcode(narrow, wide, height, gridHeight int) Option {
	return func(p *Profile) {
		p.Barcode.Narrow = narrow
		p.Barcode.Wide = wide
		p.Barcode.Height = height
		p.Barcode.GridHeight = gridHeight
	}
}

// WithHRI shows or hides the human-readable digits.
func WithHRI(visible bool) Option {
	return func(p *Profile) { p.Barcode.HRI = visible }
}

// WithChecksumMode selects who computes the check digit.
func WithChecksumMode(m ChecksumMode) Option {
	return func(p *Profile) { p.Barcode.Checksum = m }
}

// WithGridRules enables or disables the grid separator lines.
func WithGridRules(on bool) Option {
	return func(p *Profile) { p.Layout.GridRules = on }
}
