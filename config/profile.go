// Package config describes a printer profile: the canvas, print settings and
// every tunable used while composing a label.
//
// A Profile is a plain value. Build one with Default, New or Load and pass it
// by value; nothing in label mutates it.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/label/raster"
	"github.com/gogpu/label/text"
)

// ErrInvalidProfile is returned when a profile value is out of range.
var ErrInvalidProfile = errors.New("config: invalid profile")

// Orientation is the direction the label feeds relative to the layout.
type Orientation int

const (
	// Portrait prints the layout as planned.
	Portrait Orientation = iota
	// Landscape rotates the planned layout 90 degrees clockwise.
	Landscape
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	switch o {
	case Portrait, Landscape:
		return []byte(o.String()), nil
	}
	return nil, fmt.Errorf("config: unknown orientation %d", int(o))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "portrait":
		*o = Portrait
	case "landscape":
		*o = Landscape
	default:
		return fmt.Errorf("config: unknown orientation %q", b)
	}
	return nil
}

// ChecksumMode selects who computes the EAN-13 check digit.
type ChecksumMode int

const (
	// ChecksumEngine emits all 13 digits.
	ChecksumEngine ChecksumMode = iota
	// ChecksumFirmware emits 12 digits and lets the printer append the
	// check digit.
	ChecksumFirmware
)

func (m ChecksumMode) String() string {
	switch m {
	case ChecksumEngine:
		return "engine"
	case ChecksumFirmware:
		return "firmware"
	default:
		return fmt.Sprintf("ChecksumMode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m ChecksumMode) MarshalText() ([]byte, error) {
	switch m {
	case ChecksumEngine, ChecksumFirmware:
		return []byte(m.String()), nil
	}
	return nil, fmt.Errorf("config: unknown checksum mode %d", int(m))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ChecksumMode) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "engine":
		*m = ChecksumEngine
	case "firmware", "printer":
		*m = ChecksumFirmware
	default:
		return fmt.Errorf("config: unknown checksum mode %q", b)
	}
	return nil
}

// Canvas is the printable area in dots and the gap between labels.
type Canvas struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Gap    int `yaml:"gap"`
}

// Text holds the glyph rasterizer settings.
type Text struct {
	// Size is the pixel size of product lines in the stacked pair.
	Size int `yaml:"size"`
	// GridSize is the pixel size of product lines in the grid.
	GridSize int `yaml:"grid_size"`
	// CaptionSize is the pixel size of the grid title.
	CaptionSize int  `yaml:"caption_size"`
	Padding     int  `yaml:"padding"`
	Bold        bool `yaml:"bold"`
	// BoldPasses is the number of horizontally offset draws when Bold is set.
	BoldPasses int `yaml:"bold_passes"`
	// Threshold is the coverage above which a pixel is inked, in (0, 1).
	Threshold     float64 `yaml:"threshold"`
	MinLineHeight int     `yaml:"min_line_height"`
	// Currency is appended to prices when not empty.
	Currency string `yaml:"currency"`
}

// Barcode holds EAN-13 symbol settings, in dots.
type Barcode struct {
	Narrow     int          `yaml:"narrow"`
	Wide       int          `yaml:"wide"`
	Height     int          `yaml:"height"`
	GridHeight int          `yaml:"grid_height"`
	HRI        bool         `yaml:"hri"`
	HRIHeight  int          `yaml:"hri_height"`
	Checksum   ChecksumMode `yaml:"checksum"`
}

// Layout holds spacing used by the planner, in dots.
type Layout struct {
	TopMargin  int  `yaml:"top_margin"`
	ElementGap int  `yaml:"element_gap"`
	GridGap    int  `yaml:"grid_gap"`
	GridRules  bool `yaml:"grid_rules"`
	RuleWidth  int  `yaml:"rule_width"`
}

// Profile is the complete rendering configuration for one printer and label
// stock.
type Profile struct {
	Canvas      Canvas          `yaml:"canvas"`
	Darkness    int             `yaml:"darkness"`
	Speed       int             `yaml:"speed"`
	Polarity    raster.Polarity `yaml:"polarity"`
	Orientation Orientation     `yaml:"orientation"`
	Text        Text            `yaml:"text"`
	Barcode     Barcode         `yaml:"barcode"`
	Layout      Layout          `yaml:"layout"`
}

// Default returns the profile for 55x40 mm stock on a 203 dpi printer.
func Default() Profile {
	return Profile{
		Canvas:   Canvas{Width: 440, Height: 320, Gap: 24},
		Darkness: 8,
		Speed:    2,
		Polarity: raster.Inverted,
		Text: Text{
			Size:          40,
			GridSize:      28,
			CaptionSize:   22,
			Padding:       10,
			Bold:          true,
			BoldPasses:    text.DefaultBoldPasses,
			Threshold:     text.DefaultThreshold,
			MinLineHeight: text.DefaultMinHeight,
		},
		Barcode: Barcode{
			Narrow:     2,
			Wide:       3,
			Height:     50,
			GridHeight: 35,
			HRI:        true,
			HRIHeight:  20,
		},
		Layout: Layout{
			TopMargin:  8,
			ElementGap: 6,
			GridGap:    4,
			GridRules:  true,
			RuleWidth:  2,
		},
	}
}

// Validate reports the first out-of-range value, wrapped in
// ErrInvalidProfile.
func (p Profile) Validate() error {
	checks := []struct {
		ok   bool
		what string
	}{
		{p.Canvas.Width > 0 && p.Canvas.Height > 0, fmt.Sprintf("canvas %dx%d", p.Canvas.Width, p.Canvas.Height)},
		{p.Canvas.Gap >= 0, fmt.Sprintf("gap %d", p.Canvas.Gap)},
		{p.Darkness >= 0 && p.Darkness <= 15, fmt.Sprintf("darkness %d not in 0..15", p.Darkness)},
		{p.Speed >= 1 && p.Speed <= 6, fmt.Sprintf("speed %d not in 1..6", p.Speed)},
		{p.Polarity == raster.Normal || p.Polarity == raster.Inverted, "polarity " + p.Polarity.String()},
		{p.Orientation == Portrait || p.Orientation == Landscape, "orientation " + p.Orientation.String()},
		{p.Text.Size > 0 && p.Text.GridSize > 0 && p.Text.CaptionSize > 0, "text sizes must be positive"},
		{p.Text.Padding >= 0, fmt.Sprintf("padding %d", p.Text.Padding)},
		{p.Text.BoldPasses >= 1, fmt.Sprintf("bold passes %d", p.Text.BoldPasses)},
		{p.Text.Threshold > 0 && p.Text.Threshold < 1, fmt.Sprintf("threshold %g not in (0, 1)", p.Text.Threshold)},
		{p.Text.MinLineHeight >= 1, fmt.Sprintf("min line height %d", p.Text.MinLineHeight)},
		{p.Barcode.Narrow >= 1 && p.Barcode.Wide >= 1, fmt.Sprintf("bar widths %d/%d", p.Barcode.Narrow, p.Barcode.Wide)},
		{p.Barcode.Height >= 1 && p.Barcode.GridHeight >= 1, "barcode heights must be positive"},
		{p.Barcode.HRIHeight >= 0, fmt.Sprintf("hri height %d", p.Barcode.HRIHeight)},
		{p.Barcode.Checksum == ChecksumEngine || p.Barcode.Checksum == ChecksumFirmware, "checksum " + p.Barcode.Checksum.String()},
		{p.Layout.TopMargin >= 0 && p.Layout.ElementGap >= 0 && p.Layout.GridGap >= 0, "layout spacing must not be negative"},
		{p.Layout.RuleWidth >= 1, fmt.Sprintf("rule width %d", p.Layout.RuleWidth)},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", ErrInvalidProfile, c.what)
		}
	}
	return nil
}
