package text

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/label/internal/cache"
)

// Font is a parsed TrueType or OpenType font.
//
// A Font is parsed once and shared: it is read-only after NewFont and safe
// for concurrent use by any number of Rasterize calls.
// Font must not be copied after creation (enforced by copyCheck).
type Font struct {
	// addr must point to the Font itself.
	addr *Font

	data []byte
	// outlines and vertical metrics
	sfnt *sfnt.Font
	// cmap and positioning for HarfBuzz shaping
	shaping *font.Font

	name string
}

type outlineKey struct {
	id   sfnt.GlyphIndex
	size int
}

// NewFont parses font data. The data slice is copied internally and can be
// reused after this call.
func NewFont(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrFontDecode, ErrEmptyFontData)
	}
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	sf, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontDecode, err)
	}
	face, err := font.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontDecode, err)
	}

	f := &Font{
		data:    dataCopy,
		sfnt:    sf,
		shaping: face.Font,
	}
	f.addr = f
	f.name = extractFontName(sf)
	return f, nil
}

// LoadFont reads and parses a font file.
func LoadFont(path string) (*Font, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFont(data)
}

// Name returns the font family name.
func (f *Font) Name() string {
	f.copyCheck()
	return f.name
}

// LineMetrics are vertical metrics in pixels at a given size. Both values
// are positive.
type LineMetrics struct {
	Ascent  float64
	Descent float64
}

// Height returns the rounded-up line height.
func (m LineMetrics) Height() int {
	return ceil(m.Ascent) + ceil(m.Descent)
}

// Metrics returns the vertical metrics at size pixels per em.
func (f *Font) Metrics(size int) LineMetrics {
	f.copyCheck()
	var buf sfnt.Buffer
	m, err := f.sfnt.Metrics(&buf, fixed.I(size), xfont.HintingNone)
	if err != nil {
		return LineMetrics{}
	}
	return LineMetrics{
		Ascent:  fixedToFloat(m.Ascent),
		Descent: fixedToFloat(m.Descent),
	}
}

// Missing returns the runes of s the font has no glyph for. Control
// characters are ignored.
func (f *Font) Missing(s string) []rune {
	f.copyCheck()
	var buf sfnt.Buffer
	var missing []rune
	for _, r := range s {
		if isControl(r) {
			continue
		}
		if gi, err := f.sfnt.GlyphIndex(&buf, r); err == nil && gi == 0 {
			missing = append(missing, r)
		}
	}
	return missing
}

// Coverage returns a *MissingGlyphError when the font lacks glyphs for s,
// and nil otherwise.
func (f *Font) Coverage(s string) error {
	if m := f.Missing(s); len(m) > 0 {
		return &MissingGlyphError{Font: f.name, Runes: m}
	}
	return nil
}

// outline returns the glyph's segments at size pixels per em, loading them
// into c on first use. The result is shared and must not be modified. A
// glyph that fails to load yields nil and is not retried.
func (f *Font) outline(c *cache.Cache[outlineKey, sfnt.Segments], id sfnt.GlyphIndex, size int) sfnt.Segments {
	return c.GetOrCreate(outlineKey{id, size}, func() sfnt.Segments {
		var buf sfnt.Buffer
		segs, err := f.sfnt.LoadGlyph(&buf, id, fixed.I(size), nil)
		if err != nil {
			return nil
		}
		// LoadGlyph returns a slice of buf.
		return append(sfnt.Segments(nil), segs...)
	})
}

// copyCheck panics if Font was copied by value.
func (f *Font) copyCheck() {
	if f.addr != f {
		panic("text: Font must not be copied by value")
	}
}

func extractFontName(f *sfnt.Font) string {
	var buf sfnt.Buffer
	for _, id := range []sfnt.NameID{sfnt.NameIDFamily, sfnt.NameIDFull} {
		if name, err := f.Name(&buf, id); err == nil && name != "" {
			return name
		}
	}
	return "Unknown Font"
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
