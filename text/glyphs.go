package text

import (
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// placedGlyph is a glyph with its pen position relative to the start of the
// baseline. Y increases down.
type placedGlyph struct {
	id   sfnt.GlyphIndex
	x, y fixed.Int26_6
}

// glyphRun is a single line of positioned glyphs.
type glyphRun struct {
	glyphs  []placedGlyph
	advance fixed.Int26_6
}

// layoutLine positions the glyphs of display-order text strictly left to
// right with HarfBuzz. Shaped text already carries presentation forms, so it
// is shaped with the Common script and no script-specific substitutions run
// a second time; the font still supplies kerning and mark positioning.
func (f *Font) layoutLine(s Shaped, size int) glyphRun {
	runes := make([]rune, 0, len(s))
	for _, r := range string(s) {
		if !isControl(r) {
			runes = append(runes, r)
		}
	}
	if len(runes) == 0 {
		return glyphRun{}
	}

	// Face caches are not safe for concurrent use; one per call.
	face := font.NewFace(f.shaping)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      fixed.I(size),
		Script:    language.Common,
		Language:  language.NewLanguage("und"),
	}
	var shaper shaping.HarfbuzzShaper
	out := shaper.Shape(input)

	run := glyphRun{glyphs: make([]placedGlyph, 0, len(out.Glyphs))}
	var pen fixed.Int26_6
	for _, g := range out.Glyphs {
		run.glyphs = append(run.glyphs, placedGlyph{
			id: sfnt.GlyphIndex(uint16(g.GlyphID)), //nolint:gosec // sfnt glyph indexes are 16-bit
			x:  pen + g.XOffset,
			// HarfBuzz offsets point up.
			y: -g.YOffset,
		})
		pen += g.Advance
	}
	run.advance = pen
	return run
}

// isControl reports runes that produce no glyph: C0 and C1 controls and
// bidi formatting marks.
func isControl(r rune) bool {
	return unicode.IsControl(r) || unicode.Is(unicode.Bidi_Control, r) || r == zwj || r == 0x200C
}
