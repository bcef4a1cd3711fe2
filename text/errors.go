package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned, wrapped in ErrFontDecode, when font
	// data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrFontDecode is returned when font data cannot be parsed.
	ErrFontDecode = errors.New("text: cannot decode font")

	// ErrInvalidSize is returned for a non-positive pixel size.
	ErrInvalidSize = errors.New("text: invalid pixel size")
)

// MissingGlyphError reports runes the font has no glyph for. It is
// informational: such runes render as the font's notdef glyph.
type MissingGlyphError struct {
	Font  string
	Runes []rune
}

func (e *MissingGlyphError) Error() string {
	return "text: font " + e.Font + " has no glyph for " + string(e.Runes)
}
