// Package text turns product lines into 1-bit raster images.
//
// # Overview
//
// The pipeline has three steps:
//
//   - Shape applies the Unicode bidirectional algorithm and Arabic joining,
//     returning the line in visual left-to-right order.
//   - Font parses a TrueType/OpenType file once and can be shared.
//   - Rasterize places glyphs with HarfBuzz, fills their outlines and
//     thresholds the coverage into a raster.Bitmap.
//
// # Usage
//
//	f, err := text.LoadFont("Amiri-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bm, err := text.Rasterize(f, text.Shape("عصير برتقال    5.00"), text.RasterOptions{
//	    Size: 40,
//	    Bold: true,
//	})
//
// # Glyph coverage
//
// Runes the font cannot draw are rendered as the font's .notdef glyph.
// Font.Missing reports them in advance.
package text
