// Package layout places product text, barcodes and rules on a fixed label
// canvas.
//
// A Planner supports two arrangements, chosen by the number of products:
//
//   - two products: the canvas is split into two horizontal bands, each with
//     right-aligned text above a centered barcode;
//   - four products: a 2x2 grid of quadrants, each with an optional caption,
//     centered text and a centered barcode, separated by rules.
//
// Every y position below the first is derived from the measured height of
// the element above it, so text never overlaps a barcode whatever the font.
package layout
