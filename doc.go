// Package label composes EPL2 print jobs for thermal label printers.
//
// # Overview
//
// A label carries two or four products. Each product line is shaped with
// the Unicode bidirectional algorithm and Arabic joining, rasterized into
// a 1-bit bitmap, packed into GW raster rows and placed above an EAN-13
// barcode that the printer draws itself. The result is a byte stream ready
// for a raw printer queue.
//
// # Quick Start
//
//	font, err := text.LoadFont("Amiri-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	c, err := label.NewComposer(font)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	job, err := c.Render(label.Request{Products: []label.Product{
//	    {Name: "عصير برتقال", Price: "5.00", Barcode: "622300123456"},
//	    {Name: "مياه معدنية", Price: "3.50", Barcode: "622300654321"},
//	}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = sink.Device{}.Send(ctx, "/dev/usb/lp0", job)
//
// # Architecture
//
// The library is organized into:
//   - text: font loading, bidi shaping, glyph rasterization
//   - raster: 1-bit bitmaps and GW row packing
//   - barcode: EAN-13 normalization and check digits
//   - layout: the stacked pair and 2x2 grid arrangements
//   - epl: the EPL2 emitter and stream decoder
//   - config: printer profiles
//   - sink, preview: delivery and debugging, outside composition
//
// # Concurrency
//
// Composition is synchronous and performs no I/O. A Composer and its Font
// are read-only and may be shared by concurrent goroutines.
//
// # Logging
//
// label is silent by default. Use SetLogger to enable logging.
package label
