package preview

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/gogpu/label/layout"
	"github.com/gogpu/label/raster"
)

func testDocument() *layout.Document {
	bm := raster.NewBitmap(20, 10)
	for x := 0; x < 20; x++ {
		bm.Set(x, 5, true)
	}
	return &layout.Document{
		CanvasWidth: 440, CanvasHeight: 320, Gap: 24, Darkness: 8, Speed: 2,
		Elements: []layout.Element{
			&layout.TextBlock{Raster: raster.Pack(bm, raster.Inverted), X: 400, Y: 10},
			&layout.Barcode{X: 125, Y: 60, Narrow: 2, Wide: 3, Height: 50, HRI: true, HRIHeight: 20, Digits: "6223001234562"},
			&layout.Rule{X: 0, Y: 159, Thickness: 2, Length: 440, Orientation: layout.Horizontal},
		},
	}
}

func TestRender(t *testing.T) {
	img, err := Render(testDocument())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 440, 320) {
		t.Fatalf("Bounds() = %v", got)
	}
	tests := []struct {
		name  string
		x, y  int
		black bool
	}{
		{"text ink", 410, 15, true},
		{"text paper", 410, 14, false},
		{"start guard", 125, 80, true},
		{"quiet zone", 120, 80, false},
		{"rule", 200, 160, true},
		{"below rule", 200, 162, false},
		{"corner", 0, 0, false},
	}
	for _, tt := range tests {
		if got := img.GrayAt(tt.x, tt.y).Y == 0; got != tt.black {
			t.Errorf("%s: pixel (%d,%d) black = %v, want %v", tt.name, tt.x, tt.y, got, tt.black)
		}
	}
}

func TestRenderRotatedBarcode(t *testing.T) {
	doc := testDocument().Rotated()
	img, err := Render(doc)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	bc := doc.Elements[1].(*layout.Barcode)
	// The start guard runs across the rotated symbol near its top edge.
	if img.GrayAt(bc.X-1, bc.Y).Y != 0 {
		t.Errorf("pixel next to the rotated anchor should be inked")
	}
}

func TestRenderBadDigits(t *testing.T) {
	doc := testDocument()
	doc.Elements[1].(*layout.Barcode).Digits = "6223001234563"
	if _, err := Render(doc); err == nil {
		t.Error("Render() accepted a code with a wrong check digit")
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, testDocument(), 2); err != nil {
		t.Fatalf("WritePNG() error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(880, 640) {
		t.Errorf("size = %v, want 880x640", got)
	}
}
