package epl

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/label/layout"
	"github.com/gogpu/label/raster"
)

func TestHeader(t *testing.T) {
	var e Emitter
	e.Header(440, 320, 24, 8, 2)
	want := "N\r\nq440\r\nQ320,24\r\nD8\r\nS2\r\n"
	if got := string(e.Bytes()); got != want {
		t.Errorf("Header() = %q, want %q", got, want)
	}
}

func TestImage(t *testing.T) {
	bm := raster.NewBitmap(1, 1)
	bm.Set(0, 0, true)
	var e Emitter
	e.Image(10, 20, raster.Pack(bm, raster.Inverted))
	want := []byte("GW10,20,1,1,\x7f\r\n")
	if diff := cmp.Diff(want, e.Bytes()); diff != "" {
		t.Errorf("Image() mismatch (-want +got):\n%s", diff)
	}
}

func TestImagePayloadLength(t *testing.T) {
	bm := raster.NewBitmap(17, 4)
	p := raster.Pack(bm, raster.Normal)
	var e Emitter
	e.Image(0, 0, p)
	header := "GW0,0,3,4,"
	if got, want := e.Len(), len(header)+3*4+2; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	if !bytes.HasPrefix(e.Bytes(), []byte(header)) {
		t.Errorf("block starts with %q, want %q", e.Bytes()[:len(header)], header)
	}
}

func TestBarcode(t *testing.T) {
	tests := []struct {
		name string
		hri  bool
		want string
	}{
		{"hri", true, "B125,61,0,E30,2,3,50,B,\"6223001234562\"\r\n"},
		{"no hri", false, "B125,61,0,E30,2,3,50,N,\"6223001234562\"\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Emitter
			e.Barcode(125, 61, 0, 2, 3, 50, tt.hri, "6223001234562")
			if got := string(e.Bytes()); got != tt.want {
				t.Errorf("Barcode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRuleAndEnd(t *testing.T) {
	e := NewEmitter(16)
	e.Rule(219, 0, 2, 320)
	e.End()
	if got, want := string(e.Bytes()), "LO219,0,2,320\r\nP1\r\n"; got != want {
		t.Errorf("stream = %q, want %q", got, want)
	}
	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len() after Reset = %d", e.Len())
	}
}

func sampleDocument() *layout.Document {
	bm := raster.NewBitmap(16, 3)
	// Row 1 packs to 0x0D 0x0A in normal polarity.
	for _, x := range []int{4, 5, 7, 12, 14} {
		bm.Set(x, 1, true)
	}
	bm.Set(8, 0, true)
	return &layout.Document{
		CanvasWidth: 440, CanvasHeight: 320, Gap: 24, Darkness: 8, Speed: 2,
		Elements: []layout.Element{
			&layout.TextBlock{Raster: raster.Pack(bm, raster.Normal), X: 424, Y: 8},
			&layout.Barcode{X: 125, Y: 61, Narrow: 2, Wide: 3, Height: 50, HRI: true, HRIHeight: 20, Digits: "6223001234562"},
			&layout.Rule{X: 0, Y: 159, Thickness: 2, Length: 440, Orientation: layout.Horizontal},
		},
	}
}

func TestEncode(t *testing.T) {
	doc := sampleDocument()
	got, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.HasPrefix(got, []byte("N\r\nq440\r\nQ320,24\r\nD8\r\nS2\r\nGW424,8,2,3,")) {
		t.Errorf("unexpected start: %q", got[:40])
	}
	if !bytes.HasSuffix(got, []byte("LO0,159,440,2\r\nP1\r\n")) {
		t.Errorf("unexpected end: %q", got[len(got)-24:])
	}

	again, err := Encode(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, again) {
		t.Error("encoding the same document twice produced different bytes")
	}
}

func TestEncodeInvalidDocument(t *testing.T) {
	doc := sampleDocument()
	doc.CanvasHeight = 100
	got, err := Encode(doc)
	if !errors.Is(err, layout.ErrCanvasTooSmall) {
		t.Errorf("Encode() error = %v, want ErrCanvasTooSmall", err)
	}
	if got != nil {
		t.Errorf("Encode() returned %d bytes for an invalid document", len(got))
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	doc := sampleDocument()
	data, err := Encode(doc)
	if err != nil {
		t.Fatal(err)
	}
	cmds, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	tb := doc.Elements[0].(*layout.TextBlock)
	want := []Command{
		{Name: "N"},
		{Name: "q", Args: []string{"440"}},
		{Name: "Q", Args: []string{"320", "24"}},
		{Name: "D", Args: []string{"8"}},
		{Name: "S", Args: []string{"2"}},
		{Name: "GW", Args: []string{"424", "8", "2", "3"}, Data: tb.Raster.Rows},
		{Name: "B", Args: []string{"125", "61", "0", "E30", "2", "3", "50", "B", "6223001234562"}},
		{Name: "LO", Args: []string{"0", "159", "440", "2"}},
		{Name: "P", Args: []string{"1"}},
	}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeBinaryPayloadWithEOL(t *testing.T) {
	p := &raster.Packed{Width: 16, Height: 2, BytesPerRow: 2, Rows: []byte{'\r', '\n', 'P', '1'}}
	var e Emitter
	e.Image(0, 0, p)
	e.End()
	cmds, err := Decode(e.Bytes())
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2: %v", len(cmds), cmds)
	}
	if diff := cmp.Diff(p.Rows, cmds[0].Data); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"no terminator":     "N\r\nq440",
		"short payload":     "GW0,0,2,2,\x00\x00\r\n",
		"bad header":        "GW0,x,1,1,\x00\r\n",
		"truncated header":  "GW0,0",
		"unknown directive": "ZZ\r\n",
		"missing eol":       "GW0,0,1,1,\x00XY",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode([]byte(in)); !errors.Is(err, ErrMalformed) {
				t.Errorf("Decode(%q) error = %v, want ErrMalformed", in, err)
			}
		})
	}
}
