package raster

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPackSinglePixel(t *testing.T) {
	b := NewBitmap(1, 1)
	b.Set(0, 0, true)

	tests := []struct {
		pol  Polarity
		want []byte
	}{
		{Normal, []byte{0x80}},
		{Inverted, []byte{0x7F}},
	}
	for _, tt := range tests {
		t.Run(tt.pol.String(), func(t *testing.T) {
			p := Pack(b, tt.pol)
			if p.BytesPerRow != 1 {
				t.Errorf("BytesPerRow = %d, want 1", p.BytesPerRow)
			}
			if diff := cmp.Diff(tt.want, p.Rows); diff != "" {
				t.Errorf("Rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPackRowPadding(t *testing.T) {
	b := NewBitmap(9, 2)
	for x := 0; x < 9; x++ {
		b.Set(x, 0, true)
	}
	b.Set(8, 1, true)

	p := Pack(b, Normal)
	if p.BytesPerRow != 2 {
		t.Fatalf("BytesPerRow = %d, want 2", p.BytesPerRow)
	}
	want := []byte{0xFF, 0x80, 0x00, 0x80}
	if diff := cmp.Diff(want, p.Rows); diff != "" {
		t.Errorf("normal rows (-want +got):\n%s", diff)
	}

	inv := Pack(b, Inverted)
	wantInv := []byte{0x00, 0x7F, 0xFF, 0x7F}
	if diff := cmp.Diff(wantInv, inv.Rows); diff != "" {
		t.Errorf("inverted rows (-want +got):\n%s", diff)
	}
}

func TestPackLength(t *testing.T) {
	for _, w := range []int{1, 7, 8, 9, 15, 16, 17, 440} {
		b := NewBitmap(w, 3)
		p := Pack(b, Inverted)
		if got, want := len(p.Rows), BytesPerRow(w)*3; got != want {
			t.Errorf("width %d: len(Rows) = %d, want %d", w, got, want)
		}
	}
}

func TestUnpackRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, pol := range []Polarity{Normal, Inverted} {
		for _, size := range [][2]int{{1, 1}, {5, 3}, {8, 8}, {13, 4}, {101, 30}} {
			b := NewBitmap(size[0], size[1])
			for i := range b.Pix {
				b.Pix[i] = rng.Intn(2) == 1
			}
			got := Pack(b, pol).Unpack()
			if !got.Equal(b) {
				t.Errorf("%v %dx%d: Unpack(Pack(b)) != b", pol, size[0], size[1])
			}
		}
	}
}

func TestRotate90(t *testing.T) {
	// 3x2:
	// X..
	// .XX
	b := NewBitmap(3, 2)
	b.Set(0, 0, true)
	b.Set(1, 1, true)
	b.Set(2, 1, true)

	r := b.Rotate90()
	if r.Width != 2 || r.Height != 3 {
		t.Fatalf("size = %dx%d, want 2x3", r.Width, r.Height)
	}
	// Clockwise:
	// .X
	// X.
	// X.
	want := []bool{
		false, true,
		true, false,
		true, false,
	}
	if diff := cmp.Diff(want, r.Pix); diff != "" {
		t.Errorf("rotated pixels (-want +got):\n%s", diff)
	}

	full := b.Rotate90().Rotate90().Rotate90().Rotate90()
	if !full.Equal(b) {
		t.Error("four rotations should restore the bitmap")
	}
}

func TestPackedRotateKeepsPolarity(t *testing.T) {
	b := NewBitmap(10, 3)
	b.Set(9, 2, true)
	p := Pack(b, Inverted).Rotate90()
	if p.Polarity != Inverted {
		t.Errorf("Polarity = %v, want inverted", p.Polarity)
	}
	if p.Width != 3 || p.Height != 10 {
		t.Errorf("size = %dx%d, want 3x10", p.Width, p.Height)
	}
	if !p.Unpack().At(0, 9) {
		t.Error("corner pixel did not move to (0, 9)")
	}
}

func TestNewBitmapPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewBitmap(0, 1) did not panic")
		}
	}()
	NewBitmap(0, 1)
}

func TestPolarityText(t *testing.T) {
	var p Polarity
	if err := p.UnmarshalText([]byte("Inverted")); err != nil || p != Inverted {
		t.Errorf("UnmarshalText(Inverted) = %v, %v", p, err)
	}
	if err := p.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("UnmarshalText(sideways) should fail")
	}
	b, err := Normal.MarshalText()
	if err != nil || string(b) != "normal" {
		t.Errorf("MarshalText = %q, %v", b, err)
	}
}
