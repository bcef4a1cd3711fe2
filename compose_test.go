package label

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/label/config"
	"github.com/gogpu/label/epl"
	"github.com/gogpu/label/text"
)

func arabicPair() Request {
	return Request{Products: []Product{
		{Name: "عصير برتقال صغير", Price: "5.00", Barcode: "622300123456"},
		{Name: "مياه معدنية صغيرة", Price: "3.50", Barcode: "622300654321"},
	}}
}

func newComposer(t *testing.T, opts ...ComposerOption) *Composer {
	t.Helper()
	f, err := text.NewFont(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewComposer(f, opts...)
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}
	return c
}

func TestRenderEndToEnd(t *testing.T) {
	data, err := Render(goregular.TTF, arabicPair())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("N\r\nq440\r\nQ320,24\r\n")) {
		t.Errorf("stream starts with %q", data[:min(len(data), 24)])
	}
	if !bytes.HasSuffix(data, []byte("P1\r\n")) {
		t.Errorf("stream does not end with P1")
	}

	cmds, err := epl.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	var images int
	var codes []string
	for _, c := range cmds {
		switch c.Name {
		case "GW":
			images++
		case "B":
			codes = append(codes, c.Args[len(c.Args)-1])
		}
	}
	if images != 2 {
		t.Errorf("GW blocks = %d, want 2", images)
	}
	if diff := cmp.Diff([]string{"6223001234562", "6223006543218"}, codes); diff != "" {
		t.Errorf("barcodes (-want +got):\n%s", diff)
	}
	if last := cmds[len(cmds)-1]; last.Name != "P" || last.Args[0] != "1" {
		t.Errorf("last command = %v, want P1", last)
	}
}

func TestRenderValidatesBeforeFont(t *testing.T) {
	req := arabicPair()
	req.Products = req.Products[:1]
	// The font is never parsed for a bad request.
	if _, err := Render(nil, req); !errors.Is(err, ErrInvalidProductCount) {
		t.Errorf("error = %v, want ErrInvalidProductCount", err)
	}
	req = arabicPair()
	req.Products[0].Barcode = "n/a"
	if _, err := Render(nil, req); !errors.Is(err, ErrInvalidBarcode) {
		t.Errorf("error = %v, want ErrInvalidBarcode", err)
	}
	if _, err := Render(nil, arabicPair()); !errors.Is(err, ErrFontDecode) {
		t.Errorf("empty font: error = %v, want ErrFontDecode", err)
	}
	if _, err := Render([]byte("not a font"), arabicPair()); !errors.Is(err, ErrFontDecode) {
		t.Errorf("error = %v, want ErrFontDecode", err)
	}
}

func TestRenderErrorsReturnNoBytes(t *testing.T) {
	c := newComposer(t, WithConfig(config.WithCanvas(440, 100, 24)))
	data, err := c.Render(arabicPair())
	if !errors.Is(err, ErrCanvasTooSmall) {
		t.Errorf("error = %v, want ErrCanvasTooSmall", err)
	}
	if data != nil {
		t.Errorf("got %d bytes alongside an error", len(data))
	}
}

func TestComposerDeterministic(t *testing.T) {
	c := newComposer(t)
	a, err := c.Render(arabicPair())
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Render(arabicPair())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("rendering the same request twice produced different streams")
	}
}

func TestComposerConcurrent(t *testing.T) {
	c := newComposer(t)
	want, err := c.Render(arabicPair())
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	var mu sync.Mutex
	mismatches := 0
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.Render(arabicPair())
			if err != nil || !bytes.Equal(got, want) {
				mu.Lock()
				mismatches++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if mismatches != 0 {
		t.Errorf("%d concurrent renders differed", mismatches)
	}
}

func TestComposerOptions(t *testing.T) {
	p := config.Default().With(config.WithDarkness(12))
	c := newComposer(t, WithProfile(p), WithConfig(config.WithSpeed(4)))
	got := c.Profile()
	if got.Darkness != 12 || got.Speed != 4 {
		t.Errorf("profile darkness %d speed %d, want 12 and 4", got.Darkness, got.Speed)
	}
	data, err := c.Render(arabicPair())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("\r\nD12\r\nS4\r\n")) {
		t.Error("stream does not carry the configured darkness and speed")
	}

	f, _ := text.NewFont(goregular.TTF)
	if _, err := NewComposer(f, WithConfig(config.WithDarkness(20))); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("error = %v, want ErrInvalidProfile", err)
	}
}

func TestComposeGrid(t *testing.T) {
	c := newComposer(t)
	req := Request{Title: "Market", Products: []Product{
		{Name: "Juice", Price: "5.00", Barcode: "622300123456"},
		{Name: "Water", Price: "3.50", Barcode: "622300654321"},
		{Name: "Milk", Price: "12.00", Barcode: "400638133393"},
		{Name: "Tea", Price: "8.25", Barcode: "978020137962"},
	}}
	data, err := c.Render(req)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	cmds, err := epl.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	counts := map[string]int{}
	for _, c := range cmds {
		counts[c.Name]++
	}
	want := map[string]int{"N": 1, "q": 1, "Q": 1, "D": 1, "S": 1, "GW": 8, "B": 4, "LO": 2, "P": 1}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("command counts (-want +got):\n%s", diff)
	}
}
