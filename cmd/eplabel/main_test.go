package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/label"
	"github.com/gogpu/label/sink"
)

func TestLoadJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	job := "title: Offers\nproducts:\n  - name: Juice\n    price: \"5.00\"\n    barcode: \"622300123456\"\n  - name: Water\n    price: \"3.50\"\n    barcode: \"622300654321\"\n"
	if err := os.WriteFile(path, []byte(job), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := loadJob(path)
	if err != nil {
		t.Fatalf("loadJob() error: %v", err)
	}
	want := label.Request{Title: "Offers", Products: []label.Product{
		{Name: "Juice", Price: "5.00", Barcode: "622300123456"},
		{Name: "Water", Price: "3.50", Barcode: "622300654321"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadJob() mismatch (-want +got):\n%s", diff)
	}
}

func TestSendFallsBackToFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "no-such-printer")
	data := []byte("N\r\nP1\r\n")

	if err := send(context.Background(), target, data, time.Second, dir); err != nil {
		t.Fatalf("send() error: %v", err)
	}
	path := sink.File{Dir: dir}.Path(target)
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("fallback file: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("fallback content = %q, want %q", got, data)
	}
}
