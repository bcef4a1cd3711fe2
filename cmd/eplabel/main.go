// Command eplabel composes an EPL2 label from a YAML job and sends it to a
// printer, a file, or a PNG preview.
//
// Usage:
//
//	eplabel -font Amiri.ttf -job job.yaml -printer /dev/usb/lp0
//	eplabel -font Amiri.ttf -job job.yaml -printer tcp://10.0.0.7:9100
//	eplabel -font Amiri.ttf -job job.yaml -o label.epl -preview label.png
//
// A job file holds an optional title and two or four products:
//
//	title: Weekly offers
//	products:
//	  - name: عصير برتقال
//	    price: "5.00"
//	    barcode: "622300123456"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/label"
	"github.com/gogpu/label/config"
	"github.com/gogpu/label/epl"
	"github.com/gogpu/label/layout"
	"github.com/gogpu/label/preview"
	"github.com/gogpu/label/sink"
	"github.com/gogpu/label/text"
)

func main() {
	var (
		fontPath    = flag.String("font", "", "TrueType/OpenType font file (required)")
		jobPath     = flag.String("job", "", "YAML job file (required)")
		profilePath = flag.String("profile", "", "YAML printer profile (default 440x320)")
		landscape   = flag.Bool("landscape", false, "rotate the label 90 degrees")
		printer     = flag.String("printer", "", "device path or tcp://host[:port]")
		fallbackDir = flag.String("fallback-dir", "", "directory for the file fallback (default temp dir)")
		output      = flag.String("o", "", "write the EPL2 stream to this file")
		previewPath = flag.String("preview", "", "write a PNG preview to this file")
		scale       = flag.Int("scale", 2, "preview scale factor")
		timeout     = flag.Duration("timeout", 10*time.Second, "network send timeout")
		inspect     = flag.Bool("inspect", false, "print the decoded command list")
		verbose     = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *fontPath == "" || *jobPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	label.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	req, err := loadJob(*jobPath)
	if err != nil {
		log.Fatalf("Failed to read job: %v", err)
	}

	profile := config.Default()
	if *profilePath != "" {
		if profile, err = config.Load(*profilePath); err != nil {
			log.Fatalf("Failed to read profile: %v", err)
		}
	}
	if *landscape {
		profile = profile.With(config.WithOrientation(config.Landscape))
	}

	font, err := text.LoadFont(*fontPath)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	c, err := label.NewComposer(font, label.WithProfile(profile))
	if err != nil {
		log.Fatalf("Invalid profile: %v", err)
	}

	doc, err := c.Compose(req)
	if err != nil {
		log.Fatalf("Failed to compose label: %v", err)
	}
	data, err := epl.Encode(doc)
	if err != nil {
		log.Fatalf("Failed to encode label: %v", err)
	}

	if *inspect {
		cmds, err := epl.Decode(data)
		if err != nil {
			log.Fatalf("Failed to decode stream: %v", err)
		}
		for _, cmd := range cmds {
			fmt.Println(cmd)
		}
	}

	if *previewPath != "" {
		if err := writePreview(*previewPath, doc, *scale); err != nil {
			log.Fatalf("Failed to write preview: %v", err)
		}
		log.Printf("Preview saved to %s\n", *previewPath)
	}

	if *output != "" {
		if err := os.WriteFile(*output, data, 0o600); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Label saved to %s (%d bytes)\n", *output, len(data))
	}

	if *printer == "" {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := send(ctx, *printer, data, *timeout, *fallbackDir); err != nil {
		log.Fatalf("Failed to print: %v", err)
	}
}

func loadJob(path string) (label.Request, error) {
	var req label.Request
	data, err := os.ReadFile(path) // #nosec G304 -- path supplied by the operator
	if err != nil {
		return req, err
	}
	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, err
	}
	return req, nil
}

func writePreview(path string, doc *layout.Document, scale int) error {
	f, err := os.Create(path) // #nosec G304 -- path supplied by the operator
	if err != nil {
		return err
	}
	if err := preview.WritePNG(f, doc, scale); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// send delivers data to target. A printer that cannot be found is
// replaced by a file under fallbackDir.
func send(ctx context.Context, target string, data []byte, timeout time.Duration, fallbackDir string) error {
	var s sink.Sink = sink.Device{}
	dest := target
	if addr, ok := strings.CutPrefix(target, "tcp://"); ok {
		s = sink.Network{Timeout: timeout}
		dest = addr
	}

	err := s.Send(ctx, dest, data)
	if err == nil {
		log.Printf("Sent %d bytes to %s\n", len(data), target)
		return nil
	}
	if !errors.Is(err, sink.ErrNotFound) {
		return err
	}

	fallback := sink.File{Dir: fallbackDir}
	label.Logger().Warn("printer not found, writing to file",
		"printer", target, "path", fallback.Path(dest), "err", err)
	if ferr := fallback.Send(ctx, dest, data); ferr != nil {
		return errors.Join(err, ferr)
	}
	log.Printf("Printer %s not found; label saved to %s\n", target, fallback.Path(dest))
	return nil
}
