package treenorm_test

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/menta2k/treenorm"
	"github.com/menta2k/treenorm/pkg/normalizer"
)

func ExampleTreeNormalizer_Normalize() {
	in, err := os.MkdirTemp("", "treenorm-in")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(in)
	out, err := os.MkdirTemp("", "treenorm-out")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(out)

	// A 200x200 white sample inside a subdirectory
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	if err := os.MkdirAll(filepath.Join(in, "left"), 0o755); err != nil {
		log.Fatal(err)
	}
	f, err := os.Create(filepath.Join(in, "left", "sample.png"))
	if err != nil {
		log.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		log.Fatal(err)
	}
	f.Close()

	quiet := logrus.New()
	quiet.SetLevel(logrus.ErrorLevel)

	stats, err := treenorm.New(normalizer.WithLogger(quiet)).Normalize(in, out)
	if err != nil {
		log.Fatal(err)
	}

	r, err := os.Open(filepath.Join(out, "left", "sample.png"))
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()
	cfg, err := png.DecodeConfig(r)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("processed=%d skipped=%d size=%dx%d\n", stats.Processed, stats.Skipped, cfg.Width, cfg.Height)
	// Output: processed=1 skipped=0 size=85x71
}
