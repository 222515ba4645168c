package processing

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sort"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/treenorm/pkg/types"
)

// ErrDecode is returned when a file cannot be read or decoded as an image
var ErrDecode = errors.New("unable to decode image")

// Config holds the geometry and resampling policy of a Processor
type Config struct {
	Resolution types.Resolution
	Crop       types.CropRect
	Filter     imaging.ResampleFilter
}

// DefaultConfig returns the canonical 96x96 stretch with the default crop.
// Bilinear resampling is used for the uniform stretch.
func DefaultConfig() Config {
	return Config{
		Resolution: types.CanonicalResolution,
		Crop:       types.DefaultCrop,
		Filter:     imaging.Linear,
	}
}

// Processor handles image decode, geometric normalization and encode
type Processor struct {
	config Config
}

// NewProcessor creates a new image processor with default geometry
func NewProcessor() *Processor {
	return &Processor{config: DefaultConfig()}
}

// NewProcessorWithConfig creates a processor with custom geometry.
// The crop rectangle must fit inside the resolution.
func NewProcessorWithConfig(config Config) (*Processor, error) {
	if err := config.Crop.Validate(config.Resolution); err != nil {
		return nil, fmt.Errorf("invalid geometry: %w", err)
	}
	return &Processor{config: config}, nil
}

// Config returns the processor configuration
func (p *Processor) Config() Config {
	return p.config
}

// OutputSize returns the width and height of every transformed image
func (p *Processor) OutputSize() (int, int) {
	return p.config.Crop.Size()
}

// LoadImage decodes a file by content, regardless of its name
func (p *Processor) LoadImage(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders, webp included)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	// Fallback: explicit WebP decode for payloads the pure-Go decoder rejects
	if img, err := webp.Decode(f); err == nil {
		return img, nil
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// DecodeConfig reads only the header of an image file
func (p *Processor) DecodeConfig(path string) (image.Config, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", err
	}
	defer f.Close()

	return image.DecodeConfig(f)
}

// Transform stretches img to the canonical resolution, ignoring aspect
// ratio, then crops it to the configured rectangle.
func (p *Processor) Transform(img image.Image) image.Image {
	res := p.config.Resolution
	resized := imaging.Resize(img, res.Width, res.Height, p.config.Filter)
	return imaging.Crop(resized, p.config.Crop.Rect())
}

// SaveImage encodes img in the format implied by the path extension and
// returns the number of bytes written.
func (p *Processor) SaveImage(img image.Image, path string) (int64, error) {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return 0, fmt.Errorf("unsupported output format for %s: %w", path, err)
	}
	if err := imaging.Save(img, path); err != nil {
		return 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

var filters = map[string]imaging.ResampleFilter{
	"nearest":    imaging.NearestNeighbor,
	"box":        imaging.Box,
	"linear":     imaging.Linear,
	"catmullrom": imaging.CatmullRom,
	"lanczos":    imaging.Lanczos,
}

// FilterByName maps a configuration name to a resampling filter
func FilterByName(name string) (imaging.ResampleFilter, error) {
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resample filter %q (known: %s)",
			name, strings.Join(FilterNames(), ", "))
	}
	return f, nil
}

// FilterNames lists the accepted resample filter names
func FilterNames() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
