package types

import (
	"fmt"
	"image"
)

// TargetExtension is the only file suffix the normalizer considers.
// Matching is an exact, case-sensitive suffix comparison.
const TargetExtension = ".png"

// Resolution is the square canvas every accepted image is stretched to
type Resolution struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// CanonicalResolution is the fixed resize target applied before cropping
var CanonicalResolution = Resolution{Width: 96, Height: 96}

// CropRect holds pixel offsets inside the canonical resolution.
// Rows [Top, Bottom) and columns [Left, Right) are kept.
type CropRect struct {
	Top    int `yaml:"top" json:"top"`
	Bottom int `yaml:"bottom" json:"bottom"`
	Left   int `yaml:"left" json:"left"`
	Right  int `yaml:"right" json:"right"`
}

// DefaultCrop trims 10px from the top, 15px from the bottom,
// 5px from the left and 6px from the right of a 96x96 canvas.
var DefaultCrop = CropRect{
	Top:    10,
	Bottom: 96 - 15,
	Left:   5,
	Right:  96 - 6,
}

// Validate checks that the rectangle is non-empty and lies inside res
func (c CropRect) Validate(res Resolution) error {
	if res.Width <= 0 || res.Height <= 0 {
		return fmt.Errorf("resolution must be positive, got %dx%d", res.Width, res.Height)
	}
	if c.Top < 0 || c.Top >= c.Bottom || c.Bottom > res.Height {
		return fmt.Errorf("crop rows must satisfy 0 <= top < bottom <= %d, got top=%d bottom=%d",
			res.Height, c.Top, c.Bottom)
	}
	if c.Left < 0 || c.Left >= c.Right || c.Right > res.Width {
		return fmt.Errorf("crop columns must satisfy 0 <= left < right <= %d, got left=%d right=%d",
			res.Width, c.Left, c.Right)
	}
	return nil
}

// Size returns the output width and height produced by the crop
func (c CropRect) Size() (width, height int) {
	return c.Right - c.Left, c.Bottom - c.Top
}

// Rect converts the offsets to an image.Rectangle
func (c CropRect) Rect() image.Rectangle {
	return image.Rect(c.Left, c.Top, c.Right, c.Bottom)
}

// Status is the result category of a single matching file
type Status string

const (
	StatusProcessed Status = "processed"
	StatusSkipped   Status = "skipped"
)

// Outcome describes what happened to one candidate file
type Outcome struct {
	Source  string `json:"source"`
	Dest    string `json:"dest"`
	Status  Status `json:"status"`
	Bytes   int64  `json:"bytes"`
	Message string `json:"message,omitempty"`
}

// Stats summarizes a run
type Stats struct {
	Dirs         int   `json:"dirs"`
	Processed    int   `json:"processed"`
	Skipped      int   `json:"skipped"`
	Ignored      int   `json:"ignored"`
	BytesWritten int64 `json:"bytes_written"`
}

