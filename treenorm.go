// Package treenorm geometrically normalizes trees of PNG images.
//
// Every file whose name ends in ".png" is decoded, stretched to a fixed
// 96x96 canvas without preserving aspect ratio, cropped to a fixed inset
// rectangle and written to the same relative path under an output root.
// The directory structure of the input tree is mirrored, including empty
// directories. Other files are ignored.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/menta2k/treenorm"
//	)
//
//	func main() {
//		stats, err := treenorm.New().Normalize("raw", "normalized")
//		if err != nil {
//			log.Fatal(err)
//		}
//		log.Printf("processed %d, skipped %d", stats.Processed, stats.Skipped)
//	}
//
// The package consists of three main components:
//
// 1. Processing (pkg/processing): decode, resize-then-crop, encode
// 2. Normalizer (pkg/normalizer): recursive mirrored-tree traversal
// 3. Types (pkg/types): geometry constants, outcomes and run statistics
//
// Files that cannot be decoded are reported and skipped. Only failures on
// the trees themselves (missing input root, unwritable output) abort a run.
package treenorm

import (
	"github.com/menta2k/treenorm/pkg/normalizer"
	"github.com/menta2k/treenorm/pkg/processing"
	"github.com/menta2k/treenorm/pkg/types"
)

// Version of the tree normalizer
const Version = "1.0.0"

// TreeNormalizer provides a high-level interface over the normalizer
type TreeNormalizer struct {
	processor  *processing.Processor
	normalizer *normalizer.Normalizer
}

// New creates a TreeNormalizer with the default geometry
func New(opts ...normalizer.Option) *TreeNormalizer {
	proc := processing.NewProcessor()
	return &TreeNormalizer{
		processor:  proc,
		normalizer: normalizer.New(proc, opts...),
	}
}

// NewWithConfig creates a TreeNormalizer with custom geometry
func NewWithConfig(config processing.Config, opts ...normalizer.Option) (*TreeNormalizer, error) {
	proc, err := processing.NewProcessorWithConfig(config)
	if err != nil {
		return nil, err
	}
	return &TreeNormalizer{
		processor:  proc,
		normalizer: normalizer.New(proc, opts...),
	}, nil
}

// Normalize mirrors inputDir into outputDir, transforming each .png file
func (tn *TreeNormalizer) Normalize(inputDir, outputDir string) (types.Stats, error) {
	return tn.normalizer.Normalize(inputDir, outputDir)
}

// OutputSize returns the dimensions of every written image
func (tn *TreeNormalizer) OutputSize() (int, int) {
	return tn.processor.OutputSize()
}

// Normalize runs the default geometry with the standard logger
func Normalize(inputDir, outputDir string) (types.Stats, error) {
	return New().Normalize(inputDir, outputDir)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
