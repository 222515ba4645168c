// Package normalizer mirrors an input tree into an output tree, replacing
// every .png file with its resized and cropped copy.
package normalizer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/menta2k/treenorm/internal/utils"
	"github.com/menta2k/treenorm/pkg/processing"
	"github.com/menta2k/treenorm/pkg/types"
)

// ErrInputRoot is returned when the input root is missing, unreadable or
// not a directory. Nothing is written under the output root in that case.
var ErrInputRoot = errors.New("input root is not a readable directory")

// ErrSameRoot is returned when the input and output roots are the same
// directory, which would overwrite the source images in place.
var ErrSameRoot = errors.New("output root is the input root")

// Recorder receives one outcome per matching file
type Recorder interface {
	Record(o types.Outcome) error
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithLogger sets the diagnostics sink
func WithLogger(log logrus.FieldLogger) Option {
	return func(n *Normalizer) {
		n.log = log
	}
}

// WithRecorder attaches an outcome recorder such as the SQLite manifest
func WithRecorder(r Recorder) Option {
	return func(n *Normalizer) {
		n.recorder = r
	}
}

// Normalizer walks directory trees sequentially, one file at a time.
// It holds no per-run state and may be reused for several runs.
type Normalizer struct {
	proc     *processing.Processor
	log      logrus.FieldLogger
	recorder Recorder
}

// New creates a Normalizer. A nil processor selects the default geometry.
func New(proc *processing.Processor, opts ...Option) *Normalizer {
	if proc == nil {
		proc = processing.NewProcessor()
	}
	n := &Normalizer{
		proc: proc,
		log:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// run carries the state of a single Normalize call
type run struct {
	*Normalizer
	outputRoot string
	stats      types.Stats
}

// Normalize processes every .png file under inputDir into the mirrored
// path under outputDir. Undecodable files are logged and skipped; only
// filesystem failures on the trees themselves abort the run.
func (n *Normalizer) Normalize(inputDir, outputDir string) (types.Stats, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return types.Stats{}, fmt.Errorf("%w: %w", ErrInputRoot, err)
	}
	if !info.IsDir() {
		return types.Stats{}, fmt.Errorf("%w: %s", ErrInputRoot, inputDir)
	}

	outAbs, err := filepath.Abs(outputDir)
	if err != nil {
		return types.Stats{}, fmt.Errorf("failed to resolve output path: %w", err)
	}

	inAbs, err := filepath.Abs(inputDir)
	if err != nil {
		return types.Stats{}, fmt.Errorf("failed to resolve input path: %w", err)
	}
	if inAbs == outAbs {
		return types.Stats{}, fmt.Errorf("%w: %s", ErrSameRoot, inAbs)
	}

	r := &run{Normalizer: n, outputRoot: outAbs}
	if err := r.walk(inputDir, outputDir, true); err != nil {
		return r.stats, err
	}
	return r.stats, nil
}

func (r *run) walk(inputDir, outputDir string, root bool) error {
	// Entries are read before the output directory is created so an
	// unreadable input leaves no trace in the output tree.
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		if root {
			return fmt.Errorf("%w: %w", ErrInputRoot, err)
		}
		return fmt.Errorf("failed to read directory %s: %w", inputDir, err)
	}

	if err := utils.EnsureDir(outputDir); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	r.stats.Dirs++
	r.log.WithField("dir", outputDir).Debug("ensured output directory")

	for _, entry := range entries {
		name := entry.Name()
		src := filepath.Join(inputDir, name)
		dst := filepath.Join(outputDir, name)

		mode := entry.Type()
		if mode&fs.ModeSymlink != 0 {
			target, err := os.Stat(src)
			if err == nil && target.IsDir() {
				r.stats.Ignored++
				r.log.WithField("path", src).Debug("not following symlinked directory")
				continue
			}
			if err == nil {
				mode = target.Mode().Type()
			}
		}

		if mode.IsDir() {
			if r.isOutputRoot(src) {
				r.stats.Ignored++
				r.log.WithField("path", src).Debug("not descending into the output tree")
				continue
			}
			if err := r.walk(src, dst, false); err != nil {
				return err
			}
			continue
		}

		if !utils.HasTargetExtension(name) {
			r.stats.Ignored++
			r.log.WithField("path", src).Debug("ignoring non-matching entry")
			continue
		}

		if !mode.IsRegular() {
			if err := r.skip(name, src, dst, fmt.Errorf("%w: not a regular file", processing.ErrDecode)); err != nil {
				return err
			}
			continue
		}

		if err := r.processFile(name, src, dst); err != nil {
			return err
		}
	}

	return nil
}

func (r *run) processFile(name, src, dst string) error {
	if cfg, format, err := r.proc.DecodeConfig(src); err == nil {
		r.log.WithFields(logrus.Fields{
			"format": format,
			"width":  cfg.Width,
			"height": cfg.Height,
		}).Debugf("decoding %s", name)
	}

	img, err := r.proc.LoadImage(src)
	if err != nil {
		return r.skip(name, src, dst, err)
	}

	size, err := r.proc.SaveImage(r.proc.Transform(img), dst)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}

	r.stats.Processed++
	r.stats.BytesWritten += size
	r.log.WithFields(logrus.Fields{
		"source": src,
		"from":   fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()),
		"size":   utils.FormatFileSize(size),
	}).Infof("processed %s to %s", name, dst)

	return r.record(types.Outcome{Source: src, Dest: dst, Status: types.StatusProcessed, Bytes: size})
}

func (r *run) skip(name, src, dst string, cause error) error {
	r.stats.Skipped++
	r.log.WithError(cause).Warnf("skipping %s: unable to read", name)
	return r.record(types.Outcome{Source: src, Dest: dst, Status: types.StatusSkipped, Message: cause.Error()})
}

func (r *run) record(o types.Outcome) error {
	if r.recorder == nil {
		return nil
	}
	if err := r.recorder.Record(o); err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}
	return nil
}

// isOutputRoot reports whether dir is the output root of this run, which
// happens when the output tree is nested inside the input tree.
func (r *run) isOutputRoot(dir string) bool {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	return abs == r.outputRoot
}
