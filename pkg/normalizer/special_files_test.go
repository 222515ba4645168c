//go:build linux || darwin

package normalizer

import (
	"image/color"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/menta2k/treenorm/pkg/types"
)

func TestNormalizeSkipsSpecialFiles(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	if err := syscall.Mkfifo(filepath.Join(in, "x.png"), 0o644); err != nil {
		t.Skipf("fifos unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(in, "gone.png"), filepath.Join(in, "y.png")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	writePNG(t, filepath.Join(in, "z.png"), 10, 10, color.White)

	logger, hook := test.NewNullLogger()
	type result struct {
		stats types.Stats
		err   error
	}
	done := make(chan result, 1)
	go func() {
		stats, err := New(nil, WithLogger(logger)).Normalize(in, out)
		done <- result{stats, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("run blocked on a special file")
	}

	if res.err != nil {
		t.Fatalf("Normalize: %v", res.err)
	}
	if res.stats.Skipped != 2 || res.stats.Processed != 1 {
		t.Errorf("expected 2 skipped and 1 processed, got %+v", res.stats)
	}
	for _, name := range []string{"x.png", "y.png"} {
		if !hasMessage(hook, logrus.WarnLevel, "skipping "+name) {
			t.Errorf("missing skip diagnostic for %s", name)
		}
		if _, err := os.Lstat(filepath.Join(out, name)); !os.IsNotExist(err) {
			t.Errorf("%s should not be written", name)
		}
	}
}
