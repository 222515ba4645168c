package manifest

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/menta2k/treenorm/pkg/types"
)

func TestStoreRecordsRun(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	runID, err := store.BeginRun("/in", "/out")
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}

	outcomes := []types.Outcome{
		{Source: "/in/a.png", Dest: "/out/a.png", Status: types.StatusProcessed, Bytes: 321},
		{Source: "/in/sub/b.png", Dest: "/out/sub/b.png", Status: types.StatusSkipped, Message: "unable to read"},
	}
	for _, o := range outcomes {
		if err := store.Record(o); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	stats := types.Stats{Dirs: 3, Processed: 1, Skipped: 1, Ignored: 1, BytesWritten: 321}
	if err := store.FinishRun(stats); err != nil {
		t.Fatalf("finish run: %v", err)
	}

	got, err := store.Outcomes(runID)
	if err != nil {
		t.Fatalf("outcomes: %v", err)
	}
	if len(got) != len(outcomes) {
		t.Fatalf("expected %d outcomes, got %d", len(outcomes), len(got))
	}
	for i := range outcomes {
		if got[i] != outcomes[i] {
			t.Errorf("outcome %d: expected %+v, got %+v", i, outcomes[i], got[i])
		}
	}

	gotStats, err := store.RunStats(runID)
	if err != nil {
		t.Fatalf("run stats: %v", err)
	}
	if gotStats != stats {
		t.Errorf("expected stats %+v, got %+v", stats, gotStats)
	}
}

func TestStoreRequiresActiveRun(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if err := store.Record(types.Outcome{Source: "x.png"}); !errors.Is(err, ErrNoRun) {
		t.Errorf("expected ErrNoRun, got %v", err)
	}
	if err := store.FinishRun(types.Stats{}); !errors.Is(err, ErrNoRun) {
		t.Errorf("expected ErrNoRun, got %v", err)
	}
}

func TestStoreOnDiskAccumulatesRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "manifest.db")

	for i := 0; i < 2; i++ {
		store, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		runID, err := store.BeginRun("/in", "/out")
		if err != nil {
			t.Fatalf("begin %d: %v", i, err)
		}
		if runID != int64(i+1) {
			t.Errorf("expected run id %d, got %d", i+1, runID)
		}
		if err := store.FinishRun(types.Stats{}); err != nil {
			t.Fatalf("finish %d: %v", i, err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("close %d: %v", i, err)
		}
	}
}

func TestStoreLatestRun(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, err := store.LatestRun(); err == nil {
		t.Error("expected error on empty manifest")
	}

	var last int64
	for i := 0; i < 3; i++ {
		if last, err = store.BeginRun("/in", "/out"); err != nil {
			t.Fatalf("begin: %v", err)
		}
	}
	got, err := store.LatestRun()
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got != last {
		t.Errorf("expected latest run %d, got %d", last, got)
	}
}
