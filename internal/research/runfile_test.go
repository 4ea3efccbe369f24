package research

import (
	"path/filepath"
	"testing"
	"time"

	"audioscout/pkg/types"
)

func TestRunFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	keywords := []string{"cozy mystery", "space opera"}
	cfg := types.SearchConfig{Limit: 50, Market: "US", RequestDelay: 500 * time.Millisecond}
	snapshot := types.RunSnapshot{
		{Keyword: "cozy mystery", ItemCount: 12, AvgPopularity: 61, DemandScore: 2, CapturedAt: time.Now().UTC()},
		{Keyword: "space opera", ItemCount: -1, ErrorMessage: "HTTP 500"},
	}

	if err := WriteRunFile(path, keywords, cfg, snapshot); err != nil {
		t.Fatalf("WriteRunFile: %v", err)
	}

	rf, err := ReadRunFile(path)
	if err != nil {
		t.Fatalf("ReadRunFile: %v", err)
	}

	if len(rf.Keywords) != 2 || rf.Keywords[0] != "cozy mystery" {
		t.Errorf("keywords = %v", rf.Keywords)
	}
	if rf.Config.Limit != 50 || rf.Config.Market != "US" {
		t.Errorf("config = %+v", rf.Config)
	}
	if rf.Summary.Total != 2 || rf.Summary.ValidCount != 1 {
		t.Errorf("summary = %+v", rf.Summary)
	}

	loaded := rf.Snapshot()
	if len(loaded) != 2 {
		t.Fatalf("len(snapshot) = %d, want 2", len(loaded))
	}
	if loaded[0].Keyword != "cozy mystery" || loaded[0].ItemCount != 12 {
		t.Errorf("first result = %+v", loaded[0])
	}
	if !loaded[1].Failed() || loaded[1].ItemCount != -1 {
		t.Errorf("second result should be failed: %+v", loaded[1])
	}
}

func TestReadRunFileMissing(t *testing.T) {
	_, err := ReadRunFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing run file")
	}
}
