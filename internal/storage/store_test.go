package storage

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/fepmorph/internal/anim"
)

func testResult() *anim.Result {
	return &anim.Result{
		Frames:  3,
		Indices: []int{50, 75, 100},
		Lambdas: []float64{0.5, 0.75, 1},
		Channels: map[string][]float64{
			"ce8_morph.opacity": {0.3, 0.475, 1},
			"ce1_morph.opacity": {1, 0.475, 0.3},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Scheme: "dual", Input: "dual_topology.pdb", Samples: 3}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scheme != "dual" || meta.Frames != 3 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if len(meta.Channels) != 2 || meta.Channels[0] != "ce1_morph.opacity" {
		t.Errorf("expected sorted channel names, got %v", meta.Channels)
	}

	lambdas, series, err := st.LoadChannels(runID)
	if err != nil {
		t.Fatalf("load channels failed: %v", err)
	}
	if len(lambdas) != 3 || lambdas[2] != 1 {
		t.Errorf("unexpected lambdas %v", lambdas)
	}
	if math.Abs(series["ce8_morph.opacity"][1]-0.475) > 1e-6 || series["ce1_morph.opacity"][2] != 0.3 {
		t.Errorf("unexpected series %v", series)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected no runs, got %v, %v", runs, err)
	}

	if _, err := st.Save(RunMetadata{Scheme: "single"}, testResult()); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(dir+"/junk", 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Scheme != "single" {
		t.Errorf("expected the saved run only, got %v", runs)
	}
}

func TestLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error")
	}
	if _, _, err := st.LoadChannels("nope"); err == nil {
		t.Error("expected error")
	}
}

func TestChannelsFileHasFrameIndex(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	runID, err := st.Save(RunMetadata{Scheme: "dual"}, testResult())
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, runID, "channels.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 4 {
		t.Fatalf("expected header and 3 rows, got %d", len(records))
	}
	if records[0][0] != "index" || records[0][1] != "lambda" || records[0][2] != "ce1_morph.opacity" {
		t.Errorf("unexpected header %v", records[0])
	}
	if records[1][0] != "50" || records[3][0] != "100" {
		t.Errorf("expected frame indices 50..100, got %v and %v", records[1], records[3])
	}
	if records[2][1] != "0.750000" {
		t.Errorf("unexpected lambda %q", records[2][1])
	}
}
