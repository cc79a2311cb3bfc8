package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/sim"
)

func testResult() *sim.Result {
	moon := body.New(3, 4, -1, 0.5, 2)
	moon.Parent = 0
	moon.Color = colorful.Color{R: 1, G: 0, B: 0}
	sun := body.New(0, 0, 0, 0, 100)
	sun.Locked = true

	return &sim.Result{
		Samples: []sim.Sample{
			{Tick: 0, Bodies: 3, Mass: 103, KineticEnergy: 1.25, Active: true},
			{Tick: 10, Bodies: 2, Mass: 102, MomentumX: -2, MomentumY: 1, Pairs: 1, Deleted: 1, Active: true},
		},
		Final:      []body.Body{sun, moon},
		TicksTaken: 10,
		Model:      "scalar",
		Metrics:    map[string]float64{"merges": 1},
	}
}

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return st, dir
}

func TestStoreSaveLoad(t *testing.T) {
	st, _ := newStore(t)
	cfg := config.DefaultConfig()
	cfg.Seed = 42

	runID, err := st.Save(cfg, testResult())
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
	if meta.Scenario != "ring" || meta.Seed != 42 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Bodies != 3 || meta.FinalBodies != 2 || meta.Ticks != 10 {
		t.Errorf("unexpected counts %+v", meta)
	}
	if meta.Physics.Law != "inverse_cube" {
		t.Errorf("expected physics section, got %+v", meta.Physics)
	}
	if meta.Metrics["merges"] != 1 {
		t.Errorf("expected merges 1, got %f", meta.Metrics["merges"])
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[1] != testResult().Samples[1] {
		t.Errorf("sample mismatch: %+v", samples[1])
	}

	bodies, err := st.LoadBodies(runID)
	if err != nil {
		t.Fatalf("load bodies failed: %v", err)
	}
	if len(bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(bodies))
	}
	if !bodies[0].Locked || bodies[1].Parent != 0 || bodies[1].X != 3 {
		t.Errorf("body fields lost: %+v", bodies)
	}
	if bodies[1].Color.Hex() != "#ff0000" {
		t.Errorf("expected red, got %s", bodies[1].Color.Hex())
	}
	if bodies[1].Radius != body.RadiusFor(2) {
		t.Errorf("radius not re-derived: %g", bodies[1].Radius)
	}
}

func TestStoreList(t *testing.T) {
	st, _ := newStore(t)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, err := st.Save(config.DefaultConfig(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(config.DefaultConfig(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("expected newest first, got %s then %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	st, dir := newStore(t)

	runID, err := st.Save(config.DefaultConfig(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "stats.csv", "bodies.json"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreMissingRun(t *testing.T) {
	st, _ := newStore(t)
	if _, err := st.Load("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("expected ErrNoRun, got %v", err)
	}
	if _, err := st.LoadSamples("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("expected ErrNoRun, got %v", err)
	}
	if _, err := st.LoadBodies("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("expected ErrNoRun, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	st, _ := newStore(t)
	runID, err := st.Save(config.DefaultConfig(), testResult())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if data.Run.ID != runID || len(data.Samples) != 2 || len(data.Bodies) != 2 {
		t.Errorf("incomplete export: %+v", data)
	}

	path := filepath.Join(t.TempDir(), "run.json")
	if err := st.ExportJSONFile(path, runID); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("export file missing or empty: %v", err)
	}
}

func TestStoreSaveNonFinite(t *testing.T) {
	st, dir := newStore(t)
	res := testResult()
	res.Final[1].X = math.NaN()
	res.Final[1].VY = math.Inf(-1)
	res.Samples[1].KineticEnergy = math.Inf(1)
	res.Metrics["energy_drift"] = math.NaN()

	runID, err := st.Save(config.DefaultConfig(), res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	bodies, err := st.LoadBodies(runID)
	if err != nil {
		t.Fatalf("load bodies failed: %v", err)
	}
	if !math.IsNaN(bodies[1].X) {
		t.Errorf("expected NaN x, got %f", bodies[1].X)
	}
	if !math.IsInf(bodies[1].VY, -1) {
		t.Errorf("expected -Inf vy, got %f", bodies[1].VY)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !math.IsNaN(float64(meta.Metrics["energy_drift"])) {
		t.Errorf("expected NaN energy_drift, got %f", meta.Metrics["energy_drift"])
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if !math.IsInf(float64(data.Samples[1].KineticEnergy), 1) {
		t.Errorf("expected +Inf kinetic energy, got %f", data.Samples[1].KineticEnergy)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 run dir, got %d", len(entries))
	}
}

func TestFloatJSON(t *testing.T) {
	tests := []struct {
		in   Float
		want string
	}{
		{1.5, `1.5`},
		{Float(math.NaN()), `"NaN"`},
		{Float(math.Inf(1)), `"+Inf"`},
		{Float(math.Inf(-1)), `"-Inf"`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.in)
		if err != nil {
			t.Fatalf("marshal %v failed: %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("expected %s, got %s", tt.want, got)
		}
	}

	var f Float
	if err := json.Unmarshal([]byte(`"bogus"`), &f); err == nil {
		t.Error("expected error for non-numeric string")
	}
}
