package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	statsFile    = "stats.csv"
	bodiesFile   = "bodies.json"
)

var ErrNoRun = errors.New("storage: run not found")

var statsHeader = []string{"tick", "bodies", "mass", "momentum_x", "momentum_y", "kinetic_energy", "pairs", "deleted", "active"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string               `json:"id"`
	Scenario    string               `json:"scenario"`
	Timestamp   time.Time            `json:"timestamp"`
	Seed        int64                `json:"seed"`
	Ticks       int                  `json:"ticks"`
	Bodies      int                  `json:"bodies"`
	FinalBodies int                  `json:"final_bodies"`
	Model       string               `json:"model"`
	Physics     config.PhysicsConfig `json:"physics"`
	Metrics     map[string]Float     `json:"metrics"`
}

// BodyRecord is the on-disk form of a body.
type BodyRecord struct {
	X      Float  `json:"x"`
	Y      Float  `json:"y"`
	VX     Float  `json:"vx"`
	VY     Float  `json:"vy"`
	Mass   Float  `json:"mass"`
	Locked bool   `json:"locked,omitempty"`
	Parent int    `json:"parent"`
	Color  string `json:"color"`
}

func Record(b body.Body) BodyRecord {
	return BodyRecord{
		X: Float(b.X), Y: Float(b.Y), VX: Float(b.VX), VY: Float(b.VY),
		Mass:   Float(b.Mass),
		Locked: b.Locked,
		Parent: b.Parent,
		Color:  b.Color.Hex(),
	}
}

func (r BodyRecord) Body() body.Body {
	b := body.New(float64(r.X), float64(r.Y), float64(r.VX), float64(r.VY), float64(r.Mass))
	b.Locked = r.Locked
	b.Parent = r.Parent
	b.Color = body.ParseColor(r.Color)
	return b
}

// Save writes a run. Non-finite values are kept so diverged runs can be
// inspected. A failed save leaves no run directory behind.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (runID string, err error) {
	now := time.Now()
	runID = fmt.Sprintf("%s_%d", cfg.Scenario, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
			runID = ""
		}
	}()

	initial := 0
	if len(result.Samples) > 0 {
		initial = result.Samples[0].Bodies
	}
	meta := RunMetadata{
		ID:          runID,
		Scenario:    cfg.Scenario,
		Timestamp:   now,
		Seed:        cfg.Seed,
		Ticks:       result.TicksTaken,
		Bodies:      initial,
		FinalBodies: len(result.Final),
		Model:       result.Model,
		Physics:     cfg.Physics,
		Metrics:     floatMap(result.Metrics),
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	records := make([]BodyRecord, len(result.Final))
	for i, b := range result.Final {
		records[i] = Record(b)
	}
	if err := writeJSON(filepath.Join(runDir, bodiesFile), records); err != nil {
		return "", err
	}

	if err := writeStats(filepath.Join(runDir, statsFile), result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeStats(path string, samples []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(statsHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Tick),
			strconv.Itoa(s.Bodies),
			strconv.FormatFloat(s.Mass, 'g', -1, 64),
			strconv.FormatFloat(s.MomentumX, 'g', -1, 64),
			strconv.FormatFloat(s.MomentumY, 'g', -1, 64),
			strconv.FormatFloat(s.KineticEnergy, 'g', -1, 64),
			strconv.Itoa(s.Pairs),
			strconv.Itoa(s.Deleted),
			strconv.FormatBool(s.Active),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := s.read(runID, metadataFile)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadBodies(runID string) ([]body.Body, error) {
	data, err := s.read(runID, bodiesFile)
	if err != nil {
		return nil, err
	}

	var records []BodyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	bodies := make([]body.Body, len(records))
	for i, r := range records {
		bodies[i] = r.Body()
	}
	return bodies, nil
}

// LoadSamples reads stats.csv back. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(statsHeader) {
			continue
		}
		s, err := parseSample(rec)
		if err != nil {
			continue
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func parseSample(rec []string) (sim.Sample, error) {
	var s sim.Sample
	var err error
	ints := []*int{&s.Tick, &s.Bodies}
	for i, dst := range ints {
		if *dst, err = strconv.Atoi(rec[i]); err != nil {
			return s, err
		}
	}
	floats := []*float64{&s.Mass, &s.MomentumX, &s.MomentumY, &s.KineticEnergy}
	for i, dst := range floats {
		if *dst, err = strconv.ParseFloat(rec[2+i], 64); err != nil {
			return s, err
		}
	}
	if s.Pairs, err = strconv.Atoi(rec[6]); err != nil {
		return s, err
	}
	if s.Deleted, err = strconv.Atoi(rec[7]); err != nil {
		return s, err
	}
	s.Active, err = strconv.ParseBool(rec[8])
	return s, err
}

func (s *Store) read(runID, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}
	return data, nil
}
