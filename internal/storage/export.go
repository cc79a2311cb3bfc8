package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run     RunMetadata    `json:"run"`
	Samples []SampleRecord `json:"samples"`
	Bodies  []BodyRecord   `json:"bodies"`
}

// Export gathers everything stored for a run.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return nil, err
	}
	bodies, err := s.LoadBodies(runID)
	if err != nil {
		return nil, err
	}

	data := &ExportData{
		Run:     *meta,
		Samples: make([]SampleRecord, len(samples)),
		Bodies:  make([]BodyRecord, len(bodies)),
	}
	for i, smp := range samples {
		data.Samples[i] = sampleRecord(smp)
	}
	for i, b := range bodies {
		data.Bodies[i] = Record(b)
	}
	return data, nil
}

func (s *Store) ExportJSON(w io.Writer, runID string) error {
	data, err := s.Export(runID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.ExportJSON(file, runID)
}
