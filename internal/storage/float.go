package storage

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/san-kum/orbitsim/internal/sim"
)

// Float is a float64 that survives JSON when it is not finite. NaN and the
// infinities are written as the strings "NaN", "+Inf" and "-Inf".
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = Float(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("storage: float: %w", err)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("storage: float %q: %w", s, err)
	}
	*f = Float(v)
	return nil
}

func floatMap(m map[string]float64) map[string]Float {
	out := make(map[string]Float, len(m))
	for k, v := range m {
		out[k] = Float(v)
	}
	return out
}

// SampleRecord is the exported form of a sim.Sample.
type SampleRecord struct {
	Tick          int   `json:"tick"`
	Bodies        int   `json:"bodies"`
	Mass          Float `json:"mass"`
	MomentumX     Float `json:"momentum_x"`
	MomentumY     Float `json:"momentum_y"`
	KineticEnergy Float `json:"kinetic_energy"`
	Pairs         int   `json:"pairs"`
	Deleted       int   `json:"deleted"`
	Active        bool  `json:"active"`
}

func sampleRecord(s sim.Sample) SampleRecord {
	return SampleRecord{
		Tick:          s.Tick,
		Bodies:        s.Bodies,
		Mass:          Float(s.Mass),
		MomentumX:     Float(s.MomentumX),
		MomentumY:     Float(s.MomentumY),
		KineticEnergy: Float(s.KineticEnergy),
		Pairs:         s.Pairs,
		Deleted:       s.Deleted,
		Active:        s.Active,
	}
}
