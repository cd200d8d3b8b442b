package domain

import "time"

// Stage names used in ComprehensiveResult.Stages. The prediction stage runs
// after the structural stages because it may consume their outputs.
const (
	StageDefects    = "defects"
	StageForceField = "force_field"
	StageElectronic = "electronic_structure"
	StageImaging    = "imaging"
	StagePrediction = "prediction"
)

// StageState is the terminal state of one computation stage.
type StageState string

const (
	// StageOK indicates the stage completed and its section is populated.
	StageOK StageState = "ok"
	// StageFailed indicates the stage returned an error; its section is absent.
	StageFailed StageState = "failed"
	// StageTimedOut indicates the stage was still running at the join deadline.
	StageTimedOut StageState = "timed_out"
	// StageSkipped indicates the stage was not dispatched (not configured).
	StageSkipped StageState = "skipped"
)

// StageStatus records how one stage ended. Callers must check the status
// before trusting the presence of the corresponding result section.
type StageStatus struct {
	State StageState `json:"state"`
	Error string     `json:"error,omitempty"`
}

// ForceFieldResult is the output of the interatomic-potential collaborator.
type ForceFieldResult struct {
	Energy           float64      `json:"energy"`
	Forces           [][3]float64 `json:"forces,omitempty"`
	Stress           []float64    `json:"stress,omitempty"`
	RelaxedPositions [][3]float64 `json:"relaxed_positions,omitempty"`
}

// ElectronicResult is the output of the electronic-structure collaborator.
type ElectronicResult struct {
	Energy          float64      `json:"energy"`
	Forces          [][3]float64 `json:"forces,omitempty"`
	Stress          []float64    `json:"stress,omitempty"`
	DensityOfStates []float64    `json:"density_of_states,omitempty"`
	BandStructure   [][]float64  `json:"band_structure,omitempty"`
	ChargeDensity   []float64    `json:"charge_density,omitempty"`
	ELF             []float64    `json:"elf,omitempty"`
}

// ImagingResult holds simulated images for both supported modes.
type ImagingResult struct {
	HighResolution [][]float64 `json:"high_resolution,omitempty"`
	Scanning       [][]float64 `json:"scanning,omitempty"`
}

// ComprehensiveResult is the join of every stage output for one identifier.
// A section pointer is nil exactly when its stage did not produce output;
// Stages carries the per-stage status either way.
type ComprehensiveResult struct {
	Identifier  string                 `json:"identifier"`
	Defects     *DefectRecord          `json:"defects,omitempty"`
	ForceField  *ForceFieldResult      `json:"force_field,omitempty"`
	Electronic  *ElectronicResult      `json:"electronic_structure,omitempty"`
	Imaging     *ImagingResult         `json:"imaging,omitempty"`
	Predictions map[string]float64     `json:"predictions,omitempty"`
	Properties  map[string]float64     `json:"properties,omitempty"`
	Stages      map[string]StageStatus `json:"stages"`
}

// CacheEntry is the persisted form of one computation result.
type CacheEntry struct {
	Timestamp time.Time           `json:"timestamp"`
	Results   ComprehensiveResult `json:"results"`
}
