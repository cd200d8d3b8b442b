package domain

import "time"

// Defaults applied when matsim.yaml omits the corresponding field.
const (
	DefaultParallelism        = 4
	DefaultStageTimeout       = 10 * time.Minute
	DefaultCacheRetention     = 7 * 24 * time.Hour
	DefaultOccupancyTolerance = 0.5
)

// Config is the resolved runtime configuration. It is assembled by the config
// loader and passed explicitly to constructors; there is no global instance.
type Config struct {
	// Workspace is the directory containing matsim.yaml, or the working
	// directory when no file was found.
	Workspace string

	Cache   CacheConfig
	Defects DefectConfig
	Compute ComputeConfig
	Engines EnginesConfig
	Source  SourceConfig
	Models  map[string]ModelConfig
}

// CacheConfig controls the durable result cache.
type CacheConfig struct {
	// Dir is the cache directory. Empty selects the default under the user
	// cache directory.
	Dir string
	// Retention is how long cached results stay valid.
	Retention time.Duration
}

// DefectConfig tunes the defect classifier.
type DefectConfig struct {
	// OccupancyTolerance is the max distance (Å) between an atom and its
	// nearest ideal site for the site to count as occupied.
	OccupancyTolerance float64
}

// ComputeConfig bounds the orchestrator.
type ComputeConfig struct {
	// Parallelism caps concurrently running stages.
	Parallelism int
	// StageTimeout is the per-run deadline after which unfinished stages are
	// marked timed out.
	StageTimeout time.Duration
}

// EngineCommand describes one external engine executable.
type EngineCommand struct {
	// Command is the argv of the engine binary. An empty command means the
	// engine is not configured and its stage is skipped.
	Command []string
	// Environment is added to the engine process environment.
	Environment map[string]string
}

// Configured reports whether an engine command was provided.
func (c EngineCommand) Configured() bool {
	return len(c.Command) > 0
}

// EnginesConfig holds the external engine commands per stage.
type EnginesConfig struct {
	ForceField EngineCommand
	Electronic EngineCommand
	Imaging    EngineCommand
}

// SourceConfig selects where structures come from. URL and Dir are mutually
// exclusive; Dir wins for fully local runs.
type SourceConfig struct {
	// URL is the base URL of a materials database API.
	URL string
	// APIKey authenticates against the API.
	APIKey string
	// Dir is a local directory of structure files.
	Dir string
}

// ModelConfig is one linear property model used by the predictor.
type ModelConfig struct {
	Intercept    float64
	Coefficients map[string]float64
}

// NewConfig returns a Config with all defaults applied, rooted at workspace.
func NewConfig(workspace string) *Config {
	return &Config{
		Workspace: workspace,
		Cache:     CacheConfig{Retention: DefaultCacheRetention},
		Defects:   DefectConfig{OccupancyTolerance: DefaultOccupancyTolerance},
		Compute: ComputeConfig{
			Parallelism:  DefaultParallelism,
			StageTimeout: DefaultStageTimeout,
		},
	}
}
