package config

// File represents the structure of the matsim.yaml configuration file.
type File struct {
	Version string               `yaml:"version"`
	Cache   CacheDTO             `yaml:"cache"`
	Defects DefectsDTO           `yaml:"defects"`
	Compute ComputeDTO           `yaml:"compute"`
	Engines EnginesDTO           `yaml:"engines"`
	Source  SourceDTO            `yaml:"source"`
	Models  map[string]*ModelDTO `yaml:"models"`
}

// CacheDTO configures the result cache.
type CacheDTO struct {
	Dir       string `yaml:"dir"`
	Retention string `yaml:"retention"`
}

// DefectsDTO configures the defect classifier.
type DefectsDTO struct {
	OccupancyTolerance *float64 `yaml:"occupancyTolerance"`
}

// ComputeDTO configures orchestrator concurrency.
type ComputeDTO struct {
	Parallelism  int    `yaml:"parallelism"`
	StageTimeout string `yaml:"stageTimeout"`
}

// EngineDTO is one external engine command.
type EngineDTO struct {
	Cmd         []string          `yaml:"cmd"`
	Environment map[string]string `yaml:"environment"`
}

// EnginesDTO maps stages to their engine commands.
type EnginesDTO struct {
	ForceField *EngineDTO `yaml:"forceField"`
	Electronic *EngineDTO `yaml:"electronicStructure"`
	Imaging    *EngineDTO `yaml:"imaging"`
}

// SourceDTO selects the structure source.
type SourceDTO struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"apiKey"`
	Dir    string `yaml:"dir"`
}

// ModelDTO is one linear property model.
type ModelDTO struct {
	Intercept    float64            `yaml:"intercept"`
	Coefficients map[string]float64 `yaml:"coefficients"`
}
