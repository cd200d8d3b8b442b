// Package config provides the configuration loader for matsim.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/matsim/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// APIKeyEnvVar overrides source.apiKey when set in the environment.
const APIKeyEnvVar = "MATSIM_API_KEY"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load walks up from cwd looking for matsim.yaml. A missing file is not an
// error; the defaults apply and the workspace is cwd itself.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, found := findConfiguration(cwd)
	if !found {
		l.Logger.Info(fmt.Sprintf("no %s found, using defaults", domain.MatsimFileName))
		return domain.NewConfig(cwd), nil
	}

	var file File
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, err
	}

	cfg := domain.NewConfig(filepath.Dir(configPath))
	if err := l.apply(cfg, &file); err != nil {
		return nil, zerr.With(err, "config", configPath)
	}

	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.MatsimFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) apply(cfg *domain.Config, file *File) error {
	cfg.Cache.Dir = resolveDir(cfg.Workspace, file.Cache.Dir)

	if err := applyDuration(&cfg.Cache.Retention, file.Cache.Retention, "cache.retention"); err != nil {
		return err
	}
	if err := applyDuration(&cfg.Compute.StageTimeout, file.Compute.StageTimeout, "compute.stageTimeout"); err != nil {
		return err
	}

	if file.Compute.Parallelism != 0 {
		if file.Compute.Parallelism < 1 {
			err := zerr.With(domain.ErrConfigParseFailed, "field", "compute.parallelism")
			return zerr.With(err, "value", file.Compute.Parallelism)
		}
		cfg.Compute.Parallelism = file.Compute.Parallelism
	}

	if file.Defects.OccupancyTolerance != nil {
		tol := *file.Defects.OccupancyTolerance
		if tol <= 0 {
			err := zerr.With(domain.ErrConfigParseFailed, "field", "defects.occupancyTolerance")
			return zerr.With(err, "value", fmt.Sprintf("%g", tol))
		}
		cfg.Defects.OccupancyTolerance = tol
	}

	cfg.Engines.ForceField = buildEngine(file.Engines.ForceField)
	cfg.Engines.Electronic = buildEngine(file.Engines.Electronic)
	cfg.Engines.Imaging = buildEngine(file.Engines.Imaging)

	if err := l.applySource(cfg, file); err != nil {
		return err
	}

	if len(file.Models) > 0 {
		cfg.Models = make(map[string]domain.ModelConfig, len(file.Models))
		for property, dto := range file.Models {
			if dto == nil {
				l.Logger.Warn(fmt.Sprintf("model %q has no body, skipping", property))
				continue
			}
			cfg.Models[property] = domain.ModelConfig{
				Intercept:    dto.Intercept,
				Coefficients: dto.Coefficients,
			}
		}
	}

	return nil
}

func (l *Loader) applySource(cfg *domain.Config, file *File) error {
	if file.Source.URL != "" && file.Source.Dir != "" {
		err := zerr.With(domain.ErrConfigParseFailed, "field", "source")
		return zerr.With(err, "reason", "url and dir are mutually exclusive")
	}

	cfg.Source.URL = file.Source.URL
	cfg.Source.Dir = resolveDir(cfg.Workspace, file.Source.Dir)

	cfg.Source.APIKey = file.Source.APIKey
	if env := os.Getenv(APIKeyEnvVar); env != "" {
		cfg.Source.APIKey = env
	}

	return nil
}

func buildEngine(dto *EngineDTO) domain.EngineCommand {
	if dto == nil {
		return domain.EngineCommand{}
	}
	return domain.EngineCommand{
		Command:     dto.Cmd,
		Environment: dto.Environment,
	}
}

// applyDuration parses a duration field, leaving the default in place when
// the field is empty.
func applyDuration(dst *time.Duration, raw, field string) error {
	if raw == "" {
		return nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		wrapped := zerr.With(domain.ErrConfigParseFailed, "field", field)
		return zerr.With(wrapped, "value", raw)
	}

	*dst = d
	return nil
}

// resolveDir resolves a configured directory relative to the workspace.
func resolveDir(workspace, dir string) string {
	if dir == "" {
		return ""
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Clean(filepath.Join(workspace, dir))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by walking up from cwd
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
