package matdata

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Local implements ports.StructureProvider over a directory of structure
// files. A structure lives in <dir>/<identifier>.yaml, its known properties
// in <dir>/<identifier>.properties.yaml.
type Local struct {
	dir string
}

// NewLocal creates a directory-backed provider.
func NewLocal(dir string) *Local {
	return &Local{dir: filepath.Clean(dir)}
}

// structureFile is the YAML schema of a local structure file.
type structureFile struct {
	Elements  []string    `yaml:"elements"`
	Positions [][]float64 `yaml:"positions"`
	Cell      [][]float64 `yaml:"cell"`
	Periodic  []bool      `yaml:"periodic"`

	Symmetry        string         `yaml:"symmetry"`
	IdealSites      [][]float64    `yaml:"idealSites"`
	Basis           [][]float64    `yaml:"basis"`
	Repeat          []int          `yaml:"repeat"`
	ExpectedSpecies map[int]string `yaml:"expectedSpecies"`
}

// GetStructure reads and validates <dir>/<identifier>.yaml.
func (l *Local) GetStructure(_ context.Context, identifier string) (*domain.StructureRecord, error) {
	path := filepath.Join(l.dir, identifier+".yaml")

	//nolint:gosec // path is rooted in the configured structure directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrStructureNotFound, "identifier", identifier)
		}
		return nil, zerr.Wrap(err, "failed to read structure file")
	}

	var file structureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		wrapped := zerr.Wrap(err, "failed to parse structure file")
		return nil, zerr.With(wrapped, "identifier", identifier)
	}

	record, err := buildRecord(&file)
	if err != nil {
		return nil, zerr.With(err, "identifier", identifier)
	}
	record.Identifier = identifier
	record.Metadata.Source = path

	return record, nil
}

// GetProperties reads <dir>/<identifier>.properties.yaml. A missing file
// yields ErrPropertiesNotFound; callers treat that as "no known properties".
func (l *Local) GetProperties(_ context.Context, identifier string) (map[string]float64, error) {
	path := filepath.Join(l.dir, identifier+".properties.yaml")

	//nolint:gosec // path is rooted in the configured structure directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrPropertiesNotFound, "identifier", identifier)
		}
		return nil, zerr.Wrap(err, "failed to read properties file")
	}

	var properties map[string]float64
	if err := yaml.Unmarshal(data, &properties); err != nil {
		wrapped := zerr.Wrap(err, "failed to parse properties file")
		return nil, zerr.With(wrapped, "identifier", identifier)
	}

	return properties, nil
}

func buildRecord(file *structureFile) (*domain.StructureRecord, error) {
	positions, err := toVec3s(file.Positions, "positions")
	if err != nil {
		return nil, err
	}

	cell, err := toCell(file.Cell)
	if err != nil {
		return nil, err
	}

	record, err := domain.NewStructure(file.Elements, positions, cell)
	if err != nil {
		return nil, err
	}

	if len(file.Periodic) == 3 {
		copy(record.Periodic[:], file.Periodic)
	}

	record.Metadata.Symmetry = domain.SymmetryClass(file.Symmetry)

	if file.IdealSites != nil {
		sites, err := toVec3s(file.IdealSites, "idealSites")
		if err != nil {
			return nil, err
		}
		record.Metadata.IdealSites = sites
	}

	if file.Basis != nil {
		basis, err := toVec3s(file.Basis, "basis")
		if err != nil {
			return nil, err
		}
		record.Metadata.Basis = basis
	}

	if len(file.Repeat) == 3 {
		copy(record.Metadata.Repeat[:], file.Repeat)
	}

	if len(file.ExpectedSpecies) > 0 {
		record.Metadata.ExpectedSpecies = make(map[int]domain.InternedString, len(file.ExpectedSpecies))
		for site, element := range file.ExpectedSpecies {
			record.Metadata.ExpectedSpecies[site] = domain.NewInternedString(element)
		}
	}

	return record, nil
}

func toVec3s(rows [][]float64, field string) ([][3]float64, error) {
	out := make([][3]float64, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			err := zerr.With(domain.ErrConfigParseFailed, "field", field)
			return nil, zerr.With(err, "row", i)
		}
		copy(out[i][:], row)
	}
	return out, nil
}

func toCell(rows [][]float64) ([3][3]float64, error) {
	var cell [3][3]float64
	if len(rows) != 3 {
		return cell, zerr.With(domain.ErrConfigParseFailed, "field", "cell")
	}
	for i, row := range rows {
		if len(row) != 3 {
			err := zerr.With(domain.ErrConfigParseFailed, "field", "cell")
			return cell, zerr.With(err, "row", i)
		}
		copy(cell[i][:], row)
	}
	return cell, nil
}
