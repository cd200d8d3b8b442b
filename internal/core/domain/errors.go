package domain

import "go.trai.ch/zerr"

var (
	// ErrElementPositionMismatch is returned when a structure's element and position counts disagree.
	ErrElementPositionMismatch = zerr.New("element count does not match position count")

	// ErrEmptyStructure is returned when a structure contains no atoms.
	ErrEmptyStructure = zerr.New("structure contains no atoms")

	// ErrSingularCell is returned when a structure's lattice matrix is singular.
	ErrSingularCell = zerr.New("lattice cell matrix is singular")

	// ErrAtomIndexOutOfRange is returned when a structure transform references a missing atom.
	ErrAtomIndexOutOfRange = zerr.New("atom index out of range")

	// ErrEmptyPointSet is returned when a spatial index is built from zero points.
	ErrEmptyPointSet = zerr.New("cannot build spatial index from an empty point set")

	// ErrEmptyIndex is returned when a nearest-neighbor query hits an empty index.
	ErrEmptyIndex = zerr.New("spatial index is empty")

	// ErrUnsupportedLattice is returned when no lattice reference strategy is
	// registered for a structure's symmetry class.
	ErrUnsupportedLattice = zerr.New("no lattice reference strategy for symmetry class")

	// ErrNoIdealSites is returned when a lattice strategy yields zero reference sites.
	ErrNoIdealSites = zerr.New("lattice reference produced no ideal sites")

	// ErrDataUnavailable is returned when the structure fetch fails; it is fatal to the request.
	ErrDataUnavailable = zerr.New("structure data unavailable")

	// ErrStructureNotFound is returned when the data source has no structure for an identifier.
	ErrStructureNotFound = zerr.New("structure not found")

	// ErrPropertiesNotFound is returned when the data source has no properties for an identifier.
	ErrPropertiesNotFound = zerr.New("properties not found")

	// ErrComputation is returned when one computation stage fails. It is
	// isolated at join and never aborts the whole request.
	ErrComputation = zerr.New("computation failed")

	// ErrEngineNotConfigured is returned when a stage has no engine command configured.
	ErrEngineNotConfigured = zerr.New("engine not configured")

	// ErrEngineOutputInvalid is returned when an engine's output cannot be decoded.
	ErrEngineOutputInvalid = zerr.New("engine produced invalid output")

	// ErrCacheCorrupt marks an unreadable cache entry. It is logged and
	// treated as a miss, never surfaced to the caller.
	ErrCacheCorrupt = zerr.New("cache entry corrupt")

	// ErrCacheCreateFailed is returned when the cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create cache directory")

	// ErrCacheReadFailed is returned when a cache entry cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read cache entry")

	// ErrCacheWriteFailed is returned when a cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrCacheMarshalFailed is returned when a cache entry cannot be marshaled.
	ErrCacheMarshalFailed = zerr.New("failed to marshal cache entry")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no matsim.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find matsim.yaml")

	// ErrNoIdentifier is returned when the run command is invoked without a material identifier.
	ErrNoIdentifier = zerr.New("no material identifier specified")

	// ErrSimulationFailed is returned when the comprehensive simulation cannot produce a result.
	ErrSimulationFailed = zerr.New("simulation failed")
)
