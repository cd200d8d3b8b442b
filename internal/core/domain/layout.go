package domain

import "path/filepath"

const (
	// MatsimDirName is the name of the internal workspace directory.
	MatsimDirName = ".matsim"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// ResultsDirName is the name of the computation result cache directory.
	ResultsDirName = "results"

	// StructuresDirName is the name of the fetched-structure cache directory.
	StructuresDirName = "structures"

	// MatsimFileName is the name of the project configuration file.
	MatsimFileName = "matsim.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultResultCachePath returns the default directory for cached
// computation results. It joins .matsim, cache, and results.
func DefaultResultCachePath() string {
	return filepath.Join(MatsimDirName, CacheDirName, ResultsDirName)
}

// DefaultStructureCachePath returns the default directory for cached fetched
// structures. It joins .matsim, cache, and structures.
func DefaultStructureCachePath() string {
	return filepath.Join(MatsimDirName, CacheDirName, StructuresDirName)
}
