// Package cache implements the durable computation-result cache with one
// file per material identifier.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/matsim/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ResultCache = (*Store)(nil)

// Store implements ports.ResultCache using a file-per-identifier strategy.
// Writes go through a temp file and rename so a concurrent reader of the
// same identifier never observes a half-written entry.
type Store struct {
	dir    string
	logger ports.Logger
	now    func() time.Time
}

// NewStore creates a result cache rooted at dir. An empty dir selects the
// default location under .matsim.
func NewStore(dir string, logger ports.Logger) (*Store, error) {
	return newStoreWithClock(dir, logger, time.Now)
}

// newStoreWithClock injects the clock, used by tests for expiry control.
func newStoreWithClock(dir string, logger ports.Logger, now func() time.Time) (*Store, error) {
	if dir == "" {
		dir = domain.DefaultResultCachePath()
	}

	cleanDir := filepath.Clean(dir)
	if err := os.MkdirAll(cleanDir, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheCreateFailed.Error())
	}

	return &Store{dir: cleanDir, logger: logger, now: now}, nil
}

// Get returns the cached result for the identifier if it is no older than
// maxAge. A maxAge of zero or less disables the age check. Expired and
// corrupt entries are deleted and reported as a miss (nil, nil); corruption
// is logged, never propagated.
func (s *Store) Get(identifier string, maxAge time.Duration) (*domain.ComprehensiveResult, error) {
	filename := s.entryPath(identifier)

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		s.warnCorrupt(identifier, zerr.Wrap(err, domain.ErrCacheReadFailed.Error()))
		return nil, nil
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		s.warnCorrupt(identifier, zerr.Wrap(err, domain.ErrCacheCorrupt.Error()))
		s.remove(filename)
		return nil, nil
	}

	if maxAge > 0 && s.now().Sub(entry.Timestamp) > maxAge {
		s.remove(filename)
		return nil, nil
	}

	return &entry.Results, nil
}

// Put writes or overwrites the entry for the identifier with the current
// timestamp. The entry is synced to disk before Put returns.
func (s *Store) Put(identifier string, results domain.ComprehensiveResult) error {
	entry := domain.CacheEntry{
		Timestamp: s.now().UTC(),
		Results:   results,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrCacheCreateFailed.Error())
	}

	tmp, err := os.CreateTemp(s.dir, ".entry-*.tmp")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	tmpName := tmp.Name()

	if err := writeAndSync(tmp, data); err != nil {
		s.remove(tmpName)
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		s.remove(tmpName)
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}

	if err := os.Rename(tmpName, s.entryPath(identifier)); err != nil {
		s.remove(tmpName)
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}

	return nil
}

// Purge deletes every entry older than olderThan, or every entry when
// olderThan is zero. Entries whose timestamp cannot be read count as older
// than everything.
func (s *Store) Purge(olderThan time.Duration) error {
	entries, err := s.listEntries()
	if err != nil {
		return err
	}

	var errs error
	now := s.now()

	for _, path := range entries {
		if olderThan > 0 && now.Sub(s.entryTimestamp(path)) <= olderThan {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = errors.Join(errs, zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()))
		}
	}

	return errs
}

// Size returns the sum of on-disk entry sizes in bytes.
func (s *Store) Size() (int64, error) {
	entries, err := s.listEntries()
	if err != nil {
		return 0, err
	}

	var total int64
	for _, path := range entries {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		total += info.Size()
	}

	return total, nil
}

func (s *Store) listEntries() ([]string, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}

	var out []string
	for _, e := range dirEntries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		out = append(out, filepath.Join(s.dir, e.Name()))
	}

	return out, nil
}

// entryTimestamp reads an entry's creation time. The zero time is returned
// for unreadable entries so Purge treats them as expired.
func (s *Store) entryTimestamp(path string) time.Time {
	//nolint:gosec // Path comes from listing the trusted cache directory
	data, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}
	}

	var entry struct {
		Timestamp time.Time `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		return time.Time{}
	}

	return entry.Timestamp
}

// entryPath hashes the identifier so arbitrary identifier strings map to
// safe, fixed-length filenames.
func (s *Store) entryPath(identifier string) string {
	sum := xxhash.Sum64String(identifier)
	return filepath.Join(s.dir, fmt.Sprintf("%016x.json", sum))
}

func (s *Store) warnCorrupt(identifier string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Warn(fmt.Sprintf("treating cache entry for %q as a miss: %v", identifier, err))
}

func (s *Store) remove(path string) {
	_ = os.Remove(path)
}

func writeAndSync(f *os.File, data []byte) error {
	defer f.Close() //nolint:errcheck // Best effort close after sync

	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
