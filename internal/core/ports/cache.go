package ports

import (
	"time"

	"go.trai.ch/matsim/internal/core/domain"
)

// ResultCache is the durable store mapping identifier to a timestamped
// computation result. Implementations own the on-disk layout exclusively;
// callers never touch storage directly.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ResultCache interface {
	// Get returns the stored result if an entry exists and is no older than
	// maxAge. Returns nil, nil on a miss. An expired entry is deleted as a
	// side effect of the miss; a corrupt entry is logged and treated as a
	// miss, never propagated.
	Get(identifier string, maxAge time.Duration) (*domain.ComprehensiveResult, error)

	// Put writes or overwrites the entry for the identifier with the current
	// timestamp. The entry is durable before Put returns, and the write is
	// atomic with respect to concurrent readers of the same identifier.
	Put(identifier string, results domain.ComprehensiveResult) error

	// Purge deletes every entry older than olderThan. An olderThan of zero
	// deletes every entry.
	Purge(olderThan time.Duration) error

	// Size returns the sum of on-disk entry sizes in bytes.
	Size() (int64, error)
}
