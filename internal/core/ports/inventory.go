package ports

import (
	"time"

	"go.trai.ch/larder/internal/core/domain"
)

// Inventory is the persisted index of all cache entries.
//
//go:generate go run go.uber.org/mock/mockgen -source=inventory.go -destination=mocks/mock_inventory.go -package=mocks
type Inventory interface {
	// Refresh re-reads the persisted index if it changed on disk since
	// the last load. Safe and cheap to call before every lookup.
	Refresh() error

	// Lookup returns the entry for the hash if present and its backing
	// file exists. Absent and dangling entries both return nil, nil;
	// dangling entries are pruned lazily.
	Lookup(hash string) (*domain.CacheEntry, error)

	// RegisterEntry inserts or replaces the entry by recipe hash and
	// persists the index durably.
	RegisterEntry(e domain.CacheEntry) error

	// RecordAccess moves the entry's last-access time forward. Batched:
	// flushed with the next durable write, never moved backward.
	RecordAccess(hash string, at time.Time) error

	// RegisterReference records that a dataset depends on the entry.
	// Informational only, not part of the eviction key.
	RegisterReference(datasetID, hash string) error

	// RemoveEntry deletes the record and best-effort deletes its backing
	// file. Removing an absent hash is not an error. A failed file
	// deletion is reported as domain.ErrEvictionFailed after the index
	// update succeeded.
	RemoveEntry(hash string) error

	// Entries returns a snapshot of all current entries.
	Entries() ([]domain.CacheEntry, error)

	// References returns the hashes recorded for a dataset.
	References(datasetID string) ([]string, error)

	// DataSets returns the IDs of all datasets holding references.
	DataSets() ([]string, error)

	// TotalSize returns the summed size of all entries.
	TotalSize() (int64, error)

	// LastGCRun returns the time of the last completed collection.
	LastGCRun() (time.Time, error)

	// RecordGCRun persists the time of a completed collection.
	RecordGCRun(at time.Time) error

	// ObjectPath returns the canonical payload location for a hash.
	// Writing the file is the caller's job; the path round-trips through
	// the entry's FilePath.
	ObjectPath(hash string) string

	// Reset discards the whole index and all payload files. This is the
	// explicit recovery action for a corrupt index, never implicit.
	Reset() error
}
