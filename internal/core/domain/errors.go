package domain

import "go.trai.ch/zerr"

var (
	// ErrChecksumMismatch is returned when a cache entry's on-disk content
	// disagrees with its recorded digest. The entry must be purged and the
	// lookup treated as a miss, never silently served.
	ErrChecksumMismatch = zerr.New("checksum mismatch")

	// ErrMissingDependency is returned when a recipe references a dataset
	// that the resolver cannot produce.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCorruptIndex is returned when the persisted inventory index cannot
	// be read or parsed. Recovery requires an explicit reset.
	ErrCorruptIndex = zerr.New("corrupt inventory index")

	// ErrCycleDetected is returned when the recipe graph revisits a dataset
	// on its own active path during hashing.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrEvictionFailed is returned when a backing file could not be deleted
	// while its index entry was removed. The sweep records it and continues.
	ErrEvictionFailed = zerr.New("eviction failed")

	// ErrUnknownChecksumAlgorithm is returned for a digest string whose
	// algorithm prefix is not registered.
	ErrUnknownChecksumAlgorithm = zerr.New("unknown checksum algorithm")

	// ErrInvalidChecksumSpec is returned for a checksum parameter that is
	// neither false, "auto", nor an "<algorithm>:<hex>" digest string.
	ErrInvalidChecksumSpec = zerr.New("invalid checksum spec")
)
