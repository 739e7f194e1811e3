package domain

import (
	"fmt"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// ChecksumState is the lifecycle state of an entry's integrity digest.
type ChecksumState uint8

const (
	// ChecksumUnset means no checksum policy was configured.
	ChecksumUnset ChecksumState = iota
	// ChecksumNone means integrity checking is explicitly disabled.
	ChecksumNone
	// ChecksumPending means the digest is computed on first access and
	// then persisted ("auto").
	ChecksumPending
	// ChecksumResolved means a definite digest is recorded and enforced.
	ChecksumResolved
)

// String returns the string representation of the ChecksumState.
func (s ChecksumState) String() string {
	switch s {
	case ChecksumNone:
		return "none"
	case ChecksumPending:
		return "pending"
	case ChecksumResolved:
		return "resolved"
	default:
		return "unset"
	}
}

// Checksum is a typed digest value with its lifecycle state. A resolved
// digest has the form "<algorithm>:<hex>".
type Checksum struct {
	State  ChecksumState `json:"state"`
	Digest string        `json:"digest,omitzero"`
}

// ResolvedChecksum returns a Checksum in the resolved state.
func ResolvedChecksum(digest string) Checksum {
	return Checksum{State: ChecksumResolved, Digest: digest}
}

// Enforced reports whether the checksum carries a definite digest that
// must match the on-disk content.
func (c Checksum) Enforced() bool {
	return c.State == ChecksumResolved
}

// Algorithm returns the algorithm prefix of a resolved digest, or "".
func (c Checksum) Algorithm() string {
	algo, _, ok := strings.Cut(c.Digest, ":")
	if !ok {
		return ""
	}
	return algo
}

// ParseChecksumSpec interprets a checksum configuration parameter:
// false disables checking, the literal "auto" defers digest computation to
// first access, and an "<algorithm>:<hex>" string is a definite digest.
func ParseChecksumSpec(v any) (Checksum, error) {
	switch spec := v.(type) {
	case nil:
		return Checksum{State: ChecksumUnset}, nil
	case bool:
		if spec {
			return Checksum{}, zerr.With(zerr.Wrap(ErrInvalidChecksumSpec, "true has no meaning, use \"auto\" or a digest"), "spec", "true")
		}
		return Checksum{State: ChecksumNone}, nil
	case string:
		if spec == "auto" {
			return Checksum{State: ChecksumPending}, nil
		}
		if _, _, ok := strings.Cut(spec, ":"); !ok {
			return Checksum{}, zerr.With(zerr.Wrap(ErrInvalidChecksumSpec, "expected <algorithm>:<hex>"), "spec", spec)
		}
		return ResolvedChecksum(spec), nil
	default:
		return Checksum{}, zerr.With(zerr.Wrap(ErrInvalidChecksumSpec, "unsupported value type"), "spec", fmt.Sprintf("%T", v))
	}
}

// SourceRef is a weak back-reference from a cache entry to the dataset and
// driver that produced it. Informational only, never ownership.
type SourceRef struct {
	DataSetID string `json:"dataset_id,omitzero"`
	Driver    string `json:"driver,omitzero"`
}

// CacheEntry is one stored artifact or cached loaded value, keyed by its
// recipe hash. The inventory owns the record and its backing file.
type CacheEntry struct {
	RecipeHash     string    `json:"recipe_hash"`
	FilePath       string    `json:"file_path,omitzero"`
	SizeBytes      int64     `json:"size_bytes"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	Checksum       Checksum  `json:"checksum,omitzero"`
	Source         SourceRef `json:"source,omitzero"`
}
