package domain

import "time"

// GCConfig is the system-wide garbage collection policy.
type GCConfig struct {
	// AutoGCIntervalHours is the minimum spacing between automatic
	// collection runs. Zero or negative disables automatic runs.
	AutoGCIntervalHours float64 `json:"auto_gc" yaml:"auto_gc"`
	// MaxAgeDays removes entries not accessed within this many days.
	// Zero or negative disables the age sweep.
	MaxAgeDays float64 `json:"max_age" yaml:"max_age"`
	// MaxSizeBytes caps the total size of all entries. Zero or negative
	// disables the size sweep.
	MaxSizeBytes int64 `json:"max_size" yaml:"max_size"`
	// RecencyBeta tunes the recency-vs-size eviction trade-off. Positive
	// values favor keeping recently used entries, negative values favor
	// keeping small entries; larger magnitude sharpens the selected side
	// and +1/-1 are the reference weightings.
	RecencyBeta float64 `json:"recency_beta" yaml:"recency_beta"`
}

// DefaultGCConfig returns the policy applied when no configuration file
// overrides it.
func DefaultGCConfig() GCConfig {
	return GCConfig{
		AutoGCIntervalHours: 24,
		MaxAgeDays:          30,
		MaxSizeBytes:        10 << 30,
		RecencyBeta:         1,
	}
}

// AutoGCEnabled reports whether automatic collection runs are enabled.
func (c GCConfig) AutoGCEnabled() bool {
	return c.AutoGCIntervalHours > 0
}

// AutoGCInterval returns the spacing between automatic runs.
func (c GCConfig) AutoGCInterval() time.Duration {
	return time.Duration(c.AutoGCIntervalHours * float64(time.Hour))
}

// MaxAge returns the age sweep threshold as a duration.
func (c GCConfig) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeDays * 24 * float64(time.Hour))
}

// Settings is the resolved system configuration: where the store lives on
// disk plus the collection policy.
type Settings struct {
	// Root is the store directory holding the inventory index and the
	// object payload files.
	Root string
	GC   GCConfig
}
