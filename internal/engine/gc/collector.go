// Package gc implements the garbage collector enforcing the configured
// age and size limits on the inventory.
package gc

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/zerr"
)

// Eviction reasons, as reported and counted.
const (
	ReasonAge  = "age"
	ReasonSize = "size"
)

// Report describes one completed sweep.
type Report struct {
	// Ran is false when MaybeCollect skipped the sweep.
	Ran bool
	// AgeEvicted and SizeEvicted list the evicted hashes per sweep phase.
	AgeEvicted  []string
	SizeEvicted []string
	// Failures maps hashes whose backing file could not be deleted to the
	// failure. The index entries are gone regardless.
	Failures map[string]error
	// BytesFreed is the summed size of all evicted entries.
	BytesFreed int64
	// SizeAfter is the total entry size remaining after the sweep.
	SizeAfter int64
}

// Collector runs synchronous collection sweeps over the inventory.
// Scheduling is the embedding application's job; MaybeCollect just
// enforces the minimum spacing between automatic runs.
type Collector struct {
	inv     ports.Inventory
	logger  ports.Logger
	metrics ports.Metrics
}

// New creates a Collector.
func New(inv ports.Inventory, logger ports.Logger, metrics ports.Metrics) *Collector {
	return &Collector{inv: inv, logger: logger, metrics: metrics}
}

// MaybeCollect runs a sweep if automatic collection is enabled and at
// least the configured interval passed since the last run.
func (c *Collector) MaybeCollect(cfg domain.GCConfig, now time.Time) (*Report, error) {
	if !cfg.AutoGCEnabled() {
		return &Report{}, nil
	}
	last, err := c.inv.LastGCRun()
	if err != nil {
		return nil, err
	}
	if !last.IsZero() && now.Sub(last) < cfg.AutoGCInterval() {
		return &Report{}, nil
	}
	return c.Collect(cfg, now)
}

// Collect runs one synchronous sweep: the age sweep removes every entry
// whose last access is older than the age limit, then the size sweep
// evicts lowest-scoring entries until the store is under the size cap.
// A failed file deletion is recorded and the sweep continues; it never
// aborts the remaining evictions.
func (c *Collector) Collect(cfg domain.GCConfig, now time.Time) (*Report, error) {
	if err := c.inv.Refresh(); err != nil {
		return nil, err
	}
	entries, err := c.inv.Entries()
	if err != nil {
		return nil, err
	}

	report := &Report{
		Ran:      true,
		Failures: make(map[string]error),
	}

	remaining := make([]domain.CacheEntry, 0, len(entries))
	var total int64
	for _, e := range entries {
		if cfg.MaxAgeDays > 0 && now.Sub(e.LastAccessedAt) > cfg.MaxAge() {
			c.evict(e, ReasonAge, report)
			continue
		}
		remaining = append(remaining, e)
		total += e.SizeBytes
	}

	if cfg.MaxSizeBytes > 0 && total > cfg.MaxSizeBytes {
		scores := scoreEntries(remaining, cfg.RecencyBeta, now)
		// Lowest score first; ties broken by earliest creation time.
		sort.Slice(remaining, func(i, j int) bool {
			si := scores[remaining[i].RecipeHash]
			sj := scores[remaining[j].RecipeHash]
			if si != sj {
				return si < sj
			}
			return remaining[i].CreatedAt.Before(remaining[j].CreatedAt)
		})
		for _, e := range remaining {
			if total <= cfg.MaxSizeBytes {
				break
			}
			c.evict(e, ReasonSize, report)
			total -= e.SizeBytes
		}
	}
	report.SizeAfter = total

	if err := c.inv.RecordGCRun(now); err != nil {
		return report, err
	}
	if len(report.AgeEvicted)+len(report.SizeEvicted) > 0 {
		c.logger.Info(fmt.Sprintf("gc: evicted %d by age, %d by size, freed %d bytes",
			len(report.AgeEvicted), len(report.SizeEvicted), report.BytesFreed))
	}
	return report, nil
}

func (c *Collector) evict(e domain.CacheEntry, reason string, report *Report) {
	err := c.inv.RemoveEntry(e.RecipeHash)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrEvictionFailed):
		// The index entry is gone but the file survived, so the bytes
		// were not actually reclaimed.
		report.Failures[e.RecipeHash] = err
		c.logger.Warn(fmt.Sprintf("gc: could not delete file for %s", e.RecipeHash))
		return
	default:
		report.Failures[e.RecipeHash] = zerr.Wrap(err, "failed to remove entry")
		c.logger.Error(err)
		return
	}

	if reason == ReasonAge {
		report.AgeEvicted = append(report.AgeEvicted, e.RecipeHash)
	} else {
		report.SizeEvicted = append(report.SizeEvicted, e.RecipeHash)
	}
	report.BytesFreed += e.SizeBytes
	c.metrics.Eviction(reason)
}
