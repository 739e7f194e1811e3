// Package app implements the application layer for larder.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/larder/internal/engine/gc"
	"go.trai.ch/zerr"
)

// App represents the main application logic driving store maintenance.
type App struct {
	settings  *domain.Settings
	inv       ports.Inventory
	collector *gc.Collector
	validator ports.ChecksumValidator
	logger    ports.Logger

	now func() time.Time
}

// New creates a new App instance.
func New(
	settings *domain.Settings,
	inv ports.Inventory,
	collector *gc.Collector,
	validator ports.ChecksumValidator,
	logger ports.Logger,
) *App {
	return &App{
		settings:  settings,
		inv:       inv,
		collector: collector,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// GC runs a collection sweep. With force the configured interval is
// ignored and the sweep always runs.
func (a *App) GC(ctx context.Context, force bool) (*gc.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if force {
		return a.collector.Collect(a.settings.GC, a.now())
	}
	return a.collector.MaybeCollect(a.settings.GC, a.now())
}

// Status summarizes the current state of the store.
type Status struct {
	Root        string
	Entries     int
	TotalSize   int64
	LastGCRun   time.Time
	DataSets    int
	DataSetRefs []DataSetRefs
	GCEnabled   bool
	GCInterval  time.Duration
}

// DataSetRefs counts the entries referenced by one dataset.
type DataSetRefs struct {
	ID      string
	Entries int
}

// Status reports the store root, entry count, total payload size and the
// time of the last collection run.
func (a *App) Status() (*Status, error) {
	if err := a.inv.Refresh(); err != nil {
		return nil, err
	}
	entries, err := a.inv.Entries()
	if err != nil {
		return nil, err
	}
	size, err := a.inv.TotalSize()
	if err != nil {
		return nil, err
	}
	last, err := a.inv.LastGCRun()
	if err != nil {
		return nil, err
	}
	datasets, err := a.inv.DataSets()
	if err != nil {
		return nil, err
	}
	refs := make([]DataSetRefs, 0, len(datasets))
	for _, id := range datasets {
		hashes, err := a.inv.References(id)
		if err != nil {
			return nil, err
		}
		refs = append(refs, DataSetRefs{ID: id, Entries: len(hashes)})
	}
	return &Status{
		Root:        a.settings.Root,
		Entries:     len(entries),
		TotalSize:   size,
		LastGCRun:   last,
		DataSets:    len(datasets),
		DataSetRefs: refs,
		GCEnabled:   a.settings.GC.AutoGCEnabled(),
		GCInterval:  a.settings.GC.AutoGCInterval(),
	}, nil
}

// VerifyReport summarizes an integrity pass over the store.
type VerifyReport struct {
	// Checked counts entries whose payload digest was recomputed.
	Checked int
	// Resolved lists entries whose pending digest was computed and
	// persisted during the pass.
	Resolved []string
	// Purged lists entries removed because their payload no longer
	// matches the recorded digest.
	Purged []string
}

// Verify recomputes the checksum of every entry that carries one and
// purges entries whose payload drifted from the recorded digest. Pending
// digests are resolved and persisted.
func (a *App) Verify(ctx context.Context) (*VerifyReport, error) {
	if err := a.inv.Refresh(); err != nil {
		return nil, err
	}
	entries, err := a.inv.Entries()
	if err != nil {
		return nil, err
	}

	report := &VerifyReport{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch entry.Checksum.State {
		case domain.ChecksumPending:
			resolved, err := a.validator.ResolveAuto(entry.FilePath)
			if err != nil {
				return nil, err
			}
			entry.Checksum = resolved
			if err := a.inv.RegisterEntry(entry); err != nil {
				return nil, err
			}
			report.Resolved = append(report.Resolved, entry.RecipeHash)
		case domain.ChecksumResolved:
			report.Checked++
			err := a.validator.Verify(entry.FilePath, entry.Checksum)
			if err == nil {
				continue
			}
			if !errors.Is(err, domain.ErrChecksumMismatch) {
				return nil, err
			}
			a.logger.Warn(fmt.Sprintf("verify: checksum mismatch for %s, purging", entry.RecipeHash))
			if err := a.inv.RemoveEntry(entry.RecipeHash); err != nil {
				return nil, err
			}
			report.Purged = append(report.Purged, entry.RecipeHash)
		}
	}
	return report, nil
}

// Reset wipes the store: index and all payload files.
func (a *App) Reset() error {
	if err := a.inv.Reset(); err != nil {
		return zerr.Wrap(err, "failed to reset store")
	}
	a.logger.Info("store reset: " + a.settings.Root)
	return nil
}
