// Package inventory implements the persisted index of cache entries
// backed by a flat JSON file plus one payload file per entry.
package inventory

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	indexFilename = "inventory.json"
	objectsDir    = "objects"
)

var _ ports.Inventory = (*Inventory)(nil)

// index is the on-disk shape of the inventory. It is written as a whole
// unit via write-fsync-rename so a crash mid-write cannot corrupt it.
type index struct {
	Generation int64                        `json:"generation"`
	LastGCRun  time.Time                    `json:"last_gc_run,omitzero"`
	Entries    map[string]domain.CacheEntry `json:"entries"`
	Refs       map[string][]string          `json:"refs,omitzero"`
}

func newIndex() index {
	return index{
		Entries: make(map[string]domain.CacheEntry),
		Refs:    make(map[string][]string),
	}
}

// Inventory owns all cache entry records and their backing files under a
// single store root. Multiple processes may share the root: readers call
// Refresh before lookups and writers replace the index atomically, so the
// worst case of a populate race is last-writer-wins on the index.
type Inventory struct {
	root      string
	indexPath string

	mu          sync.RWMutex
	idx         index
	loadedMtime time.Time
	// pendingAccess holds access-time updates not yet flushed to disk.
	// They are merged by max on refresh so access times never go backward.
	pendingAccess map[string]time.Time
}

// New opens or initializes the inventory at the given store root.
// A present but unreadable index is a domain.ErrCorruptIndex: the store
// cannot infer safe defaults, and recovery requires an explicit Reset.
func New(root string) (*Inventory, error) {
	root = filepath.Clean(root)
	if err := os.MkdirAll(filepath.Join(root, objectsDir), 0o750); err != nil {
		return nil, zerr.Wrap(err, "failed to create store directory")
	}

	inv := &Inventory{
		root:          root,
		indexPath:     filepath.Join(root, indexFilename),
		idx:           newIndex(),
		pendingAccess: make(map[string]time.Time),
	}
	if err := inv.load(); err != nil {
		return nil, err
	}
	return inv, nil
}

// Recover discards whatever is at the store root, including a corrupt
// index, and reopens an empty inventory. Only called on an explicit reset
// request; New never falls back to this on its own.
func Recover(root string) (*Inventory, error) {
	root = filepath.Clean(root)
	if err := os.Remove(filepath.Join(root, indexFilename)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.Wrap(err, "failed to remove index file")
	}
	if err := os.RemoveAll(filepath.Join(root, objectsDir)); err != nil {
		return nil, zerr.Wrap(err, "failed to remove object files")
	}
	return New(root)
}

func (inv *Inventory) load() error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.loadLocked()
}

func (inv *Inventory) loadLocked() error {
	//nolint:gosec // Path is derived from the cleaned store root
	data, err := os.ReadFile(inv.indexPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(domain.ErrCorruptIndex, "failed to read index file"), "path", inv.indexPath)
	}
	if len(data) == 0 {
		return nil
	}

	loaded := newIndex()
	if err := json.Unmarshal(data, &loaded); err != nil {
		corrupt := zerr.With(zerr.Wrap(domain.ErrCorruptIndex, "index file is not valid JSON"), "path", inv.indexPath)
		return zerr.With(corrupt, "parse_error", err.Error())
	}
	if loaded.Entries == nil {
		loaded.Entries = make(map[string]domain.CacheEntry)
	}
	if loaded.Refs == nil {
		loaded.Refs = make(map[string][]string)
	}
	inv.idx = loaded
	inv.applyPendingLocked()

	if info, err := os.Stat(inv.indexPath); err == nil {
		inv.loadedMtime = info.ModTime()
	}
	return nil
}

// applyPendingLocked re-applies unflushed access times onto a freshly
// loaded index, keeping the later of the two timestamps.
func (inv *Inventory) applyPendingLocked() {
	for hash, at := range inv.pendingAccess {
		e, ok := inv.idx.Entries[hash]
		if !ok {
			delete(inv.pendingAccess, hash)
			continue
		}
		if at.After(e.LastAccessedAt) {
			e.LastAccessedAt = at
			inv.idx.Entries[hash] = e
		}
	}
}

// save writes the whole index durably: marshal to a temp file in the same
// directory, fsync, then rename over the index path.
func (inv *Inventory) saveLocked() error {
	inv.applyPendingLocked()
	inv.idx.Generation++

	data, err := json.MarshalIndent(inv.idx, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal inventory")
	}

	tmp, err := os.CreateTemp(inv.root, indexFilename+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp index file")
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to write temp index file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to sync temp index file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to close temp index file")
	}
	if err := os.Rename(tmpPath, inv.indexPath); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to replace index file")
	}

	if info, err := os.Stat(inv.indexPath); err == nil {
		inv.loadedMtime = info.ModTime()
	}
	clear(inv.pendingAccess)
	return nil
}

// Refresh re-reads the index if it changed on disk since the last load,
// observing e.g. another process's GC run. The staleness check is a stat.
func (inv *Inventory) Refresh() error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	info, err := os.Stat(inv.indexPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to stat index file")
	}
	if !info.ModTime().After(inv.loadedMtime) {
		return nil
	}
	return inv.loadLocked()
}

// Lookup returns the entry for the hash if present and backed by an
// existing file. A dangling file path counts as a miss and the stale
// record is pruned from the live index.
func (inv *Inventory) Lookup(hash string) (*domain.CacheEntry, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	e, ok := inv.idx.Entries[hash]
	if !ok {
		return nil, nil
	}
	if e.FilePath != "" {
		if _, err := os.Stat(e.FilePath); err != nil {
			delete(inv.idx.Entries, hash)
			return nil, nil
		}
	}
	entry := e
	return &entry, nil
}

// RegisterEntry inserts or replaces by recipe hash and persists durably.
// A superseded entry's file is removed when the new entry took over a
// different path.
func (inv *Inventory) RegisterEntry(e domain.CacheEntry) error {
	if e.RecipeHash == "" {
		return zerr.New("cache entry has no recipe hash")
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if old, ok := inv.idx.Entries[e.RecipeHash]; ok {
		if old.FilePath != "" && old.FilePath != e.FilePath {
			_ = os.Remove(old.FilePath)
		}
	}
	inv.idx.Entries[e.RecipeHash] = e
	return inv.saveLocked()
}

// RecordAccess moves the entry's last-access time forward. Not durable on
// its own: the update rides along with the next save.
func (inv *Inventory) RecordAccess(hash string, at time.Time) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	e, ok := inv.idx.Entries[hash]
	if !ok {
		return nil
	}
	if !at.After(e.LastAccessedAt) {
		return nil
	}
	e.LastAccessedAt = at
	inv.idx.Entries[hash] = e
	if prev, ok := inv.pendingAccess[hash]; !ok || at.After(prev) {
		inv.pendingAccess[hash] = at
	}
	return nil
}

// RegisterReference records that a dataset depends on the entry.
func (inv *Inventory) RegisterReference(datasetID, hash string) error {
	if datasetID == "" {
		return nil
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	refs := inv.idx.Refs[datasetID]
	if slices.Contains(refs, hash) {
		return nil
	}
	inv.idx.Refs[datasetID] = append(refs, hash)
	return inv.saveLocked()
}

// RemoveEntry deletes the record, drops dataset references to it and
// best-effort deletes the backing file. Idempotent.
func (inv *Inventory) RemoveEntry(hash string) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	e, ok := inv.idx.Entries[hash]
	if !ok {
		return nil
	}
	delete(inv.idx.Entries, hash)
	delete(inv.pendingAccess, hash)
	for datasetID, refs := range inv.idx.Refs {
		filtered := slices.DeleteFunc(refs, func(h string) bool { return h == hash })
		if len(filtered) == 0 {
			delete(inv.idx.Refs, datasetID)
		} else {
			inv.idx.Refs[datasetID] = filtered
		}
	}

	var fileErr error
	if e.FilePath != "" {
		if err := os.Remove(e.FilePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			fileErr = zerr.With(zerr.With(zerr.Wrap(domain.ErrEvictionFailed, err.Error()), "hash", hash), "path", e.FilePath)
		}
	}
	if err := inv.saveLocked(); err != nil {
		return err
	}
	return fileErr
}

// Entries returns a snapshot of all current entries.
func (inv *Inventory) Entries() ([]domain.CacheEntry, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	entries := make([]domain.CacheEntry, 0, len(inv.idx.Entries))
	for _, e := range inv.idx.Entries {
		entries = append(entries, e)
	}
	return entries, nil
}

// References returns the hashes recorded for a dataset.
func (inv *Inventory) References(datasetID string) ([]string, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return slices.Clone(inv.idx.Refs[datasetID]), nil
}

// DataSets returns the IDs of all datasets holding references, sorted.
func (inv *Inventory) DataSets() ([]string, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	ids := make([]string, 0, len(inv.idx.Refs))
	for id := range inv.idx.Refs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// TotalSize returns the summed size of all entries.
func (inv *Inventory) TotalSize() (int64, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	var total int64
	for _, e := range inv.idx.Entries {
		total += e.SizeBytes
	}
	return total, nil
}

// LastGCRun returns the time of the last completed collection.
func (inv *Inventory) LastGCRun() (time.Time, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.idx.LastGCRun, nil
}

// RecordGCRun persists the time of a completed collection.
func (inv *Inventory) RecordGCRun(at time.Time) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.idx.LastGCRun = at
	return inv.saveLocked()
}

// ObjectPath returns the canonical payload location for a hash, sharded
// by the first two hex digits.
func (inv *Inventory) ObjectPath(hash string) string {
	shard := hash
	if len(shard) > 2 {
		shard = shard[:2]
	}
	return filepath.Join(inv.root, objectsDir, shard, hash)
}

// Reset discards the whole index and all payload files. The explicit
// recovery action for a corrupt index.
func (inv *Inventory) Reset() error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.idx = newIndex()
	clear(inv.pendingAccess)

	if err := os.RemoveAll(filepath.Join(inv.root, objectsDir)); err != nil {
		return zerr.Wrap(err, "failed to remove object files")
	}
	if err := os.MkdirAll(filepath.Join(inv.root, objectsDir), 0o750); err != nil {
		return zerr.Wrap(err, "failed to recreate object directory")
	}
	return inv.saveLocked()
}
