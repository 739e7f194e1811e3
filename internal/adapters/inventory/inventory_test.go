package inventory_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.trai.ch/larder/internal/adapters/inventory"
	"go.trai.ch/larder/internal/core/domain"
)

func newEntry(t *testing.T, inv *inventory.Inventory, hash, content string) domain.CacheEntry {
	t.Helper()
	path := inv.ObjectPath(hash)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	return domain.CacheEntry{
		RecipeHash:     hash,
		FilePath:       path,
		SizeBytes:      int64(len(content)),
		CreatedAt:      now,
		LastAccessedAt: now,
	}
}

func TestRegisterAndLookup(t *testing.T) {
	inv, err := inventory.New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	entry := newEntry(t, inv, "aaaa000011112222", "payload")
	if err := inv.RegisterEntry(entry); err != nil {
		t.Fatalf("RegisterEntry failed: %v", err)
	}

	got, err := inv.Lookup(entry.RecipeHash)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if got == nil {
		t.Fatal("Lookup returned nil for registered entry")
	}
	if got.FilePath != entry.FilePath || got.SizeBytes != entry.SizeBytes {
		t.Errorf("entry did not round-trip: %+v", got)
	}
}

func TestLookup_AbsentIsMiss(t *testing.T) {
	inv, err := inventory.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	got, err := inv.Lookup("ffff000000000000")
	if err != nil {
		t.Fatalf("Lookup of absent hash errored: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for absent hash")
	}
}

func TestLookup_DanglingFileIsPruned(t *testing.T) {
	inv, err := inventory.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	entry := newEntry(t, inv, "bbbb000011112222", "payload")
	if err := inv.RegisterEntry(entry); err != nil {
		t.Fatal(err)
	}

	// Delete the backing file behind the inventory's back.
	if err := os.Remove(entry.FilePath); err != nil {
		t.Fatal(err)
	}

	got, err := inv.Lookup(entry.RecipeHash)
	if err != nil {
		t.Fatalf("Lookup errored on dangling entry: %v", err)
	}
	if got != nil {
		t.Fatal("dangling entry served as a hit")
	}

	// Pruned: the live index no longer counts it.
	total, err := inv.TotalSize()
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Errorf("expected 0 total size after prune, got %d", total)
	}
}

func TestRegisterEntry_ReplacesByHash(t *testing.T) {
	inv, err := inventory.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	first := newEntry(t, inv, "cccc000011112222", "v1")
	if err := inv.RegisterEntry(first); err != nil {
		t.Fatal(err)
	}

	second := first
	second.FilePath = first.FilePath + ".new"
	if err := os.WriteFile(second.FilePath, []byte("v2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := inv.RegisterEntry(second); err != nil {
		t.Fatal(err)
	}

	entries, err := inv.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single entry per hash, got %d", len(entries))
	}
	if _, err := os.Stat(first.FilePath); !errors.Is(err, os.ErrNotExist) {
		t.Error("superseded entry's file was not removed")
	}
}

func TestPersistenceAcrossInstances(t *testing.T) {
	root := t.TempDir()

	inv1, err := inventory.New(root)
	if err != nil {
		t.Fatal(err)
	}
	entry := newEntry(t, inv1, "dddd000011112222", "durable")
	if err := inv1.RegisterEntry(entry); err != nil {
		t.Fatal(err)
	}
	if err := inv1.RegisterReference("sales", entry.RecipeHash); err != nil {
		t.Fatal(err)
	}

	inv2, err := inventory.New(root)
	if err != nil {
		t.Fatalf("reopening inventory failed: %v", err)
	}
	got, err := inv2.Lookup(entry.RecipeHash)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("entry lost across instances")
	}
	refs, err := inv2.References("sales")
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 1 || refs[0] != entry.RecipeHash {
		t.Errorf("references lost across instances: %v", refs)
	}
}

func TestRefresh_ObservesExternalWrites(t *testing.T) {
	root := t.TempDir()

	reader, err := inventory.New(root)
	if err != nil {
		t.Fatal(err)
	}
	writer, err := inventory.New(root)
	if err != nil {
		t.Fatal(err)
	}

	entry := newEntry(t, writer, "eeee000011112222", "external")
	if err := writer.RegisterEntry(entry); err != nil {
		t.Fatal(err)
	}

	// The index mtime check needs the file to be newer than the reader's
	// initial (absent) load, which it is.
	if err := reader.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	got, err := reader.Lookup(entry.RecipeHash)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("refresh did not observe the external write")
	}
}

func TestRecordAccess_NeverGoesBackward(t *testing.T) {
	inv, err := inventory.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	entry := newEntry(t, inv, "ab00000011112222", "x")
	entry.LastAccessedAt = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	if err := inv.RegisterEntry(entry); err != nil {
		t.Fatal(err)
	}

	earlier := entry.LastAccessedAt.Add(-time.Hour)
	if err := inv.RecordAccess(entry.RecipeHash, earlier); err != nil {
		t.Fatal(err)
	}
	got, err := inv.Lookup(entry.RecipeHash)
	if err != nil {
		t.Fatal(err)
	}
	if !got.LastAccessedAt.Equal(entry.LastAccessedAt) {
		t.Error("access time moved backward")
	}

	later := entry.LastAccessedAt.Add(time.Hour)
	if err := inv.RecordAccess(entry.RecipeHash, later); err != nil {
		t.Fatal(err)
	}
	got, err = inv.Lookup(entry.RecipeHash)
	if err != nil {
		t.Fatal(err)
	}
	if !got.LastAccessedAt.Equal(later) {
		t.Error("access time did not advance")
	}
}

func TestRemoveEntry_Idempotent(t *testing.T) {
	inv, err := inventory.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	entry := newEntry(t, inv, "ff00000011112222", "gone")
	if err := inv.RegisterEntry(entry); err != nil {
		t.Fatal(err)
	}

	if err := inv.RemoveEntry(entry.RecipeHash); err != nil {
		t.Fatalf("RemoveEntry failed: %v", err)
	}
	if _, err := os.Stat(entry.FilePath); !errors.Is(err, os.ErrNotExist) {
		t.Error("backing file not deleted")
	}
	// Second removal of the same hash is not an error.
	if err := inv.RemoveEntry(entry.RecipeHash); err != nil {
		t.Fatalf("repeated RemoveEntry errored: %v", err)
	}
}

func TestRemoveEntry_UndeletableFile(t *testing.T) {
	inv, err := inventory.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// A directory with a child cannot be removed with os.Remove, which
	// makes the file deletion fail deterministically.
	path := inv.ObjectPath("ee00000011112222")
	if err := os.MkdirAll(filepath.Join(path, "child"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := inv.RegisterEntry(domain.CacheEntry{
		RecipeHash:     "ee00000011112222",
		FilePath:       path,
		SizeBytes:      4,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}

	err = inv.RemoveEntry("ee00000011112222")
	if !errors.Is(err, domain.ErrEvictionFailed) {
		t.Fatalf("expected ErrEvictionFailed, got %v", err)
	}

	// The index entry is gone regardless so a sweep can continue.
	entries, err := inv.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected entry removed from index, got %d entries", len(entries))
	}
}

func TestCorruptIndex_FatalThenRecoverable(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "inventory.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := inventory.New(root)
	if !errors.Is(err, domain.ErrCorruptIndex) {
		t.Fatalf("expected ErrCorruptIndex, got %v", err)
	}

	// Explicit recovery resets to an empty inventory.
	inv, err := inventory.Recover(root)
	if err != nil {
		t.Fatalf("Recover failed: %v", err)
	}
	entries, err := inv.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty inventory after recovery, got %d entries", len(entries))
	}
}

func TestLastGCRun_RoundTrips(t *testing.T) {
	root := t.TempDir()
	inv, err := inventory.New(root)
	if err != nil {
		t.Fatal(err)
	}

	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if err := inv.RecordGCRun(at); err != nil {
		t.Fatal(err)
	}

	reopened, err := inventory.New(root)
	if err != nil {
		t.Fatal(err)
	}
	got, err := reopened.LastGCRun()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(at) {
		t.Errorf("expected last GC run %v, got %v", at, got)
	}
}
