package commands_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/larder/cmd/larder/commands"
	"go.trai.ch/larder/internal/adapters/checksum"
	"go.trai.ch/larder/internal/adapters/inventory"
	"go.trai.ch/larder/internal/adapters/logger"
	"go.trai.ch/larder/internal/adapters/metrics"
	"go.trai.ch/larder/internal/app"
	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/engine/gc"
)

func newCLI(t *testing.T) (*commands.CLI, *inventory.Inventory, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	inv, err := inventory.New(root)
	require.NoError(t, err)

	log := logger.New()
	log.SetOutput(io.Discard)

	settings := &domain.Settings{Root: root, GC: domain.DefaultGCConfig()}
	a := app.New(settings, inv, gc.New(inv, log, metrics.NewNoop()), checksum.NewValidator(), log)

	cli := commands.New(a)
	out := new(bytes.Buffer)
	cli.SetOutput(out)
	return cli, inv, out
}

func register(t *testing.T, inv *inventory.Inventory, hash, payload string) {
	t.Helper()
	path := inv.ObjectPath(hash)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))
	require.NoError(t, inv.RegisterEntry(domain.CacheEntry{
		RecipeHash:     hash,
		FilePath:       path,
		SizeBytes:      int64(len(payload)),
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
		Checksum:       domain.Checksum{State: domain.ChecksumNone},
	}))
}

func TestStatus(t *testing.T) {
	cli, inv, out := newCLI(t)
	register(t, inv, "aa00000000000001", "payload")

	cli.SetArgs([]string{"status"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Contains(t, out.String(), "entries:    1")
	assert.Contains(t, out.String(), "last gc:    never")
}

func TestGC_Force(t *testing.T) {
	cli, inv, out := newCLI(t)
	register(t, inv, "aa00000000000001", "payload")

	cli.SetArgs([]string{"gc", "--force"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Contains(t, out.String(), "gc done")
	last, err := inv.LastGCRun()
	require.NoError(t, err)
	assert.False(t, last.IsZero())
}

func TestGC_SkippedWithinInterval(t *testing.T) {
	cli, inv, out := newCLI(t)
	require.NoError(t, inv.RecordGCRun(time.Now()))

	cli.SetArgs([]string{"gc"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Contains(t, out.String(), "gc skipped")
}

func TestVerify_CleanStore(t *testing.T) {
	cli, inv, out := newCLI(t)
	register(t, inv, "aa00000000000001", "payload")

	cli.SetArgs([]string{"verify"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Contains(t, out.String(), "no corruption found")
}

func TestReset_RequiresForce(t *testing.T) {
	cli, inv, _ := newCLI(t)
	register(t, inv, "aa00000000000001", "payload")

	cli.SetArgs([]string{"reset"})
	assert.Error(t, cli.Execute(context.Background()))

	entries, err := inv.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	cli.SetArgs([]string{"reset", "--force"})
	require.NoError(t, cli.Execute(context.Background()))

	entries, err = inv.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestVersion(t *testing.T) {
	cli, _, out := newCLI(t)

	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Contains(t, out.String(), "larder version")
}

func TestRoot_Help(t *testing.T) {
	cli, _, _ := newCLI(t)

	cli.SetArgs([]string{"--help"})
	if err := cli.Execute(context.Background()); err != nil {
		t.Errorf("Expected no error for help, got: %v", err)
	}
}
