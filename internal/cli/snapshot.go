package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/draftkeep/draftkeep/internal/filex"
	"github.com/draftkeep/draftkeep/internal/services"
)

// Export creates a snapshot of the selected scope and writes the bundle to
// the configured snapshot directory. Optional arguments narrow the entity
// sets (default: all three).
func (a *App) Export(ctx context.Context, args []string) error {
	if !a.requireOrg() {
		return nil
	}

	sets := []services.EntitySet{services.SetDrafts, services.SetOffline, services.SetMetadata}
	if len(args) > 0 {
		sets = sets[:0]
		for _, arg := range args {
			sets = append(sets, services.EntitySet(arg))
		}
	}

	snap, err := a.agg.CreateSnapshot(ctx, a.orgID, a.appIDPtr(), sets)
	if err != nil {
		a.log.Error(ctx, "snapshot creation failed", "error", err)
		printlnFn("Export failed:", err.Error())
		return err
	}

	dir, err := filex.EnsureDir(a.config.SnapshotDir)
	if err != nil {
		a.log.Error(ctx, "snapshot directory unavailable", "error", err)
		return err
	}

	path := filepath.Join(dir, snap.SnapshotID+".json")
	if err := os.WriteFile(path, []byte(snap.Contents), 0o600); err != nil {
		a.log.Error(ctx, "snapshot write failed", "error", err)
		return err
	}

	printlnFn("Snapshot written to", path)
	return nil
}

// Import reads a snapshot bundle from the given file, validates it, and
// stores it locally.
func (a *App) Import(ctx context.Context, args []string) error {
	if !a.requireOrg() {
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: import <file>")
		return nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		printlnFn("Import failed:", err.Error())
		return err
	}

	if err := a.agg.ImportSnapshot(ctx, string(data)); err != nil {
		a.log.Error(ctx, "snapshot import failed", "error", err)
		printlnFn("Import failed:", err.Error())
		return err
	}

	printlnFn("Snapshot imported")
	return nil
}
