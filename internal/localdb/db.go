// Package localdb opens the per-device database, applies the versioned
// schema, and bundles the four entity stores the services are built on.
package localdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/draftkeep/draftkeep/internal/localdb/migrations"
	"github.com/draftkeep/draftkeep/internal/repositories/drafts"
	"github.com/draftkeep/draftkeep/internal/repositories/metacache"
	"github.com/draftkeep/draftkeep/internal/repositories/offlinecontent"
	"github.com/draftkeep/draftkeep/internal/repositories/snapshots"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Stores bundles the per-entity-type repositories over one local database.
type Stores struct {
	Drafts   drafts.Repository
	Offline  offlinecontent.Repository
	Metadata metacache.Repository
	Snapshot snapshots.Repository

	db *sql.DB
}

// Close releases the underlying database handle.
func (s *Stores) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local database at dsn, runs
// migrations, and returns the store bundle.
func InitDatabase(ctx context.Context, dsn string) (*Stores, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate local database: %w", err)
	}

	return &Stores{
		Drafts:   drafts.NewSQLiteRepository(db),
		Offline:  offlinecontent.NewSQLiteRepository(db),
		Metadata: metacache.NewSQLiteRepository(db),
		Snapshot: snapshots.NewSQLiteRepository(db),
		db:       db,
	}, nil
}

// Disabled returns a store bundle whose every operation fails with
// common.ErrStorageUnavailable. Used when the host blocks local storage.
func Disabled() *Stores {
	return &Stores{
		Drafts:   drafts.NewSQLiteRepository(nil),
		Offline:  offlinecontent.NewSQLiteRepository(nil),
		Metadata: metacache.NewSQLiteRepository(nil),
		Snapshot: snapshots.NewSQLiteRepository(nil),
	}
}
