package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/draftkeep/draftkeep/internal/repositories/drafts"
	"github.com/draftkeep/draftkeep/internal/repositories/metacache"
	"github.com/draftkeep/draftkeep/internal/repositories/offlinecontent"
	"github.com/draftkeep/draftkeep/internal/repositories/snapshots"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type testStores struct {
	drafts  *drafts.SQLiteRepository
	offline *offlinecontent.SQLiteRepository
	meta    *metacache.SQLiteRepository
	snaps   *snapshots.SQLiteRepository
}

func setupStores(t *testing.T) testStores {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE drafts (
  id     TEXT PRIMARY KEY,
  org_id TEXT NOT NULL,
  data   BLOB NOT NULL
);
CREATE INDEX idx_drafts_org ON drafts(org_id);

CREATE TABLE offline_content (
  id     TEXT PRIMARY KEY,
  org_id TEXT NOT NULL,
  data   BLOB NOT NULL
);
CREATE INDEX idx_offline_content_org ON offline_content(org_id);

CREATE TABLE metadata_cache (
  id     TEXT PRIMARY KEY,
  org_id TEXT NOT NULL,
  data   BLOB NOT NULL
);
CREATE INDEX idx_metadata_cache_org ON metadata_cache(org_id);

CREATE TABLE snapshots (
  id     TEXT PRIMARY KEY,
  org_id TEXT NOT NULL,
  data   BLOB NOT NULL
);
CREATE INDEX idx_snapshots_org ON snapshots(org_id);
`)
	require.NoError(t, err)

	return testStores{
		drafts:  drafts.NewSQLiteRepository(db),
		offline: offlinecontent.NewSQLiteRepository(db),
		meta:    metacache.NewSQLiteRepository(db),
		snaps:   snapshots.NewSQLiteRepository(db),
	}
}

// draftsUnavailable and offlineUnavailable model a host that disabled local
// storage: every operation fails with common.ErrStorageUnavailable.
func draftsUnavailable() *drafts.SQLiteRepository { return drafts.NewSQLiteRepository(nil) }

func offlineUnavailable() *offlinecontent.SQLiteRepository {
	return offlinecontent.NewSQLiteRepository(nil)
}

// fixedClock returns a clock stuck at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }
