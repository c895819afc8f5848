package localdb

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/draftkeep/draftkeep/internal/common"
	"github.com/draftkeep/draftkeep/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase_CreatesAllCollections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "offline.db")

	stores, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer stores.Close()

	for _, table := range []string{"drafts", "offline_content", "metadata_cache", "snapshots", "goose_db_version"} {
		assert.True(t, tableExists(t, stores.db, table), "expected table %s after migrations", table)
	}
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "offline.db")

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db), "second run should be idempotent")
}

func TestInitDatabase_StoresAreUsable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores, err := InitDatabase(ctx, filepath.Join(t.TempDir(), "offline.db"))
	require.NoError(t, err)
	defer stores.Close()

	d := models.NewDraft("org1", "app1", nil,
		models.Payload{Kind: models.KindArticle, Data: []byte(`{}`)}, nil, nil, time.Now())
	require.NoError(t, stores.Drafts.Put(ctx, *d))

	got, err := stores.Drafts.Get(ctx, d.LocalDraftID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.DraftActive, got.Status)
}

func TestDisabled_EveryStoreIsUnavailable(t *testing.T) {
	t.Parallel()

	stores := Disabled()
	ctx := context.Background()

	_, err := stores.Drafts.CountAll(ctx)
	assert.True(t, errors.Is(err, common.ErrStorageUnavailable))

	_, err = stores.Offline.CountAll(ctx)
	assert.True(t, errors.Is(err, common.ErrStorageUnavailable))

	_, err = stores.Metadata.CountAll(ctx)
	assert.True(t, errors.Is(err, common.ErrStorageUnavailable))

	_, err = stores.Snapshot.CountAll(ctx)
	assert.True(t, errors.Is(err, common.ErrStorageUnavailable))

	assert.NoError(t, stores.Close())
}
