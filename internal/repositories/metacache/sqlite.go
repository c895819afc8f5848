// Package metacache binds the generic entity store to the metadata_cache
// collection of cached list/summary responses.
package metacache

import (
	"context"
	"database/sql"

	"github.com/draftkeep/draftkeep/internal/models"
	"github.com/draftkeep/draftkeep/internal/repositories/entitystore"
)

const table = "metadata_cache"

type SQLiteRepository struct {
	*entitystore.Store[models.MetadataCache]
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{Store: entitystore.New[models.MetadataCache](db, table)}
}

// GetByListType returns the cache row for (org, app, listType), if any.
func (r *SQLiteRepository) GetByListType(ctx context.Context, orgID, appID, listType string) (*models.MetadataCache, error) {
	all, err := r.ListByOrgAndApp(ctx, orgID, appID)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ListType == listType {
			out := all[i]
			return &out, nil
		}
	}
	return nil, nil
}

// PutList replaces the row for (org, app, listType) wholesale. An existing
// row for the triple is removed first so the collection never holds more
// than one row per triple.
func (r *SQLiteRepository) PutList(ctx context.Context, m models.MetadataCache) error {
	existing, err := r.GetByListType(ctx, m.OrgID, m.AppID, m.ListType)
	if err != nil {
		return err
	}
	if existing != nil && existing.CacheID != m.CacheID {
		if err := r.DeleteByID(ctx, existing.CacheID); err != nil {
			return err
		}
	}
	return r.Put(ctx, m)
}
