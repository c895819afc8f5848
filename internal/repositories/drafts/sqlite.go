// Package drafts binds the generic entity store to the drafts collection
// and adds the source-item queries read resolution and conflict handling
// need.
package drafts

import (
	"context"
	"database/sql"

	"github.com/draftkeep/draftkeep/internal/models"
	"github.com/draftkeep/draftkeep/internal/repositories/entitystore"
)

const table = "drafts"

// SQLiteRepository implements Repository over the shared local database.
type SQLiteRepository struct {
	*entitystore.Store[models.Draft]
}

// NewSQLiteRepository returns a repository bound to the drafts table.
// db may be nil when the host disabled local storage; operations then fail
// with common.ErrStorageUnavailable.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{Store: entitystore.New[models.Draft](db, table)}
}

// FindBySource returns every draft derived from the given server item,
// regardless of status.
func (r *SQLiteRepository) FindBySource(ctx context.Context, orgID, appID, sourceItemID string) ([]models.Draft, error) {
	all, err := r.ListByOrgAndApp(ctx, orgID, appID)
	if err != nil {
		return nil, err
	}
	var result []models.Draft
	for _, d := range all {
		if d.SourceItemID != nil && *d.SourceItemID == sourceItemID {
			result = append(result, d)
		}
	}
	return result, nil
}

// FindActiveBySource returns the active draft with the newest LastEditedAt
// for the item, or (nil, nil) when the item has no active draft.
func (r *SQLiteRepository) FindActiveBySource(ctx context.Context, orgID, appID, sourceItemID string) (*models.Draft, error) {
	all, err := r.FindBySource(ctx, orgID, appID, sourceItemID)
	if err != nil {
		return nil, err
	}
	var newest *models.Draft
	for i := range all {
		d := &all[i]
		if d.Status != models.DraftActive {
			continue
		}
		if newest == nil || d.LastEditedAt.After(newest.LastEditedAt) {
			newest = d
		}
	}
	if newest == nil {
		return nil, nil
	}
	out := *newest
	return &out, nil
}
