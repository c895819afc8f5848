// Package offlinecontent binds the generic entity store to the
// offline_content collection of explicitly retained server-content copies.
package offlinecontent

import (
	"context"
	"database/sql"

	"github.com/draftkeep/draftkeep/internal/models"
	"github.com/draftkeep/draftkeep/internal/repositories/entitystore"
)

const table = "offline_content"

type SQLiteRepository struct {
	*entitystore.Store[models.OfflineContent]
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{Store: entitystore.New[models.OfflineContent](db, table)}
}

// LatestBySource returns the most recently saved copy of a server item.
func (r *SQLiteRepository) LatestBySource(ctx context.Context, orgID, appID, sourceItemID string) (*models.OfflineContent, error) {
	all, err := r.ListByOrgAndApp(ctx, orgID, appID)
	if err != nil {
		return nil, err
	}
	var latest *models.OfflineContent
	for i := range all {
		c := &all[i]
		if c.SourceItemID != sourceItemID {
			continue
		}
		if latest == nil || c.SavedAt.After(latest.SavedAt) {
			latest = c
		}
	}
	if latest == nil {
		return nil, nil
	}
	out := *latest
	return &out, nil
}
