package drafts

import (
	"context"

	"github.com/draftkeep/draftkeep/internal/models"
)

// Repository describes CRUD and query operations for local drafts.
// Implementations are backed by the local SQLite database; lifecycle rules
// (conflict flagging, discard policy) live in the services layer.
type Repository interface {
	// Get returns a draft by id, or (nil, nil) when it does not exist.
	Get(ctx context.Context, id string) (*models.Draft, error)

	// Put inserts a new draft or overwrites an existing one by id.
	Put(ctx context.Context, d models.Draft) error

	// DeleteByID discards a draft. Deleting a missing draft is a no-op.
	DeleteByID(ctx context.Context, id string) error

	ListByOrg(ctx context.Context, orgID string) ([]models.Draft, error)
	ListByOrgAndApp(ctx context.Context, orgID, appID string) ([]models.Draft, error)

	ClearByOrg(ctx context.Context, orgID string) error
	ClearByOrgAndApp(ctx context.Context, orgID, appID string) error

	// CountAll feeds the connectivity awareness service.
	CountAll(ctx context.Context) (int, error)
	CountByOrg(ctx context.Context, orgID string) (int, error)

	// FindBySource returns every draft derived from the given server item.
	FindBySource(ctx context.Context, orgID, appID, sourceItemID string) ([]models.Draft, error)

	// FindActiveBySource returns the most recently edited active draft for
	// the item, or (nil, nil) when none exists. Several active drafts may
	// coexist for one item; the newest edit wins for display.
	FindActiveBySource(ctx context.Context, orgID, appID, sourceItemID string) (*models.Draft, error)
}
