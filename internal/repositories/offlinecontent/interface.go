package offlinecontent

import (
	"context"

	"github.com/draftkeep/draftkeep/internal/models"
)

// Repository describes CRUD and query operations for offline-saved copies.
type Repository interface {
	Get(ctx context.Context, id string) (*models.OfflineContent, error)
	Put(ctx context.Context, c models.OfflineContent) error
	DeleteByID(ctx context.Context, id string) error

	ListByOrg(ctx context.Context, orgID string) ([]models.OfflineContent, error)
	ListByOrgAndApp(ctx context.Context, orgID, appID string) ([]models.OfflineContent, error)

	ClearByOrg(ctx context.Context, orgID string) error
	ClearByOrgAndApp(ctx context.Context, orgID, appID string) error

	// CountAll feeds the connectivity awareness service.
	CountAll(ctx context.Context) (int, error)
	CountByOrg(ctx context.Context, orgID string) (int, error)

	// LatestBySource returns the copy with the newest SavedAt for a server
	// item, or (nil, nil) when none is retained. Multiple copies per item
	// are allowed; the most recent one is authoritative.
	LatestBySource(ctx context.Context, orgID, appID, sourceItemID string) (*models.OfflineContent, error)
}
