package metacache

import (
	"context"

	"github.com/draftkeep/draftkeep/internal/models"
)

// Repository describes CRUD operations for cached list/summary responses.
type Repository interface {
	Get(ctx context.Context, id string) (*models.MetadataCache, error)
	Put(ctx context.Context, m models.MetadataCache) error
	DeleteByID(ctx context.Context, id string) error

	ListByOrg(ctx context.Context, orgID string) ([]models.MetadataCache, error)
	ListByOrgAndApp(ctx context.Context, orgID, appID string) ([]models.MetadataCache, error)

	ClearByOrg(ctx context.Context, orgID string) error
	ClearByOrgAndApp(ctx context.Context, orgID, appID string) error

	CountAll(ctx context.Context) (int, error)
	CountByOrg(ctx context.Context, orgID string) (int, error)

	// GetByListType returns the single cache row for (org, app, listType),
	// or (nil, nil) when the list was never cached.
	GetByListType(ctx context.Context, orgID, appID, listType string) (*models.MetadataCache, error)

	// PutList overwrites the cache row for (org, app, listType) wholesale,
	// keeping at most one row per triple. No partial merge.
	PutList(ctx context.Context, m models.MetadataCache) error
}
