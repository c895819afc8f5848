package snapshots

import (
	"context"

	"github.com/draftkeep/draftkeep/internal/models"
)

// Repository describes CRUD operations for stored snapshot bundles.
type Repository interface {
	Get(ctx context.Context, id string) (*models.Snapshot, error)
	Put(ctx context.Context, s models.Snapshot) error
	DeleteByID(ctx context.Context, id string) error

	ListByOrg(ctx context.Context, orgID string) ([]models.Snapshot, error)
	ListByOrgAndApp(ctx context.Context, orgID, appID string) ([]models.Snapshot, error)

	ClearByOrg(ctx context.Context, orgID string) error
	ClearByOrgAndApp(ctx context.Context, orgID, appID string) error

	CountAll(ctx context.Context) (int, error)
	CountByOrg(ctx context.Context, orgID string) (int, error)
}
