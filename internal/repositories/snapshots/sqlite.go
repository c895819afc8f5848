// Package snapshots binds the generic entity store to the snapshots
// collection. No snapshot-specific queries exist; bundle assembly and
// import policy live in the aggregator service.
package snapshots

import (
	"database/sql"

	"github.com/draftkeep/draftkeep/internal/models"
	"github.com/draftkeep/draftkeep/internal/repositories/entitystore"
)

const table = "snapshots"

type SQLiteRepository struct {
	*entitystore.Store[models.Snapshot]
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{Store: entitystore.New[models.Snapshot](db, table)}
}
