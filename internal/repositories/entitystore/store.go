// Package entitystore implements the generic indexed entity store every
// local collection is built on: transactional CRUD plus an org-scoped index
// scan over one SQLite table. Entity-specific lifecycle rules live in the
// services, not here.
package entitystore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/draftkeep/draftkeep/internal/common"
	"github.com/draftkeep/draftkeep/internal/dbx"
)

// Entity is the minimal shape a stored row must expose. Every persisted
// entity carries an organization id; the org column is the single secondary
// index, so app filtering happens in memory after the index scan.
type Entity interface {
	EntityID() string
	EntityOrgID() string
	EntityAppID() string
}

// Store is a generic store over one logical collection. Rows are kept as
// (id, org_id, data) where data is the JSON encoding of the entity. Every
// operation opens its own transaction and completes it before returning.
type Store[T Entity] struct {
	db    *sql.DB
	table string
}

// New binds a store to a table. A nil db models an unavailable engine
// (not initialized, or storage disabled by the host): every operation then
// fails with common.ErrStorageUnavailable.
func New[T Entity](db *sql.DB, table string) *Store[T] {
	return &Store[T]{db: db, table: table}
}

func (s *Store[T]) available() error {
	if s.db == nil {
		return common.ErrStorageUnavailable
	}
	return nil
}

// Get returns the entity with the given id, or (nil, nil) when no such row
// exists. A missing row is not an error.
func (s *Store[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := s.available(); err != nil {
		return nil, err
	}

	var entity *T
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := fmt.Sprintf(`SELECT data FROM %s WHERE id = ?`, s.table)
		var data []byte
		if err := tx.QueryRowContext(ctx, query, id).Scan(&data); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to get %s row: %w", s.table, err)
		}
		e := new(T)
		if err := json.Unmarshal(data, e); err != nil {
			return fmt.Errorf("failed to decode %s row: %w", s.table, err)
		}
		entity = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// Put upserts the entity by id.
func (s *Store[T]) Put(ctx context.Context, e T) error {
	if err := s.available(); err != nil {
		return err
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode %s row: %w", s.table, err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := fmt.Sprintf(`INSERT INTO %s (id, org_id, data)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET org_id = excluded.org_id,
				data = excluded.data`, s.table)
		if _, err := tx.ExecContext(ctx, query, e.EntityID(), e.EntityOrgID(), data); err != nil {
			return fmt.Errorf("failed to upsert %s row: %w", s.table, err)
		}
		return nil
	})
}

// DeleteByID removes the entity with the given id. Deleting a missing row
// is a no-op.
func (s *Store[T]) DeleteByID(ctx context.Context, id string) error {
	if err := s.available(); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.table)
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete %s row: %w", s.table, err)
		}
		return nil
	})
}

// ListByOrg returns every row for the organization, via the org_id index.
func (s *Store[T]) ListByOrg(ctx context.Context, orgID string) ([]T, error) {
	if err := s.available(); err != nil {
		return nil, err
	}

	var result []T
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		result, err = s.listByOrg(ctx, tx, orgID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store[T]) listByOrg(ctx context.Context, tx dbx.DBTX, orgID string) ([]T, error) {
	query := fmt.Sprintf(`SELECT data FROM %s WHERE org_id = ?`, s.table)
	rows, err := tx.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s rows: %w", s.table, err)
	}
	defer rows.Close()

	var result []T
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var e T
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("failed to decode %s row: %w", s.table, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByOrgAndApp scans the org_id index and filters app_id in memory
// (the secondary index is single-key).
func (s *Store[T]) ListByOrgAndApp(ctx context.Context, orgID, appID string) ([]T, error) {
	all, err := s.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	var result []T
	for _, e := range all {
		if e.EntityAppID() == appID {
			result = append(result, e)
		}
	}
	return result, nil
}

// ClearByOrg removes every row of the organization and nothing else.
func (s *Store[T]) ClearByOrg(ctx context.Context, orgID string) error {
	if err := s.available(); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := fmt.Sprintf(`DELETE FROM %s WHERE org_id = ?`, s.table)
		if _, err := tx.ExecContext(ctx, query, orgID); err != nil {
			return fmt.Errorf("failed to clear %s rows: %w", s.table, err)
		}
		return nil
	})
}

// ClearByOrgAndApp removes the organization's rows belonging to one
// application. The app filter runs in memory, inside the same transaction
// as the deletes.
func (s *Store[T]) ClearByOrgAndApp(ctx context.Context, orgID, appID string) error {
	if err := s.available(); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		all, err := s.listByOrg(ctx, tx, orgID)
		if err != nil {
			return err
		}
		query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.table)
		for _, e := range all {
			if e.EntityAppID() != appID {
				continue
			}
			if _, err := tx.ExecContext(ctx, query, e.EntityID()); err != nil {
				return fmt.Errorf("failed to clear %s row: %w", s.table, err)
			}
		}
		return nil
	})
}

// CountAll returns the total number of rows in the collection.
func (s *Store[T]) CountAll(ctx context.Context) (int, error) {
	if err := s.available(); err != nil {
		return 0, err
	}

	var n int
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.table)
		if err := tx.QueryRowContext(ctx, query).Scan(&n); err != nil {
			return fmt.Errorf("failed to count %s rows: %w", s.table, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// CountByOrg returns the number of rows belonging to the organization.
func (s *Store[T]) CountByOrg(ctx context.Context, orgID string) (int, error) {
	if err := s.available(); err != nil {
		return 0, err
	}

	var n int
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE org_id = ?`, s.table)
		if err := tx.QueryRowContext(ctx, query, orgID).Scan(&n); err != nil {
			return fmt.Errorf("failed to count %s rows: %w", s.table, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
