// Package common defines shared constants and sentinel errors used across
// the draftkeep layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrStorageUnavailable = errors.New("offline storage unavailable")

	// Repository-level errors. A missing row on Get/DeleteByID is soft and
	// reported as (nil, nil) / no-op; ErrNotFound is reserved for callers
	// that require the row to exist.
	ErrNotFound = errors.New("not found")

	// Snapshot errors.
	ErrInvalidSnapshot  = errors.New("invalid snapshot document")
	ErrSnapshotMissing  = errors.New("snapshot does not exist")
	ErrUnknownEntitySet = errors.New("unknown entity set")

	// Freshness errors.
	ErrUnknownScope = errors.New("unknown freshness scope")
)
