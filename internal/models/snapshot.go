package models

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is an exportable, self-contained bundle of local data, generated
// on demand for backup or transfer. Contents is the serialized
// self-describing document (entity sets + rows).
type Snapshot struct {
	SnapshotID string `json:"snapshot_id"`

	// OrgID scopes the snapshot; AppID is empty when the bundle spans all
	// applications of the organization.
	OrgID string `json:"org_id"`
	AppID string `json:"app_id"`

	// CreatedAt is when the bundle was generated (UTC).
	CreatedAt time.Time `json:"created_at"`

	// EstimatedSize is the byte length of Contents.
	EstimatedSize int64 `json:"estimated_size"`

	// Contents is the serialized bundle document.
	Contents string `json:"contents"`
}

// NewSnapshot wraps a serialized bundle in a Snapshot entity.
func NewSnapshot(orgID, appID, contents string, now time.Time) *Snapshot {
	return &Snapshot{
		SnapshotID:    uuid.NewString(),
		OrgID:         orgID,
		AppID:         appID,
		CreatedAt:     now.UTC(),
		EstimatedSize: int64(len(contents)),
		Contents:      contents,
	}
}

func (s Snapshot) EntityID() string    { return s.SnapshotID }
func (s Snapshot) EntityOrgID() string { return s.OrgID }
func (s Snapshot) EntityAppID() string { return s.AppID }
