package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftStatus is the lifecycle state of a local draft.
type DraftStatus string

const (
	DraftActive     DraftStatus = "active"
	DraftConflicted DraftStatus = "conflicted"
	DraftResolved   DraftStatus = "resolved"
	DraftSuperseded DraftStatus = "superseded"
)

// IsValid reports whether s is a known draft status.
func (s DraftStatus) IsValid() bool {
	switch s {
	case DraftActive, DraftConflicted, DraftResolved, DraftSuperseded:
		return true
	}
	return false
}

// Draft is an in-progress, unsaved local edit. A draft with a nil
// SourceItemID belongs to content that does not exist on the server yet;
// such drafts can never conflict.
type Draft struct {
	// LocalDraftID is the unique local identifier of the draft.
	LocalDraftID string `json:"local_draft_id"`

	// OrgID and AppID scope the draft; both drive bulk-clear operations.
	OrgID string `json:"org_id"`
	AppID string `json:"app_id"`

	// SourceItemID references the server item the draft was derived from,
	// or nil for not-yet-created content.
	SourceItemID *string `json:"source_item_id"`

	// Payload is the draft body.
	Payload Payload `json:"payload"`

	// BaseRevision and BaseHash fingerprint the server state the draft was
	// created against. Captured once at creation; only explicit resolution
	// may update them. Used solely for save-time conflict comparison.
	BaseRevision *string `json:"base_revision"`
	BaseHash     *string `json:"base_hash"`

	// CreatedAt is when the draft was first created (UTC).
	CreatedAt time.Time `json:"created_at"`

	// LastEditedAt is updated on every payload edit (UTC).
	LastEditedAt time.Time `json:"last_edited_at"`

	// Status is the lifecycle state. Only the conflict service moves a
	// draft to DraftConflicted.
	Status DraftStatus `json:"status"`
}

// NewDraft creates an active draft for the given scope. sourceItemID,
// baseRevision and baseHash may be nil (draft for new content, or server
// fingerprints unknown at creation time).
func NewDraft(orgID, appID string, sourceItemID *string, payload Payload, baseRevision, baseHash *string, now time.Time) *Draft {
	now = now.UTC()
	return &Draft{
		LocalDraftID: uuid.NewString(),
		OrgID:        orgID,
		AppID:        appID,
		SourceItemID: sourceItemID,
		Payload:      payload,
		BaseRevision: baseRevision,
		BaseHash:     baseHash,
		CreatedAt:    now,
		LastEditedAt: now,
		Status:       DraftActive,
	}
}

// Edit replaces the payload and refreshes LastEditedAt.
func (d *Draft) Edit(payload Payload, now time.Time) {
	d.Payload = payload
	d.LastEditedAt = now.UTC()
}

// Entity accessors used by the generic store.

func (d Draft) EntityID() string    { return d.LocalDraftID }
func (d Draft) EntityOrgID() string { return d.OrgID }
func (d Draft) EntityAppID() string { return d.AppID }
