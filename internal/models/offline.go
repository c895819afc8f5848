package models

import (
	"time"

	"github.com/google/uuid"
)

// OfflineContent is an explicitly retained read copy of server content,
// created by a user "keep available offline" action and independent of any
// draft. Multiple copies may exist for the same source item; the most
// recent SavedAt wins.
type OfflineContent struct {
	// OfflineItemID is the unique local identifier of the copy.
	OfflineItemID string `json:"offline_item_id"`

	OrgID string `json:"org_id"`
	AppID string `json:"app_id"`

	// SourceItemID references the server item this copy was taken from.
	SourceItemID string `json:"source_item_id"`

	// Payload is the retained content body.
	Payload Payload `json:"payload"`

	// SavedAt is when the copy was taken (UTC). Authoritative ordering key.
	SavedAt time.Time `json:"saved_at"`

	// PayloadHash is the hex SHA-256 of the payload body, or nil when the
	// caller did not fingerprint it.
	PayloadHash *string `json:"payload_hash"`
}

// NewOfflineContent creates an offline copy of a server item, fingerprinting
// the payload body.
func NewOfflineContent(orgID, appID, sourceItemID string, payload Payload, now time.Time) *OfflineContent {
	hash := HashPayload(payload.Data)
	return &OfflineContent{
		OfflineItemID: uuid.NewString(),
		OrgID:         orgID,
		AppID:         appID,
		SourceItemID:  sourceItemID,
		Payload:       payload,
		SavedAt:       now.UTC(),
		PayloadHash:   &hash,
	}
}

func (c OfflineContent) EntityID() string    { return c.OfflineItemID }
func (c OfflineContent) EntityOrgID() string { return c.OrgID }
func (c OfflineContent) EntityAppID() string { return c.AppID }
