package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MetadataCache is a cached list/summary response for one
// (org, app, listType) triple. It is overwritten wholesale on refresh;
// no partial merge is ever applied.
type MetadataCache struct {
	CacheID string `json:"cache_id"`

	OrgID string `json:"org_id"`
	AppID string `json:"app_id"`

	// ListType names the summary this row caches ("articles", "media", ...).
	ListType string `json:"list_type"`

	// Items is the opaque cached list body.
	Items json.RawMessage `json:"items"`

	// UpdatedAt is when the cache row was last refreshed (UTC).
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMetadataCache creates a cache row for a list response.
func NewMetadataCache(orgID, appID, listType string, items json.RawMessage, now time.Time) *MetadataCache {
	return &MetadataCache{
		CacheID:   uuid.NewString(),
		OrgID:     orgID,
		AppID:     appID,
		ListType:  listType,
		Items:     items,
		UpdatedAt: now.UTC(),
	}
}

func (m MetadataCache) EntityID() string    { return m.CacheID }
func (m MetadataCache) EntityOrgID() string { return m.OrgID }
func (m MetadataCache) EntityAppID() string { return m.AppID }
