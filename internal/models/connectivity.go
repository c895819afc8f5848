package models

import "time"

// ConnectivityState is the process-wide, in-memory connectivity view.
// It is recomputed from store counts on network-state transitions and is
// never persisted.
type ConnectivityState struct {
	IsOnline bool `json:"is_online"`

	DraftCount int  `json:"draft_count"`
	HasDrafts  bool `json:"has_drafts"`

	OfflineItemCount int  `json:"offline_item_count"`
	HasOfflineItems  bool `json:"has_offline_items"`

	// LastChangedAt is when the online/offline state last flipped (UTC).
	LastChangedAt time.Time `json:"last_changed_at"`
}
