package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/draftkeep/draftkeep/internal/common"
	"github.com/draftkeep/draftkeep/internal/logging"
	"github.com/draftkeep/draftkeep/internal/models"
	"github.com/draftkeep/draftkeep/internal/repositories/drafts"
	"github.com/draftkeep/draftkeep/internal/repositories/metacache"
	"github.com/draftkeep/draftkeep/internal/repositories/offlinecontent"
	"github.com/draftkeep/draftkeep/internal/repositories/snapshots"
	"github.com/google/uuid"
)

// SummaryCounts breaks the offline footprint down by collection.
type SummaryCounts struct {
	Drafts            int `json:"drafts"`
	OfflineSavedItems int `json:"offline_saved_items"`
	MetadataEntries   int `json:"metadata_entries"`
	Snapshots         int `json:"snapshots"`
}

// OfflineSummary is the cross-store offline footprint of one organization
// (optionally narrowed to one application).
type OfflineSummary struct {
	// OfflineEnabled is false when the local engine is unavailable; counts
	// and sizes are then zero.
	OfflineEnabled     bool          `json:"offline_enabled"`
	TotalEstimatedSize int64         `json:"total_estimated_size"`
	Counts             SummaryCounts `json:"counts"`
	LastUpdatedAt      *time.Time    `json:"last_updated_at"`
}

// ItemInfo is the per-server-item offline view: how many drafts point at
// the item, whether an offline copy is retained, and the worst draft
// conflict status.
type ItemInfo struct {
	ItemID       string `json:"item_id"`
	DraftCount   int    `json:"draft_count"`
	OfflineSaved bool   `json:"offline_saved"`

	// ConflictStatus is "conflicted" when any draft for the item is
	// flagged, otherwise "none".
	ConflictStatus string `json:"conflict_status"`
}

const (
	conflictStatusNone       = "none"
	conflictStatusConflicted = "conflicted"
)

// Aggregator composes the four stores into cross-cutting read-only reports
// and the explicit destructive operations. It never triggers anything
// automatically; every destructive call originates from an upstream user
// confirmation.
type Aggregator struct {
	drafts  drafts.Repository
	offline offlinecontent.Repository
	meta    metacache.Repository
	snaps   snapshots.Repository
	now     func() time.Time
	log     logging.Logger
}

// NewAggregator wires the aggregator over the store bundle. clock and log
// may be nil for defaults.
func NewAggregator(draftRepo drafts.Repository, offlineRepo offlinecontent.Repository, metaRepo metacache.Repository, snapRepo snapshots.Repository, clock func() time.Time, log logging.Logger) *Aggregator {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Aggregator{
		drafts:  draftRepo,
		offline: offlineRepo,
		meta:    metaRepo,
		snaps:   snapRepo,
		now:     clock,
		log:     log,
	}
}

// GetOfflineSummary reports the offline footprint for an organization,
// narrowed to one application when appID is non-nil. An unavailable engine
// yields OfflineEnabled=false rather than an error.
func (a *Aggregator) GetOfflineSummary(ctx context.Context, orgID string, appID *string) (*OfflineSummary, error) {
	draftRows, err := a.listDrafts(ctx, orgID, appID)
	if err != nil {
		if errors.Is(err, common.ErrStorageUnavailable) {
			return &OfflineSummary{OfflineEnabled: false}, nil
		}
		return nil, err
	}

	offlineRows, err := a.listOffline(ctx, orgID, appID)
	if err != nil {
		return nil, err
	}
	metaRows, err := a.listMeta(ctx, orgID, appID)
	if err != nil {
		return nil, err
	}
	snapRows, err := a.listSnapshots(ctx, orgID, appID)
	if err != nil {
		return nil, err
	}

	s := &OfflineSummary{
		OfflineEnabled: true,
		Counts: SummaryCounts{
			Drafts:            len(draftRows),
			OfflineSavedItems: len(offlineRows),
			MetadataEntries:   len(metaRows),
			Snapshots:         len(snapRows),
		},
	}

	var last time.Time
	for _, d := range draftRows {
		s.TotalEstimatedSize += int64(d.Payload.Size())
		if d.LastEditedAt.After(last) {
			last = d.LastEditedAt
		}
	}
	for _, c := range offlineRows {
		s.TotalEstimatedSize += int64(c.Payload.Size())
		if c.SavedAt.After(last) {
			last = c.SavedAt
		}
	}
	for _, m := range metaRows {
		s.TotalEstimatedSize += int64(len(m.Items))
		if m.UpdatedAt.After(last) {
			last = m.UpdatedAt
		}
	}
	for _, sn := range snapRows {
		s.TotalEstimatedSize += sn.EstimatedSize
		if sn.CreatedAt.After(last) {
			last = sn.CreatedAt
		}
	}
	if !last.IsZero() {
		s.LastUpdatedAt = &last
	}
	return s, nil
}

// GetPerItemInfo lists, per server item, the local draft and offline-copy
// situation within (org, app). Drafts for not-yet-created content have no
// item id and are not listed.
func (a *Aggregator) GetPerItemInfo(ctx context.Context, orgID, appID string) ([]ItemInfo, error) {
	draftRows, err := a.drafts.ListByOrgAndApp(ctx, orgID, appID)
	if err != nil {
		return nil, err
	}
	offlineRows, err := a.offline.ListByOrgAndApp(ctx, orgID, appID)
	if err != nil {
		return nil, err
	}

	byItem := make(map[string]*ItemInfo)
	item := func(id string) *ItemInfo {
		info, ok := byItem[id]
		if !ok {
			info = &ItemInfo{ItemID: id, ConflictStatus: conflictStatusNone}
			byItem[id] = info
		}
		return info
	}

	for _, d := range draftRows {
		if d.SourceItemID == nil {
			continue
		}
		info := item(*d.SourceItemID)
		info.DraftCount++
		if d.Status == models.DraftConflicted {
			info.ConflictStatus = conflictStatusConflicted
		}
	}
	for _, c := range offlineRows {
		item(c.SourceItemID).OfflineSaved = true
	}

	result := make([]ItemInfo, 0, len(byItem))
	for _, info := range byItem {
		result = append(result, *info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ItemID < result[j].ItemID })
	return result, nil
}

// CreateSnapshot bundles the named entity sets for (org, optional app) into
// a self-describing document, stores it as a Snapshot entity, and returns
// it.
func (a *Aggregator) CreateSnapshot(ctx context.Context, orgID string, appID *string, sets []EntitySet) (*models.Snapshot, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: no entity sets requested", common.ErrUnknownEntitySet)
	}

	doc := snapshotDoc{
		Version:    snapshotDocVersion,
		SnapshotID: uuid.NewString(),
		OrgID:      orgID,
		CreatedAt:  a.now().UTC(),
	}
	if appID != nil {
		doc.AppID = *appID
	}

	for _, set := range sets {
		if !set.IsValid() {
			return nil, fmt.Errorf("%w: %q", common.ErrUnknownEntitySet, set)
		}
		rows, err := a.bundleRows(ctx, set, orgID, appID)
		if err != nil {
			return nil, err
		}
		doc.Sets = append(doc.Sets, snapshotSet{Entity: set, Rows: rows})
	}

	contents, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	snap := &models.Snapshot{
		SnapshotID:    doc.SnapshotID,
		OrgID:         orgID,
		AppID:         doc.AppID,
		CreatedAt:     doc.CreatedAt,
		EstimatedSize: int64(len(contents)),
		Contents:      string(contents),
	}
	if err := a.snaps.Put(ctx, *snap); err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}

	a.log.Info(ctx, "snapshot created", "snapshot_id", snap.SnapshotID, "org_id", orgID, "size", snap.EstimatedSize)
	return snap, nil
}

func (a *Aggregator) bundleRows(ctx context.Context, set EntitySet, orgID string, appID *string) ([]json.RawMessage, error) {
	marshal := func(n int, get func(i int) any) ([]json.RawMessage, error) {
		rows := make([]json.RawMessage, 0, n)
		for i := 0; i < n; i++ {
			b, err := json.Marshal(get(i))
			if err != nil {
				return nil, fmt.Errorf("failed to serialize %s row: %w", set, err)
			}
			rows = append(rows, b)
		}
		return rows, nil
	}

	switch set {
	case SetDrafts:
		list, err := a.listDrafts(ctx, orgID, appID)
		if err != nil {
			return nil, err
		}
		return marshal(len(list), func(i int) any { return list[i] })
	case SetOffline:
		list, err := a.listOffline(ctx, orgID, appID)
		if err != nil {
			return nil, err
		}
		return marshal(len(list), func(i int) any { return list[i] })
	case SetMetadata:
		list, err := a.listMeta(ctx, orgID, appID)
		if err != nil {
			return nil, err
		}
		return marshal(len(list), func(i int) any { return list[i] })
	}
	return nil, fmt.Errorf("%w: %q", common.ErrUnknownEntitySet, set)
}

// ExportSnapshot returns the serialized bundle of a stored snapshot.
func (a *Aggregator) ExportSnapshot(ctx context.Context, snapshotID string) (string, error) {
	snap, err := a.snaps.Get(ctx, snapshotID)
	if err != nil {
		return "", err
	}
	if snap == nil {
		return "", fmt.Errorf("%w: %s", common.ErrSnapshotMissing, snapshotID)
	}
	return snap.Contents, nil
}

// ImportSnapshot validates a serialized bundle and stores it as a Snapshot
// entity, overwriting any snapshot with the same id. Import is data
// recovery, not sync: the other stores are never rehydrated.
func (a *Aggregator) ImportSnapshot(ctx context.Context, serialized string) error {
	doc, err := validateSnapshotDoc(serialized)
	if err != nil {
		return err
	}

	snap := models.Snapshot{
		SnapshotID:    doc.SnapshotID,
		OrgID:         doc.OrgID,
		AppID:         doc.AppID,
		CreatedAt:     doc.CreatedAt.UTC(),
		EstimatedSize: int64(len(serialized)),
		Contents:      serialized,
	}
	if err := a.snaps.Put(ctx, snap); err != nil {
		return fmt.Errorf("failed to store imported snapshot: %w", err)
	}

	a.log.Info(ctx, "snapshot imported", "snapshot_id", snap.SnapshotID, "org_id", snap.OrgID)
	return nil
}

// ClearOfflineData irreversibly removes the organization's rows from all
// four stores, narrowed to one application when appID is non-nil. Must
// originate from an explicit user confirmation upstream; there is no
// soft-delete and no undo.
func (a *Aggregator) ClearOfflineData(ctx context.Context, orgID string, appID *string) error {
	type clearable interface {
		ClearByOrg(ctx context.Context, orgID string) error
		ClearByOrgAndApp(ctx context.Context, orgID, appID string) error
	}

	for _, store := range []struct {
		name string
		c    clearable
	}{
		{"drafts", a.drafts},
		{"offline_content", a.offline},
		{"metadata_cache", a.meta},
		{"snapshots", a.snaps},
	} {
		var err error
		if appID != nil {
			err = store.c.ClearByOrgAndApp(ctx, orgID, *appID)
		} else {
			err = store.c.ClearByOrg(ctx, orgID)
		}
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", store.name, err)
		}
	}

	a.log.Info(ctx, "offline data cleared", "org_id", orgID)
	return nil
}

func (a *Aggregator) listDrafts(ctx context.Context, orgID string, appID *string) ([]models.Draft, error) {
	if appID != nil {
		return a.drafts.ListByOrgAndApp(ctx, orgID, *appID)
	}
	return a.drafts.ListByOrg(ctx, orgID)
}

func (a *Aggregator) listOffline(ctx context.Context, orgID string, appID *string) ([]models.OfflineContent, error) {
	if appID != nil {
		return a.offline.ListByOrgAndApp(ctx, orgID, *appID)
	}
	return a.offline.ListByOrg(ctx, orgID)
}

func (a *Aggregator) listMeta(ctx context.Context, orgID string, appID *string) ([]models.MetadataCache, error) {
	if appID != nil {
		return a.meta.ListByOrgAndApp(ctx, orgID, *appID)
	}
	return a.meta.ListByOrg(ctx, orgID)
}

func (a *Aggregator) listSnapshots(ctx context.Context, orgID string, appID *string) ([]models.Snapshot, error) {
	if appID != nil {
		return a.snaps.ListByOrgAndApp(ctx, orgID, *appID)
	}
	return a.snaps.ListByOrg(ctx, orgID)
}
