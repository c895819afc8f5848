package cli

import (
	"context"
	"fmt"

	"github.com/draftkeep/draftkeep/internal/models"
)

// Summary prints the offline footprint of the selected organization.
func (a *App) Summary(ctx context.Context) error {
	if !a.requireOrg() {
		return nil
	}

	s, err := a.agg.GetOfflineSummary(ctx, a.orgID, a.appIDPtr())
	if err != nil {
		a.log.Error(ctx, "summary failed", "error", err)
		return err
	}

	if !s.OfflineEnabled {
		printlnFn("Offline storage is disabled on this device")
		return nil
	}

	printlnFn(fmt.Sprintf("Drafts: %d", s.Counts.Drafts))
	printlnFn(fmt.Sprintf("Offline-saved items: %d", s.Counts.OfflineSavedItems))
	printlnFn(fmt.Sprintf("Metadata entries: %d", s.Counts.MetadataEntries))
	printlnFn(fmt.Sprintf("Snapshots: %d", s.Counts.Snapshots))
	printlnFn(fmt.Sprintf("Estimated size: %d bytes", s.TotalEstimatedSize))
	if s.LastUpdatedAt != nil {
		printlnFn("Last updated:", a.fresh.FormatFreshness(s.LastUpdatedAt))
	}
	return nil
}

// Items prints the per-server-item draft and offline-copy view.
func (a *App) Items(ctx context.Context) error {
	if !a.requireOrg() {
		return nil
	}
	if a.appID == "" {
		printlnFn("Select an application first: use <org> <app>")
		return nil
	}

	infos, err := a.agg.GetPerItemInfo(ctx, a.orgID, a.appID)
	if err != nil {
		a.log.Error(ctx, "item listing failed", "error", err)
		return err
	}

	if len(infos) == 0 {
		printlnFn("No local data for any item")
		return nil
	}
	for _, info := range infos {
		line := fmt.Sprintf("%s  drafts=%d", info.ItemID, info.DraftCount)
		if info.OfflineSaved {
			line += "  offline-saved"
		}
		if info.ConflictStatus != "none" {
			line += "  " + info.ConflictStatus
		}
		printlnFn(line)
	}
	return nil
}

// Drafts lists the local drafts in the selected scope.
func (a *App) Drafts(ctx context.Context) error {
	if !a.requireOrg() {
		return nil
	}

	var list []models.Draft
	var err error
	if a.appID != "" {
		list, err = a.stores.Drafts.ListByOrgAndApp(ctx, a.orgID, a.appID)
	} else {
		list, err = a.stores.Drafts.ListByOrg(ctx, a.orgID)
	}
	if err != nil {
		a.log.Error(ctx, "draft listing failed", "error", err)
		return err
	}

	if len(list) == 0 {
		printlnFn("No drafts")
		return nil
	}
	for _, d := range list {
		src := "(new)"
		if d.SourceItemID != nil {
			src = *d.SourceItemID
		}
		printlnFn(fmt.Sprintf("%s  %s  %s  %s  edited %s",
			d.LocalDraftID, src, d.Payload.Kind, d.Status, a.fresh.FormatFreshness(&d.LastEditedAt)))
	}
	return nil
}
