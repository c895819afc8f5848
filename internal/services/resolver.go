package services

import (
	"context"
	"fmt"

	"github.com/draftkeep/draftkeep/internal/models"
	"github.com/draftkeep/draftkeep/internal/repositories/drafts"
	"github.com/draftkeep/draftkeep/internal/repositories/offlinecontent"
)

// Source names where a resolved payload came from.
type Source string

const (
	SourceDraft       Source = "draft"
	SourceOffline     Source = "offline"
	SourceCache       Source = "cache"
	SourceServer      Source = "server"
	SourceUnavailable Source = "unavailable"
)

// FallbackType classifies an unavailable result.
type FallbackType string

const (
	FallbackOfflineNoContent FallbackType = "offline_no_content"
	FallbackUnavailable      FallbackType = "unavailable"
)

// Fallback is the typed "nothing available" signal of a resolution.
type Fallback struct {
	Type   FallbackType `json:"type"`
	Reason string       `json:"reason,omitempty"`
}

// Resolution is the always-renderable outcome of a content read.
type Resolution struct {
	Source   Source          `json:"source"`
	Payload  *models.Payload `json:"payload"`
	Fallback *Fallback       `json:"fallback_state,omitempty"`
}

// Accessors carries the externally supplied read sources. Any field may be
// nil; missing sources are simply skipped.
type Accessors struct {
	GetCached     func(ctx context.Context) (*models.Payload, error)
	GetFromServer func(ctx context.Context) (*models.Payload, error)
	IsOnline      func() bool
}

// Resolver is the priority-ordered read path feeding UI rendering:
// draft → offline-saved → cache → server → unavailable. First hit wins;
// sources are never merged.
type Resolver struct {
	drafts  drafts.Repository
	offline offlinecontent.Repository
}

// NewResolver returns a resolver over the local stores.
func NewResolver(draftRepo drafts.Repository, offlineRepo offlinecontent.Repository) *Resolver {
	return &Resolver{drafts: draftRepo, offline: offlineRepo}
}

// ResolveContentForRead resolves the displayable payload for one item.
// It never fails: any internal error or accessor panic is converted into an
// unavailable fallback, because this path must always produce a renderable
// result.
func (r *Resolver) ResolveContentForRead(ctx context.Context, orgID, appID, sourceItemID string, acc Accessors) (res Resolution) {
	defer func() {
		if p := recover(); p != nil {
			res = unavailable(FallbackUnavailable, fmt.Sprintf("panic: %v", p))
		}
	}()

	// 1. An active draft shadows everything, including an offline-saved
	// copy: the user's in-progress edit is authoritative for display.
	draft, err := r.drafts.FindActiveBySource(ctx, orgID, appID, sourceItemID)
	if err != nil {
		return unavailable(FallbackUnavailable, err.Error())
	}
	if draft != nil {
		p := draft.Payload
		return Resolution{Source: SourceDraft, Payload: &p}
	}

	// 2. Most recent offline-saved copy.
	saved, err := r.offline.LatestBySource(ctx, orgID, appID, sourceItemID)
	if err != nil {
		return unavailable(FallbackUnavailable, err.Error())
	}
	if saved != nil {
		p := saved.Payload
		return Resolution{Source: SourceOffline, Payload: &p}
	}

	// 3. Externally supplied cache.
	if acc.GetCached != nil {
		if p, err := acc.GetCached(ctx); err == nil && p != nil {
			return Resolution{Source: SourceCache, Payload: p}
		}
	}

	// 4. Server, only when the host says we are online.
	if acc.IsOnline != nil && acc.IsOnline() && acc.GetFromServer != nil {
		if p, err := acc.GetFromServer(ctx); err == nil && p != nil {
			return Resolution{Source: SourceServer, Payload: p}
		}
	}

	return unavailable(FallbackOfflineNoContent, "")
}

// GetOfflineContentForItem returns the authoritative (newest SavedAt)
// offline copy of an item, or (nil, nil) when none is retained.
func (r *Resolver) GetOfflineContentForItem(ctx context.Context, orgID, appID, sourceItemID string) (*models.OfflineContent, error) {
	return r.offline.LatestBySource(ctx, orgID, appID, sourceItemID)
}

func unavailable(typ FallbackType, reason string) Resolution {
	return Resolution{
		Source:   SourceUnavailable,
		Fallback: &Fallback{Type: typ, Reason: reason},
	}
}
