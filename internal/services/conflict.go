// Package services holds the lifecycle logic of the offline layer: conflict
// detection, read resolution, connectivity awareness, freshness tracking,
// and the offline summary/control aggregator. Stores stay dumb; policy
// lives here.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/draftkeep/draftkeep/internal/models"
	"github.com/draftkeep/draftkeep/internal/repositories/drafts"
)

// ServerMetadata is the caller-supplied fingerprint of the current server
// state of an item. Any field may be nil when the server does not report it.
type ServerMetadata struct {
	Revision  *string
	UpdatedAt *time.Time
	Hash      *string
}

// ConflictReason classifies what changed on the server since the draft's
// base was captured. Diagnostic only; the draft status does not record it.
type ConflictReason string

const (
	ReasonRevisionChanged ConflictReason = "revision_changed"
	ReasonHashChanged     ConflictReason = "hash_changed"
	ReasonServerChanged   ConflictReason = "server_changed"
)

// SaveCheck is the typed result of a save-time conflict check. A detected
// conflict is a value, never an error.
type SaveCheck struct {
	HasConflict bool
	Reason      ConflictReason
}

// fieldCmp is the three-valued outcome of comparing one fingerprint field.
type fieldCmp int

const (
	cmpUnknown fieldCmp = iota
	cmpEqual
	cmpDifferent
)

// compareField compares a draft base field with its server counterpart.
// A nil on either side means "unknown, assume unchanged" and is never
// evidence of conflict.
func compareField(base, server *string) fieldCmp {
	if base == nil || server == nil {
		return cmpUnknown
	}
	if *base == *server {
		return cmpEqual
	}
	return cmpDifferent
}

// ConflictService classifies and flags save-time conflicts. It never
// discards, resolves, or merges drafts.
type ConflictService struct {
	drafts drafts.Repository
	now    func() time.Time
}

// NewConflictService returns a conflict service over the draft store.
// clock may be nil to use time.Now.
func NewConflictService(repo drafts.Repository, clock func() time.Time) *ConflictService {
	if clock == nil {
		clock = time.Now
	}
	return &ConflictService{drafts: repo, now: clock}
}

// HasConflict reports whether the draft's base fingerprint disagrees with
// the current server metadata. A draft for not-yet-created content
// (SourceItemID == nil) can never conflict. Either a revision mismatch or a
// hash mismatch is sufficient; absent fields are not evidence.
func (s *ConflictService) HasConflict(d *models.Draft, md *ServerMetadata) bool {
	if d == nil || d.SourceItemID == nil || md == nil {
		return false
	}
	if compareField(d.BaseRevision, md.Revision) == cmpDifferent {
		return true
	}
	return compareField(d.BaseHash, md.Hash) == cmpDifferent
}

// CheckSaveTimeConflict runs the conflict check at the moment of save. The
// metadata accessor is called exactly once, never speculatively. An
// accessor failure propagates; the caller decides whether to save without
// a check.
func (s *ConflictService) CheckSaveTimeConflict(ctx context.Context, d *models.Draft, fetch func(ctx context.Context) (*ServerMetadata, error)) (*SaveCheck, error) {
	if d == nil || d.SourceItemID == nil {
		return &SaveCheck{HasConflict: false}, nil
	}
	if fetch == nil {
		return &SaveCheck{HasConflict: false}, nil
	}

	md, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch server metadata: %w", err)
	}

	if !s.HasConflict(d, md) {
		return &SaveCheck{HasConflict: false}, nil
	}

	reason := ReasonServerChanged
	switch {
	case compareField(d.BaseRevision, md.Revision) == cmpDifferent:
		reason = ReasonRevisionChanged
	case compareField(d.BaseHash, md.Hash) == cmpDifferent:
		reason = ReasonHashChanged
	}

	return &SaveCheck{HasConflict: true, Reason: reason}, nil
}

// MarkDraftConflicted loads the draft, sets its status to conflicted,
// refreshes LastEditedAt, and persists. Returns (nil, nil) when the draft
// no longer exists — an already-discarded draft is not an error.
func (s *ConflictService) MarkDraftConflicted(ctx context.Context, localDraftID string) (*models.Draft, error) {
	d, err := s.drafts.Get(ctx, localDraftID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	if d == nil {
		return nil, nil
	}

	d.Status = models.DraftConflicted
	d.LastEditedAt = s.now().UTC()

	if err := s.drafts.Put(ctx, *d); err != nil {
		return nil, fmt.Errorf("failed to persist conflicted draft: %w", err)
	}
	return d, nil
}
