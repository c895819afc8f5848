package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/draftkeep/draftkeep/internal/common"
)

// Scope names a UI area whose data freshness is tracked. The set is closed.
type Scope string

const (
	ScopeContentList  Scope = "content_list"
	ScopeItemDetail   Scope = "item_detail"
	ScopeMediaLibrary Scope = "media_library"
	ScopeTemplates    Scope = "templates"
)

// IsValid reports whether s is a known scope.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeContentList, ScopeItemDetail, ScopeMediaLibrary, ScopeTemplates:
		return true
	}
	return false
}

// FreshnessService is a purely advisory in-memory "last verified" tracker.
// It is distinct from cache invalidation: nothing reads or writes stores
// based on freshness. The map is cleared wholesale when the active
// organization changes — freshness never carries across organizations.
type FreshnessService struct {
	now func() time.Time

	mu        sync.Mutex
	last      map[Scope]time.Time
	activeOrg string
}

// NewFreshnessService returns a tracker with an injected clock (nil for
// time.Now).
func NewFreshnessService(clock func() time.Time) *FreshnessService {
	if clock == nil {
		clock = time.Now
	}
	return &FreshnessService{
		now:  clock,
		last: make(map[Scope]time.Time),
	}
}

// MarkChecked records "now" for the scope.
func (s *FreshnessService) MarkChecked(scope Scope) error {
	if !scope.IsValid() {
		return fmt.Errorf("%w: %q", common.ErrUnknownScope, scope)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[scope] = s.now().UTC()
	return nil
}

// GetLastChecked returns when the scope was last verified, or nil when it
// never was (or the map was cleared since).
func (s *FreshnessService) GetLastChecked(scope Scope) *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.last[scope]
	if !ok {
		return nil
	}
	return &t
}

// SetActiveOrgID records the active organization. A change of organization
// clears the entire map first; repeating the same id is a no-op.
func (s *FreshnessService) SetActiveOrgID(orgID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeOrg == orgID {
		return
	}
	s.last = make(map[Scope]time.Time)
	s.activeOrg = orgID
}

// ClearAll drops every freshness entry.
func (s *FreshnessService) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = make(map[Scope]time.Time)
}

// FormatFreshness renders a last-checked timestamp as a human-readable age.
// Thresholds are fixed and non-configurable.
func (s *FreshnessService) FormatFreshness(t *time.Time) string {
	if t == nil {
		return "Not checked yet"
	}

	age := s.now().Sub(*t)
	switch {
	case age < 30*time.Second:
		return "Just now"
	case age < 90*time.Second:
		return "1 min ago"
	case age < time.Hour:
		return fmt.Sprintf("%d min ago", int(age.Minutes()))
	case age < 24*time.Hour:
		n := int(age.Hours())
		if n == 1 {
			return "1 hr ago"
		}
		return fmt.Sprintf("%d hrs ago", n)
	default:
		n := int(age.Hours() / 24)
		if n == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", n)
	}
}
