package services

import (
	"context"
	"sync"
	"time"

	"github.com/draftkeep/draftkeep/internal/logging"
	"github.com/draftkeep/draftkeep/internal/models"
)

// Notifier abstracts host-platform network-state change notifications plus
// the synchronous "am I online" query. A nil Notifier models a headless
// execution context: the service then stays in its default state and never
// emits events.
type Notifier interface {
	// Attach registers the change callback and returns a detach function.
	// The callback is invoked on every online/offline transition.
	Attach(onChange func(online bool)) (detach func(), err error)

	// IsOnline reports the current network state.
	IsOnline() bool
}

// Counter is the store surface the connectivity service needs: the draft
// and offline-content stores both satisfy it.
type Counter interface {
	CountAll(ctx context.Context) (int, error)
}

// ConnectivityService tracks online/offline transitions and outstanding
// local-item counts, and publishes state to subscribers. It attaches its
// platform listener lazily, on first use.
type ConnectivityService struct {
	notifier Notifier
	drafts   Counter
	offline  Counter
	now      func() time.Time
	log      logging.Logger

	initOnce sync.Once
	detach   func()

	mu        sync.Mutex
	state     models.ConnectivityState
	listeners map[int]func(models.ConnectivityState)
	nextID    int
}

// NewConnectivityService wires the service to its platform notifier, the
// two counted stores, and a clock. clock and log may be nil for defaults.
func NewConnectivityService(notifier Notifier, draftStore, offlineStore Counter, clock func() time.Time, log logging.Logger) *ConnectivityService {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = logging.Nop()
	}
	return &ConnectivityService{
		notifier:  notifier,
		drafts:    draftStore,
		offline:   offlineStore,
		now:       clock,
		log:       log,
		state:     models.ConnectivityState{IsOnline: true},
		listeners: make(map[int]func(models.ConnectivityState)),
	}
}

// ensureStarted attaches the platform listener exactly once. In headless
// contexts (nil notifier) the service is a default-state provider.
func (s *ConnectivityService) ensureStarted() {
	s.initOnce.Do(func() {
		if s.notifier == nil {
			return
		}
		s.mu.Lock()
		s.state.IsOnline = s.notifier.IsOnline()
		s.mu.Unlock()

		detach, err := s.notifier.Attach(s.onNetworkChange)
		if err != nil {
			s.log.Debug(context.Background(), "failed to attach network notifier", "error", err)
			return
		}
		s.detach = detach
	})
}

// Current returns the current connectivity state.
func (s *ConnectivityService) Current() models.ConnectivityState {
	s.ensureStarted()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener, synchronously delivers the current state
// to it, and returns a detach function.
func (s *ConnectivityService) Subscribe(fn func(models.ConnectivityState)) (unsubscribe func()) {
	s.ensureStarted()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.state
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close detaches the platform listener.
func (s *ConnectivityService) Close() {
	if s.detach != nil {
		s.detach()
	}
}

// onNetworkChange applies an online/offline transition. Going offline only
// flips the flag; going online additionally recomputes the local-item
// counts asynchronously and publishes a second update once they resolve.
func (s *ConnectivityService) onNetworkChange(online bool) {
	s.mu.Lock()
	if s.state.IsOnline == online {
		s.mu.Unlock()
		return
	}
	s.state.IsOnline = online
	s.state.LastChangedAt = s.now().UTC()
	s.mu.Unlock()

	s.publish()

	if online {
		go s.refreshCounts(context.Background())
	}
}

// refreshCounts recomputes draft and offline-item counts from the stores.
// Failures are swallowed (visible at Debug only) and default the count to
// zero rather than propagating into the rendering path.
func (s *ConnectivityService) refreshCounts(ctx context.Context) {
	draftCount := s.countOrZero(ctx, s.drafts, "drafts")
	offlineCount := s.countOrZero(ctx, s.offline, "offline items")

	s.mu.Lock()
	s.state.DraftCount = draftCount
	s.state.HasDrafts = draftCount > 0
	s.state.OfflineItemCount = offlineCount
	s.state.HasOfflineItems = offlineCount > 0
	s.mu.Unlock()

	s.publish()
}

func (s *ConnectivityService) countOrZero(ctx context.Context, c Counter, what string) int {
	if c == nil {
		return 0
	}
	n, err := c.CountAll(ctx)
	if err != nil {
		s.log.Debug(ctx, "failed to refresh count", "store", what, "error", err)
		return 0
	}
	return n
}

func (s *ConnectivityService) publish() {
	s.mu.Lock()
	current := s.state
	fns := make([]func(models.ConnectivityState), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(current)
	}
}
