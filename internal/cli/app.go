package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/draftkeep/draftkeep/internal/config"
	"github.com/draftkeep/draftkeep/internal/localdb"
	"github.com/draftkeep/draftkeep/internal/logging"
	"github.com/draftkeep/draftkeep/internal/models"
	"github.com/draftkeep/draftkeep/internal/services"
)

// App is the interactive harness over the offline data layer. It owns the
// store bundle and the service instances and tracks the organization and
// application the session is scoped to.
type App struct {
	config *config.Config
	log    logging.Logger

	stores   *localdb.Stores
	agg      *services.Aggregator
	fresh    *services.FreshnessService
	conn     *services.ConnectivityService
	resolver *services.Resolver

	orgID string
	appID string

	reader *bufio.Reader
}

// NewApp opens the local database and wires the services. When the database
// cannot be opened the app still starts, with every store reporting storage
// unavailable, so the read-only surface keeps working.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}

	stores, err := localdb.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Warn(ctx, "local storage unavailable, running disabled", "error", err)
		stores = localdb.Disabled()
	}

	notifier := services.NewProbeNotifier(c.ProbeEndpoint, c.ProbeInterval, c.ProbeTimeout)

	return &App{
		config:   c,
		log:      log,
		stores:   stores,
		agg:      services.NewAggregator(stores.Drafts, stores.Offline, stores.Metadata, stores.Snapshot, nil, log),
		fresh:    services.NewFreshnessService(nil),
		conn:     services.NewConnectivityService(notifier, stores.Drafts, stores.Offline, nil, log),
		resolver: services.NewResolver(stores.Drafts, stores.Offline),
		reader:   bufio.NewReader(os.Stdin),
	}
}

// Run starts the REPL on stdin and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.stores.Close()
	defer a.conn.Close()

	unsubscribe := a.conn.Subscribe(func(st models.ConnectivityState) {
		a.log.Info(ctx, "connectivity changed", "online", st.IsOnline,
			"drafts", st.DraftCount, "offline_items", st.OfflineItemCount)
	})
	defer unsubscribe()

	printlnFn("draftkeep CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) hasOrg() bool {
	return a.orgID != ""
}

func (a *App) getStatus() string {
	s := ""
	if a.orgID != "" {
		s = a.orgID
		if a.appID != "" {
			s += "/" + a.appID
		}
		s += " "
	}
	if a.conn.Current().IsOnline {
		s += "online"
	} else {
		s += "offline"
	}
	return fmt.Sprintf("(%s)", s)
}

// Use scopes the session to an organization and optional application.
// Switching organizations clears the freshness map.
func (a *App) Use(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: use <org> [app]")
		return nil
	}
	a.orgID = args[0]
	a.appID = ""
	if len(args) > 1 {
		a.appID = args[1]
	}
	a.fresh.SetActiveOrgID(a.orgID)
	printlnFn("Using organization", a.orgID)
	return nil
}

// Status prints the current connectivity state.
func (a *App) Status(ctx context.Context) error {
	st := a.conn.Current()
	state := "offline"
	if st.IsOnline {
		state = "online"
	}
	printlnFn(fmt.Sprintf("%s, %d draft(s), %d offline item(s)", state, st.DraftCount, st.OfflineItemCount))
	return nil
}

func (a *App) appIDPtr() *string {
	if a.appID == "" {
		return nil
	}
	return &a.appID
}

func (a *App) requireOrg() bool {
	if !a.hasOrg() {
		printlnFn("Select an organization first: use <org> [app]")
		return false
	}
	return true
}
