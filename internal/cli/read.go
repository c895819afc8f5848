package cli

import (
	"context"
	"fmt"

	"github.com/draftkeep/draftkeep/internal/services"
)

// Read resolves the displayable content for a server item and reports which
// source won. The CLI supplies no cache or server accessor; those belong to
// the embedding host, so resolution here ends at the offline copy.
func (a *App) Read(ctx context.Context, args []string) error {
	if !a.requireOrg() {
		return nil
	}
	if a.appID == "" {
		printlnFn("Select an application first: use <org> <app>")
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: read <item-id>")
		return nil
	}

	res := a.resolver.ResolveContentForRead(ctx, a.orgID, a.appID, args[0], services.Accessors{
		IsOnline: func() bool { return a.conn.Current().IsOnline },
	})

	if res.Payload != nil {
		printlnFn(fmt.Sprintf("source=%s kind=%s size=%d bytes", res.Source, res.Payload.Kind, res.Payload.Size()))
		return nil
	}
	line := fmt.Sprintf("source=%s fallback=%s", res.Source, res.Fallback.Type)
	if res.Fallback.Reason != "" {
		line += " reason=" + res.Fallback.Reason
	}
	printlnFn(line)
	return nil
}
