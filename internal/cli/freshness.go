package cli

import (
	"context"
	"fmt"

	"github.com/draftkeep/draftkeep/internal/services"
)

// Freshness prints the last-checked time for every data scope.
func (a *App) Freshness(ctx context.Context) error {
	if !a.requireOrg() {
		return nil
	}

	for _, scope := range []services.Scope{
		services.ScopeContentList,
		services.ScopeItemDetail,
		services.ScopeMediaLibrary,
		services.ScopeTemplates,
	} {
		t := a.fresh.GetLastChecked(scope)
		printlnFn(fmt.Sprintf("%-14s %s", scope, a.fresh.FormatFreshness(t)))
	}
	return nil
}
