package cli

import (
	"context"
	"fmt"
	"os"
)

// Clear irreversibly removes the organization's offline data after an
// explicit confirmation. There is no undo.
func (a *App) Clear(ctx context.Context) error {
	if !a.requireOrg() {
		return nil
	}

	scope := a.orgID
	if a.appID != "" {
		scope += "/" + a.appID
	}
	answer, err := GetSimpleText(a.reader,
		fmt.Sprintf("Remove ALL offline data for %s? This cannot be undone. Type 'yes' to confirm", scope),
		os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		printlnFn("Aborted")
		return nil
	}

	if err := a.agg.ClearOfflineData(ctx, a.orgID, a.appIDPtr()); err != nil {
		a.log.Error(ctx, "clear failed", "error", err)
		printlnFn("Clear failed:", err.Error())
		return err
	}

	printlnFn("Offline data removed")
	return nil
}
