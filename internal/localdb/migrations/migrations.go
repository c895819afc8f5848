// Package migrations embeds the versioned schema of the local database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
