package migrations

import "embed"

// FS contains embedded SQLite migrations for portal storage.
//
//go:embed *.sql
var FS embed.FS
