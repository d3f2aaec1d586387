// Package migrations embeds advisor inbox schema migrations.
package migrations

import "embed"

// FS exposes the embedded migration files.
//
//go:embed *.sql
var FS embed.FS
