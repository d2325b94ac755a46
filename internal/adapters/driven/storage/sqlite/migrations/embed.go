// Package migrations embeds the SQL schema migrations for the archive
// database.
package migrations

import "embed"

// FS holds the migration files, applied in lexical order on open.
//
//go:embed *.sql
var FS embed.FS
