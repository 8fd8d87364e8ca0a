// Package migrations embeds the SQL schema migrations applied by the API
// server and the migrate CLI.
package migrations

import "embed"

// FS holds every *.sql migration file.
//
//go:embed *.sql
var FS embed.FS
