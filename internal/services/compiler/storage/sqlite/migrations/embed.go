// Package migrations embeds the build store schema.
package migrations

import "embed"

// FS holds the SQL migrations applied by the build store.
//
//go:embed *.sql
var FS embed.FS
