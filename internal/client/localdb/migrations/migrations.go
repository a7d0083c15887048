// Package migrations embeds the goose SQL migrations for the local SWMS
// database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
