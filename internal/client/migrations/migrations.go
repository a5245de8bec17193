// Package migrations embeds the goose migrations for the client-local
// session cache database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
