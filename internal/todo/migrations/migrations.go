// Package migrations embeds the todo service schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
