package migrations

import "embed"

// Migrations holds the schema files applied by ApplyMigrations.
//
//go:embed *.sql
var Migrations embed.FS
