package repository

import "embed"

// Migrations holds the schema, under migrations/, for golang-migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS
