package postgres

import "embed"

// Migrations contiene los archivos SQL para golang-migrate (fuente iofs, directorio "migrations").
//
//go:embed migrations/*.sql
var Migrations embed.FS
