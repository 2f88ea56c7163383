package migrations

import "embed"

// Files holds the SQL migrations in apply order
//
//go:embed *.sql
var Files embed.FS
