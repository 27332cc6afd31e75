package migrations

import "embed"

// Files holds the forward-only PostgreSQL migrations.
//
//go:embed *.sql
var Files embed.FS
