package migrations

import "embed"

// FS contains the embedded schema migrations, one directory per dialect.
//
//go:embed mysql/*.sql postgres/*.sql sqlite/*.sql
var FS embed.FS
