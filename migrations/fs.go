package migrations

import "embed"

// FS holds the schema migrations so the binary is standalone.
//
//go:embed *.sql
var FS embed.FS
