// Package migrations holds the SQL schema, embedded so cmd/migrate needs no
// files next to the binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
