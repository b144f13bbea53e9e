// Package migrations embeds the SQL schema migrations so the service ships
// as a single binary and applies them itself at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
