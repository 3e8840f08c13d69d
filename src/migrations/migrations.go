// Package migrations embeds the account directory schema.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
