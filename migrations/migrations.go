// Package migrations embeds the versioned schema for each supported
// database.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
