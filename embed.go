// Package urlcheck exposes repo-level embedded assets.
package urlcheck

import "embed"

// Migrations contains the goose SQL migrations applied by the migrate command.
//
//go:embed migrations/*.sql
var Migrations embed.FS
