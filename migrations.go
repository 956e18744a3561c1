package evaluation

import "embed"

// Migrations holds the goose SQL migrations of the result store.
//
//go:embed migrations/*.sql
var Migrations embed.FS
