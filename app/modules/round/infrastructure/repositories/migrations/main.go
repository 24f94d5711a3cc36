package roundmigrations

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations holds the round module migrations (round categories and rounds).
var Migrations = migrate.NewMigrations()

func init() {
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
