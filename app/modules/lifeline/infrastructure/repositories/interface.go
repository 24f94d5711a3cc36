package lifelinedb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for lifeline catalogue persistence.
// Every method runs against the caller-supplied db so it can join a transaction;
// a nil db falls back to the repository's connection.
type Repository interface {
	// List returns every definition ordered by display name.
	List(ctx context.Context, db bun.IDB) ([]LifelineDefinition, error)

	// GetBySlug returns ErrNotFound when the slug is unknown.
	GetBySlug(ctx context.Context, db bun.IDB, slug string) (*LifelineDefinition, error)

	// Slugs returns the set of known slugs.
	Slugs(ctx context.Context, db bun.IDB) (map[string]struct{}, error)

	// Upsert inserts def or refreshes the display fields of the definition with
	// the same slug. It reports whether a row was inserted.
	Upsert(ctx context.Context, db bun.IDB, def *LifelineDefinition) (bool, error)
}
