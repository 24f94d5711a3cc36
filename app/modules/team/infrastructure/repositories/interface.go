package teamdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for team persistence.
// Every method runs against the caller-supplied db; a nil db uses the default
// connection.
//
// Error semantics:
//   - ErrNotFound: Get/GetBySlug matched no record
//   - ErrNoRowsAffected: UPDATE/DELETE matched no rows
//   - Other errors: infrastructure failures
type Repository interface {
	// Get retrieves a team by id.
	Get(ctx context.Context, db bun.IDB, id string) (*Team, error)

	// GetBySlug retrieves a team by its unique slug.
	GetBySlug(ctx context.Context, db bun.IDB, slug string) (*Team, error)

	// List returns every team ordered by display order.
	List(ctx context.Context, db bun.IDB) ([]Team, error)

	// SlugsWithPrefix returns slug -> team id for the slugs equal to prefix or
	// starting with prefix + "-". Slugs only hold [a-z0-9-], so prefix needs no
	// LIKE escaping.
	SlugsWithPrefix(ctx context.Context, db bun.IDB, prefix string) (map[string]string, error)

	// Insert stores a new team.
	Insert(ctx context.Context, db bun.IDB, team *Team) error

	// Update applies the non-nil fields of updates.
	Update(ctx context.Context, db bun.IDB, id string, updates *UpdateFields) error

	// Delete removes a team.
	Delete(ctx context.Context, db bun.IDB, id string) error
}
