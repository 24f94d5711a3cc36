package rounddb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for round persistence.
// Every method runs against the caller-supplied db so structural changes and
// their renumbering share one transaction; a nil db uses the default connection.
//
// Error semantics:
//   - ErrNotFound: Get matched no record
//   - ErrNoRowsAffected: UPDATE/DELETE matched no rows
//   - Other errors: infrastructure failures
type Repository interface {
	// Get retrieves a round by id.
	Get(ctx context.Context, db bun.IDB, id string) (*Round, error)

	// ListBySet returns the rounds of setID ordered by position.
	ListBySet(ctx context.Context, db bun.IDB, setID string) ([]Round, error)

	// ListSetIDs returns every set id that has at least one round.
	ListSetIDs(ctx context.Context, db bun.IDB) ([]string, error)

	// CountByCategory returns how many rounds reference categoryID.
	CountByCategory(ctx context.Context, db bun.IDB, categoryID string) (int, error)

	// Insert stores a new round.
	Insert(ctx context.Context, db bun.IDB, round *Round) error

	// Update applies the non-nil fields of updates.
	Update(ctx context.Context, db bun.IDB, id string, updates *UpdateFields) error

	// Delete removes a round.
	Delete(ctx context.Context, db bun.IDB, id string) error
}

// CategoryRepository defines the contract for round category persistence.
type CategoryRepository interface {
	// List returns every category ordered by name.
	List(ctx context.Context, db bun.IDB) ([]RoundCategory, error)

	// Get retrieves a category by id.
	Get(ctx context.Context, db bun.IDB, id string) (*RoundCategory, error)

	// GetByName retrieves a category by its unique name.
	GetByName(ctx context.Context, db bun.IDB, name string) (*RoundCategory, error)

	// Insert stores a new category.
	Insert(ctx context.Context, db bun.IDB, category *RoundCategory) error

	// Update applies the non-nil fields of updates.
	Update(ctx context.Context, db bun.IDB, id string, updates *CategoryUpdateFields) error

	// Delete removes a category.
	Delete(ctx context.Context, db bun.IDB, id string) error
}
