package rounddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// CategoryImpl implements the CategoryRepository interface using Bun ORM.
type CategoryImpl struct {
	db bun.IDB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db bun.IDB) CategoryRepository {
	return &CategoryImpl{db: db}
}

func (r *CategoryImpl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *CategoryImpl) List(ctx context.Context, db bun.IDB) ([]RoundCategory, error) {
	db = r.resolveDB(db)
	categories := []RoundCategory{}
	err := db.NewSelect().
		Model(&categories).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryImpl) Get(ctx context.Context, db bun.IDB, id string) (*RoundCategory, error) {
	return r.getBy(ctx, db, "id", id)
}

func (r *CategoryImpl) GetByName(ctx context.Context, db bun.IDB, name string) (*RoundCategory, error) {
	return r.getBy(ctx, db, "name", name)
}

func (r *CategoryImpl) getBy(ctx context.Context, db bun.IDB, column, value string) (*RoundCategory, error) {
	db = r.resolveDB(db)
	category := new(RoundCategory)
	err := db.NewSelect().
		Model(category).
		Where("? = ?", bun.Ident(column), value).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by %s: %w", column, err)
	}
	return category, nil
}

func (r *CategoryImpl) Insert(ctx context.Context, db bun.IDB, category *RoundCategory) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now
	if _, err := db.NewInsert().Model(category).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *CategoryImpl) Update(ctx context.Context, db bun.IDB, id string, updates *CategoryUpdateFields) error {
	if updates.IsEmpty() {
		return nil
	}
	db = r.resolveDB(db)
	q := db.NewUpdate().
		Model((*RoundCategory)(nil)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id)
	if updates.Name != nil {
		q = q.Set("name = ?", *updates.Name)
	}
	if updates.DefaultConfiguration != nil {
		q = q.Set("default_configuration = ?", Configuration{*updates.DefaultConfiguration})
	}
	return execAffecting(ctx, q, "update category")
}

func (r *CategoryImpl) Delete(ctx context.Context, db bun.IDB, id string) error {
	db = r.resolveDB(db)
	q := db.NewDelete().
		Model((*RoundCategory)(nil)).
		Where("id = ?", id)
	return execAffecting(ctx, q, "delete category")
}
