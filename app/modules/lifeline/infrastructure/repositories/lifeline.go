package lifelinedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a lifeline slug is unknown.
var ErrNotFound = errors.New("lifeline not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new lifeline repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) List(ctx context.Context, db bun.IDB) ([]LifelineDefinition, error) {
	db = r.resolveDB(db)
	var defs []LifelineDefinition
	err := db.NewSelect().
		Model(&defs).
		Order("display_name ASC", "slug ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lifelines: %w", err)
	}
	return defs, nil
}

func (r *Impl) GetBySlug(ctx context.Context, db bun.IDB, slug string) (*LifelineDefinition, error) {
	db = r.resolveDB(db)
	def := new(LifelineDefinition)
	err := db.NewSelect().
		Model(def).
		Where("slug = ?", slug).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lifeline by slug: %w", err)
	}
	return def, nil
}

func (r *Impl) Slugs(ctx context.Context, db bun.IDB) (map[string]struct{}, error) {
	db = r.resolveDB(db)
	var slugs []string
	err := db.NewSelect().
		Model((*LifelineDefinition)(nil)).
		Column("slug").
		Scan(ctx, &slugs)
	if err != nil {
		return nil, fmt.Errorf("failed to list lifeline slugs: %w", err)
	}
	out := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		out[s] = struct{}{}
	}
	return out, nil
}

func (r *Impl) Upsert(ctx context.Context, db bun.IDB, def *LifelineDefinition) (bool, error) {
	db = r.resolveDB(db)
	existing, err := r.GetBySlug(ctx, db, def.Slug)
	switch {
	case errors.Is(err, ErrNotFound):
		if def.ID == "" {
			def.ID = uuid.NewString()
		}
		if _, err := db.NewInsert().Model(def).Exec(ctx); err != nil {
			return false, fmt.Errorf("failed to insert lifeline: %w", err)
		}
		return true, nil
	case err != nil:
		return false, err
	}

	_, err = db.NewUpdate().
		Model((*LifelineDefinition)(nil)).
		Set("display_name = ?", def.DisplayName).
		Set("description = ?", def.Description).
		Where("id = ?", existing.ID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to update lifeline: %w", err)
	}
	def.ID = existing.ID
	def.CreatedAt = existing.CreatedAt
	return false, nil
}
