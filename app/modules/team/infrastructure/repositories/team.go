package teamdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

var (
	// ErrNotFound is returned when a team does not exist.
	ErrNotFound = errors.New("team not found")
	// ErrNoRowsAffected is returned when an UPDATE or DELETE matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new team repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) Get(ctx context.Context, db bun.IDB, id string) (*Team, error) {
	return r.getBy(ctx, db, "id", id)
}

func (r *Impl) GetBySlug(ctx context.Context, db bun.IDB, slug string) (*Team, error) {
	return r.getBy(ctx, db, "slug", slug)
}

func (r *Impl) getBy(ctx context.Context, db bun.IDB, column, value string) (*Team, error) {
	db = r.resolveDB(db)
	team := new(Team)
	err := db.NewSelect().
		Model(team).
		Where("? = ?", bun.Ident(column), value).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team by %s: %w", column, err)
	}
	return team, nil
}

func (r *Impl) List(ctx context.Context, db bun.IDB) ([]Team, error) {
	db = r.resolveDB(db)
	teams := []Team{}
	err := db.NewSelect().
		Model(&teams).
		Order("display_order ASC", "created_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (r *Impl) SlugsWithPrefix(ctx context.Context, db bun.IDB, prefix string) (map[string]string, error) {
	db = r.resolveDB(db)
	var rows []struct {
		ID   string `bun:"id"`
		Slug string `bun:"slug"`
	}
	err := db.NewSelect().
		Model((*Team)(nil)).
		Column("id", "slug").
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("slug = ?", prefix).
				WhereOr("slug LIKE ?", prefix+"-%")
		}).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list slugs: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Slug] = row.ID
	}
	return out, nil
}

func (r *Impl) Insert(ctx context.Context, db bun.IDB, team *Team) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	team.CreatedAt = now
	team.UpdatedAt = now
	if team.Lifelines == nil {
		team.Lifelines = Lifelines{}
	}
	if _, err := db.NewInsert().Model(team).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}
	return nil
}

func (r *Impl) Update(ctx context.Context, db bun.IDB, id string, updates *UpdateFields) error {
	if updates.IsEmpty() {
		return nil
	}
	db = r.resolveDB(db)
	q := db.NewUpdate().
		Model((*Team)(nil)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id)
	if updates.Name != nil {
		q = q.Set("name = ?", *updates.Name)
	}
	if updates.Slug != nil {
		q = q.Set("slug = ?", *updates.Slug)
	}
	if updates.Color != nil {
		if *updates.Color == "" {
			q = q.Set("color = NULL")
		} else {
			q = q.Set("color = ?", *updates.Color)
		}
	}
	if updates.Lifelines != nil {
		q = q.Set("lifelines = ?", *updates.Lifelines)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	return checkAffected(res)
}

func (r *Impl) Delete(ctx context.Context, db bun.IDB, id string) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*Team)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
