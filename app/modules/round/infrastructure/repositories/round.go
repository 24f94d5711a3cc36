package rounddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

var (
	// ErrNotFound is returned when a round or category does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNoRowsAffected is returned when an UPDATE or DELETE matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new round repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) Get(ctx context.Context, db bun.IDB, id string) (*Round, error) {
	db = r.resolveDB(db)
	round := new(Round)
	err := db.NewSelect().
		Model(round).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	return round, nil
}

func (r *Impl) ListBySet(ctx context.Context, db bun.IDB, setID string) ([]Round, error) {
	db = r.resolveDB(db)
	rounds := []Round{}
	err := db.NewSelect().
		Model(&rounds).
		Where("set_id = ?", setID).
		Order("position ASC", "created_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	return rounds, nil
}

func (r *Impl) ListSetIDs(ctx context.Context, db bun.IDB) ([]string, error) {
	db = r.resolveDB(db)
	var ids []string
	err := db.NewSelect().
		Model((*Round)(nil)).
		ColumnExpr("DISTINCT set_id").
		OrderExpr("set_id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list set ids: %w", err)
	}
	return ids, nil
}

func (r *Impl) CountByCategory(ctx context.Context, db bun.IDB, categoryID string) (int, error) {
	db = r.resolveDB(db)
	n, err := db.NewSelect().
		Model((*Round)(nil)).
		Where("category_id = ?", categoryID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count rounds by category: %w", err)
	}
	return n, nil
}

func (r *Impl) Insert(ctx context.Context, db bun.IDB, round *Round) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	round.CreatedAt = now
	round.UpdatedAt = now
	if _, err := db.NewInsert().Model(round).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert round: %w", err)
	}
	return nil
}

func (r *Impl) Update(ctx context.Context, db bun.IDB, id string, updates *UpdateFields) error {
	if updates.IsEmpty() {
		return nil
	}
	db = r.resolveDB(db)
	q := db.NewUpdate().
		Model((*Round)(nil)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id)
	if updates.CategoryID != nil {
		q = q.Set("category_id = ?", *updates.CategoryID)
	}
	if updates.Name != nil {
		q = q.Set("name = ?", *updates.Name)
	}
	if updates.Description != nil {
		q = q.Set("description = ?", nullIfEmpty(*updates.Description))
	}
	if updates.Configuration != nil {
		q = q.Set("configuration = ?", Configuration{*updates.Configuration})
	}
	if updates.ConfirmationRequired != nil {
		q = q.Set("confirmation_required = ?", *updates.ConfirmationRequired)
	}
	return execAffecting(ctx, q, "update round")
}

func (r *Impl) Delete(ctx context.Context, db bun.IDB, id string) error {
	db = r.resolveDB(db)
	q := db.NewDelete().
		Model((*Round)(nil)).
		Where("id = ?", id)
	return execAffecting(ctx, q, "delete round")
}

type execer interface {
	Exec(ctx context.Context, dest ...any) (sql.Result, error)
}

// execAffecting runs q and maps zero affected rows to ErrNoRowsAffected.
func execAffecting(ctx context.Context, q execer, op string) error {
	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
