package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ErrMemberNotFound is returned by SetPosition when no row matched.
var ErrMemberNotFound = errors.New("ordering member not found")

// TableStore is a Store over one table with an id column, a position column,
// a created_at column and an optional scope column.
type TableStore struct {
	db          bun.IDB
	table       string
	position    string
	scopeColumn string
}

// NewTableStore creates a store for table. An empty scopeColumn means the table
// holds a single global scope.
func NewTableStore(db bun.IDB, table, positionColumn, scopeColumn string) *TableStore {
	return &TableStore{db: db, table: table, position: positionColumn, scopeColumn: scopeColumn}
}

func (s *TableStore) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return s.db
	}
	return db
}

func (s *TableStore) scoped(q bun.QueryBuilder, scope Scope) bun.QueryBuilder {
	if s.scopeColumn == "" {
		return q
	}
	return q.Where("? = ?", bun.Ident(s.scopeColumn), scope.Key)
}

func (s *TableStore) Count(ctx context.Context, db bun.IDB, scope Scope) (int, error) {
	db = s.resolveDB(db)
	q := db.NewSelect().TableExpr("?", bun.Ident(s.table))
	s.scoped(q.QueryBuilder(), scope)
	n, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", s.table, err)
	}
	return n, nil
}

func (s *TableStore) ListMembers(ctx context.Context, db bun.IDB, scope Scope) ([]Member, error) {
	db = s.resolveDB(db)
	var members []Member
	q := db.NewSelect().
		TableExpr("?", bun.Ident(s.table)).
		ColumnExpr("id").
		ColumnExpr("? AS position", bun.Ident(s.position)).
		ColumnExpr("created_at").
		OrderExpr("? ASC", bun.Ident(s.position)).
		OrderExpr("created_at ASC").
		OrderExpr("id ASC")
	s.scoped(q.QueryBuilder(), scope)
	if err := q.Scan(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.table, err)
	}
	return members, nil
}

func (s *TableStore) CloseGap(ctx context.Context, db bun.IDB, scope Scope, deletedPosition int) error {
	db = s.resolveDB(db)
	q := db.NewUpdate().
		TableExpr("?", bun.Ident(s.table)).
		Set("? = ? - 1", bun.Ident(s.position), bun.Ident(s.position)).
		Where("? > ?", bun.Ident(s.position), deletedPosition)
	s.scoped(q.QueryBuilder(), scope)
	if _, err := q.Exec(ctx); err != nil {
		return fmt.Errorf("failed to close gap in %s: %w", s.table, err)
	}
	return nil
}

func (s *TableStore) SetPosition(ctx context.Context, db bun.IDB, scope Scope, id string, position int) error {
	db = s.resolveDB(db)
	q := db.NewUpdate().
		TableExpr("?", bun.Ident(s.table)).
		Set("? = ?", bun.Ident(s.position), position).
		Where("id = ?", id)
	s.scoped(q.QueryBuilder(), scope)
	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set position in %s: %w", s.table, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrMemberNotFound
	}
	return nil
}

var _ Store = (*TableStore)(nil)
