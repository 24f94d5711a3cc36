package roundmigrations

import (
	"context"
	"fmt"

	rounddb "github.com/Black-And-White-Club/quiz-host/app/modules/round/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			// Positions are not unique: closing a gap shifts rows through
			// transient duplicates.
			_, err := tx.NewCreateTable().
				Model((*rounddb.Round)(nil)).
				IfNotExists().
				ForeignKey(`("category_id") REFERENCES "round_categories" ("id") ON DELETE RESTRICT`).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create rounds table: %w", err)
			}

			_, err = tx.NewCreateIndex().
				Model((*rounddb.Round)(nil)).
				Index("idx_rounds_set_position").
				IfNotExists().
				Column("set_id", "position").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create rounds set index: %w", err)
			}

			_, err = tx.NewCreateIndex().
				Model((*rounddb.Round)(nil)).
				Index("idx_rounds_category").
				IfNotExists().
				Column("category_id").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create rounds category index: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().
			Model((*rounddb.Round)(nil)).
			IfExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop rounds table: %w", err)
		}
		return nil
	})
}
