package teammigrations

import (
	"context"
	"fmt"

	teamdb "github.com/Black-And-White-Club/quiz-host/app/modules/team/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			_, err := tx.NewCreateTable().
				Model((*teamdb.Team)(nil)).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create teams table: %w", err)
			}

			_, err = tx.NewCreateIndex().
				Model((*teamdb.Team)(nil)).
				Index("idx_teams_display_order").
				IfNotExists().
				Column("display_order").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create teams display order index: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().
			Model((*teamdb.Team)(nil)).
			IfExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop teams table: %w", err)
		}
		return nil
	})
}
