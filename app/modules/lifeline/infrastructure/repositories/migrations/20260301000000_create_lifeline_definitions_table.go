package lifelinemigrations

import (
	"context"
	"fmt"

	lifelinedb "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().
			Model((*lifelinedb.LifelineDefinition)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create lifeline_definitions table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().
			Model((*lifelinedb.LifelineDefinition)(nil)).
			IfExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop lifeline_definitions table: %w", err)
		}
		return nil
	})
}
