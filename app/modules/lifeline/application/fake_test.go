package lifelineservice

import (
	"context"

	lifelinedb "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Lifeline Repo
// ------------------------

type FakeLifelineRepo struct {
	trace []string

	ListFunc      func(ctx context.Context, db bun.IDB) ([]lifelinedb.LifelineDefinition, error)
	GetBySlugFunc func(ctx context.Context, db bun.IDB, slug string) (*lifelinedb.LifelineDefinition, error)
	SlugsFunc     func(ctx context.Context, db bun.IDB) (map[string]struct{}, error)
	UpsertFunc    func(ctx context.Context, db bun.IDB, def *lifelinedb.LifelineDefinition) (bool, error)
}

func NewFakeLifelineRepo() *FakeLifelineRepo {
	return &FakeLifelineRepo{trace: []string{}}
}

func (f *FakeLifelineRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeLifelineRepo) List(ctx context.Context, db bun.IDB) ([]lifelinedb.LifelineDefinition, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeLifelineRepo) GetBySlug(ctx context.Context, db bun.IDB, slug string) (*lifelinedb.LifelineDefinition, error) {
	f.record("GetBySlug")
	if f.GetBySlugFunc != nil {
		return f.GetBySlugFunc(ctx, db, slug)
	}
	return nil, lifelinedb.ErrNotFound
}

func (f *FakeLifelineRepo) Slugs(ctx context.Context, db bun.IDB) (map[string]struct{}, error) {
	f.record("Slugs")
	if f.SlugsFunc != nil {
		return f.SlugsFunc(ctx, db)
	}
	return map[string]struct{}{}, nil
}

func (f *FakeLifelineRepo) Upsert(ctx context.Context, db bun.IDB, def *lifelinedb.LifelineDefinition) (bool, error) {
	f.record("Upsert")
	if f.UpsertFunc != nil {
		return f.UpsertFunc(ctx, db, def)
	}
	return true, nil
}

func (f *FakeLifelineRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ lifelinedb.Repository = (*FakeLifelineRepo)(nil)
