package teamservice

import (
	"context"
	"sort"
	"strings"
	"time"

	lifelinedb "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/infrastructure/repositories"
	teamdb "github.com/Black-And-White-Club/quiz-host/app/modules/team/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/ordering"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Team Repo
// ------------------------

// FakeTeamRepo keeps teams in memory. Func fields override a method.
type FakeTeamRepo struct {
	trace []string
	teams map[string]*teamdb.Team
	clock time.Time

	GetFunc       func(ctx context.Context, db bun.IDB, id string) (*teamdb.Team, error)
	GetBySlugFunc func(ctx context.Context, db bun.IDB, slug string) (*teamdb.Team, error)
	ListFunc      func(ctx context.Context, db bun.IDB) ([]teamdb.Team, error)
	InsertFunc    func(ctx context.Context, db bun.IDB, team *teamdb.Team) error
	UpdateFunc    func(ctx context.Context, db bun.IDB, id string, updates *teamdb.UpdateFields) error
}

func NewFakeTeamRepo() *FakeTeamRepo {
	return &FakeTeamRepo{
		trace: []string{},
		teams: map[string]*teamdb.Team{},
		clock: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *FakeTeamRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeTeamRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeTeamRepo) Get(ctx context.Context, db bun.IDB, id string) (*teamdb.Team, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, db, id)
	}
	t, ok := f.teams[id]
	if !ok {
		return nil, teamdb.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *FakeTeamRepo) GetBySlug(ctx context.Context, db bun.IDB, slug string) (*teamdb.Team, error) {
	f.record("GetBySlug")
	if f.GetBySlugFunc != nil {
		return f.GetBySlugFunc(ctx, db, slug)
	}
	for _, t := range f.teams {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, teamdb.ErrNotFound
}

func (f *FakeTeamRepo) List(ctx context.Context, db bun.IDB) ([]teamdb.Team, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	out := []teamdb.Team{}
	for _, t := range f.teams {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *FakeTeamRepo) SlugsWithPrefix(_ context.Context, _ bun.IDB, prefix string) (map[string]string, error) {
	f.record("SlugsWithPrefix")
	out := map[string]string{}
	for _, t := range f.teams {
		if t.Slug == prefix || strings.HasPrefix(t.Slug, prefix+"-") {
			out[t.Slug] = t.ID
		}
	}
	return out, nil
}

func (f *FakeTeamRepo) Insert(ctx context.Context, db bun.IDB, team *teamdb.Team) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, team)
	}
	f.clock = f.clock.Add(time.Second)
	team.CreatedAt = f.clock
	team.UpdatedAt = f.clock
	cp := *team
	f.teams[team.ID] = &cp
	return nil
}

func (f *FakeTeamRepo) Update(ctx context.Context, db bun.IDB, id string, updates *teamdb.UpdateFields) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, id, updates)
	}
	t, ok := f.teams[id]
	if !ok {
		return teamdb.ErrNoRowsAffected
	}
	if updates.Name != nil {
		t.Name = *updates.Name
	}
	if updates.Slug != nil {
		t.Slug = *updates.Slug
	}
	if updates.Color != nil {
		t.Color = *updates.Color
	}
	if updates.Lifelines != nil {
		t.Lifelines = *updates.Lifelines
	}
	return nil
}

func (f *FakeTeamRepo) Delete(_ context.Context, _ bun.IDB, id string) error {
	f.record("Delete")
	if _, ok := f.teams[id]; !ok {
		return teamdb.ErrNoRowsAffected
	}
	delete(f.teams, id)
	return nil
}

// displayOrders returns id -> display order.
func (f *FakeTeamRepo) displayOrders() map[string]int {
	out := map[string]int{}
	for _, t := range f.teams {
		out[t.ID] = t.DisplayOrder
	}
	return out
}

var _ teamdb.Repository = (*FakeTeamRepo)(nil)

// ------------------------
// Fake Ordering Store
// ------------------------

// fakeOrderingStore renumbers the teams held by a FakeTeamRepo.
type fakeOrderingStore struct {
	repo *FakeTeamRepo
}

func (s *fakeOrderingStore) Count(context.Context, bun.IDB, ordering.Scope) (int, error) {
	return len(s.repo.teams), nil
}

func (s *fakeOrderingStore) ListMembers(ctx context.Context, db bun.IDB, _ ordering.Scope) ([]ordering.Member, error) {
	teams, err := s.repo.List(ctx, db)
	if err != nil {
		return nil, err
	}
	members := make([]ordering.Member, len(teams))
	for i, t := range teams {
		members[i] = ordering.Member{ID: t.ID, Position: t.DisplayOrder, CreatedAt: t.CreatedAt}
	}
	return members, nil
}

func (s *fakeOrderingStore) CloseGap(_ context.Context, _ bun.IDB, _ ordering.Scope, deletedPosition int) error {
	for _, t := range s.repo.teams {
		if t.DisplayOrder > deletedPosition {
			t.DisplayOrder--
		}
	}
	return nil
}

func (s *fakeOrderingStore) SetPosition(_ context.Context, _ bun.IDB, _ ordering.Scope, id string, position int) error {
	t, ok := s.repo.teams[id]
	if !ok {
		return ordering.ErrMemberNotFound
	}
	t.DisplayOrder = position
	return nil
}

var _ ordering.Store = (*fakeOrderingStore)(nil)

// ------------------------
// Fake Lifeline Repo
// ------------------------

type FakeLifelineRepo struct {
	slugs map[string]struct{}

	SlugsErr error
}

func NewFakeLifelineRepo(slugs ...string) *FakeLifelineRepo {
	f := &FakeLifelineRepo{slugs: map[string]struct{}{}}
	for _, s := range slugs {
		f.slugs[s] = struct{}{}
	}
	return f
}

func (f *FakeLifelineRepo) List(context.Context, bun.IDB) ([]lifelinedb.LifelineDefinition, error) {
	return nil, nil
}

func (f *FakeLifelineRepo) GetBySlug(context.Context, bun.IDB, string) (*lifelinedb.LifelineDefinition, error) {
	return nil, lifelinedb.ErrNotFound
}

func (f *FakeLifelineRepo) Slugs(context.Context, bun.IDB) (map[string]struct{}, error) {
	if f.SlugsErr != nil {
		return nil, f.SlugsErr
	}
	return f.slugs, nil
}

func (f *FakeLifelineRepo) Upsert(context.Context, bun.IDB, *lifelinedb.LifelineDefinition) (bool, error) {
	return false, nil
}

var _ lifelinedb.Repository = (*FakeLifelineRepo)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type fakePublisher struct {
	topics   []string
	payloads []any
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, topic string, payload any) error {
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return nil
}
