package roundservice

import (
	"context"
	"slices"
	"sort"
	"time"

	lifelinedb "github.com/Black-And-White-Club/quiz-host/app/modules/lifeline/infrastructure/repositories"
	rounddb "github.com/Black-And-White-Club/quiz-host/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/ordering"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Round Repo
// ------------------------

// FakeRoundRepo keeps rounds in memory. Func fields override a method.
type FakeRoundRepo struct {
	trace  []string
	rounds map[string]*rounddb.Round
	clock  time.Time

	GetFunc             func(ctx context.Context, db bun.IDB, id string) (*rounddb.Round, error)
	ListBySetFunc       func(ctx context.Context, db bun.IDB, setID string) ([]rounddb.Round, error)
	ListSetIDsFunc      func(ctx context.Context, db bun.IDB) ([]string, error)
	CountByCategoryFunc func(ctx context.Context, db bun.IDB, categoryID string) (int, error)
	InsertFunc          func(ctx context.Context, db bun.IDB, round *rounddb.Round) error
	UpdateFunc          func(ctx context.Context, db bun.IDB, id string, updates *rounddb.UpdateFields) error
	DeleteFunc          func(ctx context.Context, db bun.IDB, id string) error
}

func NewFakeRoundRepo() *FakeRoundRepo {
	return &FakeRoundRepo{
		trace:  []string{},
		rounds: map[string]*rounddb.Round{},
		clock:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *FakeRoundRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRoundRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRoundRepo) Get(ctx context.Context, db bun.IDB, id string) (*rounddb.Round, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, db, id)
	}
	r, ok := f.rounds[id]
	if !ok {
		return nil, rounddb.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *FakeRoundRepo) ListBySet(ctx context.Context, db bun.IDB, setID string) ([]rounddb.Round, error) {
	f.record("ListBySet")
	if f.ListBySetFunc != nil {
		return f.ListBySetFunc(ctx, db, setID)
	}
	out := []rounddb.Round{}
	for _, r := range f.rounds {
		if r.SetID == setID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *FakeRoundRepo) ListSetIDs(ctx context.Context, db bun.IDB) ([]string, error) {
	f.record("ListSetIDs")
	if f.ListSetIDsFunc != nil {
		return f.ListSetIDsFunc(ctx, db)
	}
	var ids []string
	for _, r := range f.rounds {
		if !slices.Contains(ids, r.SetID) {
			ids = append(ids, r.SetID)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (f *FakeRoundRepo) CountByCategory(ctx context.Context, db bun.IDB, categoryID string) (int, error) {
	f.record("CountByCategory")
	if f.CountByCategoryFunc != nil {
		return f.CountByCategoryFunc(ctx, db, categoryID)
	}
	n := 0
	for _, r := range f.rounds {
		if r.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (f *FakeRoundRepo) Insert(ctx context.Context, db bun.IDB, round *rounddb.Round) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, round)
	}
	f.clock = f.clock.Add(time.Second)
	round.CreatedAt = f.clock
	round.UpdatedAt = f.clock
	cp := *round
	f.rounds[round.ID] = &cp
	return nil
}

func (f *FakeRoundRepo) Update(ctx context.Context, db bun.IDB, id string, updates *rounddb.UpdateFields) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, id, updates)
	}
	r, ok := f.rounds[id]
	if !ok {
		return rounddb.ErrNoRowsAffected
	}
	if updates.CategoryID != nil {
		r.CategoryID = *updates.CategoryID
	}
	if updates.Name != nil {
		r.Name = *updates.Name
	}
	if updates.Description != nil {
		r.Description = *updates.Description
	}
	if updates.Configuration != nil {
		r.Configuration = rounddb.Configuration{RoundConfiguration: updates.Configuration.Clone()}
	}
	if updates.ConfirmationRequired != nil {
		r.ConfirmationRequired = *updates.ConfirmationRequired
	}
	return nil
}

func (f *FakeRoundRepo) Delete(ctx context.Context, db bun.IDB, id string) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, id)
	}
	if _, ok := f.rounds[id]; !ok {
		return rounddb.ErrNoRowsAffected
	}
	delete(f.rounds, id)
	return nil
}

// positionsOf returns id -> position for setID.
func (f *FakeRoundRepo) positionsOf(setID string) map[string]int {
	out := map[string]int{}
	for _, r := range f.rounds {
		if r.SetID == setID {
			out[r.ID] = r.Position
		}
	}
	return out
}

var _ rounddb.Repository = (*FakeRoundRepo)(nil)

// ------------------------
// Fake Ordering Store
// ------------------------

// fakeOrderingStore renumbers the rounds held by a FakeRoundRepo.
type fakeOrderingStore struct {
	repo *FakeRoundRepo

	CloseGapErr error
}

func (s *fakeOrderingStore) Count(_ context.Context, _ bun.IDB, scope ordering.Scope) (int, error) {
	return len(s.repo.positionsOf(scope.Key)), nil
}

func (s *fakeOrderingStore) ListMembers(ctx context.Context, db bun.IDB, scope ordering.Scope) ([]ordering.Member, error) {
	rounds, err := s.repo.ListBySet(ctx, db, scope.Key)
	if err != nil {
		return nil, err
	}
	members := make([]ordering.Member, len(rounds))
	for i, r := range rounds {
		members[i] = ordering.Member{ID: r.ID, Position: r.Position, CreatedAt: r.CreatedAt}
	}
	return members, nil
}

func (s *fakeOrderingStore) CloseGap(_ context.Context, _ bun.IDB, scope ordering.Scope, deletedPosition int) error {
	if s.CloseGapErr != nil {
		return s.CloseGapErr
	}
	for _, r := range s.repo.rounds {
		if r.SetID == scope.Key && r.Position > deletedPosition {
			r.Position--
		}
	}
	return nil
}

func (s *fakeOrderingStore) SetPosition(_ context.Context, _ bun.IDB, _ ordering.Scope, id string, position int) error {
	r, ok := s.repo.rounds[id]
	if !ok {
		return ordering.ErrMemberNotFound
	}
	r.Position = position
	return nil
}

var _ ordering.Store = (*fakeOrderingStore)(nil)

// ------------------------
// Fake Category Repo
// ------------------------

type FakeCategoryRepo struct {
	trace      []string
	categories map[string]*rounddb.RoundCategory

	ListFunc   func(ctx context.Context, db bun.IDB) ([]rounddb.RoundCategory, error)
	GetFunc    func(ctx context.Context, db bun.IDB, id string) (*rounddb.RoundCategory, error)
	InsertFunc func(ctx context.Context, db bun.IDB, category *rounddb.RoundCategory) error
	UpdateFunc func(ctx context.Context, db bun.IDB, id string, updates *rounddb.CategoryUpdateFields) error
}

func NewFakeCategoryRepo(categories ...rounddb.RoundCategory) *FakeCategoryRepo {
	f := &FakeCategoryRepo{trace: []string{}, categories: map[string]*rounddb.RoundCategory{}}
	for i := range categories {
		c := categories[i]
		f.categories[c.ID] = &c
	}
	return f
}

func (f *FakeCategoryRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeCategoryRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeCategoryRepo) List(ctx context.Context, db bun.IDB) ([]rounddb.RoundCategory, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	out := []rounddb.RoundCategory{}
	for _, c := range f.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *FakeCategoryRepo) Get(ctx context.Context, db bun.IDB, id string) (*rounddb.RoundCategory, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, db, id)
	}
	c, ok := f.categories[id]
	if !ok {
		return nil, rounddb.ErrNotFound
	}
	cp := *c
	cp.DefaultConfiguration.RoundConfiguration = c.DefaultConfiguration.Clone()
	return &cp, nil
}

func (f *FakeCategoryRepo) GetByName(_ context.Context, _ bun.IDB, name string) (*rounddb.RoundCategory, error) {
	f.record("GetByName")
	for _, c := range f.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, rounddb.ErrNotFound
}

func (f *FakeCategoryRepo) Insert(ctx context.Context, db bun.IDB, category *rounddb.RoundCategory) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, category)
	}
	cp := *category
	f.categories[category.ID] = &cp
	return nil
}

func (f *FakeCategoryRepo) Update(ctx context.Context, db bun.IDB, id string, updates *rounddb.CategoryUpdateFields) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, id, updates)
	}
	c, ok := f.categories[id]
	if !ok {
		return rounddb.ErrNoRowsAffected
	}
	if updates.Name != nil {
		c.Name = *updates.Name
	}
	if updates.DefaultConfiguration != nil {
		c.DefaultConfiguration = rounddb.Configuration{RoundConfiguration: updates.DefaultConfiguration.Clone()}
	}
	return nil
}

func (f *FakeCategoryRepo) Delete(_ context.Context, _ bun.IDB, id string) error {
	f.record("Delete")
	if _, ok := f.categories[id]; !ok {
		return rounddb.ErrNoRowsAffected
	}
	delete(f.categories, id)
	return nil
}

var _ rounddb.CategoryRepository = (*FakeCategoryRepo)(nil)

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

// reset forgets everything published so far.
func (p *fakePublisher) reset() {
	p.topics = nil
	p.payloads = nil
}
