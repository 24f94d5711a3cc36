// Package ordering keeps position columns dense (0..n-1) within a scope.
//
// The service never opens transactions itself: every call takes the caller's
// bun.IDB so a structural change and its renumbering commit together.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/uptrace/bun"
)

// Scope is the collection boundary a dense ordering is maintained in.
type Scope struct {
	Kind string
	Key  string
}

const (
	KindRoundSet = "round_set"
	KindTeams    = "teams"
)

// RoundSet is the scope of rounds belonging to one set.
func RoundSet(setID string) Scope { return Scope{Kind: KindRoundSet, Key: setID} }

// Teams is the single global team scope.
func Teams() Scope { return Scope{Kind: KindTeams} }

func (s Scope) String() string {
	if s.Key == "" {
		return s.Kind
	}
	return s.Kind + ":" + s.Key
}

// Member is one ordered record of a scope.
type Member struct {
	ID        string    `bun:"id"`
	Position  int       `bun:"position"`
	CreatedAt time.Time `bun:"created_at"`
}

// Store is the storage a Service renumbers through.
type Store interface {
	// Count returns the number of members in scope.
	Count(ctx context.Context, db bun.IDB, scope Scope) (int, error)
	// ListMembers returns the members ordered by position, created_at, id.
	ListMembers(ctx context.Context, db bun.IDB, scope Scope) ([]Member, error)
	// CloseGap decrements every position greater than deletedPosition.
	CloseGap(ctx context.Context, db bun.IDB, scope Scope, deletedPosition int) error
	// SetPosition writes one member's position.
	SetPosition(ctx context.Context, db bun.IDB, scope Scope, id string, position int) error
}

// Service maintains the dense-sequence invariant.
type Service struct {
	store Store
}

// NewService creates an ordering service over store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// OnCreate returns the position a new member of scope is appended at.
func (s *Service) OnCreate(ctx context.Context, db bun.IDB, scope Scope) (int, error) {
	n, err := s.store.Count(ctx, db, scope)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", scope, err)
	}
	return n, nil
}

// OnDelete closes the gap left by a member removed from deletedPosition. It must
// run in the same transaction as the delete.
func (s *Service) OnDelete(ctx context.Context, db bun.IDB, scope Scope, deletedPosition int) error {
	if err := s.store.CloseGap(ctx, db, scope, deletedPosition); err != nil {
		return fmt.Errorf("close gap in %s at %d: %w", scope, deletedPosition, err)
	}
	return nil
}

// Reorder assigns position = index for each id of orderedIDs. orderedIDs must be
// exactly the ids currently in scope, each once; otherwise an ordering error is
// returned before anything is written.
func (s *Service) Reorder(ctx context.Context, db bun.IDB, scope Scope, orderedIDs []string) error {
	members, err := s.store.ListMembers(ctx, db, scope)
	if err != nil {
		return fmt.Errorf("list %s: %w", scope, err)
	}
	if err := ValidateOrder(memberIDs(members), orderedIDs); err != nil {
		return err
	}

	current := make(map[string]int, len(members))
	for _, m := range members {
		current[m.ID] = m.Position
	}
	for i, id := range orderedIDs {
		if current[id] == i {
			continue
		}
		if err := s.store.SetPosition(ctx, db, scope, id, i); err != nil {
			return fmt.Errorf("set position of %s in %s: %w", id, scope, err)
		}
	}
	return nil
}

// Verify returns an ordering error when the positions of scope are not exactly
// 0..n-1.
func (s *Service) Verify(ctx context.Context, db bun.IDB, scope Scope) error {
	members, err := s.store.ListMembers(ctx, db, scope)
	if err != nil {
		return fmt.Errorf("list %s: %w", scope, err)
	}
	for i, m := range members {
		if m.Position != i {
			return apperr.Ordering("%s is not dense: %s has position %d, expected %d", scope, m.ID, m.Position, i)
		}
	}
	return nil
}

// Compact renumbers scope in its current order and returns how many members moved.
func (s *Service) Compact(ctx context.Context, db bun.IDB, scope Scope) (int, error) {
	members, err := s.store.ListMembers(ctx, db, scope)
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", scope, err)
	}
	moved := 0
	for i, m := range members {
		if m.Position == i {
			continue
		}
		if err := s.store.SetPosition(ctx, db, scope, m.ID, i); err != nil {
			return moved, fmt.Errorf("set position of %s in %s: %w", m.ID, scope, err)
		}
		moved++
	}
	return moved, nil
}

// Report is the outcome of checking one scope.
type Report struct {
	Scope   string `json:"scope"`
	Problem string `json:"problem,omitempty"`
	Moved   int    `json:"moved"`
}

// Check verifies scope and, when repair is set, compacts it if it is not dense.
func (s *Service) Check(ctx context.Context, db bun.IDB, scope Scope, repair bool) (Report, error) {
	report := Report{Scope: scope.String()}
	err := s.Verify(ctx, db, scope)
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, apperr.ErrOrdering) {
		return report, err
	}
	report.Problem = err.Error()
	if !repair {
		return report, nil
	}
	moved, err := s.Compact(ctx, db, scope)
	if err != nil {
		return report, err
	}
	report.Moved = moved
	return report, nil
}

// ValidateOrder checks that ordered is a permutation of current.
func ValidateOrder(current, ordered []string) error {
	inScope := make(map[string]struct{}, len(current))
	for _, id := range current {
		inScope[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(ordered))
	for _, id := range ordered {
		if _, ok := inScope[id]; !ok {
			return apperr.Ordering("id %q is not in scope", id)
		}
		if _, dup := seen[id]; dup {
			return apperr.Ordering("id %q appears more than once", id)
		}
		seen[id] = struct{}{}
	}
	if len(seen) != len(inScope) {
		return apperr.Ordering("expected %d ids, got %d", len(inScope), len(ordered))
	}
	return nil
}

func memberIDs(members []Member) []string {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return ids
}
