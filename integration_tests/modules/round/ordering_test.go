package roundintegrationtests

import (
	"testing"

	roundservice "github.com/Black-And-White-Club/quiz-host/app/modules/round/application"
	rounddb "github.com/Black-And-White-Club/quiz-host/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/integration_tests/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positionsOf(rounds []rounddb.Round) map[string]int {
	out := make(map[string]int, len(rounds))
	for _, r := range rounds {
		out[r.ID] = r.Position
	}
	return out
}

func requireDense(t *testing.T, rounds []rounddb.Round) {
	t.Helper()
	for i, r := range rounds {
		require.Equalf(t, i, r.Position, "round %s", r.ID)
	}
}

func createRounds(t *testing.T, env *testutils.TestEnvironment, gen *testutils.TestDataGenerator, setID string, n int) []string {
	t.Helper()
	categories, err := env.App.Modules.Round.CategoryService.ListRoundCategories(env.Ctx)
	require.NoError(t, err)
	require.NotEmpty(t, categories, "seeded catalogue has categories")

	ids := make([]string, n)
	for i := range ids {
		r, err := env.App.Modules.Round.RoundService.CreateRound(env.Ctx, roundservice.CreateRoundRequest{
			SetID:      setID,
			CategoryID: categories[i%len(categories)].ID,
			Name:       gen.RoundName(),
		})
		require.NoError(t, err)
		require.Equal(t, i, r.Position)
		ids[i] = r.ID
	}
	return ids
}

func TestRoundOrderingOnPostgres(t *testing.T) {
	env := GetTestEnv(t)
	gen := testutils.NewTestDataGenerator(7)
	svc := env.App.Modules.Round.RoundService

	setA, setB := gen.SetID(), gen.SetID()
	a := createRounds(t, env, gen, setA, 6)
	b := createRounds(t, env, gen, setB, 2)

	require.NoError(t, svc.DeleteRound(env.Ctx, a[0]))
	require.NoError(t, svc.DeleteRound(env.Ctx, a[3]))

	rounds, err := svc.ListRounds(env.Ctx, setA)
	require.NoError(t, err)
	requireDense(t, rounds)
	assert.Equal(t, map[string]int{a[1]: 0, a[2]: 1, a[4]: 2, a[5]: 3}, positionsOf(rounds))

	others, err := svc.ListRounds(env.Ctx, setB)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{b[0]: 0, b[1]: 1}, positionsOf(others), "other sets are untouched")

	shuffled := gen.Shuffle([]string{a[1], a[2], a[4], a[5]})
	rounds, err = svc.ReorderRounds(env.Ctx, setA, shuffled)
	require.NoError(t, err)
	requireDense(t, rounds)
	for i, r := range rounds {
		assert.Equal(t, shuffled[i], r.ID)
	}

	reports, err := svc.CheckPositions(env.Ctx, false)
	require.NoError(t, err)
	for _, report := range reports {
		assert.Empty(t, report.Problem, report.Scope)
	}
}

func TestRoundReorderRejectionLeavesOrderIntact(t *testing.T) {
	env := GetTestEnv(t)
	gen := testutils.NewTestDataGenerator(11)
	svc := env.App.Modules.Round.RoundService

	setID := gen.SetID()
	ids := createRounds(t, env, gen, setID, 3)

	tests := []struct {
		name    string
		ordered []string
	}{
		{name: "duplicate", ordered: []string{ids[0], ids[0], ids[1]}},
		{name: "missing", ordered: []string{ids[2], ids[1]}},
		{name: "foreign", ordered: []string{ids[2], ids[1], "not-a-round"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ReorderRounds(env.Ctx, setID, tt.ordered)
			assert.ErrorIs(t, err, apperr.ErrOrdering)
		})
	}

	rounds, err := svc.ListRounds(env.Ctx, setID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{ids[0]: 0, ids[1]: 1, ids[2]: 2}, positionsOf(rounds))
}

func TestRoundCheckPositionsRepairsGaps(t *testing.T) {
	env := GetTestEnv(t)
	gen := testutils.NewTestDataGenerator(13)
	svc := env.App.Modules.Round.RoundService

	setID := gen.SetID()
	ids := createRounds(t, env, gen, setID, 3)

	// A raw delete skips the gap-closing step.
	_, err := env.App.DB.ExecContext(env.Ctx, "DELETE FROM rounds WHERE id = ?", ids[0])
	require.NoError(t, err)

	reports, err := svc.CheckPositions(env.Ctx, false)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.NotEmpty(t, reports[0].Problem)

	reports, err = svc.CheckPositions(env.Ctx, true)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 2, reports[0].Moved)

	rounds, err := svc.ListRounds(env.Ctx, setID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{ids[1]: 0, ids[2]: 1}, positionsOf(rounds))
}

func TestDeleteReferencedCategory(t *testing.T) {
	env := GetTestEnv(t)
	gen := testutils.NewTestDataGenerator(17)

	createRounds(t, env, gen, gen.SetID(), 1)
	categories, err := env.App.Modules.Round.CategoryService.ListRoundCategories(env.Ctx)
	require.NoError(t, err)

	err = env.App.Modules.Round.CategoryService.DeleteRoundCategory(env.Ctx, categories[0].ID)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = env.App.Modules.Round.CategoryService.GetRoundCategory(env.Ctx, categories[0].ID)
	assert.NoError(t, err)
}
