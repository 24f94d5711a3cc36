package rounddomain

import (
	"testing"

	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwitchAfterPassTimeModeToDynamicSynthesizesDecay(t *testing.T) {
	tp := TimePolicy{BaseTime: 10, AfterPassTimeMode: AfterPassTimeStatic}

	got, err := SwitchAfterPassTimeMode(tp, AfterPassTimeDynamic)
	require.NoError(t, err)

	assert.Equal(t, AfterPassTimeDynamic, got.AfterPassTimeMode)
	assert.Equal(t, []int{8, 6, 4}, got.AfterPassTime)
	assert.Nil(t, tp.AfterPassTime, "input must not change")
}

func TestSwitchAfterPassTimeModeFloorsAtOne(t *testing.T) {
	tests := []struct {
		name string
		tp   TimePolicy
		want []int
	}{
		{"short base", TimePolicy{BaseTime: 5, AfterPassTimeMode: AfterPassTimeStatic}, []int{3, 1, 1}},
		{"unlimited base uses static time", TimePolicy{BaseTime: Unlimited, AfterPassTimeMode: AfterPassTimeStatic, StaticAfterPassTime: Ptr(20)}, []int{18, 16, 14}},
		{"unlimited base without static time", TimePolicy{BaseTime: Unlimited, AfterPassTimeMode: AfterPassTimeStatic}, []int{8, 6, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SwitchAfterPassTimeMode(tt.tp, AfterPassTimeDynamic)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.AfterPassTime)
		})
	}
}

func TestSwitchAfterPassTimeModeKeepsExistingSequence(t *testing.T) {
	tp := TimePolicy{BaseTime: 10, AfterPassTimeMode: AfterPassTimeStatic, AfterPassTime: []int{7}}

	got, err := SwitchAfterPassTimeMode(tp, AfterPassTimeDynamic)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, got.AfterPassTime)
}

func TestSwitchAfterPassTimeModeToStaticClearsSequence(t *testing.T) {
	tp := TimePolicy{BaseTime: 10, AfterPassTimeMode: AfterPassTimeDynamic, StaticAfterPassTime: Ptr(4), AfterPassTime: []int{8, 6, 4}}

	got, err := SwitchAfterPassTimeMode(tp, AfterPassTimeStatic)
	require.NoError(t, err)

	assert.Equal(t, AfterPassTimeStatic, got.AfterPassTimeMode)
	assert.Nil(t, got.AfterPassTime)
	assert.Equal(t, 4, *got.StaticAfterPassTime)

	back, err := SwitchAfterPassTimeMode(got, AfterPassTimeDynamic)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 6, 4}, back.AfterPassTime, "sequence is regenerated, not resurrected")
}

func TestSwitchAfterPassTimeModeRejectsUnknownMode(t *testing.T) {
	_, err := SwitchAfterPassTimeMode(TimePolicy{BaseTime: 10, AfterPassTimeMode: AfterPassTimeStatic}, "random")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestSwitchPassedScoringMode(t *testing.T) {
	tests := []struct {
		name string
		sp   ScoringPolicy
		want []int
	}{
		{"uses static passed score", ScoringPolicy{Correct: 20, CorrectWhenPassed: Ptr(10)}, []int{10, 8, 6}},
		{"falls back to correct", ScoringPolicy{Correct: 15}, []int{15, 12, 9}},
		{"negative score floors down", ScoringPolicy{Correct: 10, CorrectWhenPassed: Ptr(-7)}, []int{-7, -6, -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SwitchPassedScoringMode(tt.sp, PassedScoringDynamic)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.CorrectWhenPassedMultiple)
			assert.Equal(t, PassedScoringDynamic, got.PassedScoringMode())
		})
	}

	dynamic := ScoringPolicy{Correct: 10, CorrectWhenPassed: Ptr(5), CorrectWhenPassedMultiple: []int{9, 7}}
	got, err := SwitchPassedScoringMode(dynamic, PassedScoringStatic)
	require.NoError(t, err)
	assert.Nil(t, got.CorrectWhenPassedMultiple)
	assert.Equal(t, 5, *got.CorrectWhenPassed)

	_, err = SwitchPassedScoringMode(dynamic, "weird")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRemovingLastTimeLevelForcesStatic(t *testing.T) {
	tp := TimePolicy{BaseTime: 10, AfterPassTimeMode: AfterPassTimeDynamic, AfterPassTime: []int{8, 6}}

	got, err := RemoveAfterPassTimeLevel(tp, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{6}, got.AfterPassTime)
	assert.Equal(t, AfterPassTimeDynamic, got.AfterPassTimeMode)
	assert.Equal(t, []int{8, 6}, tp.AfterPassTime)

	got, err = RemoveAfterPassTimeLevel(got, 0)
	require.NoError(t, err)
	assert.Nil(t, got.AfterPassTime)
	assert.Equal(t, AfterPassTimeStatic, got.AfterPassTimeMode)

	_, err = RemoveAfterPassTimeLevel(got, 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRemovingLastScoreLevelRevertsToStatic(t *testing.T) {
	sp := ScoringPolicy{Correct: 10, CorrectWhenPassedMultiple: []int{10}}

	got, err := RemovePassedScoreLevel(sp, 0)
	require.NoError(t, err)
	assert.Nil(t, got.CorrectWhenPassedMultiple)
	assert.Equal(t, PassedScoringStatic, got.PassedScoringMode())

	_, err = RemovePassedScoreLevel(sp, 3)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestAddLevels(t *testing.T) {
	tp := TimePolicy{BaseTime: 10, AfterPassTimeMode: AfterPassTimeDynamic, AfterPassTime: []int{8}}
	got, err := AddAfterPassTimeLevel(tp, 900)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 600}, got.AfterPassTime)

	_, err = AddAfterPassTimeLevel(TimePolicy{BaseTime: 10, AfterPassTimeMode: AfterPassTimeStatic}, 5)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	full := TimePolicy{BaseTime: 10, AfterPassTimeMode: AfterPassTimeDynamic, AfterPassTime: make([]int, MaxLevels)}
	_, err = AddAfterPassTimeLevel(full, 5)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	sp, err := AddPassedScoreLevel(ScoringPolicy{Correct: 10}, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, sp.CorrectWhenPassedMultiple)
	assert.Equal(t, PassedScoringDynamic, sp.PassedScoringMode())
}

func TestDecaySequences(t *testing.T) {
	assert.Equal(t, []int{8, 6, 4}, DecayTimes(10))
	assert.Equal(t, []int{1, 1, 1}, DecayTimes(2))
	assert.Equal(t, []int{10, 8, 6}, DecayScores(10))
	assert.Equal(t, []int{0, 0, 0}, DecayScores(0))
	assert.Equal(t, []int{-5, -4, -3}, DecayScores(-5))
}
