package rounddomain

import (
	"slices"

	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
)

// SwitchAfterPassTimeMode moves a time policy to mode.
//
// static -> dynamic synthesizes [max(1,b-2), max(1,b-4), max(1,b-6)] from the
// base time b when no sequence exists; the static value is kept as stale data.
// dynamic -> static drops the sequence so it cannot come back as authoritative.
func SwitchAfterPassTimeMode(tp TimePolicy, mode AfterPassTimeMode) (TimePolicy, error) {
	if !isOneOf(mode, afterPassTimeModes) {
		return TimePolicy{}, apperr.Validation("timePolicy.afterPassTimeMode", "unknown mode %q", mode)
	}
	out := tp.Clone()
	if out.AfterPassTimeMode == mode {
		return out, nil
	}

	out.AfterPassTimeMode = mode
	switch mode {
	case AfterPassTimeDynamic:
		if len(out.AfterPassTime) == 0 {
			out.AfterPassTime = DecayTimes(seedTime(out))
		}
	case AfterPassTimeStatic:
		out.AfterPassTime = nil
	}
	return out, nil
}

// DecayTimes is the default dynamic after-pass sequence for base time b.
func DecayTimes(b int) []int {
	return []int{max(1, b-2), max(1, b-4), max(1, b-6)}
}

// SwitchPassedScoringMode moves a scoring policy to mode.
//
// static -> dynamic synthesizes [s, floor(s*0.8), floor(s*0.6)] where s is the
// static passed score, or the correct score when that is unset.
// dynamic -> static drops the sequence.
func SwitchPassedScoringMode(sp ScoringPolicy, mode PassedScoringMode) (ScoringPolicy, error) {
	if mode != PassedScoringStatic && mode != PassedScoringDynamic {
		return ScoringPolicy{}, apperr.Validation("scoringPolicy.mode", "unknown mode %q", mode)
	}
	out := sp.Clone()
	if out.PassedScoringMode() == mode {
		return out, nil
	}

	switch mode {
	case PassedScoringDynamic:
		s := out.Correct
		if out.CorrectWhenPassed != nil {
			s = *out.CorrectWhenPassed
		}
		out.CorrectWhenPassedMultiple = DecayScores(s)
	case PassedScoringStatic:
		out.CorrectWhenPassedMultiple = nil
	}
	return out, nil
}

// DecayScores is the default dynamic passed-score sequence for score s.
func DecayScores(s int) []int {
	return []int{s, floorDiv(s*4, 5), floorDiv(s*3, 5)}
}

// AddAfterPassTimeLevel appends seconds to a dynamic sequence.
func AddAfterPassTimeLevel(tp TimePolicy, seconds int) (TimePolicy, error) {
	if tp.AfterPassTimeMode != AfterPassTimeDynamic {
		return TimePolicy{}, apperr.Validation("timePolicy.afterPassTimeMode", "levels can only be added in dynamic mode")
	}
	if len(tp.AfterPassTime) >= MaxLevels {
		return TimePolicy{}, apperr.Validation("timePolicy.afterPassTime", "at most %d levels", MaxLevels)
	}
	out := tp.Clone()
	out.AfterPassTime = append(out.AfterPassTime, TimeRange.Clamp(seconds))
	return out, nil
}

// RemoveAfterPassTimeLevel removes the level at index. Removing the last level
// forces static mode: a dynamic mode without levels has no meaning.
func RemoveAfterPassTimeLevel(tp TimePolicy, index int) (TimePolicy, error) {
	if index < 0 || index >= len(tp.AfterPassTime) {
		return TimePolicy{}, apperr.Validation("timePolicy.afterPassTime", "level %d out of range", index)
	}
	out := tp.Clone()
	out.AfterPassTime = slices.Delete(out.AfterPassTime, index, index+1)
	if len(out.AfterPassTime) == 0 {
		out.AfterPassTime = nil
		out.AfterPassTimeMode = AfterPassTimeStatic
	}
	return out, nil
}

// AddPassedScoreLevel appends points to the dynamic passed-score sequence.
// On a static policy this starts the sequence.
func AddPassedScoreLevel(sp ScoringPolicy, points int) (ScoringPolicy, error) {
	if len(sp.CorrectWhenPassedMultiple) >= MaxLevels {
		return ScoringPolicy{}, apperr.Validation("scoringPolicy.correctWhenPassedMultiple", "at most %d levels", MaxLevels)
	}
	out := sp.Clone()
	out.CorrectWhenPassedMultiple = append(out.CorrectWhenPassedMultiple, ScoreRange.Clamp(points))
	return out, nil
}

// RemovePassedScoreLevel removes the level at index; the last removal reverts
// passed scoring to static.
func RemovePassedScoreLevel(sp ScoringPolicy, index int) (ScoringPolicy, error) {
	if index < 0 || index >= len(sp.CorrectWhenPassedMultiple) {
		return ScoringPolicy{}, apperr.Validation("scoringPolicy.correctWhenPassedMultiple", "level %d out of range", index)
	}
	out := sp.Clone()
	out.CorrectWhenPassedMultiple = slices.Delete(out.CorrectWhenPassedMultiple, index, index+1)
	if len(out.CorrectWhenPassedMultiple) == 0 {
		out.CorrectWhenPassedMultiple = nil
	}
	return out, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
