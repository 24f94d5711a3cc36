package rounddomain

import (
	"strings"

	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
)

// Range is an inclusive [Min, Max] bound for a numeric policy field.
type Range struct {
	Min, Max int
}

// Clamp pins v into the range.
func (r Range) Clamp(v int) int {
	return min(max(v, r.Min), r.Max)
}

// ClampQuota is Clamp that lets the Unlimited sentinel through.
func (r Range) ClampQuota(v int) int {
	if v == Unlimited {
		return v
	}
	return r.Clamp(v)
}

var (
	TimeRange     = Range{Min: 1, Max: 600}
	HintRange     = Range{Min: 0, Max: 20}
	PassRange     = Range{Min: 0, Max: 99}
	LifelineRange = Range{Min: 0, Max: 99}
	ScoreRange    = Range{Min: -1000, Max: 1000}
)

// MaxLevels caps the length of generated and stored decay sequences.
const MaxLevels = 10

// DefaultAfterPassTime seeds the after-pass time when the base time is unlimited.
const DefaultAfterPassTime = 10

// Normalize clamps numeric fields into their declared ranges and rejects enum
// values outside their closed sets. Out-of-range numbers are never an error.
// The input is not modified.
func Normalize(cfg RoundConfiguration) (RoundConfiguration, error) {
	out := cfg.Clone()

	tp, err := normalizeTime(out.TimePolicy)
	if err != nil {
		return RoundConfiguration{}, err
	}
	out.TimePolicy = tp
	out.PassPolicy = normalizePass(out.PassPolicy)
	out.ScoringPolicy = normalizeScoring(out.ScoringPolicy)
	out.HintPolicy = normalizeHint(out.HintPolicy)

	if err := validateQuestionFormat(out.QuestionFormat); err != nil {
		return RoundConfiguration{}, err
	}
	if !isOneOf(out.AnswerPolicy.Mode, answerModes) {
		return RoundConfiguration{}, apperr.Validation("answerPolicy.mode", "unknown answer mode %q", out.AnswerPolicy.Mode)
	}

	lifelines, err := normalizeLifelines(out.AllowedLifelines)
	if err != nil {
		return RoundConfiguration{}, err
	}
	out.AllowedLifelines = lifelines
	return out, nil
}

func normalizeTime(tp TimePolicy) (TimePolicy, error) {
	tp.BaseTime = TimeRange.ClampQuota(tp.BaseTime)

	switch tp.AfterPassTimeMode {
	case AfterPassTimeStatic:
		// A missing static time reads as the base time.
		if tp.StaticAfterPassTime != nil {
			tp.StaticAfterPassTime = Ptr(TimeRange.Clamp(*tp.StaticAfterPassTime))
		}
	case AfterPassTimeDynamic:
		if len(tp.AfterPassTime) == 0 {
			return TimePolicy{}, apperr.Validation("timePolicy.afterPassTime", "dynamic mode requires at least one level")
		}
		tp.AfterPassTime = clampLevels(tp.AfterPassTime, TimeRange)
	default:
		return TimePolicy{}, apperr.Validation("timePolicy.afterPassTimeMode", "unknown mode %q", tp.AfterPassTimeMode)
	}
	return tp, nil
}

func normalizeScoring(sp ScoringPolicy) ScoringPolicy {
	sp.Correct = ScoreRange.Clamp(sp.Correct)
	sp.Incorrect = ScoreRange.Clamp(sp.Incorrect)
	if sp.Pass != nil {
		sp.Pass = Ptr(ScoreRange.Clamp(*sp.Pass))
	}
	if sp.CorrectWhenPassed != nil {
		sp.CorrectWhenPassed = Ptr(ScoreRange.Clamp(*sp.CorrectWhenPassed))
	}
	if len(sp.CorrectWhenPassedMultiple) == 0 {
		sp.CorrectWhenPassedMultiple = nil
	} else {
		sp.CorrectWhenPassedMultiple = clampLevels(sp.CorrectWhenPassedMultiple, ScoreRange)
	}
	return sp
}

func normalizePass(pp PassPolicy) PassPolicy {
	if pp.MaxPasses != nil {
		pp.MaxPasses = Ptr(PassRange.ClampQuota(*pp.MaxPasses))
	}
	return pp
}

func normalizeHint(hp HintPolicy) HintPolicy {
	if hp.MaxHints != nil {
		hp.MaxHints = Ptr(HintRange.ClampQuota(*hp.MaxHints))
	}
	return hp
}

func validateQuestionFormat(qf QuestionFormat) error {
	if !isOneOf(qf.PromptType, promptTypes) {
		return apperr.Validation("questionFormat.promptType", "unknown prompt type %q", qf.PromptType)
	}
	if !isOneOf(qf.ResponseType, responseTypes) {
		return apperr.Validation("questionFormat.responseType", "unknown response type %q", qf.ResponseType)
	}
	return nil
}

func normalizeLifelines(al LifelineAllowances) (LifelineAllowances, error) {
	if al == nil {
		return nil, nil
	}
	out := make(LifelineAllowances, len(al))
	for slug, count := range al {
		if strings.TrimSpace(slug) == "" {
			return nil, apperr.Validation("allowedLifelines", "lifeline slug must not be empty")
		}
		out[slug] = LifelineRange.ClampQuota(count)
	}
	return out, nil
}

// ValidateLifelineSlugs rejects allowedLifelines keys that known does not recognise.
func ValidateLifelineSlugs(cfg RoundConfiguration, known func(slug string) bool) error {
	for slug := range cfg.AllowedLifelines {
		if !known(slug) {
			return apperr.Validation("allowedLifelines", "unknown lifeline %q", slug)
		}
	}
	return nil
}

func clampLevels(levels []int, r Range) []int {
	if len(levels) > MaxLevels {
		levels = levels[:MaxLevels]
	}
	out := make([]int, len(levels))
	for i, v := range levels {
		out[i] = r.Clamp(v)
	}
	return out
}

// seedTime is the time the after-pass defaults are derived from.
func seedTime(tp TimePolicy) int {
	if tp.BaseTime > 0 {
		return tp.BaseTime
	}
	if tp.StaticAfterPassTime != nil && *tp.StaticAfterPassTime > 0 {
		return *tp.StaticAfterPassTime
	}
	return DefaultAfterPassTime
}
