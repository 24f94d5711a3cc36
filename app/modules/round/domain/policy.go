package rounddomain

import (
	"encoding/json"
	"maps"
	"slices"
)

// Unlimited is the sentinel for quota-like fields. It is exempt from clamping.
const Unlimited = -1

// AfterPassTimeMode selects which after-pass time field is authoritative.
type AfterPassTimeMode string

const (
	AfterPassTimeStatic  AfterPassTimeMode = "static"
	AfterPassTimeDynamic AfterPassTimeMode = "dynamic"
)

// PassedScoringMode is derived from ScoringPolicy, never stored.
type PassedScoringMode string

const (
	PassedScoringStatic  PassedScoringMode = "static"
	PassedScoringDynamic PassedScoringMode = "dynamic"
)

// PromptType is how a question is presented.
type PromptType string

const (
	PromptText  PromptType = "text"
	PromptImage PromptType = "image"
	PromptAudio PromptType = "audio"
	PromptVideo PromptType = "video"
)

// ResponseType is the shape of an expected answer.
type ResponseType string

const (
	ResponseFreeText       ResponseType = "free_text"
	ResponseMultipleChoice ResponseType = "multiple_choice"
	ResponseTrueFalse      ResponseType = "true_false"
	ResponseNumeric        ResponseType = "numeric"
)

// AnswerMode decides which teams may answer a question.
type AnswerMode string

const (
	AnswerTurnBased    AnswerMode = "turn_based"
	AnswerBuzzer       AnswerMode = "buzzer"
	AnswerSimultaneous AnswerMode = "simultaneous"
)

var (
	afterPassTimeModes = []AfterPassTimeMode{AfterPassTimeStatic, AfterPassTimeDynamic}
	promptTypes        = []PromptType{PromptText, PromptImage, PromptAudio, PromptVideo}
	responseTypes      = []ResponseType{ResponseFreeText, ResponseMultipleChoice, ResponseTrueFalse, ResponseNumeric}
	answerModes        = []AnswerMode{AnswerTurnBased, AnswerBuzzer, AnswerSimultaneous}
)

// PassPolicy controls whether a team may pass a question to the next team.
// MaxPasses caps the passes a team has in the round; nil or Unlimited means no
// cap. The cap is only spent when ReducesPassQuota is set.
type PassPolicy struct {
	Enabled          bool `json:"enabled"`
	ReducesPassQuota bool `json:"reducesPassQuota"`
	MaxPasses        *int `json:"maxPasses,omitempty"`
}

// TimePolicy holds answer timing. Only the field matching AfterPassTimeMode is
// authoritative; the other one may hold stale data and is never read.
type TimePolicy struct {
	BaseTime            int               `json:"baseTime"`
	AfterPassTimeMode   AfterPassTimeMode `json:"afterPassTimeMode"`
	StaticAfterPassTime *int              `json:"staticAfterPassTime,omitempty"`
	AfterPassTime       []int             `json:"afterPassTime,omitempty"`
}

// ScoringPolicy holds points awarded per outcome. Passed-question scoring is
// dynamic when CorrectWhenPassedMultiple is non-empty, indexed by pass count (1-based).
type ScoringPolicy struct {
	Correct                   int   `json:"correct"`
	Incorrect                 int   `json:"incorrect"`
	Pass                      *int  `json:"pass,omitempty"`
	CorrectWhenPassed         *int  `json:"correctWhenPassed,omitempty"`
	CorrectWhenPassedMultiple []int `json:"correctWhenPassedMultiple,omitempty"`
}

// HintPolicy controls hint availability.
type HintPolicy struct {
	Enabled           bool  `json:"enabled"`
	ProgressiveReveal *bool `json:"progressiveReveal,omitempty"`
	MaxHints          *int  `json:"maxHints,omitempty"`
	ReducesHintQuota  *bool `json:"reducesHintQuota,omitempty"`
}

// QuestionFormat describes the prompt and the expected response.
type QuestionFormat struct {
	PromptType   PromptType   `json:"promptType"`
	ResponseType ResponseType `json:"responseType"`
}

// AnswerPolicy describes who answers.
type AnswerPolicy struct {
	Mode AnswerMode `json:"mode"`
}

// LifelineAllowances maps a lifeline slug to its allowance count for a round.
// A nil map means the round does not restrict lifelines; an empty map means
// no lifeline is allowed.
type LifelineAllowances map[string]int

// RoundConfiguration is the fully populated rule set of a round.
type RoundConfiguration struct {
	PassPolicy       PassPolicy         `json:"passPolicy"`
	TimePolicy       TimePolicy         `json:"timePolicy"`
	ScoringPolicy    ScoringPolicy      `json:"scoringPolicy"`
	HintPolicy       HintPolicy         `json:"hintPolicy"`
	QuestionFormat   QuestionFormat     `json:"questionFormat"`
	AnswerPolicy     AnswerPolicy       `json:"answerPolicy"`
	AllowedLifelines LifelineAllowances `json:"allowedLifelines,omitempty"`
}

// MarshalJSON keeps an explicit empty allowedLifelines map in the output and
// omits the key only when the map is nil.
func (c RoundConfiguration) MarshalJSON() ([]byte, error) {
	type plain RoundConfiguration
	out := struct {
		plain
		AllowedLifelines *LifelineAllowances `json:"allowedLifelines,omitempty"`
	}{plain: plain(c)}
	if c.AllowedLifelines != nil {
		al := c.AllowedLifelines
		out.AllowedLifelines = &al
	}
	return json.Marshal(out)
}

// Clone returns a deep copy that shares no memory with c.
func (c RoundConfiguration) Clone() RoundConfiguration {
	return RoundConfiguration{
		PassPolicy:       c.PassPolicy.Clone(),
		TimePolicy:       c.TimePolicy.Clone(),
		ScoringPolicy:    c.ScoringPolicy.Clone(),
		HintPolicy:       c.HintPolicy.Clone(),
		QuestionFormat:   c.QuestionFormat,
		AnswerPolicy:     c.AnswerPolicy,
		AllowedLifelines: c.AllowedLifelines.Clone(),
	}
}

func (p PassPolicy) Clone() PassPolicy {
	p.MaxPasses = clonePtr(p.MaxPasses)
	return p
}

func (t TimePolicy) Clone() TimePolicy {
	t.StaticAfterPassTime = clonePtr(t.StaticAfterPassTime)
	t.AfterPassTime = cloneInts(t.AfterPassTime)
	return t
}

func (s ScoringPolicy) Clone() ScoringPolicy {
	s.Pass = clonePtr(s.Pass)
	s.CorrectWhenPassed = clonePtr(s.CorrectWhenPassed)
	s.CorrectWhenPassedMultiple = cloneInts(s.CorrectWhenPassedMultiple)
	return s
}

func (h HintPolicy) Clone() HintPolicy {
	h.ProgressiveReveal = clonePtr(h.ProgressiveReveal)
	h.MaxHints = clonePtr(h.MaxHints)
	h.ReducesHintQuota = clonePtr(h.ReducesHintQuota)
	return h
}

// Clone keeps the nil/empty distinction.
func (a LifelineAllowances) Clone() LifelineAllowances {
	if a == nil {
		return nil
	}
	out := make(LifelineAllowances, len(a))
	maps.Copy(out, a)
	return out
}

// Allowance reports whether slug may be used in the round and its count.
func (c RoundConfiguration) Allowance(slug string) (count int, ok bool) {
	if c.AllowedLifelines == nil {
		return Unlimited, true
	}
	count, ok = c.AllowedLifelines[slug]
	return count, ok
}

// PassedScoringMode derives the passed-question scoring mode.
func (s ScoringPolicy) PassedScoringMode() PassedScoringMode {
	if len(s.CorrectWhenPassedMultiple) > 0 {
		return PassedScoringDynamic
	}
	return PassedScoringStatic
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInts(s []int) []int {
	if s == nil {
		return nil
	}
	return append([]int{}, s...)
}

// Ptr returns a pointer to v. Handy for optional policy fields.
func Ptr[T any](v T) *T { return &v }

func isOneOf[T comparable](v T, set []T) bool { return slices.Contains(set, v) }
