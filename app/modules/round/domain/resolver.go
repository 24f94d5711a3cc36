package rounddomain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
)

// Category is a round category with the configuration new rounds start from.
type Category struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name"`
	DefaultConfiguration RoundConfiguration `json:"defaultConfiguration"`
}

// ConfigurationOverride is a partial configuration. A nil fragment keeps the
// base fragment; a present fragment replaces it whole. For AllowedLifelines a
// pointer to an empty map means "no lifelines" while nil means "inherit".
type ConfigurationOverride struct {
	PassPolicy       *PassPolicy         `json:"passPolicy,omitempty"`
	TimePolicy       *TimePolicy         `json:"timePolicy,omitempty"`
	ScoringPolicy    *ScoringPolicy      `json:"scoringPolicy,omitempty"`
	HintPolicy       *HintPolicy         `json:"hintPolicy,omitempty"`
	QuestionFormat   *QuestionFormat     `json:"questionFormat,omitempty"`
	AnswerPolicy     *AnswerPolicy       `json:"answerPolicy,omitempty"`
	AllowedLifelines *LifelineAllowances `json:"allowedLifelines,omitempty"`
}

// IsEmpty reports whether the override supplies no fragment.
func (o *ConfigurationOverride) IsEmpty() bool {
	if o == nil {
		return true
	}
	return o.PassPolicy == nil &&
		o.TimePolicy == nil &&
		o.ScoringPolicy == nil &&
		o.HintPolicy == nil &&
		o.QuestionFormat == nil &&
		o.AnswerPolicy == nil &&
		o.AllowedLifelines == nil
}

// ResolveDefault returns an independent copy of the category default.
func ResolveDefault(category Category) RoundConfiguration {
	return category.DefaultConfiguration.Clone()
}

// ApplyOverride replaces whole fragments of base with the ones partial supplies.
// Fields inside a fragment are never merged. Neither argument is modified.
func ApplyOverride(base RoundConfiguration, partial *ConfigurationOverride) RoundConfiguration {
	out := base.Clone()
	if partial == nil {
		return out
	}
	if partial.PassPolicy != nil {
		out.PassPolicy = partial.PassPolicy.Clone()
	}
	if partial.TimePolicy != nil {
		out.TimePolicy = partial.TimePolicy.Clone()
	}
	if partial.ScoringPolicy != nil {
		out.ScoringPolicy = partial.ScoringPolicy.Clone()
	}
	if partial.HintPolicy != nil {
		out.HintPolicy = partial.HintPolicy.Clone()
	}
	if partial.QuestionFormat != nil {
		out.QuestionFormat = *partial.QuestionFormat
	}
	if partial.AnswerPolicy != nil {
		out.AnswerPolicy = *partial.AnswerPolicy
	}
	if partial.AllowedLifelines != nil {
		al := partial.AllowedLifelines.Clone()
		if al == nil {
			al = LifelineAllowances{}
		}
		out.AllowedLifelines = al
	}
	return out
}

// Resolve applies partial to base and normalizes the result.
func Resolve(base RoundConfiguration, partial *ConfigurationOverride) (RoundConfiguration, error) {
	return Normalize(ApplyOverride(base, partial))
}

var fragmentKeys = []string{"passPolicy", "timePolicy", "scoringPolicy", "hintPolicy", "questionFormat", "answerPolicy"}

// DecodeConfiguration parses a stored or submitted configuration. Every
// fragment key must be present and the result must normalize cleanly.
func DecodeConfiguration(data []byte) (RoundConfiguration, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return RoundConfiguration{}, apperr.Validation("configuration", "malformed configuration: %v", err)
	}
	for _, k := range fragmentKeys {
		raw, ok := keys[k]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return RoundConfiguration{}, apperr.Validation(k, "fragment is required")
		}
	}

	var cfg RoundConfiguration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return RoundConfiguration{}, apperr.Validation("configuration", "malformed configuration: %v", err)
	}
	return Normalize(cfg)
}

// EncodeConfiguration is the single serialization point for configurations.
func EncodeConfiguration(cfg RoundConfiguration) ([]byte, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}
	return data, nil
}
