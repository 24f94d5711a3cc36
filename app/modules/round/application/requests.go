package roundservice

import (
	"encoding/json"

	rounddomain "github.com/Black-And-White-Club/quiz-host/app/modules/round/domain"
)

// CreateRoundRequest is the createRound payload.
type CreateRoundRequest struct {
	SetID                 string                             `json:"setId"`
	CategoryID            string                             `json:"categoryId"`
	Name                  string                             `json:"name"`
	Description           *string                            `json:"description,omitempty"`
	ConfigurationOverride *rounddomain.ConfigurationOverride `json:"configurationOverride,omitempty"`
	ConfirmationRequired  *bool                              `json:"confirmationRequired,omitempty"`
}

// UpdateRoundRequest is the updateRound payload. Nil fields are left unchanged.
type UpdateRoundRequest struct {
	ID                    string                             `json:"id"`
	CategoryID            *string                            `json:"categoryId,omitempty"`
	Name                  *string                            `json:"name,omitempty"`
	Description           *string                            `json:"description,omitempty"`
	ConfigurationOverride *rounddomain.ConfigurationOverride `json:"configurationOverride,omitempty"`
	ConfirmationRequired  *bool                              `json:"confirmationRequired,omitempty"`
}

// CreateCategoryRequest is the createRoundCategory payload. The configuration is
// kept raw so every fragment can be required at decode time.
type CreateCategoryRequest struct {
	Name                 string          `json:"name"`
	DefaultConfiguration json.RawMessage `json:"defaultConfiguration"`
}

// UpdateCategoryRequest is the updateRoundCategory payload. A present
// defaultConfiguration replaces the stored one whole.
type UpdateCategoryRequest struct {
	ID                   string          `json:"id"`
	Name                 *string         `json:"name,omitempty"`
	DefaultConfiguration json.RawMessage `json:"defaultConfiguration,omitempty"`
}

// SeedCategory is one category supplied by a seed file.
type SeedCategory struct {
	Name                 string
	DefaultConfiguration json.RawMessage
}
