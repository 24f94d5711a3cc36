package teamservice

import (
	teamdb "github.com/Black-And-White-Club/quiz-host/app/modules/team/infrastructure/repositories"
)

// CreateTeamRequest is the createTeam payload.
type CreateTeamRequest struct {
	Name      string            `json:"name"`
	Color     *string           `json:"color,omitempty"`
	Lifelines []teamdb.Lifeline `json:"lifelines,omitempty"`
}

// UpdateTeamRequest is the updateTeam payload. Nil fields are left unchanged;
// a present lifelines list replaces the stored one.
type UpdateTeamRequest struct {
	ID        string             `json:"id"`
	Name      *string            `json:"name,omitempty"`
	Color     *string            `json:"color,omitempty"`
	Lifelines *[]teamdb.Lifeline `json:"lifelines,omitempty"`
}

// ImportResult reports the outcome of a roster import.
type ImportResult struct {
	Created []teamdb.Team `json:"created"`
	// Skipped lists the names already present as a team.
	Skipped []string `json:"skipped"`
}
