package teamdb

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Team is a competing team. DisplayOrder is dense across all teams.
type Team struct {
	bun.BaseModel `bun:"table:teams"`
	ID            string    `bun:"id,pk,type:varchar(36)" json:"id"`
	Name          string    `bun:"name,notnull,type:varchar(100)" json:"name"`
	Slug          string    `bun:"slug,notnull,unique,type:varchar(120)" json:"slug"`
	DisplayOrder  int       `bun:"display_order,notnull" json:"displayOrder"`
	Color         string    `bun:"color,nullzero,type:varchar(32)" json:"color,omitempty"`
	Lifelines     Lifelines `bun:"lifelines,notnull,type:text" json:"lifelines"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// Lifeline is a team's allowance for one lifeline.
type Lifeline struct {
	Slug         string `json:"slug"`
	DefaultCount int    `json:"defaultCount"`
	Enabled      bool   `json:"enabled"`
}

// Lifelines is stored as a JSON array in a text column.
type Lifelines []Lifeline

// Value implements driver.Valuer. A nil list is stored as an empty array.
func (l Lifelines) Value() (driver.Value, error) {
	if l == nil {
		l = Lifelines{}
	}
	data, err := json.Marshal([]Lifeline(l))
	if err != nil {
		return nil, fmt.Errorf("encode team lifelines: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *Lifelines) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case nil:
		return errors.New("stored team lifelines are null")
	default:
		return fmt.Errorf("unsupported lifelines column type %T", src)
	}
	var out []Lifeline
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("decode team lifelines: %w", err)
	}
	if out == nil {
		out = []Lifeline{}
	}
	*l = out
	return nil
}

// UpdateFields represents the updateable fields of a team.
// Pointer fields distinguish "not provided" (nil) from "set to zero value".
type UpdateFields struct {
	Name      *string
	Slug      *string
	Color     *string
	Lifelines *Lifelines
}

// IsEmpty reports whether any fields are set for update.
func (u *UpdateFields) IsEmpty() bool {
	if u == nil {
		return true
	}
	return u.Name == nil && u.Slug == nil && u.Color == nil && u.Lifelines == nil
}
