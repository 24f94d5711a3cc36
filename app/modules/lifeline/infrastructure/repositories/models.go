package lifelinedb

import (
	"time"

	"github.com/uptrace/bun"
)

// LifelineDefinition is one entry of the lifeline catalogue.
type LifelineDefinition struct {
	bun.BaseModel `bun:"table:lifeline_definitions"`
	ID            string    `bun:"id,pk,type:varchar(36)" json:"id"`
	Slug          string    `bun:"slug,notnull,unique,type:varchar(64)" json:"slug"`
	DisplayName   string    `bun:"display_name,notnull,type:varchar(100)" json:"displayName"`
	Description   string    `bun:"description,nullzero,type:text" json:"description,omitempty"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
