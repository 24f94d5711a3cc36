package rounddb

import (
	"time"

	rounddomain "github.com/Black-And-White-Club/quiz-host/app/modules/round/domain"
	"github.com/uptrace/bun"
)

// RoundCategory is a category with the configuration new rounds start from.
type RoundCategory struct {
	bun.BaseModel        `bun:"table:round_categories"`
	ID                   string        `bun:"id,pk,type:varchar(36)" json:"id"`
	Name                 string        `bun:"name,notnull,unique,type:varchar(100)" json:"name"`
	DefaultConfiguration Configuration `bun:"default_configuration,notnull,type:text" json:"defaultConfiguration"`
	CreatedAt            time.Time     `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt            time.Time     `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// Domain returns the category as the resolver sees it.
func (c *RoundCategory) Domain() rounddomain.Category {
	return rounddomain.Category{
		ID:                   c.ID,
		Name:                 c.Name,
		DefaultConfiguration: c.DefaultConfiguration.RoundConfiguration,
	}
}

// Round is one round of a set. Position is dense within SetID.
type Round struct {
	bun.BaseModel        `bun:"table:rounds"`
	ID                   string        `bun:"id,pk,type:varchar(36)" json:"id"`
	SetID                string        `bun:"set_id,notnull,type:varchar(64)" json:"setId"`
	CategoryID           string        `bun:"category_id,notnull,type:varchar(36)" json:"categoryId"`
	Name                 string        `bun:"name,notnull,type:varchar(200)" json:"name"`
	Description          string        `bun:"description,nullzero,type:text" json:"description,omitempty"`
	Position             int           `bun:"position,notnull" json:"position"`
	Configuration        Configuration `bun:"configuration,notnull,type:text" json:"configuration"`
	ConfirmationRequired bool          `bun:"confirmation_required,notnull,default:false" json:"confirmationRequired"`
	CreatedAt            time.Time     `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt            time.Time     `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// UpdateFields represents the updateable fields of a round.
// Pointer fields distinguish "not provided" (nil) from "set to zero value".
type UpdateFields struct {
	CategoryID           *string
	Name                 *string
	Description          *string
	Configuration        *rounddomain.RoundConfiguration
	ConfirmationRequired *bool
}

// IsEmpty reports whether any fields are set for update.
func (u *UpdateFields) IsEmpty() bool {
	if u == nil {
		return true
	}
	return u.CategoryID == nil &&
		u.Name == nil &&
		u.Description == nil &&
		u.Configuration == nil &&
		u.ConfirmationRequired == nil
}

// CategoryUpdateFields represents the updateable fields of a category.
type CategoryUpdateFields struct {
	Name                 *string
	DefaultConfiguration *rounddomain.RoundConfiguration
}

// IsEmpty reports whether any fields are set for update.
func (u *CategoryUpdateFields) IsEmpty() bool {
	return u == nil || (u.Name == nil && u.DefaultConfiguration == nil)
}
