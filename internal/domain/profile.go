package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile Model: one row per user holding the budgeting preferences
// picked during onboarding
type UserProfile struct {
	ID                  string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID              string       `gorm:"type:varchar(36);uniqueIndex;not null" json:"userId"`
	SelectedStrategy    StrategyType `gorm:"size:20;not null" json:"selectedStrategy"`
	OnboardingCompleted bool         `gorm:"not null;default:false" json:"onboardingCompleted"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key when none was provided
func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
