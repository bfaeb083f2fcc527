package store

import (
	"errors"

	"luka_backend/internal/domain"

	"gorm.io/gorm"
)

// Profiles provides persistence for the per-user budgeting profile
type Profiles struct {
	db *gorm.DB
}

// NewProfiles returns a Profiles store over db, which may be a transaction handle
func NewProfiles(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

// Get returns the user's profile or domain.ErrNotFound
func (p *Profiles) Get(userID string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := p.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates the user's profile or updates the existing one, setting the
// selected strategy and the onboarding-completed flag. Idempotent: repeated
// calls with the same arguments leave a single identical row.
func (p *Profiles) Upsert(userID string, strategy domain.StrategyType, completed bool) (*domain.UserProfile, error) {
	if !domain.ValidStrategyType(strategy) {
		return nil, &domain.ValidationError{Field: "strategy", Message: "Estrategia inválida"}
	}
	profile, err := p.Get(userID)
	if errors.Is(err, domain.ErrNotFound) {
		created := domain.UserProfile{
			UserID:              userID,
			SelectedStrategy:    strategy,
			OnboardingCompleted: completed,
		}
		if err := p.db.Create(&created).Error; err != nil {
			return nil, err
		}
		return &created, nil
	}
	if err != nil {
		return nil, err
	}
	profile.SelectedStrategy = strategy
	profile.OnboardingCompleted = completed
	if err := p.db.Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateStrategy changes the selected strategy after onboarding. The
// onboarding-completed flag is never unset here.
func (p *Profiles) UpdateStrategy(userID string, strategy domain.StrategyType) (*domain.UserProfile, error) {
	if !domain.ValidStrategyType(strategy) {
		return nil, &domain.ValidationError{Field: "strategy", Message: "Estrategia inválida"}
	}
	profile, err := p.Get(userID)
	if err != nil {
		return nil, err
	}
	profile.SelectedStrategy = strategy
	if err := p.db.Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// HasCompletedOnboarding reports whether the user finished onboarding; users
// without a profile have not
func (p *Profiles) HasCompletedOnboarding(userID string) (bool, error) {
	profile, err := p.Get(userID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return profile.OnboardingCompleted, nil
}
