// Package onboarding holds the wizard state machine and the draft cookie
// used to carry a visitor's selections across sign-in.
package onboarding

import (
	"luka_backend/internal/domain"
)

// Step is one of the three wizard screens
type Step int

// Wizard steps, in order
const (
	StepStrategy Step = iota + 1 // Pick a budgeting strategy
	StepSource                   // Sketch the first money source
	StepReview                   // Review and sign in
)

// Wizard models the onboarding flow: forward only with valid data, backward
// freely. Completion itself is not a wizard state; it happens server-side
// after sign-in.
type Wizard struct {
	Step     Step
	Strategy domain.StrategyType
	Source   *domain.DraftSource
}

// NewWizard starts at the strategy step with the recommended preset selected
func NewWizard() *Wizard {
	return &Wizard{
		Step:     StepStrategy,
		Strategy: domain.DefaultStrategy().Type,
	}
}

// SelectStrategy records the chosen preset
func (w *Wizard) SelectStrategy(t domain.StrategyType) error {
	if !domain.ValidStrategyType(t) {
		return &domain.ValidationError{Field: "strategy", Message: "Estrategia inválida"}
	}
	w.Strategy = t
	return nil
}

// SetSource records the sketched source; it is validated at Next, not here,
// so a partially filled form can be kept while stepping back
func (w *Wizard) SetSource(s *domain.DraftSource) {
	w.Source = s
}

// Valid reports whether the current step's data allows advancing
func (w *Wizard) Valid() bool {
	switch w.Step {
	case StepStrategy:
		return domain.ValidStrategyType(w.Strategy) // Always true: a preset is pre-selected
	case StepSource:
		return w.Source != nil && w.Source.Validate() == nil
	case StepReview:
		return true
	default:
		return false
	}
}

// Next advances one step when the current step validates. Advancing past the
// review step is not possible; completion is observed via redirect instead.
func (w *Wizard) Next() error {
	if !w.Valid() {
		if w.Step == StepSource && w.Source != nil {
			return w.Source.Validate()
		}
		return &domain.ValidationError{Message: "Completa este paso antes de continuar"}
	}
	if w.Step < StepReview {
		w.Step++
	}
	return nil
}

// Back moves one step backward, never below the first step
func (w *Wizard) Back() {
	if w.Step > StepStrategy {
		w.Step--
	}
}

// Draft snapshots the wizard into the transient draft persisted to the
// cookie. It requires a valid source; the caller checks Valid first.
func (w *Wizard) Draft() *domain.OnboardingDraft {
	if w.Source == nil {
		return nil
	}
	return &domain.OnboardingDraft{
		Source:   *w.Source,
		Strategy: w.Strategy,
	}
}
