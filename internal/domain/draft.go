package domain

import "github.com/shopspring/decimal"

// DraftSource is the source a user sketches in the onboarding wizard before
// any row exists for it
type DraftSource struct {
	Name         string          `json:"name"`
	Type         SourceType      `json:"type"`
	Subtype      *SourceSubtype  `json:"subtype,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
	Color        string          `json:"color"`
	SourceNumber *string         `json:"sourceNumber,omitempty"`
}

// OnboardingDraft is the transient onboarding selection. It only lives in the
// draft cookie between the last wizard step and the completion transaction.
type OnboardingDraft struct {
	Source   DraftSource  `json:"source"`
	Strategy StrategyType `json:"strategy"`
}

// Validate checks a draft source against the wizard rules: non-empty name,
// known type, subtype compatible with the type, positive balance, a chosen
// color. Returns a ValidationError describing the first violation.
func (d *DraftSource) Validate() error {
	if d.Name == "" {
		return &ValidationError{Field: "name", Message: "El nombre es requerido"}
	}
	if len(d.Name) > 100 {
		return &ValidationError{Field: "name", Message: "El nombre es demasiado largo"}
	}
	if !ValidSourceType(d.Type) {
		return &ValidationError{Field: "type", Message: "Tipo de fuente inválido"}
	}
	if !SubtypeCompatible(d.Type, d.Subtype) {
		return &ValidationError{Field: "subtype", Message: "Subtipo de fuente inválido"}
	}
	if !d.Balance.IsPositive() {
		return &ValidationError{Field: "balance", Message: "El saldo debe ser mayor a cero"}
	}
	if d.Color == "" {
		return &ValidationError{Field: "color", Message: "El color es requerido"}
	}
	return nil
}

// Validate checks the whole draft: its source plus the chosen strategy
func (d *OnboardingDraft) Validate() error {
	if err := d.Source.Validate(); err != nil {
		return err
	}
	if !ValidStrategyType(d.Strategy) {
		return &ValidationError{Field: "strategy", Message: "Estrategia inválida"}
	}
	return nil
}
