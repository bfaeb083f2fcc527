package api

import (
	"net/http" // HTTP status codes

	"luka_backend/internal/domain"     // Importing domain models
	"luka_backend/internal/onboarding" // Wizard state machine

	"github.com/gin-gonic/gin" // Gin web framework
)

// WizardRequest carries the client's wizard state plus the transition to apply
type WizardRequest struct {
	Step     int                 `json:"step" binding:"required,min=1,max=3"`
	Strategy domain.StrategyType `json:"strategy"`
	Source   *domain.DraftSource `json:"source"`
	Action   string              `json:"action" binding:"required,oneof=next back"`
}

// WizardResponse is the state after the transition
type WizardResponse struct {
	Step  int  `json:"step"`
	Valid bool `json:"valid"`
}

// OnboardingPageHandler bootstraps the wizard page: the strategy catalog and
// any draft left over from an earlier visit
func OnboardingPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{
			"strategies": domain.Strategies(),
			"default":    domain.DefaultStrategy().Type,
		}
		if draft, ok := onboarding.LoadDraft(c); ok {
			resp["draft"] = draft
		}
		c.JSON(http.StatusOK, resp)
	}
}

// WizardStepHandler validates a wizard transition server-side. Forward moves
// require the current step's data to be valid; backward moves are free.
func WizardStepHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WizardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		w := onboarding.NewWizard()
		w.Step = onboarding.Step(req.Step)
		if req.Strategy != "" {
			if err := w.SelectStrategy(req.Strategy); err != nil {
				respondError(c, err)
				return
			}
		}
		w.SetSource(req.Source)

		if req.Action == "back" {
			w.Back()
		} else if err := w.Next(); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, WizardResponse{Step: int(w.Step), Valid: w.Valid()})
	}
}
