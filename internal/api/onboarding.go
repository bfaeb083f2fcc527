package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes

	"luka_backend/internal/domain"     // Importing domain models
	"luka_backend/internal/middleware" // Redirect targets and session lookup
	"luka_backend/internal/onboarding" // Wizard state machine and draft cookie
	"luka_backend/internal/store"      // Data-access layer
	"luka_backend/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// StrategiesHandler returns the catalog of budgeting presets for the first wizard step
func StrategiesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"strategies": domain.Strategies(), "default": domain.DefaultStrategy().Type})
	}
}

// SaveDraftHandler validates the finished wizard selection and persists it to
// the draft cookie so it survives the sign-in redirect
func SaveDraftHandler(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var draft domain.OnboardingDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := draft.Validate(); err != nil {
			respondError(c, err)
			return
		}
		if err := onboarding.SaveDraft(c, &draft, secure); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Draft saved"})
	}
}

// GetDraftHandler returns the stored draft; absent or unreadable drafts are a 404
func GetDraftHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		draft, ok := onboarding.LoadDraft(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"draft": draft})
	}
}

// ClearDraftHandler removes the draft cookie; safe when no draft exists
func ClearDraftHandler(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		onboarding.ClearDraft(c, secure)
		c.JSON(http.StatusOK, gin.H{"message": "Draft cleared"})
	}
}

// OnboardingStatusHandler reports whether the authenticated user finished onboarding
func OnboardingStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		profiles := store.NewProfiles(db)
		completed, err := profiles.HasCompletedOnboarding(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		_, profileErr := profiles.Get(userID)
		c.JSON(http.StatusOK, gin.H{"completed": completed, "hasProfile": profileErr == nil})
	}
}

// CompleteOnboardingHandler runs the completion transaction on the first
// authenticated load after sign-in.
//
// Unauthenticated callers go back to the onboarding entry; callers without a
// draft go straight to the dashboard (nothing to do counts as success). With
// a draft, the source row is created and the profile upserted in one database
// transaction. Failures are logged and the draft still cleared so a poisoned
// draft cannot trap the user in a retry loop; the user always ends up on the
// dashboard.
func CompleteOnboardingHandler(db *gorm.DB, rdb *redis.Client, jwtSecret string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.AuthenticatedUserID(c, jwtSecret)
		if userID == "" {
			c.Redirect(http.StatusFound, middleware.PathOnboarding)
			return
		}

		draft, ok := onboarding.LoadDraft(c)
		if !ok {
			c.Redirect(http.StatusFound, middleware.PathDashboard)
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if _, err := store.NewSources(tx).Create(userID, store.CreateSourceInput{
				Name:         draft.Source.Name,
				Type:         draft.Source.Type,
				Subtype:      draft.Source.Subtype,
				Balance:      draft.Source.Balance,
				Color:        draft.Source.Color,
				SourceNumber: draft.Source.SourceNumber,
			}); err != nil {
				return err // Return error to rollback
			}
			if _, err := store.NewProfiles(tx).Upsert(userID, draft.Strategy, true); err != nil {
				return err // Return error to rollback
			}
			return nil // Commit transaction
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":  userID,
				"strategy": draft.Strategy,
				"error":    err.Error(),
			}).Error("Onboarding completion failed")
			// Clear the draft anyway so the next load does not retry the same data
			onboarding.ClearDraft(c, secure)
			c.Redirect(http.StatusFound, middleware.PathDashboard)
			return
		}

		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"strategy": draft.Strategy,
		}).Info("Onboarding completed")
		onboarding.ClearDraft(c, secure)
		_ = utils.DeleteCache(context.Background(), rdb, balanceCacheKey(userID))
		c.Redirect(http.StatusFound, middleware.PathDashboard)
	}
}
