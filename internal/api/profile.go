package api

import (
	"net/http" // HTTP status codes

	"luka_backend/internal/domain" // Importing domain models
	"luka_backend/internal/store"  // Data-access layer

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// UpdateProfileRequest changes the selected budgeting strategy
type UpdateProfileRequest struct {
	Strategy string `json:"strategy" binding:"required"`
}

// GetProfileHandler returns the authenticated user's budgeting profile
func GetProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		profile, err := store.NewProfiles(db).Get(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": profile})
	}
}

// UpdateProfileHandler changes the selected strategy after onboarding; the
// onboarding-completed flag never flips back
func UpdateProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		profile, err := store.NewProfiles(db).UpdateStrategy(userID, domain.StrategyType(req.Strategy))
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"strategy": profile.SelectedStrategy,
		}).Info("Strategy updated")
		c.JSON(http.StatusOK, gin.H{"profile": profile})
	}
}
