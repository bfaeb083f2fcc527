package api

import (
	"net/http" // HTTP status codes

	"luka_backend/internal/store" // Data-access layer

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// DashboardHandler returns the data backing the dashboard page: the user's
// profile, the first page of active sources and the total balance
func DashboardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		sources := store.NewSources(db)
		listing, err := sources.List(userID, store.ListQuery{ActiveOnly: true})
		if err != nil {
			respondError(c, err)
			return
		}
		total, err := sources.TotalBalance(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		resp := gin.H{"sources": listing, "totalBalance": total}
		// A missing profile just means onboarding never ran; the page still renders
		if profile, err := store.NewProfiles(db).Get(userID); err == nil {
			resp["profile"] = profile
		}
		c.JSON(http.StatusOK, resp)
	}
}
