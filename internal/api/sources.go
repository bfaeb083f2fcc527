package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"luka_backend/internal/domain" // Importing domain models
	"luka_backend/internal/store"  // Data-access layer
	"luka_backend/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Cache keys are scoped by user so entries can never leak across owners
func balanceCacheKey(userID string) string {
	return "balance:user:" + userID
}

func sourceCacheKey(userID, sourceID string) string {
	return "source:user:" + userID + ":" + sourceID
}

// invalidateSourceCache drops the cached balance and the cached source after a mutation
func invalidateSourceCache(c *gin.Context, userID, sourceID string) {
	rdbAny, ok := c.Get("redisClient")
	if !ok {
		return
	}
	rdb, ok := rdbAny.(*redis.Client)
	if !ok {
		return
	}
	ctx := context.Background()
	_ = utils.DeleteCache(ctx, rdb, balanceCacheKey(userID))
	if sourceID != "" {
		_ = utils.DeleteCache(ctx, rdb, sourceCacheKey(userID, sourceID))
	}
}

// CreateSourceRequest is the payload for creating a source
type CreateSourceRequest struct {
	Name         string          `json:"name" binding:"required"`
	Type         string          `json:"type" binding:"required"`
	Subtype      *string         `json:"subtype"`
	Balance      decimal.Decimal `json:"balance"`
	Color        string          `json:"color" binding:"required"`
	SourceNumber *string         `json:"sourceNumber"`
}

// UpdateSourceRequest is the payload for partial updates; absent fields are unchanged
type UpdateSourceRequest struct {
	Name         *string          `json:"name"`
	Type         *string          `json:"type"`
	Subtype      *string          `json:"subtype"`
	Balance      *decimal.Decimal `json:"balance"`
	Color        *string          `json:"color"`
	SourceNumber *string          `json:"sourceNumber"`
	Active       *bool            `json:"active"`
}

func toSubtype(s *string) *domain.SourceSubtype {
	if s == nil {
		return nil
	}
	st := domain.SourceSubtype(*s)
	return &st
}

// ListSourcesHandler returns one page of the user's sources.
// Query params: cursor, limit (<=100, default 20), active_only (default true).
func ListSourcesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		q := store.ListQuery{Cursor: c.Query("cursor"), ActiveOnly: true}
		if l := c.Query("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v > 0 {
				q.Limit = v
			}
		}
		if a := c.Query("active_only"); a != "" {
			q.ActiveOnly = a != "false"
		}
		result, err := store.NewSources(db).List(userID, q)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GetSourceHandler returns a single owned, non-deleted source, cached for 60 seconds
func GetSourceHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id := c.Param("id")
		ctx := context.Background()
		cacheKey := sourceCacheKey(userID, id)
		var source domain.Source
		found, err := utils.GetCache(ctx, rdb, cacheKey, &source)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"source": source, "cached": true})
			return
		}
		got, err := store.NewSources(db).GetByID(userID, id)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, got, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"source": got, "cached": false})
	}
}

// GetSourcesByTypeHandler returns the user's active sources of one type
func GetSourcesByTypeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		sources, err := store.NewSources(db).GetByType(userID, domain.SourceType(c.Param("type")))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sources": sources})
	}
}

// TotalBalanceHandler returns the sum of active source balances, cached for 60 seconds
func TotalBalanceHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background()
		cacheKey := balanceCacheKey(userID)
		var total decimal.Decimal
		found, err := utils.GetCache(ctx, rdb, cacheKey, &total)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"total": total, "cached": true})
			return
		}
		total, err = store.NewSources(db).TotalBalance(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, total, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"total": total, "cached": false})
	}
}

// CreateSourceHandler inserts a new active source for the user
func CreateSourceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateSourceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		source, err := store.NewSources(db).Create(userID, store.CreateSourceInput{
			Name:         req.Name,
			Type:         domain.SourceType(req.Type),
			Subtype:      toSubtype(req.Subtype),
			Balance:      req.Balance,
			Color:        req.Color,
			SourceNumber: req.SourceNumber,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,
			"source_id": source.ID,
			"type":      source.Type,
		}).Info("Source created")
		invalidateSourceCache(c, userID, source.ID)
		c.JSON(http.StatusCreated, gin.H{"source": source})
	}
}

// UpdateSourceHandler applies partial updates to an owned source
func UpdateSourceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req UpdateSourceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		in := store.UpdateSourceInput{
			ID:           c.Param("id"),
			Name:         req.Name,
			Subtype:      toSubtype(req.Subtype),
			Balance:      req.Balance,
			Color:        req.Color,
			SourceNumber: req.SourceNumber,
			Active:       req.Active,
		}
		if req.Type != nil {
			t := domain.SourceType(*req.Type)
			in.Type = &t
		}
		source, err := store.NewSources(db).Update(userID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,
			"source_id": source.ID,
		}).Info("Source updated")
		invalidateSourceCache(c, userID, source.ID)
		c.JSON(http.StatusOK, gin.H{"source": source})
	}
}

// DeleteSourceHandler soft-deletes an owned source
func DeleteSourceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		source, err := store.NewSources(db).SoftDelete(userID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,
			"source_id": source.ID,
		}).Info("Source soft-deleted")
		invalidateSourceCache(c, userID, source.ID)
		c.JSON(http.StatusOK, gin.H{"source": source})
	}
}

// HardDeleteSourceHandler physically removes an owned source
func HardDeleteSourceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id := c.Param("id")
		if err := store.NewSources(db).HardDelete(userID, id); err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,
			"source_id": id,
		}).Info("Source hard-deleted")
		invalidateSourceCache(c, userID, id)
		c.JSON(http.StatusOK, gin.H{"message": "Source deleted"})
	}
}

// RestoreSourceHandler reactivates a soft-deleted owned source
func RestoreSourceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		source, err := store.NewSources(db).Restore(userID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,
			"source_id": source.ID,
		}).Info("Source restored")
		invalidateSourceCache(c, userID, source.ID)
		c.JSON(http.StatusOK, gin.H{"source": source})
	}
}
