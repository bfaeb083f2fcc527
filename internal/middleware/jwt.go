package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"luka_backend/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// SessionCookie is the cookie carrying the session token for browser flows.
// API clients may send the same token as a Bearer header instead.
const SessionCookie = "luka_session"

// tokenFromRequest extracts the session token from the Authorization header
// or, failing that, from the session cookie
func tokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// AuthenticatedUserID returns the user ID for the request's session token,
// or "" when the request carries no valid session
func AuthenticatedUserID(c *gin.Context, secret string) string {
	tokenStr := tokenFromRequest(c)
	if tokenStr == "" {
		return ""
	}
	claims, err := utils.ParseJWT(tokenStr, secret)
	if err != nil {
		return ""
	}
	return claims.UserID
}

// JWTAuthMiddleware validates session tokens and stores the user ID in the
// request context
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := AuthenticatedUserID(c, secret)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid session"})
			return
		}
		c.Set("userID", userID) // Store userID in context
		c.Next()
	}
}
