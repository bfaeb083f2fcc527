package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Redirect targets used by the route guard and the onboarding flow
const (
	PathDashboard          = "/dashboard"
	PathOnboarding         = "/onboarding"
	PathOnboardingComplete = "/onboarding/complete"
	PathLogin              = "/login"
)

// ResolveGuard decides, purely from the request path and whether a session is
// present, where the caller must be redirected. It returns "" when the
// request may proceed.
//
// The dashboard area requires a session; the onboarding and login areas are
// for visitors only — except the completion path, which a freshly signed-in
// user must be able to reach before being bounced to the dashboard.
func ResolveGuard(path string, authenticated bool) string {
	isDashboard := strings.HasPrefix(path, PathDashboard)
	isOnboarding := strings.HasPrefix(path, PathOnboarding)
	isLogin := path == PathLogin

	if isDashboard && !authenticated {
		return PathOnboarding
	}
	if isOnboarding && authenticated && !strings.HasPrefix(path, PathOnboardingComplete) {
		return PathDashboard
	}
	if isLogin && authenticated {
		return PathDashboard
	}
	return ""
}

// RouteGuardMiddleware applies ResolveGuard to every request using the
// session token (header or cookie) to detect authentication
func RouteGuardMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticated := AuthenticatedUserID(c, secret) != ""
		if target := ResolveGuard(c.Request.URL.Path, authenticated); target != "" {
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}
