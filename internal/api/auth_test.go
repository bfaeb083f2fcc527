package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"luka_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func authRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", RegisterHandler(db))
	r.POST("/auth/login", LoginHandler(db, testSecret, false))
	r.POST("/auth/logout", LogoutHandler(false))
	r.GET("/api/profile", middleware.JWTAuthMiddleware(testSecret), GetProfileHandler(db))
	return r
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	r := authRouter(db)

	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"email":    "ana@luka.test",
		"name":     "Ana",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("duplicate email rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
			"email":    "Ana@luka.test", // same address, different case
			"password": "supersecret",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
			"email":    "not-an-email",
			"password": "supersecret",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("short password rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
			"email":    "otra@luka.test",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	w = doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"email":    "ana@luka.test",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	// Login also sets the session cookie for browser flows
	var session *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			session = cookie
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, resp.Token, session.Value)

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
			"email":    "ana@luka.test",
			"password": "wrongwrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token authenticates protected routes", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/profile", nil, session)
		// 404 because no profile exists yet; the point is we got past auth
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("logout clears the session cookie", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/logout", nil, session)
		require.Equal(t, http.StatusOK, w.Code)
		for _, cookie := range w.Result().Cookies() {
			if cookie.Name == middleware.SessionCookie {
				assert.Less(t, cookie.MaxAge, 0)
			}
		}
	})
}
