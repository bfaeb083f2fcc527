package onboarding

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"luka_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// DraftCookie is the cookie holding the in-flight onboarding selection
const DraftCookie = "luka_onboarding_data"

// DraftTTLSeconds is how long a saved draft survives before it is treated as absent
const DraftTTLSeconds = 600

// SaveDraft serializes the draft into the draft cookie: http-only,
// same-site-lax, secure in production, 10 minute expiry, path "/".
// The JSON payload is base64-encoded so it is always a valid cookie value.
func SaveDraft(c *gin.Context, draft *domain.OnboardingDraft, secure bool) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(DraftCookie, base64.RawURLEncoding.EncodeToString(payload), DraftTTLSeconds, "/", "", secure, true)
	return nil
}

// LoadDraft returns the stored draft, or ok=false when the cookie is absent
// or holds anything unreadable. Malformed data never surfaces as an error.
func LoadDraft(c *gin.Context) (*domain.OnboardingDraft, bool) {
	value, err := c.Cookie(DraftCookie)
	if err != nil || value == "" {
		return nil, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, false
	}
	var draft domain.OnboardingDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, false
	}
	return &draft, true
}

// ClearDraft removes the draft cookie; safe to call when no draft exists
func ClearDraft(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(DraftCookie, "", -1, "/", "", secure, true)
}
