package util

import (
	"net/http"
	"time"

	"potion-shop/internal/config"

	"github.com/gin-gonic/gin"
)

// SetSessionCookie binds the issued token to the session cookie. The cookie
// is HTTP-only and SameSite=Strict; its lifetime equals the token TTL.
func SetSessionCookie(c *gin.Context, cfg config.CookieConfig, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cfg.Name, token, int(ttl.Seconds()), "/", "", cfg.Secure, true)
}

// ClearSessionCookie removes the session cookie. Clearing an already absent
// cookie is fine; logout is idempotent.
func ClearSessionCookie(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cfg.Name, "", -1, "/", "", cfg.Secure, true)
}
