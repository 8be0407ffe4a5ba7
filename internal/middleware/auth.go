package middleware

import (
	"errors"
	"net/http"

	"potion-shop/internal/util"

	"github.com/gin-gonic/gin"
)

// ClaimsKey is the gin context key the verified claims are stored under.
const ClaimsKey = "currentClaims"

// Auth 校验会话 cookie 里的 JWT，并在 context 里放入解码后的 claims。
// The session is stateless: a verified token is trusted as-is, no user
// lookup happens here.
func Auth(jwtSecret, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(cookieName)
		if err != nil || tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, "missing or invalid token")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		switch {
		case err == nil:
		case errors.Is(err, util.ErrTokenExpired):
			util.Error(c, http.StatusUnauthorized, "session expired")
			c.Abort()
			return
		case errors.Is(err, util.ErrTokenInvalid):
			util.Error(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		default:
			util.Error(c, http.StatusInternalServerError, "authentication error")
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// CurrentClaims returns the claims attached by Auth, or nil when the request
// did not pass through it.
func CurrentClaims(c *gin.Context) *util.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*util.Claims)
	if !ok {
		return nil
	}
	return claims
}
