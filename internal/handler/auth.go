package handler

import (
	"errors"
	"net/http"
	"time"

	"potion-shop/internal/config"
	"potion-shop/internal/store"
	"potion-shop/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler 负责登录/注册相关接口
type AuthHandler struct {
	Users     *store.UserStore
	JWTSecret string
	TokenTTL  time.Duration
	Cookie    config.CookieConfig
}

// NewAuthHandler 构造函数
func NewAuthHandler(users *store.UserStore, cfg *config.Config) *AuthHandler {
	ttlHours := cfg.JWT.ExpireHours
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		Users:     users,
		JWTSecret: cfg.JWT.Secret,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
		Cookie:    cfg.Cookie,
	}
}

// ---------- register ----------

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ErrorList(c, http.StatusBadRequest, []string{"name and password are required"})
		return
	}

	_, err := h.Users.Register(req.Name, req.Password)
	if err != nil {
		var verrs store.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			util.ErrorList(c, http.StatusBadRequest, verrs)
		case errors.Is(err, store.ErrDuplicateName):
			util.Error(c, http.StatusConflict, "name already registered")
		default:
			util.Error(c, http.StatusInternalServerError, "could not register user")
		}
		return
	}

	util.Message(c, http.StatusCreated, "user registered")
}

// ---------- login ----------

type loginReq struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusUnauthorized, "invalid name or password")
		return
	}

	user, err := h.Users.FindByName(req.Name)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not log in")
		return
	}
	// same message whether the name or the password was wrong
	if user == nil || !h.Users.VerifyPassword(user, req.Password) {
		util.Error(c, http.StatusUnauthorized, "invalid name or password")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, user.Name, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not log in")
		return
	}

	util.SetSessionCookie(c, h.Cookie, token, h.TokenTTL)
	util.Message(c, http.StatusOK, "logged in")
}

// ---------- logout ----------

// Logout clears the session cookie. Tokens are stateless and there is no
// revocation list, so a copy of the token stays valid until its expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	util.ClearSessionCookie(c, h.Cookie)
	util.Message(c, http.StatusOK, "logged out")
}
