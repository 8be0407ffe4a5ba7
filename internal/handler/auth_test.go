package handler_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"potion-shop/internal/models"
	"potion-shop/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

func TestRegister_ThenDuplicate(t *testing.T) {
	r, db := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/auth/register", `{"name":"alice","password":"secret123"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("first register status = %d, want 201, body %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/auth/register", `{"name":"alice","password":"othersecret"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("second register status = %d, want 409, body %s", w.Code, w.Body.String())
	}

	var count int64
	if err := db.Model(&models.User{}).Where("name = ?", "alice").Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/auth/register", `{"name":"alice","password":"12345"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}

	var body struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Errors) == 0 {
		t.Error("validation response should enumerate violated rules")
	}
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	r, _ := newTestServer(t)

	doJSON(r, http.MethodPost, "/auth/register", `{"name":"alice","password":"secret123"}`)

	w := doJSON(r, http.MethodPost, "/auth/login", `{"name":"alice","password":"secret123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	ck := sessionCookie(w)
	if ck == nil {
		t.Fatal("login should set the session cookie")
	}
	if !ck.HttpOnly {
		t.Error("session cookie must be HTTP-only")
	}
	if ck.SameSite != http.SameSiteStrictMode {
		t.Errorf("SameSite = %v, want Strict", ck.SameSite)
	}

	claims, err := util.ParseToken(testSecret, ck.Value)
	if err != nil {
		t.Fatalf("cookie token should parse: %v", err)
	}
	if claims.Name != "alice" {
		t.Errorf("claims name = %q, want %q", claims.Name, "alice")
	}
	if claims.UserID == 0 {
		t.Error("claims should carry the user id")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	r, _ := newTestServer(t)

	doJSON(r, http.MethodPost, "/auth/register", `{"name":"alice","password":"secret123"}`)

	w := doJSON(r, http.MethodPost, "/auth/login", `{"name":"alice","password":"wrongpass"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("login status = %d, want 401", w.Code)
	}
	if sessionCookie(w) != nil {
		t.Error("failed login must not set a session cookie")
	}
}

func TestLogin_UnknownName(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/auth/login", `{"name":"nobody","password":"secret123"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("login status = %d, want 401", w.Code)
	}
}

func TestCreatePotion_NoCookie(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/potions", `{"name":"Elixir"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "missing or invalid token") {
		t.Errorf("body = %s, want missing-token message", w.Body.String())
	}
}

func TestCreatePotion_ExpiredToken(t *testing.T) {
	r, _ := newTestServer(t)

	now := time.Now()
	claims := &util.Claims{
		UserID: 1,
		Name:   "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	w := doJSON(r, http.MethodPost, "/potions", `{"name":"Elixir"}`,
		&http.Cookie{Name: testCookieName, Value: token})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	// expiry gets its own message, distinct from a bad signature
	if !strings.Contains(w.Body.String(), "session expired") {
		t.Errorf("body = %s, want expiry-specific message", w.Body.String())
	}
}

func TestCreatePotion_TamperedToken(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodPost, "/potions", `{"name":"Elixir"}`,
		&http.Cookie{Name: testCookieName, Value: "not.a.token"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid token") {
		t.Errorf("body = %s, want invalid-token message", w.Body.String())
	}
}

func TestCreatePotion_WithValidCookie(t *testing.T) {
	r, _ := newTestServer(t)

	doJSON(r, http.MethodPost, "/auth/register", `{"name":"alice","password":"secret123"}`)
	login := doJSON(r, http.MethodPost, "/auth/login", `{"name":"alice","password":"secret123"}`)
	ck := sessionCookie(login)
	if ck == nil {
		t.Fatal("login should set the session cookie")
	}

	body := `{
		"name": "Dragon Brew",
		"price": 12.5,
		"score": 88,
		"ingredients": ["scale", "ember"],
		"ratings": {"strength": 9, "flavor": 3},
		"tryDate": "2024-05-01T00:00:00Z",
		"categories": ["fire", "rare"],
		"vendor_id": "v1"
	}`
	w := doJSON(r, http.MethodPost, "/potions", body, ck)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}

	var created models.Potion
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created potion: %v", err)
	}
	if created.ID == "" {
		t.Error("response should include the generated id")
	}
	if created.Name != "Dragon Brew" || created.VendorID != "v1" {
		t.Errorf("response should echo submitted fields, got %+v", created)
	}
	if created.Ratings.Strength != 9 || created.Ratings.Flavor != 3 {
		t.Errorf("ratings = %+v, want {9 3}", created.Ratings)
	}
}

func TestLogout_ClearsCookieAndBlocksCreation(t *testing.T) {
	r, _ := newTestServer(t)

	doJSON(r, http.MethodPost, "/auth/register", `{"name":"alice","password":"secret123"}`)
	login := doJSON(r, http.MethodPost, "/auth/login", `{"name":"alice","password":"secret123"}`)
	if sessionCookie(login) == nil {
		t.Fatal("login should set the session cookie")
	}

	logout := doJSON(r, http.MethodGet, "/auth/logout", "")
	if logout.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", logout.Code)
	}
	cleared := sessionCookie(logout)
	if cleared == nil {
		t.Fatal("logout should send a clearing cookie")
	}
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Errorf("logout cookie = %+v, want empty value with negative max-age", cleared)
	}

	// a second logout is not an error
	logout = doJSON(r, http.MethodGet, "/auth/logout", "")
	if logout.Code != http.StatusOK {
		t.Fatalf("repeated logout status = %d, want 200", logout.Code)
	}

	// the client dropped the cookie, so creation is rejected again
	w := doJSON(r, http.MethodPost, "/potions", `{"name":"Elixir"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("create after logout status = %d, want 401", w.Code)
	}
}
