package store

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"potion-shop/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore persists user credentials.
type UserStore struct {
	DB         *gorm.DB
	BcryptCost int
}

func NewUserStore(db *gorm.DB, bcryptCost int) *UserStore {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserStore{DB: db, BcryptCost: bcryptCost}
}

// normalizeName trims and escapes HTML-significant characters. Length rules
// apply to the normalized form, and lookups use the same normalization so a
// registered user can always log back in.
func normalizeName(name string) string {
	return html.EscapeString(strings.TrimSpace(name))
}

// Register validates the credentials, hashes the password and persists a new
// user. It returns ValidationErrors with every violated rule, or
// ErrDuplicateName when the name is taken.
func (s *UserStore) Register(name, rawPassword string) (*models.User, error) {
	name = normalizeName(name)
	password := strings.TrimSpace(rawPassword)

	var errs ValidationErrors
	if n := utf8.RuneCountInString(name); n < 3 || n > 30 {
		errs = append(errs, "name must be between 3 and 30 characters")
	}
	if utf8.RuneCountInString(password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}
	if len(errs) > 0 {
		return nil, errs
	}

	var count int64
	if err := s.DB.Model(&models.User{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.DB.Create(&user).Error; err != nil {
		// the unique index closes the check-then-create race
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// FindByName returns the user with the given name, or nil when none exists.
func (s *UserStore) FindByName(name string) (*models.User, error) {
	name = normalizeName(name)

	var user models.User
	if err := s.DB.Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// VerifyPassword reports whether raw matches the stored hash. bcrypt's
// comparison does constant-work hashing, so timing does not reveal how far
// the match got.
func (s *UserStore) VerifyPassword(user *models.User, rawPassword string) bool {
	if user == nil {
		return false
	}
	err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(strings.TrimSpace(rawPassword)),
	)
	return err == nil
}
