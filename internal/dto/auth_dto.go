package dto

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/zara-ai/backend/internal/models"
)

var emailPattern = regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`)

type RegisterRequest struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email"`
	Password            string `json:"password"`
	SubscribeNewsletter bool   `json:"subscribeNewsletter"`
}

// Normalize trims whitespace and lowercases the email before validation,
// so the stored record always carries the canonical form.
func (r *RegisterRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = NormalizeEmail(r.Email)
}

func (r *RegisterRequest) Validate() error {
	if err := validateName(r.FirstName, "First name"); err != nil {
		return err
	}
	if err := validateName(r.LastName, "Last name"); err != nil {
		return err
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	return ValidatePassword(r.Password)
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (r *LoginRequest) Validate() error {
	if err := ValidateEmail(NormalizeEmail(r.Email)); err != nil {
		return err
	}
	if r.Password == "" {
		return errors.New("Password is required")
	}
	return nil
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ResendVerificationRequest struct {
	Email string `json:"email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken,omitempty"`
	RefreshToken string       `json:"refreshToken,omitempty"`
}

// UserResponse is the public projection of a user record. Credential and
// token fields are never included.
type UserResponse struct {
	ID                  uuid.UUID      `json:"id"`
	FirstName           string         `json:"firstName"`
	LastName            string         `json:"lastName"`
	FullName            string         `json:"fullName"`
	Email               string         `json:"email"`
	Avatar              *string        `json:"avatar"`
	Role                string         `json:"role"`
	IsVerified          bool           `json:"isVerified"`
	IsActive            bool           `json:"isActive"`
	SubscribeNewsletter bool           `json:"subscribeNewsletter"`
	Preferences         datatypes.JSON `json:"preferences"`
	LastLogin           *time.Time     `json:"lastLogin"`
	LoginCount          int            `json:"loginCount"`
	AIInteractions      int64          `json:"aiInteractions"`
	AccountStatus       string         `json:"accountStatus"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		FullName:            u.FullName(),
		Email:               u.Email,
		Avatar:              u.Avatar,
		Role:                u.Role,
		IsVerified:          u.IsVerified,
		IsActive:            u.IsActive,
		SubscribeNewsletter: u.SubscribeNewsletter,
		Preferences:         u.Preferences,
		LastLogin:           u.LastLogin,
		LoginCount:          u.LoginCount,
		AIInteractions:      u.AIInteractions,
		AccountStatus:       u.AccountStatus,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("Please provide a valid email address")
	}
	return nil
}

// ValidatePassword enforces the registration password policy: at least 8
// characters containing at least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("Password must be at least 8 characters long")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("Password must contain at least one letter and one number")
	}
	return nil
}

func validateName(name, field string) error {
	if len(name) < 2 {
		return errors.New(field + " must be at least 2 characters long")
	}
	if len(name) > 50 {
		return errors.New(field + " cannot exceed 50 characters")
	}
	return nil
}
