package dto

import (
	"errors"
	"net/url"
	"time"
)

type UpdateProfileRequest struct {
	FirstName           *string                `json:"firstName"`
	LastName            *string                `json:"lastName"`
	SubscribeNewsletter *bool                  `json:"subscribeNewsletter"`
	Preferences         map[string]interface{} `json:"preferences"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.FirstName != nil {
		if err := validateName(*r.FirstName, "First name"); err != nil {
			return err
		}
	}
	if r.LastName != nil {
		if err := validateName(*r.LastName, "Last name"); err != nil {
			return err
		}
	}
	return nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r *ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" {
		return errors.New("Current password is required")
	}
	return ValidatePassword(r.NewPassword)
}

type UpdateAvatarRequest struct {
	AvatarURL string `json:"avatarUrl"`
}

func (r *UpdateAvatarRequest) Validate() error {
	if r.AvatarURL == "" {
		return errors.New("Avatar URL is required")
	}
	u, err := url.Parse(r.AvatarURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("Invalid avatar URL")
	}
	return nil
}

type DeleteAccountRequest struct {
	Password        string `json:"password"`
	ConfirmDeletion string `json:"confirmDeletion"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// DashboardStats summarizes account usage for the dashboard endpoint.
type DashboardStats struct {
	TotalInteractions int64 `json:"totalInteractions"`
	AccountAgeDays    int   `json:"accountAge"`
	LastLoginDays     *int  `json:"lastLoginDays"`
	TotalLogins       int   `json:"totalLogins"`
}

type DashboardResponse struct {
	User  UserResponse   `json:"user"`
	Stats DashboardStats `json:"stats"`
}

type ActivityResponse struct {
	RecentLogins struct {
		LastLogin   *time.Time `json:"lastLogin"`
		TotalLogins int        `json:"totalLogins"`
	} `json:"recentLogins"`
	Account struct {
		CreatedAt     time.Time `json:"createdAt"`
		IsVerified    bool      `json:"isVerified"`
		AccountStatus string    `json:"accountStatus"`
	} `json:"account"`
	Usage struct {
		AIInteractions int64 `json:"aiInteractions"`
	} `json:"usage"`
	ActiveSessions int `json:"activeSessions"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalUsers  int64 `json:"totalUsers"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

type AdminStats struct {
	TotalUsers      int64 `json:"totalUsers"`
	VerifiedUsers   int64 `json:"verifiedUsers"`
	UnverifiedUsers int64 `json:"unverifiedUsers"`
	ActiveUsers     int64 `json:"activeUsers"`
}
