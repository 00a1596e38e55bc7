package api

import (
	"time"

	"github.com/edustack/platform/pkg/auth"
)

// SignupRequest is the JSON body for POST /api/auth/signup
type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"password_confirm"`
}

// UserResponse is the serialized account, shared by signup, me, and the
// admin listing. The password digest never leaves the server.
type UserResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"is_active"`
	IsAdmin   bool       `json:"is_admin"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

func newUserResponse(user *auth.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		IsActive:  user.IsActive,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}
}

// TokenResponse is the JSON body returned by login and refresh. The
// refresh token travels only in its HttpOnly cookie, never in the body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func newTokenResponse(pair auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "bearer",
		ExpiresIn:   pair.ExpiresIn,
	}
}

// ProfileResponse is the JSON body for GET /profile
type ProfileResponse struct {
	Email       string     `json:"email"`
	IsActive    bool       `json:"is_active"`
	IsAdmin     bool       `json:"is_admin"`
	MemberSince time.Time  `json:"member_since"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// Material is a single course material with its download URL
type Material struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// MaterialsResponse is the JSON body for GET /materials. The listing is
// not paginated; page and pages are fixed at 1 so the shape stays stable
// when pagination arrives.
type MaterialsResponse struct {
	Materials []Material `json:"materials"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	Pages     int        `json:"pages"`
}

// UsersListResponse is the JSON body for the admin account listing
type UsersListResponse struct {
	Users    []UserResponse `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// SetActiveRequest is the JSON body for PATCH /api/users/{id}/active
type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// Version is the API version reported by the root endpoint
const Version = "1.0.0"

// APIIndex is the JSON body for GET /
type APIIndex struct {
	App       string         `json:"app"`
	Version   string         `json:"version"`
	Endpoints []EndpointInfo `json:"endpoints"`
}

// EndpointInfo describes one route in the API index
type EndpointInfo struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description"`
}
