package dto

import (
	"time"

	"github.com/asdes/report-service/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse returns issued token metadata.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public user representation.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// UserSummary is a directory row with the user's report count.
type UserSummary struct {
	UserResponse
	ReportCount int `json:"reports_count"`
}

// UserFilters echoes the filter state applied to a user listing.
type UserFilters struct {
	Role   string `json:"role,omitempty"`
	Search string `json:"search,omitempty"`
}

// UserListResponse is the paginated admin user directory.
type UserListResponse struct {
	Data    []UserSummary `json:"data"`
	Meta    PageMeta      `json:"meta"`
	Filters UserFilters   `json:"filters"`
}
