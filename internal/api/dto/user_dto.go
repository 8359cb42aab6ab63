package dto

import (
	"time"

	"github.com/turnkey-platform/turnkey-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Email         string      `json:"email"`
	Password      string      `json:"password"`
	Role          domain.Role `json:"role"`
	Name          string      `json:"name"`
	ContactNumber string      `json:"contactNumber"`
	Address       string      `json:"address"`
	PAN           string      `json:"pan"`
	Aadhaar       string      `json:"aadhaar"`
	CompanyName   string      `json:"companyName"`
	ProfilePhoto  string      `json:"profilePhoto"`
	IsAvailable   *bool       `json:"isAvailable"`
}

// UpdateUserRequest is the full replacement record for a user.
type UpdateUserRequest struct {
	Email          string      `json:"email"`
	Password       string      `json:"password"`
	Role           domain.Role `json:"role"`
	Name           string      `json:"name"`
	ContactNumber  string      `json:"contactNumber"`
	Address        string      `json:"address"`
	PAN            string      `json:"pan"`
	Aadhaar        string      `json:"aadhaar"`
	CompanyName    string      `json:"companyName"`
	OrganizationID string      `json:"organizationId"`
	IsAvailable    bool        `json:"isAvailable"`
	ProfilePhoto   string      `json:"profilePhoto"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the outward view of a user; the credential never
// leaves the service.
type UserResponse struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	Role           domain.Role `json:"role"`
	Name           string      `json:"name"`
	ContactNumber  string      `json:"contactNumber"`
	Address        string      `json:"address"`
	PAN            string      `json:"pan"`
	Aadhaar        string      `json:"aadhaar,omitempty"`
	CompanyName    string      `json:"companyName,omitempty"`
	OrganizationID string      `json:"organizationId,omitempty"`
	IsAvailable    bool        `json:"isAvailable"`
	ProfilePhoto   string      `json:"profilePhoto,omitempty"`
}

// NewUserResponse maps a domain user to its outward view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Role:           user.Role,
		Name:           user.Name,
		ContactNumber:  user.ContactNumber,
		Address:        user.Address,
		PAN:            user.PAN,
		Aadhaar:        user.Aadhaar,
		CompanyName:    user.CompanyName,
		OrganizationID: user.OrganizationID,
		IsAvailable:    user.IsAvailable,
		ProfilePhoto:   user.ProfilePhoto,
	}
}

// NewUserResponses maps a snapshot.
func NewUserResponses(users []domain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, NewUserResponse(&users[i]))
	}
	return result
}
