package dto

import (
	"time"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
)

// LoginRequest is the body of POST /session.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// IdentityResponse is an identity without any secret.
type IdentityResponse struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	AvatarURL  string      `json:"avatar"`
	EmployeeID *string     `json:"employeeId,omitempty"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Identity  IdentityResponse `json:"identity"`
}

// NavigationParams are the query parameters of GET /navigation.
type NavigationParams struct {
	Target string `form:"target"`
}

// ToIdentityResponse converts a domain.Identity to its DTO.
func ToIdentityResponse(i domain.Identity) IdentityResponse {
	return IdentityResponse{
		ID:         i.ID,
		Name:       i.Name,
		Email:      i.Email,
		Role:       i.Role,
		AvatarURL:  i.AvatarURL,
		EmployeeID: i.EmployeeID,
	}
}

// ToLoginResponse converts a login result to its DTO.
func ToLoginResponse(r *domain.LoginResult) LoginResponse {
	return LoginResponse{
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
		Identity:  ToIdentityResponse(r.Session.Identity),
	}
}
