package dto

import (
	"github.com/tourdetaxa/bogfoering-backend/internal/core/domain"
)

// CreateUserRequest is the payload for creating a user (superbruger only).
type CreateUserRequest struct {
	Username     string  `json:"username" binding:"required"`
	Password     string  `json:"password" binding:"required,min=6"`
	Role         string  `json:"role" binding:"required,oneof=admin superbruger afdeling"`
	AfdelingNavn *string `json:"afdeling_navn,omitempty"`
}

// UpdatePasswordRequest replaces a user's password.
type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// UpdateAfdelingNavnRequest renames the department an afdeling user belongs to.
type UpdateAfdelingNavnRequest struct {
	AfdelingNavn string `json:"afdeling_navn" binding:"required"`
}

// UserResponse is the public shape of a user; the password hash never leaves the server.
type UserResponse struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Role         string  `json:"role"`
	AfdelingNavn *string `json:"afdeling_navn,omitempty"`
}

// ToUserResponse maps a domain user to its public shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:           u.UserID,
		Username:     u.Username,
		Role:         string(u.Role),
		AfdelingNavn: u.AfdelingNavn,
	}
}

// ToUserResponseList maps a slice of domain users.
func ToUserResponseList(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
