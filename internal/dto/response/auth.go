package response

import (
	"time"

	"teach-trade/internal/data/entity"
)

// AuthUser is the short user shape returned next to a token
type AuthUser struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   entity.UserRole `json:"role"`
	Avatar *string         `json:"avatar,omitempty"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      AuthUser  `json:"user"`
}

func AuthToResponse(user *entity.User, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: AuthUser{
			ID:     user.ID.String(),
			Name:   user.Name,
			Email:  user.Email,
			Role:   user.Role,
			Avatar: user.Avatar,
		},
	}
}
