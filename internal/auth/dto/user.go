package dto

import (
	"github.com/ejifeanyi/lintra/internal/auth/domain"
)

type UserOutput struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// AuthOutput is the registration/login response: the principal plus a fresh
// bearer token. The password hash never appears here.
type AuthOutput struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Token     string `json:"token"`
}

func NewUserOutput(u *domain.User) *UserOutput {
	return &UserOutput{
		ID:        u.ID,
		Firstname: u.Firstname,
		Email:     u.Email,
		Role:      u.Role,
	}
}

func NewAuthOutput(u *domain.User, token string) *AuthOutput {
	return &AuthOutput{
		ID:        u.ID,
		Firstname: u.Firstname,
		Email:     u.Email,
		Role:      u.Role,
		Token:     token,
	}
}
