package dto

import (
	"net/mail"
	"strings"

	"github.com/ejifeanyi/lintra/pkg/constant"
)

type RegisterInput struct {
	Firstname string `json:"firstname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Validate returns one message per failed field check, empty when the input is
// acceptable.
func (in *RegisterInput) Validate() []string {
	var errs []string

	if strings.TrimSpace(in.Firstname) == "" {
		errs = append(errs, "Firstname is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		errs = append(errs, "Please include a valid email")
	}
	if len(in.Password) < constant.MinPasswordLength {
		errs = append(errs, "Password must be at least 6 characters")
	}

	return errs
}
