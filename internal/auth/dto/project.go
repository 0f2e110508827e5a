package dto

import (
	"github.com/ejifeanyi/lintra/internal/auth/domain"
)

type AddMemberInput struct {
	Email string `json:"email"`
}

type ProjectOutput struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Admin string   `json:"admin"`
	Users []string `json:"users"`
}

func NewProjectOutput(p *domain.Project) *ProjectOutput {
	users := p.UserIDs
	if users == nil {
		users = []string{}
	}
	return &ProjectOutput{
		ID:    p.ID,
		Name:  p.Name,
		Admin: p.AdminID,
		Users: users,
	}
}
