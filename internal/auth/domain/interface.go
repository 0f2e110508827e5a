package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/ejifeanyi/lintra/internal/auth/domain UserRepository
//go:generate mockgen -destination=../../mocks/mock_project_repository.go -package=mocks github.com/ejifeanyi/lintra/internal/auth/domain ProjectRepository

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByID loads a principal without its password hash.
	GetByID(ctx context.Context, id string) (*User, error)
	// GetAll lists principals without password hashes.
	GetAll(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, user *User) error
}

type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*Project, error)
	AddMember(ctx context.Context, projectID, userID string) error
	RemoveMember(ctx context.Context, projectID, userID string) error
}
