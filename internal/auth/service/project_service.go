package service

import (
	"context"

	"github.com/ejifeanyi/lintra/internal/auth/domain"
	apperrors "github.com/ejifeanyi/lintra/internal/errors"
)

type ProjectService struct {
	projects domain.ProjectRepository
	users    domain.UserRepository
}

func NewProjectService(projects domain.ProjectRepository, users domain.UserRepository) *ProjectService {
	return &ProjectService{projects: projects, users: users}
}

// authorize loads the project and checks that the caller owns it. The
// existence check runs first: a nonexistent resource is 404 for everyone,
// never a 403.
func (s *ProjectService) authorize(ctx context.Context, callerID, projectID string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.AdminID != callerID {
		return nil, apperrors.ErrForbidden
	}
	return project, nil
}

// AddMember adds the principal registered under email to the project's member
// set. Adding an existing member is a no-op returning the unchanged project.
func (s *ProjectService) AddMember(ctx context.Context, callerID, projectID, email string) (*domain.Project, error) {
	project, err := s.authorize(ctx, callerID, projectID)
	if err != nil {
		return nil, err
	}

	target, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if project.HasMember(target.ID) {
		return project, nil
	}

	if err := s.projects.AddMember(ctx, projectID, target.ID); err != nil {
		return nil, err
	}

	return s.projects.GetByID(ctx, projectID)
}

// RemoveMember drops the given principal from the member set. Removing a
// non-member is a no-op returning the unchanged project.
func (s *ProjectService) RemoveMember(ctx context.Context, callerID, projectID, userID string) (*domain.Project, error) {
	project, err := s.authorize(ctx, callerID, projectID)
	if err != nil {
		return nil, err
	}

	if !project.HasMember(userID) {
		return project, nil
	}

	if err := s.projects.RemoveMember(ctx, projectID, userID); err != nil {
		return nil, err
	}

	return s.projects.GetByID(ctx, projectID)
}
