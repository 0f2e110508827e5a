package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ejifeanyi/lintra/internal/auth/domain"
	"github.com/ejifeanyi/lintra/internal/auth/dto"
	apperrors "github.com/ejifeanyi/lintra/internal/errors"
)

type UserService struct {
	repo         domain.UserRepository
	tokenService TokenGenerator
	bcryptCost   int
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
		bcryptCost:   bcryptCost,
	}
}

// Register creates a principal and returns it with a fresh bearer token.
// Role assignment (first principal is admin) happens in the repository so
// concurrent registrations cannot both win.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthOutput, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.New().String(),
		Firstname:    input.Firstname,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokenService.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewAuthOutput(user, token), nil
}

// Login checks the credentials and returns the principal with a fresh token.
// A missing account and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthOutput, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokenService.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewAuthOutput(user, token), nil
}

// List returns every principal without password hashes.
func (s *UserService) List(ctx context.Context) ([]*dto.UserOutput, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.UserOutput, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserOutput(u))
	}
	return out, nil
}

// GetByID loads the principal without its password hash.
func (s *UserService) GetByID(ctx context.Context, id string) (*dto.UserOutput, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserOutput(user), nil
}
