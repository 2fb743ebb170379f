package service

import (
	"context"
	"fmt"

	"github.com/geoquiz/geoquiz-backend/internal/model"
	"github.com/geoquiz/geoquiz-backend/internal/repository"
)

// UserService handles account business logic.
type UserService struct {
	userRepo *repository.UserRepository
	auth     *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// Signup creates a new account with a hashed password.
func (s *UserService) Signup(ctx context.Context, username, password string) (*model.User, error) {
	taken, err := s.userRepo.Exists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Username: username, Password: hash}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies a username/password pair.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// Don't reveal whether the username exists.
		return nil, ErrInvalidCredentials
	}
	if err := s.auth.CheckPassword(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// List returns all users as public records.
func (s *UserService) List(ctx context.Context) ([]model.PublicUser, error) {
	return s.userRepo.List(ctx)
}

// GetByUsername returns a user's public record.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.PublicUser, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &model.PublicUser{ID: user.ID, Username: user.Username}, nil
}
