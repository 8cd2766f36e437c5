package service

import (
	"context"

	"useradmin/internal/models"
	"useradmin/internal/repository"
)

// Authorization covers the full token lifecycle: credential check, minting,
// verification, explicit revocation and session counting.
type Authorization interface {
	Login(ctx context.Context, username, password string, rememberMe bool) (token string, userID int, err error)
	ParseToken(ctx context.Context, accessToken string) (int, error)
	Logout(ctx context.Context, accessToken string) error
	ActiveCount(ctx context.Context) (int, error)
	SeedAdmin(ctx context.Context, username, password string) error
}

// Users exposes account CRUD over the users table.
type Users interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int) (models.User, error)
	Create(ctx context.Context, in CreateUserInput) (int, error)
	Update(ctx context.Context, id int, in UpdateUserInput) error
	Delete(ctx context.Context, id int) error
}

type Service struct {
	Authorization
	Users
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, signingKey string) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, repos.Tokens, signingKey),
		Users:         NewUserService(repos.Users),
	}
}
