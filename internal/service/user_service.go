package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"useradmin/internal/models"
	"useradmin/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
)

// CreateUserInput is the explicit allow-list of fields a caller may set when
// creating an account. Anything else in the request body is dropped at bind
// time rather than trusted into SQL.
type CreateUserInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Fullname string `json:"fullname"`
	MobileNo string `json:"mobileno"`
	Active   bool   `json:"active"`
}

// UpdateUserInput carries optional fields; nil means "keep the stored value".
type UpdateUserInput struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Fullname *string `json:"fullname"`
	MobileNo *string `json:"mobileno"`
	Active   *bool   `json:"active"`
}

// UserService is a thin CRUD layer over the users repository.
type UserService struct {
	users repository.Users
}

func NewUserService(users repository.Users) *UserService {
	return &UserService{users: users}
}

// List returns every account. Pagination is left to the caller: the reference
// frontend slices the full result client-side.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// GetByID returns the account or ErrUserNotFound.
func (s *UserService) GetByID(ctx context.Context, id int) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	return *u, nil
}

// Create hashes the password and inserts the account.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (int, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return 0, fmt.Errorf("%w: username is empty", ErrInvalidInput)
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.users.Create(ctx, models.User{
		Username:     username,
		PasswordHash: hash,
		Fullname:     in.Fullname,
		MobileNo:     in.MobileNo,
		Active:       in.Active,
	})
}

// Update overwrites the row with supplied fields merged over the stored ones.
// No conflict detection: last write wins.
func (s *UserService) Update(ctx context.Context, id int, in UpdateUserInput) error {
	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrUserNotFound
	}

	u := *existing
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return fmt.Errorf("%w: username is empty", ErrInvalidInput)
		}
		u.Username = username
	}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		u.PasswordHash = hash
	}
	if in.Fullname != nil {
		u.Fullname = *in.Fullname
	}
	if in.MobileNo != nil {
		u.MobileNo = *in.MobileNo
	}
	if in.Active != nil {
		u.Active = *in.Active
	}

	return s.users.Update(ctx, id, u)
}

// Delete removes the account unconditionally. Registry rows for the account's
// tokens are not cascaded; they age out via logout only.
func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.users.Delete(ctx, id)
}
