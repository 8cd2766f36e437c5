package repository

import (
	"context"
	"database/sql"

	"useradmin/internal/models"
	"useradmin/internal/repository/db"
)

type Users interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id int, u models.User) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type Tokens interface {
	Insert(ctx context.Context, rec models.TokenRecord) error
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
	Count(ctx context.Context) (int, error)
}

type Repository struct {
	Users  Users
	Tokens Tokens
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users:  NewUserRepository(sqlDB),
		Tokens: NewTokenRepository(sqlDB),
	}
}

// InitDB opens the SQLite database and bootstraps the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
