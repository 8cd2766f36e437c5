package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"useradmin/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, password_hash, fullname, mobileno, active)
		VALUES (?, ?, ?, ?, ?)`
	selectUserByIDSQL       = `SELECT id, username, password_hash, fullname, mobileno, active FROM users WHERE id = ?`
	selectUserByUsernameSQL = `SELECT id, username, password_hash, fullname, mobileno, active FROM users WHERE username = ?`
	selectAllUsersSQL       = `SELECT id, username, password_hash, fullname, mobileno, active FROM users ORDER BY id`
	updateUserSQL           = `UPDATE users SET username = ?, password_hash = ?, fullname = ?, mobileno = ?, active = ? WHERE id = ?`
	deleteUserSQL           = `DELETE FROM users WHERE id = ?`
	countUsersSQL           = `SELECT COUNT(*) FROM users`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Username, u.PasswordHash, u.Fullname, u.MobileNo, u.Active)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return int(lastID), nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByIDSQL, id), fmt.Sprintf("id %d", id))
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username), fmt.Sprintf("username %q", username))
}

func (r *UserRepository) scanOne(row *sql.Row, desc string) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Fullname, &u.MobileNo, &u.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %s: %w", desc, err)
	}
	return &u, nil
}

// List returns the whole users table ordered by id.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, selectAllUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Fullname, &u.MobileNo, &u.Active); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// Update overwrites all columns of the user row. Last write wins.
func (r *UserRepository) Update(ctx context.Context, id int, u models.User) error {
	if _, err := r.db.ExecContext(ctx, updateUserSQL,
		u.Username, u.PasswordHash, u.Fullname, u.MobileNo, u.Active, id); err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return nil
}

// Delete removes the user row by id. No error if the row does not exist.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteUserSQL, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

// Count returns the number of user rows.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countUsersSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
