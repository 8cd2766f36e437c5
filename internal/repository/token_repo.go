package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"useradmin/internal/models"
)

type TokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

var _ Tokens = (*TokenRepository)(nil)

const (
	insertTokenSQL = `INSERT INTO active_tokens (token, user_id, issued_at) VALUES (?, ?, ?)`
	existsTokenSQL = `SELECT COUNT(*) FROM active_tokens WHERE token = ?`
	deleteTokenSQL = `DELETE FROM active_tokens WHERE token = ?`
	countTokensSQL = `SELECT COUNT(*) FROM active_tokens`
)

// Insert records a freshly issued token.
func (r *TokenRepository) Insert(ctx context.Context, rec models.TokenRecord) error {
	issued := rec.IssuedAt
	if issued.IsZero() {
		issued = time.Now().UTC()
	}
	if _, err := r.db.ExecContext(ctx, insertTokenSQL, rec.Token, rec.UserID, issued.UTC()); err != nil {
		return fmt.Errorf("insert token for user %d: %w", rec.UserID, err)
	}
	return nil
}

// Exists reports whether the token is still registered (i.e. not logged out).
func (r *TokenRepository) Exists(ctx context.Context, token string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, existsTokenSQL, token).Scan(&n); err != nil {
		return false, fmt.Errorf("check token: %w", err)
	}
	return n > 0, nil
}

// Delete removes the token row. Deleting an absent token is not an error.
func (r *TokenRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, deleteTokenSQL, token); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Count returns the raw registry row count. Expired-but-not-logged-out
// tokens still count; only logout shrinks it.
func (r *TokenRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countTokensSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return n, nil
}
