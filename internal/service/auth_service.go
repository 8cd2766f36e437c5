package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"useradmin/internal/models"
	"useradmin/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL    = time.Hour          // default login
	rememberMeTTL = 7 * 24 * time.Hour // "remember me" login
)

// Domain errors for auth flows.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)

// AuthService validates credentials, mints bearer tokens and keeps the
// active-token registry in sync with logins and logouts.
type AuthService struct {
	users      repository.Users
	tokens     repository.Tokens
	signingKey []byte
}

func NewAuthService(users repository.Users, tokens repository.Tokens, signingKey string) *AuthService {
	return &AuthService{users: users, tokens: tokens, signingKey: []byte(signingKey)}
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// Login checks the credentials, issues a signed token (1h TTL, or 7d with
// rememberMe) and records it in the registry. The insert and the return are
// not transactional: a crash in between leaves an orphaned registry row.
func (s *AuthService) Login(ctx context.Context, username, password string, rememberMe bool) (string, int, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", 0, err
	}
	if u == nil {
		return "", 0, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", 0, ErrInvalidCredentials
	}

	ttl := sessionTTL
	if rememberMe {
		ttl = rememberMeTTL
	}
	token, err := s.issueToken(u.ID, ttl)
	if err != nil {
		return "", 0, fmt.Errorf("issue token for user %d: %w", u.ID, err)
	}

	if err := s.tokens.Insert(ctx, models.TokenRecord{
		Token:    token,
		UserID:   u.ID,
		IssuedAt: time.Now().UTC(),
	}); err != nil {
		return "", 0, err
	}

	return token, u.ID, nil
}

// ParseToken verifies signature and expiry, then cross-checks the registry so
// that a logged-out token stops authorizing even before its natural expiry.
func (s *AuthService) ParseToken(ctx context.Context, accessToken string) (int, error) {
	accessToken = strings.TrimPrefix(accessToken, "Bearer ")

	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	registered, err := s.tokens.Exists(ctx, accessToken)
	if err != nil {
		return 0, err
	}
	if !registered {
		return 0, ErrTokenRevoked
	}

	return claims.UserID, nil
}

// Logout deletes the registry row for the token. A missing row or an empty
// token is a no-op success.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	accessToken = strings.TrimPrefix(accessToken, "Bearer ")
	if accessToken == "" {
		return nil
	}
	return s.tokens.Delete(ctx, accessToken)
}

// ActiveCount returns the raw registry row count: one per login that has not
// been explicitly logged out, expired or not.
func (s *AuthService) ActiveCount(ctx context.Context) (int, error) {
	return s.tokens.Count(ctx)
}

// SeedAdmin creates the bootstrap account when the users table is empty so
// that a fresh deployment has a way to log in.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password string) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	_, err = s.users.Create(ctx, models.User{
		Username:     username,
		PasswordHash: hash,
		Fullname:     "Administrator",
		Active:       true,
	})
	return err
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash (constant-time comparison inside bcrypt)
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}
