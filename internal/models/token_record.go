package models

import "time"

// TokenRecord is one row of the active-token registry. A row exists from
// successful login until explicit logout; natural expiry does not remove it.
type TokenRecord struct {
	Token    string    `json:"token"`
	UserID   int       `json:"user_id"`
	IssuedAt time.Time `json:"issued_at"`
}
