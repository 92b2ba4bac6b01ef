package models

import "time"

// AccessTokenName is the label stored with every issued token.
const AccessTokenName = "auth_token"

// AccessToken is a revocable bearer credential. Only the SHA-256 hash of its
// secret part is persisted.
type AccessToken struct {
	ID         string
	UserID     string
	Name       string
	TokenHash  string
	LastUsedAt *time.Time
	CreatedAt  time.Time
}
