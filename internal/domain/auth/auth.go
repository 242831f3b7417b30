package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// HashToken reduces a refresh token to the digest stored in the database so
// a leaked table cannot be replayed.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// RefreshToken is the persisted record of an issued refresh token. Only a
// sha256 hash of the token is stored.
type RefreshToken struct {
	ID        int64
	UserID    int64
	TokenHash string
	Revoked   bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (t *RefreshToken) Usable(now time.Time) bool {
	return !t.Revoked && t.ExpiresAt.After(now)
}

// PasswordReset links an emailed reset token to the account it can reset.
type PasswordReset struct {
	ID        int64
	Email     string
	Token     string
	CreatedAt time.Time
}

func (p *PasswordReset) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(p.CreatedAt) > ttl
}
